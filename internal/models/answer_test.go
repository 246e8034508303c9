package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAnswer_MultiChoiceCanonicalForm(t *testing.T) {
	t.Run("sorts selections", func(t *testing.T) {
		canonical, err := EncodeAnswer(MSQ, []byte(`{"option_ids":[3,1,2]}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"option_ids":[1,2,3]}`, string(canonical))
	})

	t.Run("drops duplicated selections", func(t *testing.T) {
		canonical, err := EncodeAnswer(MSQ, []byte(`{"option_ids":[1,1,3]}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"option_ids":[1,3]}`, string(canonical))
	})
}

func TestDecodeAnswer_RejectsMismatchedShape(t *testing.T) {
	_, err := DecodeAnswer(MCQ, []byte(`{"option_ids":[1,3]}`))
	assert.Error(t, err)

	_, err = DecodeAnswer(MSQ, []byte(`{"option_id":1}`))
	assert.Error(t, err)
}

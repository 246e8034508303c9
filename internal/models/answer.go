package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Answer payloads are tagged by the question's declared type. Mismatched
// shapes are rejected at the response-store boundary, not in scoring.

type SingleChoiceAnswer struct {
	OptionID uint `json:"option_id"`
}

type MultiChoiceAnswer struct {
	OptionIDs []uint `json:"option_ids"`
}

type TextAnswer struct {
	Value string `json:"value"`
}

// Normalize sorts the selected option ids and drops duplicates so MSQ
// answers are stored and graded as an order-independent set.
func (a *MultiChoiceAnswer) Normalize() {
	sort.Slice(a.OptionIDs, func(i, j int) bool { return a.OptionIDs[i] < a.OptionIDs[j] })
	deduped := a.OptionIDs[:0]
	for i, id := range a.OptionIDs {
		if i == 0 || id != deduped[len(deduped)-1] {
			deduped = append(deduped, id)
		}
	}
	a.OptionIDs = deduped
}

// Trimmed returns the answer value with surrounding whitespace removed,
// the form NAT grading compares against.
func (a TextAnswer) Trimmed() string {
	return strings.TrimSpace(a.Value)
}

// DecodeAnswer parses a stored answer payload according to the question
// type. Unknown fields are rejected so an MSQ payload cannot silently
// pass as an MCQ one.
func DecodeAnswer(qType QuestionType, raw []byte) (interface{}, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("empty answer payload")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	switch qType {
	case MCQ:
		var a SingleChoiceAnswer
		if err := dec.Decode(&a); err != nil {
			return nil, fmt.Errorf("invalid MCQ answer payload: %w", err)
		}
		if a.OptionID == 0 {
			return nil, fmt.Errorf("invalid MCQ answer payload: missing option_id")
		}
		return a, nil
	case MSQ:
		var a MultiChoiceAnswer
		if err := dec.Decode(&a); err != nil {
			return nil, fmt.Errorf("invalid MSQ answer payload: %w", err)
		}
		if len(a.OptionIDs) == 0 {
			return nil, fmt.Errorf("invalid MSQ answer payload: empty option_ids")
		}
		a.Normalize()
		return a, nil
	case NAT:
		var a TextAnswer
		if err := dec.Decode(&a); err != nil {
			return nil, fmt.Errorf("invalid NAT answer payload: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unsupported question type %q", qType)
	}
}

// EncodeAnswer validates an answer payload against the question type and
// returns its canonical serialized form (MSQ selections sorted).
func EncodeAnswer(qType QuestionType, raw []byte) ([]byte, error) {
	decoded, err := DecodeAnswer(qType, raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(decoded)
}

// Package scoring grades a submitted exam attempt. Score is a pure
// function over the exam content and the stored response set; all
// persistence happens in the caller.
package scoring

import (
	"github.com/edvora/exam-service/internal/models"
)

type questionOutcome int

const (
	outcomeUnanswered questionOutcome = iota
	outcomeCorrect
	outcomeWrong
	// outcomeMalformed covers stored payloads that no longer decode for
	// the question's type. They count as wrong answers but never incur
	// negative marking.
	outcomeMalformed
)

// Score grades every question of the exam against the response set,
// keyed by question id. Grading is deterministic: MCQ by single-option
// equality, MSQ by set equality over option ids (all-or-nothing), NAT by
// exact trimmed string match.
//
// Section marks are floored at zero after negative-marking deductions,
// and the overall total is floored again across sections.
func Score(exam *models.Exam, responses map[uint][]byte) *models.ExamResult {
	result := &models.ExamResult{
		TotalMarks: totalMarks(exam),
	}

	var obtained float64
	for _, section := range exam.Sections {
		sr := scoreSection(exam, &section, responses)
		obtained += sr.ObtainedMarks
		result.SectionResults = append(result.SectionResults, sr)
	}

	if obtained < 0 {
		obtained = 0
	}
	result.ObtainedMarks = obtained
	if result.TotalMarks > 0 {
		result.Percentage = 100 * result.ObtainedMarks / result.TotalMarks
	}
	return result
}

func scoreSection(exam *models.Exam, section *models.Section, responses map[uint][]byte) models.SectionResult {
	sr := models.SectionResult{
		SectionID:  section.ID,
		Title:      section.Title,
		Order:      section.Order,
		TotalMarks: sectionMarks(section),
	}

	var marks float64
	for _, question := range section.Questions {
		switch gradeQuestion(&question, responses[question.ID]) {
		case outcomeCorrect:
			sr.CorrectAnswers++
			marks += question.Marks
		case outcomeWrong:
			sr.WrongAnswers++
			if exam.NegativeMarking {
				marks -= question.NegativeMarks
			}
		case outcomeMalformed:
			sr.WrongAnswers++
		case outcomeUnanswered:
			sr.Unanswered++
		}
	}

	// The floor is per section: wrong answers cannot drive a section
	// below zero even when other sections are strongly positive.
	if marks < 0 {
		marks = 0
	}
	sr.ObtainedMarks = marks
	return sr
}

func gradeQuestion(question *models.Question, raw []byte) questionOutcome {
	if len(raw) == 0 {
		return outcomeUnanswered
	}

	answer, err := models.DecodeAnswer(question.Type, raw)
	if err != nil {
		return outcomeMalformed
	}

	switch question.Type {
	case models.MCQ:
		return gradeMCQ(question, answer.(models.SingleChoiceAnswer))
	case models.MSQ:
		return gradeMSQ(question, answer.(models.MultiChoiceAnswer))
	case models.NAT:
		return gradeNAT(question, answer.(models.TextAnswer))
	default:
		return outcomeMalformed
	}
}

func gradeMCQ(question *models.Question, answer models.SingleChoiceAnswer) questionOutcome {
	correct := question.CorrectOptionIDs()
	if len(correct) == 1 && correct[0] == answer.OptionID {
		return outcomeCorrect
	}
	return outcomeWrong
}

func gradeMSQ(question *models.Question, answer models.MultiChoiceAnswer) questionOutcome {
	correct := question.CorrectOptionIDs()
	if len(correct) == 0 || len(correct) != len(answer.OptionIDs) {
		return outcomeWrong
	}
	// Set equality, order-independent. No partial credit.
	selected := make(map[uint]bool, len(answer.OptionIDs))
	for _, id := range answer.OptionIDs {
		selected[id] = true
	}
	if len(selected) != len(correct) {
		return outcomeWrong
	}
	for _, id := range correct {
		if !selected[id] {
			return outcomeWrong
		}
	}
	return outcomeCorrect
}

func gradeNAT(question *models.Question, answer models.TextAnswer) questionOutcome {
	if question.CorrectAnswer == nil {
		return outcomeWrong
	}
	expected := models.TextAnswer{Value: *question.CorrectAnswer}
	if answer.Trimmed() == expected.Trimmed() {
		return outcomeCorrect
	}
	return outcomeWrong
}

func totalMarks(exam *models.Exam) float64 {
	if exam.TotalMarks > 0 {
		return exam.TotalMarks
	}
	var total float64
	for _, section := range exam.Sections {
		total += sectionMarks(&section)
	}
	return total
}

func sectionMarks(section *models.Section) float64 {
	if section.TotalMarks > 0 {
		return section.TotalMarks
	}
	var total float64
	for _, question := range section.Questions {
		total += question.Marks
	}
	return total
}

package service

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func question(id string, points int) model.Question {
	return model.Question{
		UUIDBase:     model.UUIDBase{ID: id},
		QuestionType: model.QuestionMultiChoice,
		Content:      "q",
		Points:       points,
	}
}

func option(id, questionID string, correct bool) model.QuestionOption {
	return model.QuestionOption{
		UUIDBase:   model.UUIDBase{ID: id},
		QuestionID: questionID,
		Content:    "o",
		IsCorrect:  correct,
	}
}

func TestExactMatch(t *testing.T) {
	correct := map[string]bool{"a": true, "b": true}

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{name: "exact", selected: []string{"a", "b"}, want: true},
		{name: "exact reordered", selected: []string{"b", "a"}, want: true},
		{name: "duplicates collapse", selected: []string{"a", "a", "b"}, want: true},
		{name: "subset", selected: []string{"a"}, want: false},
		{name: "superset", selected: []string{"a", "b", "c"}, want: false},
		{name: "disjoint", selected: []string{"c", "d"}, want: false},
		{name: "empty", selected: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exactMatch(correct, tt.selected))
		})
	}
}

func TestExactMatchEmptyCorrectSet(t *testing.T) {
	// A question with no correct options is only matched by an empty selection.
	assert.True(t, exactMatch(map[string]bool{}, nil))
	assert.False(t, exactMatch(map[string]bool{}, []string{"a"}))
}

func TestGradeAnswersAllOrNothing(t *testing.T) {
	questions := []model.Question{question("q1", 1), question("q2", 1)}
	options := []model.QuestionOption{
		option("q1o1", "q1", true),
		option("q1o2", "q1", false),
		option("q2o1", "q2", true),
		option("q2o2", "q2", true),
	}
	correct := correctOptionSets(options)

	// One right, one half-right: half credit does not exist.
	answers := model.AnswerMap{
		"q1": {"q1o1"},
		"q2": {"q2o1"},
	}
	earned, total := gradeAnswers(questions, correct, answers)
	assert.Equal(t, 1, earned)
	assert.Equal(t, 2, total)
	assert.Equal(t, 50.0, percentScore(earned, total))
}

func TestGradeAnswersMissingAnswerCountsAsWrong(t *testing.T) {
	questions := []model.Question{question("q1", 3)}
	correct := correctOptionSets([]model.QuestionOption{option("q1o1", "q1", true)})

	earned, total := gradeAnswers(questions, correct, model.AnswerMap{})
	assert.Equal(t, 0, earned)
	assert.Equal(t, 3, total)
}

func TestGradeAnswersWeightedPoints(t *testing.T) {
	questions := []model.Question{question("q1", 1), question("q2", 3)}
	correct := correctOptionSets([]model.QuestionOption{
		option("q1o1", "q1", true),
		option("q2o1", "q2", true),
	})

	earned, total := gradeAnswers(questions, correct, model.AnswerMap{"q2": {"q2o1"}})
	assert.Equal(t, 3, earned)
	assert.Equal(t, 4, total)
	assert.Equal(t, 75.0, percentScore(earned, total))
}

func TestGradeAnswersNegativePointsClamped(t *testing.T) {
	questions := []model.Question{question("q1", -5), question("q2", 2)}
	correct := correctOptionSets([]model.QuestionOption{
		option("q1o1", "q1", true),
		option("q2o1", "q2", true),
	})

	earned, total := gradeAnswers(questions, correct, model.AnswerMap{
		"q1": {"q1o1"},
		"q2": {"q2o1"},
	})
	assert.Equal(t, 2, earned)
	assert.Equal(t, 2, total)
}

func TestPercentScore(t *testing.T) {
	tests := []struct {
		name   string
		earned int
		total  int
		want   float64
	}{
		{name: "zero total scores zero", earned: 0, total: 0, want: 0},
		{name: "full marks", earned: 5, total: 5, want: 100.0},
		{name: "half", earned: 1, total: 2, want: 50.0},
		{name: "one third rounds to one decimal", earned: 1, total: 3, want: 33.3},
		{name: "two thirds rounds up", earned: 2, total: 3, want: 66.7},
		{name: "one seventh", earned: 1, total: 7, want: 14.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, percentScore(tt.earned, tt.total))
		})
	}
}

func TestPassThresholdIsInclusive(t *testing.T) {
	// A 70.0 score against a 70 pass mark passes; 69.9 does not.
	passScore := 70
	assert.True(t, percentScore(7, 10) >= float64(passScore))
	assert.False(t, percentScore(699, 1000) >= float64(passScore))
}

package service

import (
	"lms_backend/internal/model"
	"math"
)

// correctOptionSets groups the correct option ids of every question.
func correctOptionSets(options []model.QuestionOption) map[string]map[string]bool {
	sets := make(map[string]map[string]bool)
	for _, opt := range options {
		if _, ok := sets[opt.QuestionID]; !ok {
			sets[opt.QuestionID] = make(map[string]bool)
		}
		if opt.IsCorrect {
			sets[opt.QuestionID][opt.ID] = true
		}
	}
	return sets
}

// exactMatch reports whether the selected option ids equal the correct set
// exactly. Subsets, supersets and partial overlaps all fail; there is no
// partial credit.
func exactMatch(correct map[string]bool, selected []string) bool {
	seen := make(map[string]bool, len(selected))
	for _, id := range selected {
		seen[id] = true
	}
	if len(seen) != len(correct) {
		return false
	}
	for id := range seen {
		if !correct[id] {
			return false
		}
	}
	return true
}

// gradeAnswers awards each question its full point value iff the learner's
// selection matches the correct set exactly. A question absent from answers
// counts as an empty selection.
func gradeAnswers(questions []model.Question, correct map[string]map[string]bool, answers model.AnswerMap) (earned, total int) {
	for _, q := range questions {
		points := q.Points
		if points < 0 {
			points = 0
		}
		total += points

		if exactMatch(correct[q.ID], answers[q.ID]) {
			earned += points
		}
	}
	return earned, total
}

// percentScore converts earned/total points into a percentage rounded to one
// decimal. A test worth zero points scores zero.
func percentScore(earned, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(1000*float64(earned)/float64(total)) / 10
}

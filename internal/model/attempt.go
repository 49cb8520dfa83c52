package model

import (
	"encoding/json"
	"time"
)

// swagger:model TestAttempt
type TestAttempt struct {
	UUIDBase
	TestID         string          `gorm:"index;type:varchar(36);not null" json:"testId"`
	UserID         uint            `gorm:"index;not null" json:"userId"`
	OrganizationID uint            `gorm:"index" json:"organizationId"`
	StartedAt      time.Time       `json:"startedAt"`
	SubmittedAt    *time.Time      `json:"submittedAt,omitempty"` // nil means in progress; set exactly once
	Score          float64         `json:"score"`                 // percentage, one decimal
	Passed         bool            `gorm:"default:false" json:"passed"`
	Answers        json.RawMessage `gorm:"type:jsonb" json:"answers"` // question id -> selected option ids
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

// AnswerMap is the submitted shape of TestAttempt.Answers.
type AnswerMap map[string][]string

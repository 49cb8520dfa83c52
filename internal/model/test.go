package model

const (
	QuestionTrueFalse    = "true_false"
	QuestionSingleChoice = "single_choice"
	QuestionMultiChoice  = "multi_choice"
)

// swagger:model Test
type Test struct {
	UUIDBase
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	PassScore   int    `gorm:"default:0" json:"passScore"` // inclusive percentage threshold
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	CreatorID   uint   `gorm:"index" json:"creatorId"`
}

func (Test) TableName() string {
	return "tests"
}

// swagger:model Question
type Question struct {
	UUIDBase
	TestID       string `gorm:"index;type:varchar(36);not null" json:"testId"`
	QuestionType string `gorm:"size:20;not null" json:"questionType"` // true_false, single_choice, multi_choice
	Content      string `gorm:"type:text;not null" json:"content"`
	Points       int    `gorm:"default:1" json:"points"`
	Order        int    `gorm:"column:sort_order" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	Content    string `gorm:"type:text;not null" json:"content"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"column:sort_order" json:"order"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}

package model

const (
	LessonVideo = "video"
	LessonPDF   = "pdf"
)

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	CourseID        uint    `gorm:"index;not null" json:"courseId"`
	Title           string  `gorm:"size:255;not null" json:"title"`
	ContentType     string  `gorm:"size:20;not null" json:"contentType"` // video, pdf
	StoragePath     string  `gorm:"size:512" json:"storagePath"`
	MimeType        string  `gorm:"size:100" json:"mimeType"`
	SizeBytes       int64   `json:"sizeBytes"`
	DurationSeconds float64 `json:"durationSeconds"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	ThumbnailPath   string  `gorm:"size:512" json:"thumbnailPath"`
	Order           int     `gorm:"column:sort_order" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}

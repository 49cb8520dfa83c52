package model

import "time"

const (
	CertificateIssued = "issued"

	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Certificate is issued at most once per (user, course). Storage fields stay
// empty until the first render request; once generated the artifact is immutable.
// swagger:model Certificate
type Certificate struct {
	UUIDBase
	OrganizationID  uint       `gorm:"index;not null" json:"organizationId"`
	UserID          uint       `gorm:"uniqueIndex:idx_certificates_user_course;not null" json:"userId"`
	CourseID        uint       `gorm:"uniqueIndex:idx_certificates_user_course;not null" json:"courseId"`
	IssuedAt        time.Time  `json:"issuedAt"`
	Status          string     `gorm:"size:20;default:'issued'" json:"status"`
	SourceAttemptID string     `gorm:"type:varchar(36)" json:"sourceAttemptId"`
	StoragePath     string     `gorm:"size:512" json:"storagePath"`
	MimeType        string     `gorm:"size:100" json:"mimeType"`
	SizeBytes       int64      `json:"sizeBytes"`
	GeneratedAt     *time.Time `json:"generatedAt,omitempty"`
	TemplateID      string     `gorm:"type:varchar(36)" json:"templateId"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// Generated reports whether the rendered artifact already exists in storage.
func (c *Certificate) Generated() bool {
	return c.StoragePath != ""
}

// swagger:model CertificateTemplate
type CertificateTemplate struct {
	UUIDBase
	CourseID    uint   `gorm:"uniqueIndex;not null" json:"courseId"`
	StoragePath string `gorm:"size:512;not null" json:"storagePath"`
	MimeType    string `gorm:"size:100;not null" json:"mimeType"`
	SizeBytes   int64  `json:"sizeBytes"`
	UploadedBy  uint   `json:"uploadedBy"`
}

func (CertificateTemplate) TableName() string {
	return "certificate_templates"
}

// swagger:model CertificateSettings
type CertificateSettings struct {
	BaseModel
	CourseID uint `gorm:"uniqueIndex;not null" json:"courseId"`
	Enabled  bool `gorm:"default:false" json:"enabled"`
}

func (CertificateSettings) TableName() string {
	return "certificate_settings"
}

// NamePlacement describes where the learner name is drawn on the template:
// a 1-based page plus normalized [0,1] coordinates measured from the top-left.
// swagger:model NamePlacement
type NamePlacement struct {
	BaseModel
	CourseID uint     `gorm:"uniqueIndex;not null" json:"courseId"`
	Page     int      `gorm:"default:1" json:"page"`
	XPct     float64  `json:"xPct"`
	YPct     float64  `json:"yPct"`
	FontSize float64  `json:"fontSize"`
	Color    string   `gorm:"size:10" json:"color"`
	Align    string   `gorm:"size:10;default:'center'" json:"align"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
}

func (NamePlacement) TableName() string {
	return "certificate_name_placements"
}

package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	OrganizationID uint       `gorm:"index;not null" json:"organizationId"`
	CourseID       uint       `gorm:"uniqueIndex:idx_enrollments_course_user;not null" json:"courseId"`
	UserID         uint       `gorm:"uniqueIndex:idx_enrollments_course_user;not null" json:"userId"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Active         bool       `gorm:"default:true" json:"active"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

package model

// swagger:model Course
type Course struct {
	BaseModel
	OrganizationID uint   `gorm:"index;not null" json:"organizationId"`
	Title          string `gorm:"size:255;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	IsPublished    bool   `gorm:"default:false" json:"isPublished"`
	CreatorID      uint   `gorm:"index" json:"creatorId"`
}

func (Course) TableName() string {
	return "courses"
}

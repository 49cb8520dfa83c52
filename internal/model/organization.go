package model

// swagger:model Organization
type Organization struct {
	BaseModel
	Name     string `gorm:"size:200;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Disabled bool   `gorm:"default:false" json:"disabled"`
}

func (Organization) TableName() string {
	return "organizations"
}

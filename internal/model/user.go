package model

import (
	"time"
)

type UserRole string

const (
	SuperAdmin        UserRole = "super_admin"
	SystemAdmin       UserRole = "system_admin"
	OrganizationAdmin UserRole = "organization_admin"
	Member            UserRole = "member"
)

// swagger:model User
type User struct {
	BaseModel
	OrganizationID *uint         `gorm:"index" json:"organizationId,omitempty"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Name           string        `gorm:"size:100" json:"name"`
	Email          string        `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password       string        `gorm:"size:100;not null" json:"-"`
	Role           UserRole      `gorm:"size:30;default:'member'" json:"role"`
	Avatar         string        `gorm:"size:255" json:"avatar"`
	Disabled       bool          `gorm:"default:false" json:"disabled"`
	LastLogin      time.Time     `json:"lastLogin"`
	LastSeen       time.Time     `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName is the name stamped on certificates: full name, else email, else "Member".
func (u *User) DisplayName() string {
	if u == nil {
		return "Member"
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Member"
}

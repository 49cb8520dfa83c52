package model

// swagger:model AuditLog
type AuditLog struct {
	BaseModel
	OrganizationID *uint  `gorm:"index" json:"organizationId,omitempty"`
	ActorID        uint   `gorm:"index;not null" json:"actorId"`
	Action         string `gorm:"size:100;not null" json:"action"`
	Entity         string `gorm:"size:50" json:"entity"`
	EntityID       string `gorm:"size:36" json:"entityId"`
	Detail         string `gorm:"type:text" json:"detail"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type AuditService struct {
	Repo *repository.AuditRepository
}

func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{Repo: repo}
}

// Record appends an audit entry. Audit writes never fail the calling operation.
func (s *AuditService) Record(actorID uint, orgID *uint, action, entity, entityID, detail string) {
	entry := &model.AuditLog{
		OrganizationID: orgID,
		ActorID:        actorID,
		Action:         action,
		Entity:         entity,
		EntityID:       entityID,
		Detail:         detail,
	}
	if err := s.Repo.Create(entry); err != nil {
		logger.Log.Error("audit write failed",
			zap.String("action", action),
			zap.Error(err))
	}
}

func (s *AuditService) List(orgID *uint, page, limit int) ([]model.AuditLog, int64, error) {
	return s.Repo.List(orgID, page, limit)
}

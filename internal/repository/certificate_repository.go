package repository

import (
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

// UpsertIgnoreDuplicate inserts the certificate unless one already exists for
// the (user, course) pair. Concurrent duplicate submissions neither error nor
// create a second row.
func (r *CertificateRepository) UpsertIgnoreDuplicate(cert *model.Certificate) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(cert).Error
}

func (r *CertificateRepository) FindByID(id string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.First(&cert, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) FindByUserAndCourse(userID, courseID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) ListByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("user_id = ?", userID).Order("issued_at desc").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) ListByOrganization(orgID uint, page, limit int) ([]model.Certificate, int64, error) {
	query := r.DB.Model(&model.Certificate{}).Where("organization_id = ?", orgID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var certs []model.Certificate
	offset := (page - 1) * limit
	err := query.Order("issued_at desc").Offset(offset).Limit(limit).Find(&certs).Error
	return certs, total, err
}

// MarkGenerated records the rendered artifact conditionally on the certificate
// not having one yet. Returns false when another request generated it first.
func (r *CertificateRepository) MarkGenerated(id, storagePath, mimeType string, sizeBytes int64, templateID string, at time.Time) (bool, error) {
	res := r.DB.Model(&model.Certificate{}).
		Where("id = ? AND (storage_path IS NULL OR storage_path = '')", id).
		Updates(map[string]interface{}{
			"storage_path": storagePath,
			"mime_type":    mimeType,
			"size_bytes":   sizeBytes,
			"template_id":  templateID,
			"generated_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *CertificateRepository) UpsertTemplate(tpl *model.CertificateTemplate) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}},
		UpdateAll: true,
	}).Create(tpl).Error
}

func (r *CertificateRepository) FindTemplateByCourse(courseID uint) (*model.CertificateTemplate, error) {
	var tpl model.CertificateTemplate
	err := r.DB.Where("course_id = ?", courseID).First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *CertificateRepository) UpsertSettings(settings *model.CertificateSettings) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(settings).Error
}

func (r *CertificateRepository) FindSettingsByCourse(courseID uint) (*model.CertificateSettings, error) {
	var settings model.CertificateSettings
	err := r.DB.Where("course_id = ?", courseID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *CertificateRepository) UpsertPlacement(placement *model.NamePlacement) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}},
		UpdateAll: true,
	}).Create(placement).Error
}

func (r *CertificateRepository) FindPlacementByCourse(courseID uint) (*model.NamePlacement, error) {
	var placement model.NamePlacement
	err := r.DB.Where("course_id = ?", courseID).First(&placement).Error
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

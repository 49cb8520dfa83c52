package repository

import (
	"lms_backend/internal/model"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Create inserts the enrollment, ignoring the write when the (course, user)
// pair already exists.
func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByCourseAndUser(courseID, userID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListByCourse(courseID uint, page, limit int) ([]model.Enrollment, int64, error) {
	query := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollments []model.Enrollment
	offset := (page - 1) * limit
	err := r.DB.Preload("User").Where("course_id = ?", courseID).
		Order("created_at desc").Offset(offset).Limit(limit).Find(&enrollments).Error
	return enrollments, total, err
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error
	return enrollments, err
}

// MarkCompleted stamps completed_at on the active enrollment once. Deployments
// without the column treat this as a no-op rather than an error.
func (r *EnrollmentRepository) MarkCompleted(courseID, userID uint, at time.Time) error {
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND user_id = ? AND active = ? AND completed_at IS NULL", courseID, userID, true).
		Update("completed_at", at).Error
	if err != nil && strings.Contains(err.Error(), "completed_at") {
		return nil
	}
	return err
}

func (r *EnrollmentRepository) Deactivate(courseID, userID uint) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Update("active", false).Error
}

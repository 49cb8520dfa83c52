package repository

import (
	"encoding/json"
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.DB.First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindInProgress(userID uint, testID string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.DB.Where("user_id = ? AND test_id = ? AND submitted_at IS NULL", userID, testID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// SubmitOnce writes the grading result conditionally on submitted_at still being
// NULL, so a concurrent double submit loses at the store rather than racing an
// application-level read check. Returns false when the attempt was already submitted.
func (r *AttemptRepository) SubmitOnce(id string, score float64, passed bool, answers json.RawMessage, submittedAt time.Time) (bool, error) {
	res := r.DB.Model(&model.TestAttempt{}).
		Where("id = ? AND submitted_at IS NULL", id).
		Updates(map[string]interface{}{
			"score":        score,
			"passed":       passed,
			"answers":      answers,
			"submitted_at": submittedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type AttemptListRow struct {
	model.TestAttempt
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

func (r *AttemptRepository) ListByTest(testID string, page, limit int) ([]AttemptListRow, int64, error) {
	var total int64
	query := r.DB.Table("test_attempts a").
		Select("a.*, u.name as user_name, u.email as user_email").
		Joins("JOIN users u ON a.user_id = u.id").
		Where("a.test_id = ? AND a.deleted_at IS NULL", testID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []AttemptListRow
	offset := (page - 1) * limit
	err := query.Order("a.created_at desc").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}

func (r *AttemptRepository) ListByCourse(courseID uint) ([]AttemptListRow, error) {
	var rows []AttemptListRow
	err := r.DB.Table("test_attempts a").
		Select("a.*, u.name as user_name, u.email as user_email").
		Joins("JOIN users u ON a.user_id = u.id").
		Joins("JOIN tests t ON a.test_id = t.id").
		Where("t.course_id = ? AND a.deleted_at IS NULL", courseID).
		Order("a.created_at desc").
		Scan(&rows).Error
	return rows, err
}

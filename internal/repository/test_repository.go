package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) CreateTest(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindTestByID(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.First(&test, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) UpdateTest(test *model.Test) error {
	return r.DB.Save(test).Error
}

func (r *TestRepository) DeleteTest(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&model.Question{}).Where("test_id = ?", id).Pluck("id", &questionIDs).Error; err == nil && len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuestionOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, "id = ?", id).Error
	})
}

func (r *TestRepository) ListTestsByCourse(courseID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Where("course_id = ?", courseID).Order("created_at desc").Find(&tests).Error
	return tests, err
}

func (r *TestRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *TestRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *TestRepository) DeleteQuestion(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}

func (r *TestRepository) ListQuestions(testID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("test_id = ?", testID).Order("sort_order asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *TestRepository) CreateOption(option *model.QuestionOption) error {
	return r.DB.Create(option).Error
}

func (r *TestRepository) UpdateOption(option *model.QuestionOption) error {
	return r.DB.Save(option).Error
}

func (r *TestRepository) DeleteOption(id string) error {
	return r.DB.Delete(&model.QuestionOption{}, "id = ?", id).Error
}

func (r *TestRepository) ListOptions(questionID string) ([]model.QuestionOption, error) {
	var opts []model.QuestionOption
	err := r.DB.Where("question_id = ?", questionID).Order("sort_order asc, created_at asc").Find(&opts).Error
	return opts, err
}

// ListOptionsForTest loads every option of every question of the test in one query.
func (r *TestRepository) ListOptionsForTest(testID string) ([]model.QuestionOption, error) {
	var opts []model.QuestionOption
	err := r.DB.
		Joins("JOIN questions ON questions.id = question_options.question_id").
		Where("questions.test_id = ? AND questions.deleted_at IS NULL", testID).
		Order("question_options.sort_order asc").
		Find(&opts).Error
	return opts, err
}

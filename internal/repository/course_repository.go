package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		var testIDs []string
		if err := tx.Model(&model.Test{}).Where("course_id = ?", id).Pluck("id", &testIDs).Error; err == nil && len(testIDs) > 0 {
			var questionIDs []string
			if err := tx.Model(&model.Question{}).Where("test_id IN ?", testIDs).Pluck("id", &questionIDs).Error; err == nil && len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuestionOption{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("test_id IN ?", testIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Test{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}

func (r *CourseRepository) ListByOrganization(orgID uint, publishedOnly bool, page, limit int) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("organization_id = ?", orgID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type EnrollmentService struct {
	Repo       *repository.EnrollmentRepository
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
}

func NewEnrollmentService(repo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, userRepo *repository.UserRepository) *EnrollmentService {
	return &EnrollmentService{Repo: repo, CourseRepo: courseRepo, UserRepo: userRepo}
}

func (s *EnrollmentService) Enroll(courseID, userID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.OrganizationID == nil || *user.OrganizationID != course.OrganizationID {
		return nil, util.ErrPermissionDenied
	}

	enrollment := &model.Enrollment{
		OrganizationID: course.OrganizationID,
		CourseID:       courseID,
		UserID:         userID,
		Active:         true,
	}
	if err := s.Repo.Create(enrollment); err != nil {
		return nil, err
	}

	// Duplicate enrollments are silently ignored; return the surviving row.
	return s.Repo.FindByCourseAndUser(courseID, userID)
}

func (s *EnrollmentService) IsEnrolled(courseID, userID uint) bool {
	enrollment, err := s.Repo.FindByCourseAndUser(courseID, userID)
	return err == nil && enrollment.Active
}

func (s *EnrollmentService) ListForCourse(courseID uint, page, limit int) ([]model.Enrollment, int64, error) {
	return s.Repo.ListByCourse(courseID, page, limit)
}

func (s *EnrollmentService) ListForUser(userID uint) ([]model.Enrollment, error) {
	return s.Repo.ListByUser(userID)
}

func (s *EnrollmentService) Unenroll(courseID, userID uint) error {
	return s.Repo.Deactivate(courseID, userID)
}

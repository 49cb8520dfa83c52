package service

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type CourseService struct {
	Repo     *repository.CourseRepository
	AuditSvc *AuditService
}

func NewCourseService(repo *repository.CourseRepository, auditSvc *AuditService) *CourseService {
	return &CourseService{Repo: repo, AuditSvc: auditSvc}
}

type CourseReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"isPublished"`
}

func (s *CourseService) Create(orgID, creatorID uint, req CourseReq) (*model.Course, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	course := &model.Course{
		OrganizationID: orgID,
		Title:          *req.Title,
		CreatorID:      creatorID,
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}

	s.AuditSvc.Record(creatorID, &orgID, "course.create", "course", fmt.Sprint(course.ID), course.Title)
	return course, nil
}

func (s *CourseService) Update(id uint, actorID uint, req CourseReq) (*model.Course, error) {
	course, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}

	s.AuditSvc.Record(actorID, &course.OrganizationID, "course.update", "course", fmt.Sprint(course.ID), course.Title)
	return course, nil
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

func (s *CourseService) Delete(id uint, actorID uint) error {
	course, err := s.Repo.FindByID(id)
	if err != nil {
		return util.ErrCourseNotFound
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.AuditSvc.Record(actorID, &course.OrganizationID, "course.delete", "course", fmt.Sprint(id), course.Title)
	return nil
}

func (s *CourseService) ListForOrganization(orgID uint, publishedOnly bool, page, limit int) ([]model.Course, int64, error) {
	return s.Repo.ListByOrganization(orgID, publishedOnly, page, limit)
}

package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type OrganizationService struct {
	Repo *repository.OrganizationRepository
}

func NewOrganizationService(repo *repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{Repo: repo}
}

type OrganizationReq struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	Disabled *bool   `json:"disabled"`
}

func (s *OrganizationService) Create(req OrganizationReq) (*model.Organization, error) {
	if req.Name == nil || *req.Name == "" || req.Slug == nil || *req.Slug == "" {
		return nil, util.ErrOrganizationNotFound
	}

	org := &model.Organization{
		Name: *req.Name,
		Slug: *req.Slug,
	}
	if err := s.Repo.Create(org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Update(id uint, req OrganizationReq) (*model.Organization, error) {
	org, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, util.ErrOrganizationNotFound
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Slug != nil {
		org.Slug = *req.Slug
	}
	if req.Disabled != nil {
		org.Disabled = *req.Disabled
	}

	if err := s.Repo.Update(org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Get(id uint) (*model.Organization, error) {
	return s.Repo.FindByID(id)
}

func (s *OrganizationService) Delete(id uint) error {
	return s.Repo.Delete(id)
}

func (s *OrganizationService) List(page, limit int) ([]model.Organization, int64, error) {
	return s.Repo.List(page, limit)
}

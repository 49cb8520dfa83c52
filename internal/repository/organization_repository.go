package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type OrganizationRepository struct {
	DB *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{DB: db}
}

func (r *OrganizationRepository) Create(org *model.Organization) error {
	return r.DB.Create(org).Error
}

func (r *OrganizationRepository) FindByID(id uint) (*model.Organization, error) {
	var org model.Organization
	err := r.DB.First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) FindBySlug(slug string) (*model.Organization, error) {
	var org model.Organization
	err := r.DB.Where("slug = ?", slug).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) Update(org *model.Organization) error {
	return r.DB.Save(org).Error
}

func (r *OrganizationRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Organization{}, id).Error
}

func (r *OrganizationRepository) List(page, limit int) ([]model.Organization, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Organization{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orgs []model.Organization
	offset := (page - 1) * limit
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&orgs).Error
	return orgs, total, err
}

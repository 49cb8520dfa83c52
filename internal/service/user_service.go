package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

type UpdateProfileReq struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileReq) (*model.User, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListOrganizationUsers(orgID uint, page, limit int) ([]model.User, int64, error) {
	return s.Repo.ListByOrganization(orgID, page, limit)
}

type CreateMemberReq struct {
	Name     string         `json:"name"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	Role     model.UserRole `json:"role"`
}

// CreateOrganizationUser provisions a member or org admin inside the given organization.
func (s *UserService) CreateOrganizationUser(orgID uint, req CreateMemberReq, auth *AuthService) (*model.User, error) {
	role := req.Role
	if role != model.OrganizationAdmin {
		role = model.Member
	}

	user := &model.User{
		OrganizationID: &orgID,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           role,
	}
	if err := auth.Register(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetDisabled(userID uint, orgID uint, disabled bool) error {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	if user.OrganizationID == nil || *user.OrganizationID != orgID {
		return util.ErrPermissionDenied
	}
	return s.Repo.SetDisabled(userID, disabled)
}

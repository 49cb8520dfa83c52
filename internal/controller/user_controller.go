package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	AuthService *service.AuthService
}

func NewUserController(userService *service.UserService, authService *service.AuthService) *UserController {
	return &UserController{UserService: userService, AuthService: authService}
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UpdateProfileReq true "profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ListMembers godoc
// @Summary List users of an organization
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/organizations/{orgId}/users [get]
func (c *UserController) ListMembers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	orgID := util.MustParseUint(ctx.Param("orgId"))
	if !claims.CanAdministerOrg(orgID) {
		util.Forbidden(ctx)
		return
	}

	page, limit := pagination(ctx)
	users, total, err := c.UserService.ListOrganizationUsers(orgID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// CreateMember godoc
// @Summary Provision a user inside an organization
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Param body body service.CreateMemberReq true "member payload"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response "email already registered"
// @Router /api/organizations/{orgId}/users [post]
func (c *UserController) CreateMember(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	orgID := util.MustParseUint(ctx.Param("orgId"))
	if !claims.CanAdministerOrg(orgID) {
		util.Forbidden(ctx)
		return
	}

	var req service.CreateMemberReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateOrganizationUser(orgID, req, c.AuthService)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// swagger:model SetDisabledRequest
type SetDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

// SetDisabled godoc
// @Summary Disable or re-enable an organization user
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Param userId path int true "user id"
// @Param body body SetDisabledRequest true "disabled flag"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/organizations/{orgId}/users/{userId}/disabled [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	orgID := util.MustParseUint(ctx.Param("orgId"))
	if !claims.CanAdministerOrg(orgID) {
		util.Forbidden(ctx)
		return
	}

	var req SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("userId"))
	if err := c.UserService.SetDisabled(userID, orgID, req.Disabled); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

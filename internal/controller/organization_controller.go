package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OrganizationController struct {
	OrgService *service.OrganizationService
}

func NewOrganizationController(orgService *service.OrganizationService) *OrganizationController {
	return &OrganizationController{OrgService: orgService}
}

// Create godoc
// @Summary Create an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.OrganizationReq true "organization payload"
// @Success 201 {object} util.Response{data=model.Organization}
// @Failure 403 {object} util.Response
// @Router /api/admin/organizations [post]
func (c *OrganizationController) Create(ctx *gin.Context) {
	var req service.OrganizationReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	org, err := c.OrgService.Create(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, org)
}

// Update godoc
// @Summary Update an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Param body body service.OrganizationReq true "fields to update"
// @Success 200 {object} util.Response{data=model.Organization}
// @Router /api/admin/organizations/{orgId} [put]
func (c *OrganizationController) Update(ctx *gin.Context) {
	var req service.OrganizationReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	org, err := c.OrgService.Update(util.MustParseUint(ctx.Param("orgId")), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, org)
}

// Get godoc
// @Summary Organization detail
// @Tags organizations
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Success 200 {object} util.Response{data=model.Organization}
// @Failure 404 {object} util.Response
// @Router /api/organizations/{orgId} [get]
func (c *OrganizationController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("orgId"))

	claims := util.GetUserFromContext(ctx)
	if !claims.IsPlatformAdmin() && (claims.OrganizationID == nil || *claims.OrganizationID != id) {
		util.Forbidden(ctx)
		return
	}

	org, err := c.OrgService.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, org)
}

// Delete godoc
// @Summary Delete an organization
// @Tags organizations
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Success 200 {object} util.Response
// @Router /api/admin/organizations/{orgId} [delete]
func (c *OrganizationController) Delete(ctx *gin.Context) {
	if err := c.OrgService.Delete(util.MustParseUint(ctx.Param("orgId"))); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary List organizations
// @Tags organizations
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/organizations [get]
func (c *OrganizationController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	orgs, total, err := c.OrgService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: orgs, Total: total, Page: page, Limit: limit})
}

package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	AuditService *service.AuditService
}

func NewAuditController(auditService *service.AuditService) *AuditController {
	return &AuditController{AuditService: auditService}
}

// List godoc
// @Summary List audit log entries
// @Description Platform admins see everything; org admins only their organization.
// @Tags audit
// @Produce json
// @Security ApiKeyAuth
// @Param orgId query int false "organization filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/audit-logs [get]
func (c *AuditController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var orgID *uint
	if q := ctx.Query("orgId"); q != "" {
		id := util.MustParseUint(q)
		orgID = &id
	}

	if !claims.IsPlatformAdmin() {
		if claims.OrganizationID == nil {
			util.Forbidden(ctx)
			return
		}
		orgID = claims.OrganizationID
	}

	page, limit := pagination(ctx)
	entries, total, err := c.AuditService.List(orgID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: entries, Total: total, Page: page, Limit: limit})
}

package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertService   *service.CertificateService
	CourseService *service.CourseService
}

func NewCertificateController(certService *service.CertificateService, courseService *service.CourseService) *CertificateController {
	return &CertificateController{CertService: certService, CourseService: courseService}
}

func (c *CertificateController) requireCourseAdmin(ctx *gin.Context, courseID uint) bool {
	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.Get(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return false
	}
	if !claims.CanAdministerOrg(course.OrganizationID) {
		util.Forbidden(ctx)
		return false
	}
	return true
}

// Generate godoc
// @Summary Download a certificate, rendering it on first request
// @Description The first call renders the PDF and stores it; every call redirects to a short-lived signed URL.
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "certificate id"
// @Success 302 {string} string "redirect to signed URL"
// @Failure 404 {object} util.Response "certificate or template missing"
// @Failure 409 {object} util.Response "certificates disabled or placement missing"
// @Router /api/certificates/{id}/generate [get]
func (c *CertificateController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	url, err := c.CertService.Generate(ctx.Request.Context(), ctx.Param("id"), claims)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, url)
}

// ListMine godoc
// @Summary List the caller's certificates
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *CertificateController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	certs, err := c.CertService.ListMine(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// ListForOrganization godoc
// @Summary List certificates issued inside an organization
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/organizations/{orgId}/certificates [get]
func (c *CertificateController) ListForOrganization(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	orgID := util.MustParseUint(ctx.Param("orgId"))
	if !claims.CanAdministerOrg(orgID) {
		util.Forbidden(ctx)
		return
	}

	page, limit := pagination(ctx)
	certs, total, err := c.CertService.ListForOrganization(orgID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: certs, Total: total, Page: page, Limit: limit})
}

// UploadTemplate godoc
// @Summary Upload the certificate template of a course
// @Description Accepts PDF, PNG and JPG. Other formats are rejected with instructions to re-upload.
// @Tags certificates
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param file formData file true "template file"
// @Success 201 {object} util.Response{data=model.CertificateTemplate}
// @Failure 400 {object} util.Response "unsupported file type"
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/certificate-template [post]
func (c *CertificateController) UploadTemplate(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if !c.requireCourseAdmin(ctx, courseID) {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	claims := util.GetUserFromContext(ctx)
	tpl, err := c.CertService.UploadTemplate(ctx.Request.Context(), courseID, claims.UserID, fileHeader)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, tpl)
}

// GetTemplate godoc
// @Summary Certificate template metadata, or the file itself with ?download=1
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param download query int false "redirect to a signed file URL when 1"
// @Success 200 {object} util.Response{data=model.CertificateTemplate}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/certificate-template [get]
func (c *CertificateController) GetTemplate(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if !c.requireCourseAdmin(ctx, courseID) {
		return
	}

	if ctx.Query("download") == "1" {
		url, err := c.CertService.TemplateDownloadURL(ctx.Request.Context(), courseID)
		if err != nil {
			respondServiceError(ctx, err)
			return
		}
		ctx.Redirect(http.StatusFound, url)
		return
	}

	tpl, err := c.CertService.TemplateMeta(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, tpl)
}

// swagger:model CertificateSettingsRequest
type CertificateSettingsRequest struct {
	Enabled bool `json:"enabled"`
}

// UpdateSettings godoc
// @Summary Enable or disable certificates for a course
// @Tags certificates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body CertificateSettingsRequest true "settings"
// @Success 200 {object} util.Response{data=model.CertificateSettings}
// @Router /api/courses/{courseId}/certificate-settings [put]
func (c *CertificateController) UpdateSettings(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if !c.requireCourseAdmin(ctx, courseID) {
		return
	}

	var req CertificateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	settings, err := c.CertService.UpdateSettings(courseID, req.Enabled, claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// GetSettings godoc
// @Summary Certificate settings of a course
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response{data=model.CertificateSettings}
// @Router /api/courses/{courseId}/certificate-settings [get]
func (c *CertificateController) GetSettings(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if !c.requireCourseAdmin(ctx, courseID) {
		return
	}

	// Absent settings read as disabled rather than an error.
	settings, err := c.CertService.GetSettings(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// UpdatePlacement godoc
// @Summary Configure where the learner name is drawn on the template
// @Description Coordinates are percentages of the page measured from the top-left corner.
// @Tags certificates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body service.PlacementReq true "placement"
// @Success 200 {object} util.Response{data=model.NamePlacement}
// @Failure 400 {object} util.Response
// @Router /api/courses/{courseId}/certificate-placement [put]
func (c *CertificateController) UpdatePlacement(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if !c.requireCourseAdmin(ctx, courseID) {
		return
	}

	var req service.PlacementReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	placement, err := c.CertService.UpdatePlacement(courseID, req, claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, placement)
}

// GetPlacement godoc
// @Summary Name placement of a course's certificate
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response{data=model.NamePlacement}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/certificate-placement [get]
func (c *CertificateController) GetPlacement(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if !c.requireCourseAdmin(ctx, courseID) {
		return
	}

	placement, err := c.CertService.GetPlacement(courseID)
	if err != nil {
		util.Error(ctx, 404, util.ErrPlacementNotConfigured.Error())
		return
	}
	util.Success(ctx, placement)
}

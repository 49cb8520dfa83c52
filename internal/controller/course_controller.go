package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{CourseService: courseService, EnrollmentService: enrollmentService}
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Param body body service.CourseReq true "course payload"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Router /api/organizations/{orgId}/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	orgID := util.MustParseUint(ctx.Param("orgId"))
	if !claims.CanAdministerOrg(orgID) {
		util.Forbidden(ctx)
		return
	}

	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(orgID, claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body service.CourseReq true "fields to update"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("courseId"))

	course, err := c.CourseService.Get(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !claims.CanAdministerOrg(course.OrganizationID) {
		util.Forbidden(ctx)
		return
	}

	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.CourseService.Update(id, claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// Get godoc
// @Summary Course detail
// @Description Members only see published courses of their own organization.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.Get(util.MustParseUint(ctx.Param("courseId")))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if !claims.CanAdministerOrg(course.OrganizationID) && !memberCanSeeCourse(claims, course) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course and its lessons and tests
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("courseId"))

	course, err := c.CourseService.Get(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !claims.CanAdministerOrg(course.OrganizationID) {
		util.Forbidden(ctx)
		return
	}

	if err := c.CourseService.Delete(id, claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary List courses of an organization
// @Description Admins see every course; members only published ones.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param orgId path int true "organization id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/organizations/{orgId}/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	orgID := util.MustParseUint(ctx.Param("orgId"))

	isAdmin := claims.CanAdministerOrg(orgID)
	if !isAdmin && (claims.OrganizationID == nil || *claims.OrganizationID != orgID) {
		util.Forbidden(ctx)
		return
	}

	page, limit := pagination(ctx)
	courses, total, err := c.CourseService.ListForOrganization(orgID, !isAdmin, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

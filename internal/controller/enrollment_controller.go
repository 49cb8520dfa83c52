package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	CourseService     *service.CourseService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService, courseService *service.CourseService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService, CourseService: courseService}
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	UserID uint `json:"userId"`
}

// Enroll godoc
// @Summary Enroll a user in a course
// @Description Admins may enroll any user of their organization; members enroll themselves. Enrolling twice is a no-op.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body EnrollRequest false "target user, defaults to caller"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	var req EnrollRequest
	_ = ctx.ShouldBindJSON(&req)

	targetUser := claims.UserID
	if req.UserID != 0 && req.UserID != claims.UserID {
		course, err := c.CourseService.Get(courseID)
		if err != nil {
			respondServiceError(ctx, err)
			return
		}
		if !claims.CanAdministerOrg(course.OrganizationID) {
			util.Forbidden(ctx)
			return
		}
		targetUser = req.UserID
	}

	enrollment, err := c.EnrollmentService.Enroll(courseID, targetUser)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// ListForCourse godoc
// @Summary List enrollments of a course
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/enrollments [get]
func (c *EnrollmentController) ListForCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	course, err := c.CourseService.Get(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !claims.CanAdministerOrg(course.OrganizationID) {
		util.Forbidden(ctx)
		return
	}

	page, limit := pagination(ctx)
	enrollments, total, err := c.EnrollmentService.ListForCourse(courseID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: enrollments, Total: total, Page: page, Limit: limit})
}

// ListMine godoc
// @Summary List the caller's enrollments
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollments, err := c.EnrollmentService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// Unenroll godoc
// @Summary Deactivate an enrollment
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param userId path int true "user id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/enrollments/{userId} [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))
	userID := util.MustParseUint(ctx.Param("userId"))

	if userID != claims.UserID {
		course, err := c.CourseService.Get(courseID)
		if err != nil {
			respondServiceError(ctx, err)
			return
		}
		if !claims.CanAdministerOrg(course.OrganizationID) {
			util.Forbidden(ctx)
			return
		}
	}

	if err := c.EnrollmentService.Unenroll(courseID, userID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

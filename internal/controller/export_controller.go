package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ExportService *service.ExportService
	CourseService *service.CourseService
	TestService   *service.TestService
}

func NewExportController(exportService *service.ExportService, courseService *service.CourseService, testService *service.TestService) *ExportController {
	return &ExportController{
		ExportService: exportService,
		CourseService: courseService,
		TestService:   testService,
	}
}

func (c *ExportController) streamWorkbook(ctx *gin.Context, file *service.ExportFile) {
	ctx.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	ctx.Data(200, file.MimeType, file.Content)
}

// CourseAttempts godoc
// @Summary Export every attempt of a course as xlsx
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {file} binary
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/exports/attempts [get]
func (c *ExportController) CourseAttempts(ctx *gin.Context) {
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

	file, err := c.ExportService.ExportCourseAttempts(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.streamWorkbook(ctx, file)
}

// CourseEnrollments godoc
// @Summary Export the enrollments of a course as xlsx
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {file} binary
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/exports/enrollments [get]
func (c *ExportController) CourseEnrollments(ctx *gin.Context) {
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

	file, err := c.ExportService.ExportCourseEnrollments(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.streamWorkbook(ctx, file)
}

// TestAttempts godoc
// @Summary Export the attempts of a single test as xlsx
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Success 200 {file} binary
// @Failure 403 {object} util.Response
// @Router /api/tests/{id}/exports/attempts [get]
func (c *ExportController) TestAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	test, _, _, err := c.TestService.GetTest(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	course, err := c.CourseService.Get(test.CourseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !claims.CanAdministerOrg(course.OrganizationID) {
		util.Forbidden(ctx)
		return
	}

	file, err := c.ExportService.ExportTestAttempts(test.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.streamWorkbook(ctx, file)
}

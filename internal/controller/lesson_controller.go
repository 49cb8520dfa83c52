package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService     *service.LessonService
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
}

func NewLessonController(lessonService *service.LessonService, courseService *service.CourseService, enrollmentService *service.EnrollmentService) *LessonController {
	return &LessonController{
		LessonService:     lessonService,
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
	}
}

// Upload godoc
// @Summary Upload a video or PDF lesson
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param title formData string true "lesson title"
// @Param order formData int false "sort order"
// @Param file formData file true "video or PDF file"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response "unsupported file type"
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/lessons [post]
func (c *LessonController) Upload(ctx *gin.Context) {
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

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}
	order, _ := strconv.Atoi(ctx.DefaultPostForm("order", "0"))

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	lesson, err := c.LessonService.Upload(ctx.Request.Context(), courseID, title, order, fileHeader)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// List godoc
// @Summary List lessons of a course in order
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/courses/{courseId}/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	course, err := c.CourseService.Get(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !c.canAccessCourseContent(claims, course.OrganizationID, courseID) {
		util.Forbidden(ctx)
		return
	}

	lessons, err := c.LessonService.ListForCourse(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// DownloadURL godoc
// @Summary Signed download URL of a lesson file
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/download [get]
func (c *LessonController) DownloadURL(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	lesson, err := c.LessonService.Get(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	course, err := c.CourseService.Get(lesson.CourseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !c.canAccessCourseContent(claims, course.OrganizationID, lesson.CourseID) {
		util.Forbidden(ctx)
		return
	}

	url, err := c.LessonService.DownloadURL(ctx.Request.Context(), lesson.ID, 10*time.Minute)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// Delete godoc
// @Summary Delete a lesson and its stored files
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	lesson, err := c.LessonService.Get(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	course, err := c.CourseService.Get(lesson.CourseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !claims.CanAdministerOrg(course.OrganizationID) {
		util.Forbidden(ctx)
		return
	}

	if err := c.LessonService.Delete(ctx.Request.Context(), lesson.ID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// canAccessCourseContent allows org admins and enrolled members through.
func (c *LessonController) canAccessCourseContent(claims *util.Claims, orgID, courseID uint) bool {
	if claims.CanAdministerOrg(orgID) {
		return true
	}
	return c.EnrollmentService.IsEnrolled(courseID, claims.UserID)
}

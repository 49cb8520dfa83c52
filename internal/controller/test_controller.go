package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService   *service.TestService
	CourseService *service.CourseService
}

func NewTestController(testService *service.TestService, courseService *service.CourseService) *TestController {
	return &TestController{TestService: testService, CourseService: courseService}
}

func (c *TestController) requireCourseAdmin(ctx *gin.Context, courseID uint) bool {
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

// Create godoc
// @Summary Create a test with questions and options
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body service.TestReq true "test payload"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/tests [post]
func (c *TestController) Create(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if !c.requireCourseAdmin(ctx, courseID) {
		return
	}

	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	test, err := c.TestService.CreateTest(courseID, claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// Update godoc
// @Summary Update a test, replacing questions diff-wise
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Param body body service.TestReq true "fields to update"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 404 {object} util.Response
// @Router /api/tests/{id} [put]
func (c *TestController) Update(ctx *gin.Context) {
	test, _, _, err := c.TestService.GetTest(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !c.requireCourseAdmin(ctx, test.CourseID) {
		return
	}

	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.TestService.UpdateTest(test.ID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// Delete godoc
// @Summary Delete a test with its questions and options
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [delete]
func (c *TestController) Delete(ctx *gin.Context) {
	test, _, _, err := c.TestService.GetTest(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !c.requireCourseAdmin(ctx, test.CourseID) {
		return
	}

	if err := c.TestService.DeleteTest(test.ID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Get godoc
// @Summary Test detail
// @Description Admins get the full test including answer keys; members of the course's organization get a published test without them.
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	test, questions, options, err := c.TestService.GetTest(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	course, err := c.CourseService.Get(test.CourseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if claims.CanAdministerOrg(course.OrganizationID) {
		util.Success(ctx, gin.H{
			"test":      test,
			"questions": questions,
			"options":   options,
		})
		return
	}

	if !memberCanSeeCourse(claims, course) {
		util.NotFound(ctx)
		return
	}

	detail, err := c.TestService.GetTestForMember(test.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// List godoc
// @Summary List tests of a course
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response{data=[]model.Test}
// @Router /api/courses/{courseId}/tests [get]
func (c *TestController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	course, err := c.CourseService.Get(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	isAdmin := claims.CanAdministerOrg(course.OrganizationID)
	if !isAdmin && !memberCanSeeCourse(claims, course) {
		util.NotFound(ctx)
		return
	}

	tests, err := c.TestService.ListTests(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if !isAdmin {
		published := tests[:0]
		for _, t := range tests {
			if t.IsPublished {
				published = append(published, t)
			}
		}
		tests = published
	}
	util.Success(ctx, tests)
}

// StartAttempt godoc
// @Summary Start a test attempt
// @Description Returns the existing in-progress attempt if one is already open.
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Success 201 {object} util.Response{data=model.TestAttempt}
// @Failure 403 {object} util.Response "not enrolled"
// @Failure 404 {object} util.Response "test missing or unpublished"
// @Router /api/tests/{id}/attempts [post]
func (c *TestController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempt, err := c.TestService.StartAttempt(claims.UserID, claims.OrganizationID, ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// SubmitAttempt godoc
// @Summary Submit and grade a test attempt
// @Description Grading happens exactly once; re-submitting returns 409. A passing score issues the course certificate.
// @Tags attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "attempt id"
// @Param body body service.SubmitAttemptReq true "answers keyed by question id"
// @Success 200 {object} util.Response{data=service.SubmitAttemptResult}
// @Failure 400 {object} util.Response "too many selections"
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response "attempt already submitted"
// @Router /api/test-attempts/{attemptId}/submit [post]
func (c *TestController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.SubmitAttemptReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.TestService.SubmitAttempt(claims.UserID, claims.OrganizationID, ctx.Param("attemptId"), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetAttempt godoc
// @Summary Attempt detail for its owner
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "attempt id"
// @Success 200 {object} util.Response{data=model.TestAttempt}
// @Failure 404 {object} util.Response
// @Router /api/test-attempts/{attemptId} [get]
func (c *TestController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempt, err := c.TestService.GetAttempt(claims.UserID, ctx.Param("attemptId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// ListAttempts godoc
// @Summary List attempts of a test for course admins
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/tests/{id}/attempts [get]
func (c *TestController) ListAttempts(ctx *gin.Context) {
	test, _, _, err := c.TestService.GetTest(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !c.requireCourseAdmin(ctx, test.CourseID) {
		return
	}

	page, limit := pagination(ctx)
	rows, total, err := c.TestService.ListAttempts(test.ID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

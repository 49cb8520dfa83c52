package controller

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service-layer sentinel errors into the API's
// status taxonomy. Unknown errors are logged and reported as 500.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrOrganizationNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrTestNotFound),
		errors.Is(err, util.ErrTestNotPublished),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrCertificateNotFound),
		errors.Is(err, util.ErrTemplateNotFound):
		util.Error(ctx, 404, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrAttemptAlreadySubmitted),
		errors.Is(err, util.ErrCertificatesDisabled),
		errors.Is(err, util.ErrPlacementNotConfigured),
		errors.Is(err, util.ErrCertificateNotGenerated):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrTooManySelections),
		errors.Is(err, util.ErrUnsupportedTemplateType):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// memberCanSeeCourse reports whether a non-admin caller may read content of the
// course. Members only see published courses of their own organization; other
// tenants' courses stay hidden behind a 404.
func memberCanSeeCourse(claims *util.Claims, course *model.Course) bool {
	if claims == nil || claims.OrganizationID == nil {
		return false
	}
	return *claims.OrganizationID == course.OrganizationID && course.IsPublished
}

// pagination reads ?page and ?limit with sane bounds.
func pagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	return page, limit
}

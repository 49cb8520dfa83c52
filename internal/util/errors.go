package util

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailRegistered         = errors.New("email already registered")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrCourseNotFound          = errors.New("course not found")
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrTestNotFound            = errors.New("test not found")
	ErrTestNotPublished        = errors.New("test not published or not accessible")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrTooManySelections       = errors.New("too many selected options for a question")
	ErrNotEnrolled             = errors.New("user is not enrolled in this course")
	ErrCertificateNotFound     = errors.New("certificate not found")
	ErrTemplateNotFound        = errors.New("certificate template not found")
	ErrCertificatesDisabled    = errors.New("certificates are disabled for this course")
	ErrPlacementNotConfigured  = errors.New("certificate name placement is not configured")
	ErrUnsupportedTemplateType = errors.New("unsupported template file type, re-upload as PDF, PNG or JPG")
	ErrCertificateNotGenerated = errors.New("certificate has not been generated yet")
)

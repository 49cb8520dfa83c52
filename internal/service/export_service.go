package service

import (
	"bytes"
	"fmt"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportService produces xlsx workbooks for course administrators.
type ExportService struct {
	AttemptRepo    *repository.AttemptRepository
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	TestRepo       *repository.TestRepository
}

func NewExportService(attemptRepo *repository.AttemptRepository, enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, testRepo *repository.TestRepository) *ExportService {
	return &ExportService{
		AttemptRepo:    attemptRepo,
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		TestRepo:       testRepo,
	}
}

// ExportFile is a rendered workbook ready to stream to the client.
type ExportFile struct {
	Filename string
	MimeType string
	Content  []byte
}

// ExportCourseAttempts builds a workbook with one row per graded attempt in
// the course, newest first.
func (s *ExportService) ExportCourseAttempts(courseID uint) (*ExportFile, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	rows, err := s.AttemptRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attempts"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Attempt ID", "Test ID", "Name", "Email", "Started", "Submitted", "Score", "Passed"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		submitted := ""
		if row.SubmittedAt != nil {
			submitted = row.SubmittedAt.Format(util.TimeFormat)
		}
		values := []interface{}{
			row.ID,
			row.TestID,
			row.UserName,
			row.UserEmail,
			row.StartedAt.Format(util.TimeFormat),
			submitted,
			row.Score,
			row.Passed,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return workbookFile(f, fmt.Sprintf("course-%d-attempts-%s.xlsx", course.ID, time.Now().Format(util.DateFormat)))
}

// ExportCourseEnrollments builds a workbook listing every enrollment of the
// course with its completion state.
func (s *ExportService) ExportCourseEnrollments(courseID uint) (*ExportFile, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	enrollments, _, err := s.EnrollmentRepo.ListByCourse(courseID, 1, 100000)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Enrollments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"User ID", "Name", "Email", "Enrolled", "Active", "Completed"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, e := range enrollments {
		name, email := "", ""
		if e.User != nil {
			name, email = e.User.Name, e.User.Email
		}
		completed := ""
		if e.CompletedAt != nil {
			completed = e.CompletedAt.Format(util.TimeFormat)
		}
		values := []interface{}{
			e.UserID,
			name,
			email,
			e.CreatedAt.Format(util.TimeFormat),
			e.Active,
			completed,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return workbookFile(f, fmt.Sprintf("course-%d-enrollments-%s.xlsx", course.ID, time.Now().Format(util.DateFormat)))
}

// ExportTestAttempts builds a workbook for a single test's attempts.
func (s *ExportService) ExportTestAttempts(testID string) (*ExportFile, error) {
	test, err := s.TestRepo.FindTestByID(testID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}

	rows, _, err := s.AttemptRepo.ListByTest(testID, 1, 100000)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attempts"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Attempt ID", "Name", "Email", "Started", "Submitted", "Score", "Passed"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		submitted := ""
		if row.SubmittedAt != nil {
			submitted = row.SubmittedAt.Format(util.TimeFormat)
		}
		values := []interface{}{
			row.ID,
			row.UserName,
			row.UserEmail,
			row.StartedAt.Format(util.TimeFormat),
			submitted,
			row.Score,
			row.Passed,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return workbookFile(f, fmt.Sprintf("test-%s-attempts-%s.xlsx", test.ID, time.Now().Format(util.DateFormat)))
}

func workbookFile(f *excelize.File, filename string) (*ExportFile, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename: filename,
		MimeType: util.MimeXLSX,
		Content:  buf.Bytes(),
	}, nil
}

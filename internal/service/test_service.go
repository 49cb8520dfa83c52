package service

import (
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TestService struct {
	Repo        *repository.TestRepository
	AttemptRepo *repository.AttemptRepository
	CourseRepo  *repository.CourseRepository
	Enrollment  *EnrollmentService
	CertSvc     *CertificateService
}

func NewTestService(repo *repository.TestRepository, attemptRepo *repository.AttemptRepository, courseRepo *repository.CourseRepository, enrollment *EnrollmentService, certSvc *CertificateService) *TestService {
	return &TestService{
		Repo:        repo,
		AttemptRepo: attemptRepo,
		CourseRepo:  courseRepo,
		Enrollment:  enrollment,
		CertSvc:     certSvc,
	}
}

type QuestionOptionReq struct {
	ID        string `json:"id"`
	Content   string `json:"content" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

type QuestionReq struct {
	ID           string              `json:"id"`
	QuestionType string              `json:"questionType" binding:"required"`
	Content      string              `json:"content" binding:"required"`
	Points       *int                `json:"points"`
	Order        int                 `json:"order"`
	Options      []QuestionOptionReq `json:"options"`
}

type TestReq struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	PassScore   *int           `json:"passScore"`
	IsPublished *bool          `json:"isPublished"`
	Questions   *[]QuestionReq `json:"questions"`
}

func (s *TestService) CreateTest(courseID, creatorID uint, req TestReq) (*model.Test, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.ErrTestNotFound
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	test := &model.Test{
		CourseID:  courseID,
		Title:     *req.Title,
		CreatorID: creatorID,
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.PassScore != nil {
		test.PassScore = *req.PassScore
	}
	if req.IsPublished != nil {
		test.IsPublished = *req.IsPublished
	}

	if err := s.Repo.CreateTest(test); err != nil {
		return nil, err
	}

	if req.Questions != nil {
		for _, qReq := range *req.Questions {
			if err := s.createQuestion(test.ID, qReq); err != nil {
				return nil, err
			}
		}
	}

	return test, nil
}

func (s *TestService) createQuestion(testID string, qReq QuestionReq) error {
	q := &model.Question{
		TestID:       testID,
		QuestionType: qReq.QuestionType,
		Content:      qReq.Content,
		Points:       1,
		Order:        qReq.Order,
	}
	if qReq.Points != nil && *qReq.Points >= 0 {
		q.Points = *qReq.Points
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return err
	}

	for _, oReq := range qReq.Options {
		opt := &model.QuestionOption{
			QuestionID: q.ID,
			Content:    oReq.Content,
			IsCorrect:  oReq.IsCorrect,
			Order:      oReq.Order,
		}
		if err := s.Repo.CreateOption(opt); err != nil {
			return err
		}
	}
	return nil
}

func (s *TestService) UpdateTest(testID string, req TestReq) (*model.Test, error) {
	test, err := s.Repo.FindTestByID(testID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.PassScore != nil {
		test.PassScore = *req.PassScore
	}
	if req.IsPublished != nil {
		test.IsPublished = *req.IsPublished
	}

	if err := s.Repo.UpdateTest(test); err != nil {
		return nil, err
	}

	if req.Questions != nil {
		existingQs, _ := s.Repo.ListQuestions(testID)
		existingMap := make(map[string]*model.Question)
		for i := range existingQs {
			existingMap[existingQs[i].ID] = &existingQs[i]
		}

		keptQIDs := make(map[string]bool)
		for _, qReq := range *req.Questions {
			if qReq.ID != "" {
				if q, ok := existingMap[qReq.ID]; ok {
					q.QuestionType = qReq.QuestionType
					q.Content = qReq.Content
					if qReq.Points != nil && *qReq.Points >= 0 {
						q.Points = *qReq.Points
					}
					q.Order = qReq.Order
					s.Repo.UpdateQuestion(q)
					s.replaceOptions(q.ID, qReq.Options)
					keptQIDs[q.ID] = true
				}
			} else {
				s.createQuestion(testID, qReq)
			}
		}

		for id := range existingMap {
			if !keptQIDs[id] {
				s.Repo.DeleteQuestion(id)
			}
		}
	}

	return test, nil
}

func (s *TestService) replaceOptions(questionID string, reqs []QuestionOptionReq) {
	existing, _ := s.Repo.ListOptions(questionID)
	existingMap := make(map[string]*model.QuestionOption)
	for i := range existing {
		existingMap[existing[i].ID] = &existing[i]
	}

	kept := make(map[string]bool)
	for _, oReq := range reqs {
		if oReq.ID != "" {
			if opt, ok := existingMap[oReq.ID]; ok {
				opt.Content = oReq.Content
				opt.IsCorrect = oReq.IsCorrect
				opt.Order = oReq.Order
				s.Repo.UpdateOption(opt)
				kept[opt.ID] = true
				continue
			}
		}
		s.Repo.CreateOption(&model.QuestionOption{
			QuestionID: questionID,
			Content:    oReq.Content,
			IsCorrect:  oReq.IsCorrect,
			Order:      oReq.Order,
		})
	}

	for id := range existingMap {
		if !kept[id] {
			s.Repo.DeleteOption(id)
		}
	}
}

func (s *TestService) DeleteTest(testID string) error {
	return s.Repo.DeleteTest(testID)
}

func (s *TestService) GetTest(testID string) (*model.Test, []model.Question, map[string][]model.QuestionOption, error) {
	test, err := s.Repo.FindTestByID(testID)
	if err != nil {
		return nil, nil, nil, util.ErrTestNotFound
	}
	qs, err := s.Repo.ListQuestions(testID)
	if err != nil {
		return nil, nil, nil, err
	}
	opts, err := s.Repo.ListOptionsForTest(testID)
	if err != nil {
		return nil, nil, nil, err
	}

	byQuestion := make(map[string][]model.QuestionOption)
	for _, opt := range opts {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}
	return test, qs, byQuestion, nil
}

func (s *TestService) ListTests(courseID uint) ([]model.Test, error) {
	return s.Repo.ListTestsByCourse(courseID)
}

type MemberOption struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type MemberQuestion struct {
	ID           string         `json:"id"`
	QuestionType string         `json:"questionType"`
	Content      string         `json:"content"`
	Points       int            `json:"points"`
	Order        int            `json:"order"`
	Options      []MemberOption `json:"options"`
}

type MemberTestDetail struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	PassScore   int              `json:"passScore"`
	Questions   []MemberQuestion `json:"questions"`
}

// GetTestForMember returns the test without the is_correct flags.
func (s *TestService) GetTestForMember(testID string) (*MemberTestDetail, error) {
	test, qs, byQuestion, err := s.GetTest(testID)
	if err != nil {
		return nil, err
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}

	detail := &MemberTestDetail{
		ID:          test.ID,
		Title:       test.Title,
		Description: test.Description,
		PassScore:   test.PassScore,
		Questions:   make([]MemberQuestion, len(qs)),
	}
	for i, q := range qs {
		mq := MemberQuestion{
			ID:           q.ID,
			QuestionType: q.QuestionType,
			Content:      q.Content,
			Points:       q.Points,
			Order:        q.Order,
		}
		for _, opt := range byQuestion[q.ID] {
			mq.Options = append(mq.Options, MemberOption{
				ID:      opt.ID,
				Content: opt.Content,
				Order:   opt.Order,
			})
		}
		detail.Questions[i] = mq
	}
	return detail, nil
}

// StartAttempt opens an attempt, returning the existing in-progress one if any.
func (s *TestService) StartAttempt(userID uint, orgID *uint, testID string) (*model.TestAttempt, error) {
	test, err := s.Repo.FindTestByID(testID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}
	if !s.Enrollment.IsEnrolled(test.CourseID, userID) {
		return nil, util.ErrNotEnrolled
	}

	if existing, err := s.AttemptRepo.FindInProgress(userID, testID); err == nil {
		return existing, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	attempt := &model.TestAttempt{
		TestID:    testID,
		UserID:    userID,
		StartedAt: time.Now(),
	}
	if orgID != nil {
		attempt.OrganizationID = *orgID
	}

	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

type SubmitAttemptReq struct {
	Answers model.AnswerMap `json:"answers"`
}

type SubmitAttemptResult struct {
	OK        bool    `json:"ok"`
	Score     float64 `json:"score"`
	Passed    bool    `json:"passed"`
	PassScore int     `json:"pass_score"`
}

// SubmitAttempt grades the attempt exactly once. Ownership is verified before
// any grading data is read, and the grading write is conditional on the attempt
// still being open. The certificate phase afterwards is best-effort: its
// failure never unwinds or hides a grade that has already been persisted.
func (s *TestService) SubmitAttempt(userID uint, callerOrgID *uint, attemptID string, req SubmitAttemptReq) (*SubmitAttemptResult, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.SubmittedAt != nil {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	for _, selected := range req.Answers {
		if len(selected) > util.MaxSelectionsPerQuestion {
			return nil, util.ErrTooManySelections
		}
	}

	test, err := s.Repo.FindTestByID(attempt.TestID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}
	questions, err := s.Repo.ListQuestions(test.ID)
	if err != nil {
		return nil, err
	}
	options, err := s.Repo.ListOptionsForTest(test.ID)
	if err != nil {
		return nil, err
	}

	earned, total := gradeAnswers(questions, correctOptionSets(options), req.Answers)
	score := percentScore(earned, total)
	passed := score >= float64(test.PassScore)

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	submitted, err := s.AttemptRepo.SubmitOnce(attempt.ID, score, passed, answersJSON, time.Now())
	if err != nil {
		return nil, err
	}
	if !submitted {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	monitoring.AttemptsGraded.WithLabelValues(strconv.FormatBool(passed)).Inc()

	if passed {
		if err := s.CertSvc.IssueForPassedAttempt(attempt, test.CourseID, callerOrgID); err != nil {
			logger.Log.Error("certificate issuance failed after passing attempt",
				zap.String("attempt", attempt.ID),
				zap.Uint("user", userID),
				zap.Error(err))
		}
	}

	return &SubmitAttemptResult{
		OK:        true,
		Score:     score,
		Passed:    passed,
		PassScore: test.PassScore,
	}, nil
}

func (s *TestService) GetAttempt(userID uint, attemptID string) (*model.TestAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

func (s *TestService) ListAttempts(testID string, page, limit int) ([]repository.AttemptListRow, int64, error) {
	return s.AttemptRepo.ListByTest(testID, page, limit)
}

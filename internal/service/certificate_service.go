package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CertificateService struct {
	Repo           *repository.CertificateRepository
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
	Storage        *StorageService
	Redis          *redis.Client
	AuditSvc       *AuditService
	Cfg            *config.Config
}

func NewCertificateService(repo *repository.CertificateRepository, enrollmentRepo *repository.EnrollmentRepository, userRepo *repository.UserRepository, storage *StorageService, rdb *redis.Client, auditSvc *AuditService, cfg *config.Config) *CertificateService {
	return &CertificateService{
		Repo:           repo,
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
		Storage:        storage,
		Redis:          rdb,
		AuditSvc:       auditSvc,
		Cfg:            cfg,
	}
}

// IssueForPassedAttempt creates the certificate for a passing attempt and
// stamps the enrollment completion. The upsert ignores duplicates, so
// concurrent retries of the same submission settle on a single certificate row.
func (s *CertificateService) IssueForPassedAttempt(attempt *model.TestAttempt, courseID uint, callerOrgID *uint) error {
	orgID := attempt.OrganizationID
	if orgID == 0 && callerOrgID != nil {
		orgID = *callerOrgID
	}

	cert := &model.Certificate{
		OrganizationID:  orgID,
		UserID:          attempt.UserID,
		CourseID:        courseID,
		IssuedAt:        time.Now(),
		Status:          model.CertificateIssued,
		SourceAttemptID: attempt.ID,
	}
	if err := s.Repo.UpsertIgnoreDuplicate(cert); err != nil {
		return err
	}

	monitoring.CertificatesIssued.Inc()
	s.AuditSvc.Record(attempt.UserID, &orgID, "certificate.issue", "certificate", cert.ID, fmt.Sprintf("course %d, attempt %s", courseID, attempt.ID))

	if err := s.EnrollmentRepo.MarkCompleted(courseID, attempt.UserID, time.Now()); err != nil {
		logger.Log.Warn("enrollment completion stamp failed",
			zap.Uint("course", courseID),
			zap.Uint("user", attempt.UserID),
			zap.Error(err))
	}

	return nil
}

// Generate renders the certificate on first request and redirects to a signed
// URL of the stored artifact afterwards. A certificate never renders twice.
func (s *CertificateService) Generate(ctx context.Context, certID string, claims *util.Claims) (string, error) {
	cert, err := s.Repo.FindByID(certID)
	if err != nil {
		return "", util.ErrCertificateNotFound
	}

	if cert.UserID != claims.UserID && !claims.CanAdministerOrg(cert.OrganizationID) {
		return "", util.ErrPermissionDenied
	}

	if cert.Generated() {
		return s.signedCertificateURL(ctx, cert)
	}

	tpl, err := s.Repo.FindTemplateByCourse(cert.CourseID)
	if err != nil {
		return "", util.ErrTemplateNotFound
	}
	settings, err := loadSettings(s.Repo, cert.CourseID)
	if err != nil {
		return "", err
	}
	if !settings.Enabled {
		return "", util.ErrCertificatesDisabled
	}
	placement, err := s.Repo.FindPlacementByCourse(cert.CourseID)
	if err != nil {
		return "", util.ErrPlacementNotConfigured
	}

	owner, err := s.UserRepo.FindByID(cert.UserID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", err
	}

	reader, err := s.Storage.Download(ctx, tpl.StoragePath)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	tplBytes, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	rendered, err := renderCertificatePDF(tplBytes, tpl.MimeType, renderSpec{
		Name:      owner.DisplayName(),
		Placement: *placement,
		Defaults:  s.Cfg.Certificate,
	})
	if err != nil {
		return "", err
	}

	objectName := certificateObjectName(cert)
	if _, err := s.Storage.Upload(ctx, objectName, strings.NewReader(string(rendered)), int64(len(rendered)), util.MimePDF); err != nil {
		return "", err
	}

	won, err := s.Repo.MarkGenerated(cert.ID, objectName, util.MimePDF, int64(len(rendered)), tpl.ID, time.Now())
	if err != nil {
		return "", err
	}
	if !won {
		// A concurrent request generated first; serve its artifact instead.
		if fresh, err := s.Repo.FindByID(cert.ID); err == nil {
			return s.signedCertificateURL(ctx, fresh)
		}
		return "", util.ErrCertificateNotGenerated
	}

	cert.StoragePath = objectName
	return s.signedCertificateURL(ctx, cert)
}

// certificateObjectName is the deterministic storage key of a rendered certificate.
func certificateObjectName(cert *model.Certificate) string {
	return fmt.Sprintf("certificates/org/%d/course/%d/user/%d/%s.pdf",
		cert.OrganizationID, cert.CourseID, cert.UserID, cert.ID)
}

func (s *CertificateService) signedCertificateURL(ctx context.Context, cert *model.Certificate) (string, error) {
	expiry := time.Duration(s.Cfg.Certificate.SignedURLExpireMinutes) * time.Minute

	cacheKey := "cert:url:" + cert.ID
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	url, err := s.Storage.SignedURL(ctx, cert.StoragePath, expiry)
	if err != nil {
		return "", err
	}

	if s.Redis != nil && expiry > time.Minute {
		// Cache for less than the signature lifetime so cached links stay valid.
		if err := s.Redis.Set(ctx, cacheKey, url, expiry-time.Minute).Err(); err != nil {
			logger.Log.Debug("signed url cache write failed", zap.Error(err))
		}
	}
	return url, nil
}

// UploadTemplate stores the course's certificate template. Only PDF, PNG and
// JPEG survive validation; anything else (WebP included) is rejected with an
// instruction to re-upload in a supported format.
func (s *CertificateService) UploadTemplate(ctx context.Context, courseID, uploadedBy uint, fileHeader *multipart.FileHeader) (*model.CertificateTemplate, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return nil, err
	}
	mimeType := util.SniffMimeType(head[:n])
	if !supportedTemplateMime(mimeType) {
		return nil, util.ErrUnsupportedTemplateType
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}

	tpl := &model.CertificateTemplate{
		CourseID:   courseID,
		MimeType:   mimeType,
		SizeBytes:  fileHeader.Size,
		UploadedBy: uploadedBy,
	}
	tpl.ID = model.GenerateUUID()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectName := fmt.Sprintf("certificate-templates/course/%d/%s%s", courseID, tpl.ID, ext)
	if _, err := s.Storage.Upload(ctx, objectName, file, fileHeader.Size, mimeType); err != nil {
		return nil, err
	}
	tpl.StoragePath = objectName

	if err := s.Repo.UpsertTemplate(tpl); err != nil {
		return nil, err
	}

	s.AuditSvc.Record(uploadedBy, nil, "certificate.template.upload", "certificate_template", tpl.ID, fmt.Sprintf("course %d", courseID))
	return tpl, nil
}

func supportedTemplateMime(mimeType string) bool {
	switch mimeType {
	case util.MimePDF, util.MimePNG, util.MimeJPEG:
		return true
	}
	return false
}

func (s *CertificateService) TemplateMeta(courseID uint) (*model.CertificateTemplate, error) {
	tpl, err := s.Repo.FindTemplateByCourse(courseID)
	if err != nil {
		return nil, util.ErrTemplateNotFound
	}
	return tpl, nil
}

func (s *CertificateService) TemplateDownloadURL(ctx context.Context, courseID uint) (string, error) {
	tpl, err := s.Repo.FindTemplateByCourse(courseID)
	if err != nil {
		return "", util.ErrTemplateNotFound
	}
	expiry := time.Duration(s.Cfg.Certificate.SignedURLExpireMinutes) * time.Minute
	return s.Storage.SignedURL(ctx, tpl.StoragePath, expiry)
}

func (s *CertificateService) UpdateSettings(courseID uint, enabled bool, actorID uint) (*model.CertificateSettings, error) {
	settings := &model.CertificateSettings{
		CourseID: courseID,
		Enabled:  enabled,
	}
	if err := s.Repo.UpsertSettings(settings); err != nil {
		return nil, err
	}
	s.AuditSvc.Record(actorID, nil, "certificate.settings.update", "certificate_settings", fmt.Sprint(courseID), fmt.Sprintf("enabled=%t", enabled))
	return s.Repo.FindSettingsByCourse(courseID)
}

type settingsStore interface {
	FindSettingsByCourse(courseID uint) (*model.CertificateSettings, error)
}

// loadSettings treats absent settings as disabled. Any other store failure
// surfaces to the caller.
func loadSettings(store settingsStore, courseID uint) (*model.CertificateSettings, error) {
	settings, err := store.FindSettingsByCourse(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.CertificateSettings{CourseID: courseID, Enabled: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *CertificateService) GetSettings(courseID uint) (*model.CertificateSettings, error) {
	return loadSettings(s.Repo, courseID)
}

type PlacementReq struct {
	Page     int      `json:"page" binding:"required,min=1"`
	XPct     float64  `json:"xPct" binding:"min=0,max=1"`
	YPct     float64  `json:"yPct" binding:"min=0,max=1"`
	FontSize float64  `json:"fontSize"`
	Color    string   `json:"color"`
	Align    string   `json:"align"`
	Width    *float64 `json:"width"`
	Height   *float64 `json:"height"`
}

func (s *CertificateService) UpdatePlacement(courseID uint, req PlacementReq, actorID uint) (*model.NamePlacement, error) {
	align := req.Align
	switch align {
	case model.AlignLeft, model.AlignCenter, model.AlignRight:
	default:
		align = model.AlignCenter
	}

	placement := &model.NamePlacement{
		CourseID: courseID,
		Page:     req.Page,
		XPct:     req.XPct,
		YPct:     req.YPct,
		FontSize: req.FontSize,
		Color:    req.Color,
		Align:    align,
		Width:    req.Width,
		Height:   req.Height,
	}
	if err := s.Repo.UpsertPlacement(placement); err != nil {
		return nil, err
	}
	s.AuditSvc.Record(actorID, nil, "certificate.placement.update", "certificate_placement", fmt.Sprint(courseID), "")
	return s.Repo.FindPlacementByCourse(courseID)
}

func (s *CertificateService) GetPlacement(courseID uint) (*model.NamePlacement, error) {
	return s.Repo.FindPlacementByCourse(courseID)
}

func (s *CertificateService) ListMine(userID uint) ([]model.Certificate, error) {
	return s.Repo.ListByUser(userID)
}

func (s *CertificateService) ListForOrganization(orgID uint, page, limit int) ([]model.Certificate, int64, error) {
	return s.Repo.ListByOrganization(orgID, page, limit)
}

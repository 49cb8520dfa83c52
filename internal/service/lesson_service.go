package service

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type LessonService struct {
	Repo       *repository.LessonRepository
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
	Redis      *redis.Client
}

func NewLessonService(repo *repository.LessonRepository, courseRepo *repository.CourseRepository, storage *StorageService, rdb *redis.Client) *LessonService {
	return &LessonService{Repo: repo, CourseRepo: courseRepo, Storage: storage, Redis: rdb}
}

// Upload validates the file, probes video metadata, pushes the bytes to object
// storage and records the lesson. Video lessons also get a thumbnail frame.
func (s *LessonService) Upload(ctx context.Context, courseID uint, title string, order int, fileHeader *multipart.FileHeader) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, util.AllowedLessonMimeTypes)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}

	contentType := model.LessonPDF
	if util.IsVideo(mimeType) {
		contentType = model.LessonVideo
	}

	lesson := &model.Lesson{
		CourseID:    courseID,
		Title:       title,
		ContentType: contentType,
		MimeType:    mimeType,
		SizeBytes:   fileHeader.Size,
		Order:       order,
	}
	lesson.ID = model.GenerateUUID()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectName := fmt.Sprintf("lessons/course/%d/%s%s", courseID, lesson.ID, ext)

	if contentType == model.LessonVideo {
		// ffprobe needs a real file, so stage the upload on disk first.
		tmp, err := os.CreateTemp("", "lesson-*"+ext)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.ReadFrom(file); err != nil {
			tmp.Close()
			return nil, err
		}
		tmp.Close()

		if info, err := util.GetVideoInfo(tmp.Name()); err != nil {
			logger.Log.Warn("video probe failed", zap.String("lesson", lesson.ID), zap.Error(err))
		} else {
			lesson.DurationSeconds = info.Duration
			lesson.Width = info.Width
			lesson.Height = info.Height
		}

		if _, err := s.Storage.UploadFile(ctx, objectName, tmp.Name(), mimeType); err != nil {
			return nil, err
		}

		thumbName := fmt.Sprintf("lessons/course/%d/%s_thumb.jpg", courseID, lesson.ID)
		thumbPath := filepath.Join(os.TempDir(), lesson.ID+"_thumb.jpg")
		if err := util.GenerateThumbnail(tmp.Name(), thumbPath, "00:00:01"); err != nil {
			logger.Log.Warn("thumbnail generation failed", zap.String("lesson", lesson.ID), zap.Error(err))
		} else {
			defer os.Remove(thumbPath)
			if _, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err == nil {
				lesson.ThumbnailPath = thumbName
			}
		}
	} else {
		if _, err := s.Storage.Upload(ctx, objectName, file, fileHeader.Size, mimeType); err != nil {
			return nil, err
		}
	}

	lesson.StoragePath = objectName

	if err := s.Repo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) ListForCourse(courseID uint) ([]model.Lesson, error) {
	return s.Repo.ListByCourse(courseID)
}

func (s *LessonService) Get(id string) (*model.Lesson, error) {
	lesson, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	return lesson, nil
}

// DownloadURL returns a short-lived signed URL and bumps the view counter.
func (s *LessonService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	lesson, err := s.Repo.FindByID(id)
	if err != nil {
		return "", util.ErrLessonNotFound
	}

	if s.Redis != nil {
		key := fmt.Sprintf("lesson:views:%s", id)
		if err := s.Redis.Incr(ctx, key).Err(); err != nil {
			logger.Log.Debug("lesson view counter failed", zap.Error(err))
		}
	}

	return s.Storage.SignedURL(ctx, lesson.StoragePath, expiry)
}

func (s *LessonService) Delete(ctx context.Context, id string) error {
	lesson, err := s.Repo.FindByID(id)
	if err != nil {
		return util.ErrLessonNotFound
	}

	if lesson.StoragePath != "" {
		if err := s.Storage.Delete(ctx, lesson.StoragePath); err != nil {
			logger.Log.Warn("lesson object delete failed", zap.String("path", lesson.StoragePath), zap.Error(err))
		}
	}
	if lesson.ThumbnailPath != "" {
		_ = s.Storage.Delete(ctx, lesson.ThumbnailPath)
	}

	return s.Repo.Delete(id)
}

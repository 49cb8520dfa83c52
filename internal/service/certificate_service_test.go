package service

import (
	"errors"
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type settingsStoreFunc func(courseID uint) (*model.CertificateSettings, error)

func (f settingsStoreFunc) FindSettingsByCourse(courseID uint) (*model.CertificateSettings, error) {
	return f(courseID)
}

func TestLoadSettingsAbsentReadsAsDisabled(t *testing.T) {
	store := settingsStoreFunc(func(uint) (*model.CertificateSettings, error) {
		return nil, gorm.ErrRecordNotFound
	})

	settings, err := loadSettings(store, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), settings.CourseID)
	assert.False(t, settings.Enabled)
}

func TestLoadSettingsStoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := settingsStoreFunc(func(uint) (*model.CertificateSettings, error) {
		return nil, storeErr
	})

	settings, err := loadSettings(store, 7)
	assert.Nil(t, settings)
	assert.ErrorIs(t, err, storeErr)
}

func TestLoadSettingsConfigured(t *testing.T) {
	store := settingsStoreFunc(func(courseID uint) (*model.CertificateSettings, error) {
		return &model.CertificateSettings{CourseID: courseID, Enabled: true}, nil
	})

	settings, err := loadSettings(store, 7)
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
}

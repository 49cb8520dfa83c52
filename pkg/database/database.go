package database

import (
	"fmt"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		cfg.SSLMode,
		cfg.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Organization{},
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Test{},
		&model.Question{},
		&model.QuestionOption{},
		&model.TestAttempt{},
		&model.Certificate{},
		&model.CertificateTemplate{},
		&model.CertificateSettings{},
		&model.NamePlacement{},
		&model.AuditLog{},
	)
	if err != nil {
		return err
	}

	seedDefaults(db)
	return nil
}

// bootstrapAdminPassword is the initial password of the seeded platform admin.
// Rotate it on first login.
const bootstrapAdminPassword = "change-me"

func bootstrapAdminUser() (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &model.User{
		Name:     "Platform Admin",
		Email:    "admin@localhost",
		Password: string(hash),
		Role:     model.SuperAdmin,
	}, nil
}

// seedDefaults inserts a bootstrap organization and platform admin on a fresh database.
func seedDefaults(db *gorm.DB) {
	var orgCount int64
	db.Model(&model.Organization{}).Count(&orgCount)
	if orgCount == 0 {
		db.Create(&model.Organization{
			Name: "Default Organization",
			Slug: "default",
		})
	}

	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.SuperAdmin).Count(&adminCount)
	if adminCount == 0 {
		admin, err := bootstrapAdminUser()
		if err != nil {
			log.Println("Bootstrap admin seed skipped:", err)
			return
		}
		db.Create(admin)
	}
}

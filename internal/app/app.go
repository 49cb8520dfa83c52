package app

import (
	"context"
	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/configwatcher"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	organization *repository.OrganizationRepository
	course       *repository.CourseRepository
	lesson       *repository.LessonRepository
	enrollment   *repository.EnrollmentRepository
	test         *repository.TestRepository
	attempt      *repository.AttemptRepository
	certificate  *repository.CertificateRepository
	audit        *repository.AuditRepository
}

type services struct {
	storage      *service.StorageService
	auth         *service.AuthService
	user         *service.UserService
	organization *service.OrganizationService
	audit        *service.AuditService
	course       *service.CourseService
	lesson       *service.LessonService
	enrollment   *service.EnrollmentService
	certificate  *service.CertificateService
	test         *service.TestService
	export       *service.ExportService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	organization *controller.OrganizationController
	course       *controller.CourseController
	lesson       *controller.LessonController
	enrollment   *controller.EnrollmentController
	test         *controller.TestController
	certificate  *controller.CertificateController
	export       *controller.ExportController
	audit        *controller.AuditController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		organization: repository.NewOrganizationRepository(db),
		course:       repository.NewCourseRepository(db),
		lesson:       repository.NewLessonRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		test:         repository.NewTestRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		certificate:  repository.NewCertificateRepository(db),
		audit:        repository.NewAuditRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.organization = service.NewOrganizationService(repos.organization)
	s.audit = service.NewAuditService(repos.audit)
	s.course = service.NewCourseService(repos.course, s.audit)
	s.lesson = service.NewLessonService(repos.lesson, repos.course, s.storage, rdb)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.user)
	s.certificate = service.NewCertificateService(repos.certificate, repos.enrollment, repos.user, s.storage, rdb, s.audit, cfg)
	s.test = service.NewTestService(repos.test, repos.attempt, repos.course, s.enrollment, s.certificate)
	s.export = service.NewExportService(repos.attempt, repos.enrollment, repos.course, repos.test)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user, s.auth),
		organization: controller.NewOrganizationController(s.organization),
		course:       controller.NewCourseController(s.course, s.enrollment),
		lesson:       controller.NewLessonController(s.lesson, s.course, s.enrollment),
		enrollment:   controller.NewEnrollmentController(s.enrollment, s.course),
		test:         controller.NewTestController(s.test, s.course),
		certificate:  controller.NewCertificateController(s.certificate, s.course),
		export:       controller.NewExportController(s.export, s.course, s.test),
		audit:        controller.NewAuditController(s.audit),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("logger initialized")

	migrate := cfg.ForceMigrate || cfg.Server.Mode != "release"
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("database init failed", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("redis init failed", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("tracing init failed", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs", func(updated *config.Config) {
		logger.Log.Info("configuration reloaded")
		for _, callback := range app.configCallbacks {
			callback(updated)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	log.Println("server exiting")
}

package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)

		// Courses and lessons
		authGroup.GET("/courses/:courseId", c.course.Get)
		authGroup.PUT("/courses/:courseId", c.course.Update)
		authGroup.DELETE("/courses/:courseId", c.course.Delete)
		authGroup.GET("/courses/:courseId/lessons", c.lesson.List)
		authGroup.POST("/courses/:courseId/lessons", c.lesson.Upload)
		authGroup.GET("/lessons/:id/download", c.lesson.DownloadURL)
		authGroup.DELETE("/lessons/:id", c.lesson.Delete)

		// Enrollments
		authGroup.GET("/enrollments", c.enrollment.ListMine)
		authGroup.POST("/courses/:courseId/enrollments", c.enrollment.Enroll)
		authGroup.GET("/courses/:courseId/enrollments", c.enrollment.ListForCourse)
		authGroup.DELETE("/courses/:courseId/enrollments/:userId", c.enrollment.Unenroll)

		// Tests and attempts
		authGroup.POST("/courses/:courseId/tests", c.test.Create)
		authGroup.GET("/courses/:courseId/tests", c.test.List)
		authGroup.GET("/tests/:id", c.test.Get)
		authGroup.PUT("/tests/:id", c.test.Update)
		authGroup.DELETE("/tests/:id", c.test.Delete)
		authGroup.POST("/tests/:id/attempts", c.test.StartAttempt)
		authGroup.GET("/tests/:id/attempts", c.test.ListAttempts)
		authGroup.GET("/test-attempts/:attemptId", c.test.GetAttempt)
		authGroup.POST("/test-attempts/:attemptId/submit", c.test.SubmitAttempt)

		// Certificates
		authGroup.GET("/certificates", c.certificate.ListMine)
		authGroup.GET("/certificates/:id/generate", c.certificate.Generate)
		authGroup.POST("/courses/:courseId/certificate-template", c.certificate.UploadTemplate)
		authGroup.GET("/courses/:courseId/certificate-template", c.certificate.GetTemplate)
		authGroup.PUT("/courses/:courseId/certificate-settings", c.certificate.UpdateSettings)
		authGroup.GET("/courses/:courseId/certificate-settings", c.certificate.GetSettings)
		authGroup.PUT("/courses/:courseId/certificate-placement", c.certificate.UpdatePlacement)
		authGroup.GET("/courses/:courseId/certificate-placement", c.certificate.GetPlacement)

		// Exports
		authGroup.GET("/courses/:courseId/exports/attempts", c.export.CourseAttempts)
		authGroup.GET("/courses/:courseId/exports/enrollments", c.export.CourseEnrollments)
		authGroup.GET("/tests/:id/exports/attempts", c.export.TestAttempts)

		// Organization-scoped administration
		orgGroup := authGroup.Group("/organizations")
		{
			orgGroup.GET("/:orgId", c.organization.Get)
			orgGroup.GET("/:orgId/users", c.user.ListMembers)
			orgGroup.POST("/:orgId/users", c.user.CreateMember)
			orgGroup.PUT("/:orgId/users/:userId/disabled", c.user.SetDisabled)
			orgGroup.GET("/:orgId/courses", c.course.List)
			orgGroup.POST("/:orgId/courses", c.course.Create)
			orgGroup.GET("/:orgId/certificates", c.certificate.ListForOrganization)
		}

		authGroup.GET("/audit-logs", middleware.RoleMiddleware(model.OrganizationAdmin), c.audit.List)
	}

	// Platform administration
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.SuperAdmin, model.SystemAdmin))
	{
		adminGroup.GET("/organizations", c.organization.List)
		adminGroup.POST("/organizations", c.organization.Create)
		adminGroup.PUT("/organizations/:orgId", c.organization.Update)
		adminGroup.DELETE("/organizations/:orgId", c.organization.Delete)
	}
}

package app

import (
	"campus_wellness_backend/docs"
	"campus_wellness_backend/internal/middleware"
	"campus_wellness_backend/internal/model"

	"campus_wellness_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerCounselorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.auth.UpdateProfile)
	rg.PUT("/profile/password", c.auth.ChangePassword)

	// 量表与测评
	rg.GET("/instruments", c.instrument.ListPublished)
	rg.GET("/instruments/:id", c.instrument.Get)
	rg.POST("/assessments", c.assessment.Submit)
	rg.GET("/assessments", c.assessment.History)
	rg.GET("/assessments/:id", c.assessment.GetSubmission)
	rg.POST("/assessments/screen", c.assessment.Screen)
	rg.GET("/assessments/trajectory/:instrumentId", c.assessment.Trajectory)

	// 日记与打卡
	rg.POST("/journals/checkin", c.journal.CheckIn)
	rg.POST("/journals", c.journal.Create)
	rg.GET("/journals", c.journal.List)
	rg.GET("/journals/:id", c.journal.Get)
	rg.DELETE("/journals/:id", c.journal.Delete)

	// 仪表盘
	rg.GET("/dashboard", c.dashboard.StudentOverview)
	rg.GET("/dashboard/trend", c.dashboard.Trend)

	// 咨询预约
	rg.GET("/counselors", c.session.ListCounselors)
	rg.POST("/sessions", c.session.Book)
	rg.GET("/sessions", c.session.ListMine)
	rg.PUT("/sessions/:id/cancel", c.session.Cancel)

	// 自助资源
	rg.GET("/resources", c.resource.List)
	rg.GET("/resources/:id", c.resource.Get)

	// 健康计划
	rg.GET("/wellness/plan", c.wellness.TodayPlan)
	rg.POST("/wellness/plan/regenerate", c.wellness.Regenerate)
	rg.POST("/wellness/tasks", c.wellness.AddTask)
	rg.PUT("/wellness/tasks/:id/complete", c.wellness.SetCompleted)

	// AI 助手
	rg.POST("/activities/log", c.user.LogActivity)

	rg.POST("/chat", c.chat.Send)
	rg.GET("/chat/history", c.chat.History)
	rg.DELETE("/chat", c.chat.Clear)
}

func (a *App) registerCounselorRoutes(rg *gin.RouterGroup, c *controllers) {
	counselor := rg.Group("/counselor")
	counselor.Use(middleware.RoleMiddleware(model.Counselor))
	{
		counselor.GET("/dashboard", c.dashboard.CounselorOverview)
		counselor.GET("/students", c.user.ListStudents)
		counselor.GET("/students/:id/activity", c.user.StudentActivity)
		counselor.GET("/assessments", c.assessment.ListAll)

		counselor.GET("/alerts", c.alert.List)
		counselor.PUT("/alerts/:id/acknowledge", c.alert.Acknowledge)

		counselor.GET("/sessions", c.session.CounselorSchedule)
		counselor.PUT("/sessions/:id/status", c.session.UpdateStatus)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		// 量表模板管理
		admin.GET("/instruments", c.instrument.AdminList)
		admin.POST("/instruments", c.instrument.Create)
		admin.GET("/instruments/:id", c.instrument.AdminGet)
		admin.PUT("/instruments/:id", c.instrument.Update)
		admin.DELETE("/instruments/:id", c.instrument.Delete)
		admin.PUT("/instruments/:id/publish", c.instrument.SetPublished)
		admin.POST("/instruments/:id/questions", c.instrument.AddQuestion)
		admin.PUT("/instruments/:id/thresholds", c.instrument.ReplaceThresholds)
		admin.PUT("/questions/:questionId", c.instrument.UpdateQuestion)
		admin.DELETE("/questions/:questionId", c.instrument.DeleteQuestion)

		// 资源管理
		admin.GET("/resources", c.resource.AdminList)
		admin.POST("/resources", c.resource.Create)
		admin.PUT("/resources/:id", c.resource.Update)
		admin.DELETE("/resources/:id", c.resource.Delete)
		admin.POST("/resources/:id/media", c.resource.UploadMedia)

		// 账号管理
		admin.POST("/users", c.user.CreateStaff)
		admin.PUT("/users/:id/disable", c.user.DisableUser)
		admin.PUT("/users/:id/reset-password", c.user.ResetPassword)
		admin.GET("/usage", c.user.UsageStats)
	}
}

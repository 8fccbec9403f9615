package app

import (
	"campus_wellness_backend/internal/config"
	"campus_wellness_backend/internal/controller"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/pkg/database"
	"campus_wellness_backend/pkg/logger"
	"campus_wellness_backend/pkg/monitoring"
	"campus_wellness_backend/pkg/security"
	"campus_wellness_backend/pkg/tracing"
	"context"
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
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	instrument *repository.InstrumentRepository
	assessment *repository.AssessmentRepository
	journal    *repository.JournalRepository
	alert      *repository.AlertRepository
	session    *repository.SessionRepository
	resource   *repository.ResourceRepository
	task       *repository.WellnessTaskRepository
	chat       *repository.ChatRepository
	activity   *repository.ActivityRepository
}

type services struct {
	storage    *service.StorageService
	ai         *service.AIService
	auth       *service.AuthService
	user       *service.UserService
	instrument *service.InstrumentService
	alert      *service.AlertService
	assessment *service.AssessmentService
	journal    *service.JournalService
	dashboard  *service.DashboardService
	session    *service.SessionService
	resource   *service.ResourceService
	wellness   *service.WellnessService
	chat       *service.ChatService
	activity   *service.ActivityService
}

type controllers struct {
	auth       *controller.AuthController
	instrument *controller.InstrumentController
	assessment *controller.AssessmentController
	journal    *controller.JournalController
	dashboard  *controller.DashboardController
	alert      *controller.AlertController
	session    *controller.SessionController
	resource   *controller.ResourceController
	wellness   *controller.WellnessController
	chat       *controller.ChatController
	user       *controller.UserController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 应用热更新后的配置，通知所有已注册的回调。
// 路由和中间件初始化时拿到的是旧指针，只有依赖回调的组件会感知变化。
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		instrument: repository.NewInstrumentRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		journal:    repository.NewJournalRepository(db),
		alert:      repository.NewAlertRepository(db),
		session:    repository.NewSessionRepository(db),
		resource:   repository.NewResourceRepository(db),
		task:       repository.NewWellnessTaskRepository(db),
		chat:       repository.NewChatRepository(db, rdb),
		activity:   repository.NewActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.instrument = service.NewInstrumentService(repos.instrument)
	s.alert = service.NewAlertService(repos.alert, logger.Log)
	s.assessment = service.NewAssessmentService(repos.assessment, s.instrument, s.alert)
	s.journal = service.NewJournalService(repos.journal, s.alert, s.ai, logger.Log)
	s.dashboard = service.NewDashboardService(repos.journal, repos.assessment, repos.alert, repos.session, repos.user, rdb)
	s.session = service.NewSessionService(repos.session, repos.user)
	s.resource = service.NewResourceService(repos.resource, s.storage, logger.Log)
	s.wellness = service.NewWellnessService(repos.task, repos.journal, s.ai, logger.Log)
	s.chat = service.NewChatService(repos.chat, s.ai)
	s.activity = service.NewActivityService(repos.activity)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		instrument: controller.NewInstrumentController(s.instrument),
		assessment: controller.NewAssessmentController(s.assessment, s.dashboard, s.activity),
		journal:    controller.NewJournalController(s.journal, s.dashboard, s.activity),
		dashboard:  controller.NewDashboardController(s.dashboard),
		alert:      controller.NewAlertController(s.alert),
		session:    controller.NewSessionController(s.session, s.user, s.activity),
		resource:   controller.NewResourceController(s.resource, s.activity),
		wellness:   controller.NewWellnessController(s.wellness, s.activity),
		chat:       controller.NewChatController(s.chat),
		user:       controller.NewUserController(s.user, s.activity),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	// 配置注入到请求上下文，AuthMiddleware 从这里取 JWT Secret
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("campus-wellness", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

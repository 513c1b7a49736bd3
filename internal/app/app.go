package app

import (
	"context"
	"habit_bot_backend/internal/config"
	"habit_bot_backend/internal/controller"
	"habit_bot_backend/internal/notifier"
	"habit_bot_backend/internal/repository"
	"habit_bot_backend/internal/service"
	"habit_bot_backend/pkg/configwatcher"
	"habit_bot_backend/pkg/database"
	"habit_bot_backend/pkg/logger"
	"habit_bot_backend/pkg/monitoring"
	"habit_bot_backend/pkg/security"
	"habit_bot_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
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
	notifier        *notifier.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	habit    *repository.HabitRepository
	habitLog *repository.HabitLogRepository
}

type services struct {
	habit        *service.HabitService
	stats        *service.StatsService
	reminder     *service.ReminderService
	confirmation *service.ConfirmationService
	storage      *service.StorageService
	export       *service.ExportService
}

type controllers struct {
	habit        *controller.HabitController
	stats        *controller.StatsController
	reminder     *controller.ReminderController
	confirmation *controller.ConfirmationController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		habit:    repository.NewHabitRepository(db),
		habitLog: repository.NewHabitLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	// redis 未配置时退化为进程内一次性键，单机部署可用
	var once service.OnceStore
	if rdb != nil {
		once = service.NewRedisOnceStore(rdb)
	} else {
		logger.Log.Warn("Redis disabled, using in-process once store")
		once = service.NewMemoryOnceStore()
	}

	a.notifier = notifier.New(cfg.Bot.WebhookURL, cfg.Bot.WebhookSecret, cfg.Bot.StubNotifier)

	s.habit = service.NewHabitService(repos.user, repos.habit, repos.habitLog)
	s.stats = service.NewStatsService(repos.habit, repos.habitLog, s.habit)
	s.reminder = service.NewReminderService(repos.user, repos.habit, a.notifier, once, cfg.Reminder.GuardTTL())
	s.confirmation = service.NewConfirmationService(s.habit, once, cfg.Confirm.Secret, cfg.Confirm.Expiry())

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage
	s.export = service.NewExportService(repos.habit, repos.habitLog, storage)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		habit:        controller.NewHabitController(s.habit, s.confirmation),
		stats:        controller.NewStatsController(s.stats, s.export),
		reminder:     controller.NewReminderController(s.reminder),
		confirmation: controller.NewConfirmationController(s.confirmation),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
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

// startBackgroundTasks 启动提醒调度循环：每个周期扫描一次到点的提醒。
func (a *App) startBackgroundTasks(s *services) {
	interval := a.Config.Reminder.Interval()
	go func() {
		ticker := time.NewTicker(interval)
		for range ticker.C {
			if err := s.reminder.ProcessDueReminders(context.Background()); err != nil {
				logger.Log.Error("reminder tick error", zap.Error(err))
			}
		}
	}()
	logger.Log.Info("Reminder scheduler started", zap.Duration("interval", interval))
}

func (a *App) watchConfig() {
	path := filepath.Join("configs", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return
	}
	go configwatcher.WatchConfig(path, func(newCfg *config.Config) {
		a.notifier.UpdateTarget(newCfg.Bot.WebhookURL, newCfg.Bot.WebhookSecret)
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("habit-bot-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)
	app.watchConfig()

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
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

	// 等待中断信号优雅地关闭服务器。调度器随进程停止，
	// 在途的提醒派发各自完成或失败，无需汇合。
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

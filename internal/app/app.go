package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyberhub_backend/internal/config"
	"cyberhub_backend/internal/controller"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/service"
	"cyberhub_backend/pkg/database"
	"cyberhub_backend/pkg/logger"
	"cyberhub_backend/pkg/monitoring"
	"cyberhub_backend/pkg/storage"
	"cyberhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services *services
}

type repositories struct {
	user       *repository.UserRepository
	student    *repository.StudentRepository
	theme      *repository.ThemeRepository
	exercise   *repository.ExerciseRepository
	submission *repository.SubmissionRepository
	scoreboard *repository.ScoreboardRepository
	activity   *repository.ActivityRepository
	lab        *repository.LabRepository
}

type services struct {
	activity   *service.ActivityService
	auth       *service.AuthService
	theme      *service.ThemeService
	exercise   *service.ExerciseService
	grading    *service.GradingService
	scoreboard *service.ScoreboardService
	student    *service.StudentService
	lab        *service.LabService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth          *controller.AuthController
	theme         *controller.ThemeController
	exercise      *controller.ExerciseController
	adminExercise *controller.AdminExerciseController
	student       *controller.StudentController
	scoreboard    *controller.ScoreboardController
	lab           *controller.LabController
	admin         *controller.AdminController
	upload        *controller.UploadController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		student:    repository.NewStudentRepository(db),
		theme:      repository.NewThemeRepository(db),
		exercise:   repository.NewExerciseRepository(db),
		submission: repository.NewSubmissionRepository(db),
		scoreboard: repository.NewScoreboardRepository(db),
		activity:   repository.NewActivityRepository(db),
		lab:        repository.NewLabRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.activity = service.NewActivityService(repos.activity)
	s.auth = service.NewAuthService(repos.user, s.activity, cfg)
	s.theme = service.NewThemeService(repos.theme, repos.exercise, s.activity)
	s.exercise = service.NewExerciseService(repos.exercise, repos.theme, s.activity)
	s.scoreboard = service.NewScoreboardService(repos.scoreboard, repos.student, rdb)
	s.grading = service.NewGradingService(repos.submission, repos.exercise, repos.student, s.scoreboard, db)
	s.student = service.NewStudentService(repos.student, repos.scoreboard, db)
	s.lab = service.NewLabService(repos.lab, repos.exercise, cfg)
	s.dashboard = service.NewDashboardService(repos.exercise, repos.theme, repos.student)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, store storage.Provider, db *gorm.DB) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		theme:         controller.NewThemeController(s.theme),
		exercise:      controller.NewExerciseController(s.exercise, s.grading),
		adminExercise: controller.NewAdminExerciseController(s.exercise),
		student:       controller.NewStudentController(s.student),
		scoreboard:    controller.NewScoreboardController(s.scoreboard),
		lab:           controller.NewLabController(s.lab),
		admin:         controller.NewAdminController(s.dashboard, s.activity, repos.user),
		upload:        controller.NewUploadController(store),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) startBackgroundTasks(s *services, repos *repositories) {
	// Seed the session gauge from the database before anything moves it.
	s.lab.SyncSessionGauge()

	// Lab sessions past their TTL are stopped even if nobody polls them.
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			s.lab.ReapExpired()
		}
	}()

	// Revoked and expired auth sessions are swept hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			if err := repos.user.DeleteExpiredSessions(); err != nil {
				logger.Log.Error("session sweep failed", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("logger initialized")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	// Auto-migration runs in debug mode and on explicit request; release
	// deployments opt in with -migrate.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("database migration failed", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("failed to initialize redis", zap.Error(err))
		}
	}

	store, err := storage.NewProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("failed to initialize storage", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, store, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("cyberhub-api", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, repos)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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

package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pathgenius_backend/internal/config"
	"pathgenius_backend/internal/controller"
	"pathgenius_backend/internal/repository"
	"pathgenius_backend/internal/service"
	"pathgenius_backend/pkg/logger"
	"pathgenius_backend/pkg/monitoring"
	"pathgenius_backend/pkg/security"
	"pathgenius_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	services *services
	repos    *repositories
}

type repositories struct {
	session *repository.SessionRepository
	course  *repository.CourseRepository
	quiz    *repository.QuizRepository
}

type services struct {
	ollama     *service.OllamaService
	video      *service.VideoService
	fallback   *service.FallbackService
	coord      *service.Coordinator
	assessment *service.AssessmentService
	course     *service.CourseService
	quiz       *service.QuizService
}

type controllers struct {
	assessment *controller.AssessmentController
	course     *controller.CourseController
	quiz       *controller.QuizController
	health     *controller.HealthController
}

func (a *App) initRepositories() *repositories {
	return &repositories{
		session: repository.NewSessionRepository(),
		course:  repository.NewCourseRepository(),
		quiz:    repository.NewQuizRepository(),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.ollama = service.NewOllamaService(cfg.Ollama)
	s.video = service.NewVideoService(cfg.Video)
	s.fallback = service.NewFallbackService()
	s.coord = service.NewCoordinator()

	s.assessment = service.NewAssessmentService(repos.session, s.ollama, s.fallback, s.coord, cfg.Ollama)
	s.course = service.NewCourseService(repos.course, s.ollama, s.video, s.fallback, s.coord, cfg.Ollama, cfg.Curation.StrictModules)
	s.quiz = service.NewQuizService(repos.quiz, repos.course, s.ollama, s.fallback, s.coord, cfg.Ollama)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, cfg *config.Config) *controllers {
	return &controllers{
		assessment: controller.NewAssessmentController(s.assessment),
		course:     controller.NewCourseController(s.course),
		quiz:       controller.NewQuizController(s.quiz),
		health:     controller.NewHealthController(repos.session, repos.course, repos.quiz, cfg.Session),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ApplyConfig 热更新可在运行时调整的配置项
func (a *App) ApplyConfig(cfg *config.Config) {
	a.services.course.SetStrictModules(cfg.Curation.StrictModules)
	logger.Log.Info("Runtime config applied",
		zap.Bool("strict_modules", cfg.Curation.StrictModules))
}

func (a *App) startBackgroundTasks(repos *repositories, cfg *config.Config) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			sessions := repos.session.Sweep(cfg.Session.SessionTTL)
			quizzes := repos.quiz.Sweep(cfg.Session.SessionTTL)
			courses := repos.course.Sweep(cfg.Session.CourseTTL)
			if sessions+quizzes+courses > 0 {
				logger.Log.Info("Background sweep removed expired records",
					zap.Int("sessions", sessions),
					zap.Int("quizzes", quizzes),
					zap.Int("courses", courses))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	app := &App{
		Config: cfg,
	}

	repos := app.initRepositories()
	services := app.initServices(repos, cfg)
	app.services = services
	app.repos = repos
	controllers := app.initControllers(services, repos, cfg)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("pathgenius", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	app.startBackgroundTasks(repos, cfg)

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

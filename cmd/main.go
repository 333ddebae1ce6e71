package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizbank/config"
	"github.com/lshigami/quizbank/database"
	_ "github.com/lshigami/quizbank/docs" // Swagger docs
	"github.com/lshigami/quizbank/internal/controller"
	"github.com/lshigami/quizbank/internal/logger"
	"github.com/lshigami/quizbank/internal/middleware"
	"github.com/lshigami/quizbank/internal/repository"
	"github.com/lshigami/quizbank/internal/repository/memory"
	"github.com/lshigami/quizbank/internal/server"
	"github.com/lshigami/quizbank/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// PasscodeMiddleware runs in front of GET /tests/:passcode.
type PasscodeMiddleware []gin.HandlerFunc

// @title Quiz Bank API
// @version 1.0
// @description Question bank with subjects and passcode-gated tests.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	// Reconfigured from LOG_LEVEL/LOG_PRETTY once config is loaded.
	logger.Init("info", false)

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // nil when STORE_DRIVER=memory
			server.NewGinEngine,
		),

		fx.Provide(NewRepositories),

		fx.Provide(
			service.NewQuestionService,
			service.NewSubjectService,
			service.NewTestService,
			NewGeminiLLMService,
			service.NewQuestionReviewService,
		),

		fx.Provide(
			NewPasscodeMiddleware,
			controller.NewController,
		),

		fx.Invoke(ConfigureLogger),
		fx.Invoke(database.AutoMigrate),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func ConfigureLogger(cfg *config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
}

// NewRepositories selects the storage backend from STORE_DRIVER.
func NewRepositories(cfg *config.Config, db *gorm.DB) (repository.QuestionRepository, repository.SubjectRepository, repository.TestRepository) {
	if cfg.Database.Driver == config.StoreDriverMemory {
		log.Warn().Msg("Using in-memory store; data is lost on restart")
		return memory.NewQuestionRepository(), memory.NewSubjectRepository(), memory.NewTestRepository()
	}
	return repository.NewQuestionRepository(db), repository.NewSubjectRepository(db), repository.NewTestRepository(db)
}

func NewGeminiLLMService(lc fx.Lifecycle, cfg *config.Config) (service.GeminiLLMService, error) {
	llm, err := service.NewGeminiLLMService(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return llm.Close()
		},
	})
	return llm, nil
}

// NewPasscodeMiddleware wires the redis rate limiter when REDIS_ADDR is set.
func NewPasscodeMiddleware(lc fx.Lifecycle, cfg *config.Config) PasscodeMiddleware {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR is not set. Passcode lookups are not rate limited.")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The limiter fails open, so an unreachable redis only warns.
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis ping failed")
				return nil
			}
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to redis")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	limiter := middleware.NewRateLimiter(client)
	return PasscodeMiddleware{
		limiter.Limit(middleware.PasscodeRateLimitConfig(cfg.Quiz.PasscodeRateLimit, cfg.Quiz.PasscodeRateWindow)),
	}
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	ctrl *controller.Controller,
	passcodeMiddleware PasscodeMiddleware,
) {
	ctrl.RegisterRoutes(router, passcodeMiddleware...)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	})
}

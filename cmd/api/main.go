package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/thesis-api/internal/config"
	"github.com/noah-isme/thesis-api/internal/database"
	"github.com/noah-isme/thesis-api/internal/handler"
	"github.com/noah-isme/thesis-api/internal/middleware"
	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/repository"
	"github.com/noah-isme/thesis-api/internal/router"
	"github.com/noah-isme/thesis-api/internal/service"
	cloud "github.com/noah-isme/thesis-api/pkg/cloudinary"
	"github.com/noah-isme/thesis-api/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(database.PostgresConfig{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.Faculty{}, &models.Major{}, &models.SchoolYear{},
		&models.Lecturer{}, &models.Student{}, &models.Ministry{},
		&models.Position{}, &models.Council{}, &models.CouncilDetail{},
		&models.Thesis{}, &models.Criteria{}, &models.ThesisCriteria{}, &models.Score{},
		&models.Post{}, &models.Comment{}, &models.Like{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryReportFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	var mail mailer.Mailer
	if cfg.SendgridAPIKey != "" {
		sendgridMailer, err := mailer.NewSendgrid(cfg.SendgridAPIKey, cfg.AppName, cfg.MailFromAddress, logger)
		if err != nil {
			log.Fatalf("failed to create sendgrid mailer: %v", err)
		}
		mail = sendgridMailer
	} else {
		logger.Warn().Msg("sendgrid api key missing, mail delivery disabled")
		mail = mailer.NewLogMailer(logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	thesisRepo := repository.NewThesisRepository(db)
	criteriaRepo := repository.NewCriteriaRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	councilRepo := repository.NewCouncilRepository(db)
	lecturerRepo := repository.NewLecturerRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	postRepo := repository.NewPostRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	aggregator := service.NewScoreAggregator(thesisRepo, criteriaRepo, scoreRepo, logger)
	scoreService := service.NewScoreService(scoreRepo, criteriaRepo, councilRepo, thesisRepo, lecturerRepo, aggregator, validate, logger)
	criteriaService := service.NewCriteriaService(criteriaRepo, thesisRepo, aggregator, validate, logger)
	councilService := service.NewCouncilService(councilRepo, thesisRepo, lecturerRepo, studentRepo, mail, validate, logger)
	thesisService := service.NewThesisService(thesisRepo, lecturerRepo, studentRepo, aggregator, uploader, validate, logger)
	reportService := service.NewReportService(thesisRepo, criteriaRepo, scoreRepo, logger)
	statsService := service.NewStatsService(statsRepo, redisClient, cfg.StatsCacheTTL, logger)
	postService := service.NewPostService(postRepo, validate, logger)
	directoryService := service.NewDirectoryService(lecturerRepo, studentRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		HealthHandler:    handler.NewHealthHandler(cfg.AppName, cfg.AppEnv),
		ScoreHandler:     handler.NewScoreHandler(scoreService, logger),
		ThesisHandler:    handler.NewThesisHandler(thesisService, logger),
		CriteriaHandler:  handler.NewCriteriaHandler(criteriaService, logger),
		CouncilHandler:   handler.NewCouncilHandler(councilService, logger),
		ReportHandler:    handler.NewReportHandler(reportService, logger),
		StatsHandler:     handler.NewStatsHandler(statsService, logger),
		PostHandler:      handler.NewPostHandler(postService, logger),
		DirectoryHandler: handler.NewDirectoryHandler(directoryService, logger),
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

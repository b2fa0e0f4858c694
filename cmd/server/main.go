package main

import (
	"fmt"
	"log"

	"budgetflow/internal/config"
	emailnoop "budgetflow/internal/email/noop"
	emailses "budgetflow/internal/email/ses"
	"budgetflow/internal/handler"
	"budgetflow/internal/ingest"
	"budgetflow/internal/port"
	rendernoop "budgetflow/internal/render/noop"
	"budgetflow/internal/render/soffice"
	"budgetflow/internal/repository/postgres"
	"budgetflow/internal/router"
	"budgetflow/internal/service"
	s3storage "budgetflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// A typo in the column maps would silently break ingestion, so refuse
	// to start on one.
	if err := ingest.ValidateMappings(); err != nil {
		return fmt.Errorf("invalid column mappings: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewBudgetFileRepo(db)
	itemRepo := postgres.NewBudgetItemRepo(db)
	specialistRepo := postgres.NewSpecialistRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize document renderer
	var renderer port.DocumentRenderer
	switch cfg.Render.Provider {
	case "soffice":
		renderer = soffice.NewRenderer(cfg.Render.BinaryPath, cfg.Render.WorkDir)
	default:
		renderer = rendernoop.NewRenderer()
	}

	// Initialize email sender
	var emails port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emails, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emails = emailnoop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	uploadSvc := service.NewUploadService(fileRepo, itemRepo, userRepo, s3Client, emails, cfg.S3.Bucket, cfg.S3.MaxFileSizeMB, cfg.S3.PresignExpiry)
	workflowSvc := service.NewWorkflowService(fileRepo, itemRepo, userRepo, s3Client, renderer, emails, cfg.Render.Timeout)
	itemSvc := service.NewItemService(fileRepo, itemRepo)
	reportSvc := service.NewReportService(reportRepo)
	userSvc := service.NewUserService(userRepo)
	specialistSvc := service.NewSpecialistService(specialistRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	fileH := handler.NewBudgetFileHandler(uploadSvc)
	workflowH := handler.NewWorkflowHandler(workflowSvc)
	itemH := handler.NewItemHandler(itemSvc)
	reportH := handler.NewReportHandler(reportSvc, itemSvc)
	userH := handler.NewUserHandler(userSvc)
	specialistH := handler.NewSpecialistHandler(specialistSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, fileH, workflowH, itemH, reportH, userH, specialistH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

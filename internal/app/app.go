package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"uploadhub_backend/database"
	"uploadhub_backend/internal/config"
	"uploadhub_backend/internal/email"
	"uploadhub_backend/internal/handlers"
	"uploadhub_backend/internal/logger"
	"uploadhub_backend/internal/middleware"
	"uploadhub_backend/internal/repositories"
	"uploadhub_backend/internal/routes"
	"uploadhub_backend/internal/services"
	"uploadhub_backend/internal/storage"
	"uploadhub_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	if err := database.SeedGroups(gormDB); err != nil {
		logger.Fatal("Group seeding failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, serviceContainer.AuthService)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	var emailService email.Provider = email.NopProvider{}
	if cfg.Email.Enabled {
		emailService = email.NewSMTPProvider(cfg)
	}

	userRepo := repositories.NewUserRepository(gormDB)
	pipelineRepo := repositories.NewPipelineRepository(gormDB)
	uploadRepo := repositories.NewUploadRepository(gormDB)
	fileRepo := repositories.NewFileRepository(gormDB)
	validationRepo := repositories.NewValidationRepository(gormDB)
	noteRepo := repositories.NewNoteRepository(gormDB)

	authService := services.NewAuthService(userRepo)
	pipelineService := services.NewPipelineService(pipelineRepo)
	uploadService := services.NewUploadService(uploadRepo, fileRepo, pipelineRepo, storageInstance)
	validationService := services.NewValidationService(validationRepo, uploadRepo, userRepo, emailService)
	metadataService := services.NewMetadataService(uploadRepo, fileRepo, pipelineRepo, validationService, cfg.Upload.StrictMetadata)
	noteService := services.NewNoteService(noteRepo, uploadRepo)

	return &services.ServiceContainer{
		AuthService:       authService,
		PipelineService:   pipelineService,
		UploadService:     uploadService,
		MetadataService:   metadataService,
		ValidationService: validationService,
		NoteService:       noteService,
		EmailService:      emailService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, container.AuthService),
		PipelineHandler:   handlers.NewPipelineHandler(baseHandler, container.PipelineService),
		UploadHandler:     handlers.NewUploadHandler(baseHandler, container.UploadService),
		FileHandler:       handlers.NewFileHandler(baseHandler, container.UploadService, container.MetadataService),
		ValidationHandler: handlers.NewValidationHandler(baseHandler, container.ValidationService),
		NoteHandler:       handlers.NewNoteHandler(baseHandler, container.NoteService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

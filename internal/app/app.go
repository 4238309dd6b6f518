package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/strivehq/strive/internal/config"
	"github.com/strivehq/strive/internal/db"
	"github.com/strivehq/strive/internal/repository"
	"github.com/strivehq/strive/internal/service"
	"github.com/strivehq/strive/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	IdentityService  *service.IdentityService
	ChallengeService *service.ChallengeService
	UpdateService    *service.UpdateService
	GeoService       *service.GeoService
	UploadService    *service.UploadService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	challengeRepository := repository.NewChallengeRepository(database)
	updateRepository := repository.NewUpdateRepository(database)
	imageRepository := repository.NewImageRepository(database)

	// Storage
	imageStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	identityService := service.NewIdentityService(userRepository)
	challengeService := service.NewChallengeService(challengeRepository, updateRepository, imageRepository, imageStorage)
	updateService := service.NewUpdateService(updateRepository, challengeRepository, imageRepository, imageStorage)
	geoService := service.NewGeoService(challengeRepository)
	uploadService := service.NewUploadService(imageStorage)

	return &App{
		Cfg:              cfg,
		DB:               database,
		IdentityService:  identityService,
		ChallengeService: challengeService,
		UpdateService:    updateService,
		GeoService:       geoService,
		UploadService:    uploadService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}

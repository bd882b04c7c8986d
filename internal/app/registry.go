package app

import (
	"database/sql"
	"os"

	"github.com/Berghsen/timeline/internal/auth"
	"github.com/Berghsen/timeline/internal/certificate"
	"github.com/Berghsen/timeline/internal/export"
	"github.com/Berghsen/timeline/internal/messaging/kafka"
	"github.com/Berghsen/timeline/internal/profile"
	"github.com/Berghsen/timeline/internal/timeentry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	profileRepo := profile.NewRepository(gormDB)
	timeEntryRepo := timeentry.NewRepository(gormDB)
	certificateRepo := certificate.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	certificateStorage, err := certificate.NewDiskStorage(os.Getenv("STORAGE_DIR"))
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(db, authRepo, profileRepo)
	profileService := profile.NewService(db, profileRepo)
	timeEntryService := timeentry.NewServiceWithOutbox(db, timeEntryRepo, profileRepo, outboxRepo, rdb)
	certificateService := certificate.NewServiceWithOutbox(db, certificateRepo, certificateStorage, outboxRepo)
	exportService := export.NewService(timeEntryRepo, profileRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService)
	timeEntryHandler := timeentry.NewHandler(timeEntryService, rdb)
	certificateHandler := certificate.NewHandler(certificateService, rdb)
	exportHandler := export.NewHandler(exportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		profile.RegisterRoutes(api, profileHandler, logger)
		timeentry.RegisterRoutes(api, timeEntryHandler, logger, rdb)
		certificate.RegisterRoutes(api, certificateHandler, logger, rdb)
		export.RegisterRoutes(api, exportHandler, logger)
	}

	return nil
}

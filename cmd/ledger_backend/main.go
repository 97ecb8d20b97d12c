package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/zenledger/ledger_backend/internal/adapters/database/pgsql"
	"github.com/zenledger/ledger_backend/internal/core/services"
	"github.com/zenledger/ledger_backend/internal/handlers"
	"github.com/zenledger/ledger_backend/internal/middleware"
	"github.com/zenledger/ledger_backend/internal/platform/config"
	"github.com/zenledger/ledger_backend/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories
	accountRepo := pgsql.NewPgxAccountRepository(dbPool)
	currencyRepo := pgsql.NewPgxCurrencyRepository(dbPool)
	journalRepo := pgsql.NewPgxJournalRepository(dbPool)
	favoriteRepo := pgsql.NewPgxFavoriteRepository(dbPool)
	settingRepo := pgsql.NewPgxSettingRepository(dbPool)
	backupRepo := pgsql.NewPgxBackupRepository(dbPool, accountRepo, currencyRepo, journalRepo, favoriteRepo, settingRepo)

	// Wire services
	currencySvc := services.NewCurrencyService(currencyRepo, settingRepo)
	svc := &handlers.Services{
		Account:   services.NewAccountService(accountRepo),
		Currency:  currencySvc,
		Journal:   services.NewJournalService(journalRepo, accountRepo),
		Reporting: services.NewReportingService(accountRepo, journalRepo),
		Favorite:  services.NewFavoriteService(favoriteRepo, accountRepo, settingRepo, currencySvc),
		Backup:    services.NewBackupService(backupRepo),
		Setting:   services.NewSettingService(settingRepo),
	}

	// Install the starter chart of accounts and base currency on first run
	seeder := services.NewSeedService(accountRepo, currencyRepo, settingRepo)
	if err := seeder.EnsureDefaults(context.Background()); err != nil {
		logger.Error("Failed to seed default data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, svc)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending schema migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OldStager01/gpa-tracker/api"
	"github.com/OldStager01/gpa-tracker/api/handlers"
	"github.com/OldStager01/gpa-tracker/internal/auth"
	"github.com/OldStager01/gpa-tracker/internal/events"
	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/internal/metrics"
	"github.com/OldStager01/gpa-tracker/internal/tracker"
	"github.com/OldStager01/gpa-tracker/pkg/config"
	"github.com/OldStager01/gpa-tracker/pkg/database"
	"github.com/OldStager01/gpa-tracker/pkg/database/queries"
	"github.com/OldStager01/gpa-tracker/pkg/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	createUser := flag.String("create-user", "", "create an API user with this name and exit")
	password := flag.String("password", "", "password for -create-user")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)

	bus := events.NewEventBus(cfg.Events.BufferSize)
	eventLogger := events.NewEventLogger(bus.SubscribeAll())
	eventLogger.Start()
	defer func() {
		bus.Close()
		eventLogger.Stop()
	}()

	var (
		store tracker.Store
		users handlers.UserFinder
	)

	switch cfg.Storage.Type {
	case config.StorageTypePostgres:
		db, err := database.New(cfg.Database.ToDBConfig())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		logger.Info("Database connection established")

		if *migrate {
			return runMigrations(cfg, db)
		}
		if *createUser != "" {
			return runCreateUser(db, *createUser, *password)
		}

		store = tracker.NewPostgresStore(db, tracker.PostgresStoreConfig{
			CallTimeout:  cfg.Storage.Timeout,
			MaxFailures:  cfg.Storage.CircuitBreaker.MaxFailures,
			OpenTimeout:  cfg.Storage.CircuitBreaker.Timeout,
			ReadAttempts: cfg.Storage.ReadAttempts,
			RetryDelay:   cfg.Storage.RetryDelay,
		})
		users = queries.NewUserRepository(db.DB)

	case config.StorageTypeMemory:
		if *migrate || *createUser != "" {
			return errors.New("-migrate and -create-user require postgres storage")
		}
		logger.Warn("Using in-memory storage; courses are lost on restart")
		store = tracker.NewMemoryStore()
	}

	svc := tracker.NewService(store, cfg.Tracker, events.NewPublisher(bus), metrics.Get())

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	seeded, err := svc.SeedDemoData(seedCtx)
	cancelSeed()
	if err != nil {
		// a broken store should not keep the API (and its health checks) down
		logger.WithError(err).Error("Failed to seed demo data")
	} else if seeded {
		logger.Info("Demo data loaded")
	}

	server := api.NewServer(*cfg, svc, bus, users)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	if cfg.Metrics.Enabled && cfg.Metrics.Port != 0 {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.Metrics.Port)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func runMigrations(cfg *config.Config, db *database.DB) error {
	timeout := cfg.Database.MigrationTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Running database migrations")
	if err := database.NewMigrator(db).WithLogger(logger.Infof).Run(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Migrations completed successfully")
	return nil
}

func runCreateUser(db *database.DB, username, password string) error {
	username = validation.SanitizeString(username)
	if err := errors.Join(
		validation.ValidateUsername(username),
		validation.ValidatePassword(password),
	); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := queries.NewUserRepository(db.DB).Create(ctx, username, hash)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Infof("Created user %q (id %d)", user.Username, user.ID)
	return nil
}

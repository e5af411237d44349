package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"gopower/adapters/memory"
	"gopower/adapters/postgres"
	"gopower/adapters/rng"
	"gopower/app"
	"gopower/internal"
	"gopower/internal/api"
	"gopower/internal/config"
	"gopower/internal/errors"
	"gopower/internal/estimator"
	"gopower/internal/migration"
	"gopower/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and applies migrations.
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger

	// Sweeps persist to PostgreSQL when DATABASE_URL is set; otherwise an
	// in-memory repository keeps results for the lifetime of the process.
	var repo ports.SweepRepository
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewSweepRepository(db)
		logger.Info("Using PostgreSQL sweep storage")
	} else {
		repo = memory.NewSweepRepository()
		logger.Info("DATABASE_URL not set, using in-memory sweep storage")
	}

	est := estimator.New(rng.New())
	est.SetMaxParallel(appConfig.Simulation.MaxParallel)

	sweepService := app.NewSweepService(est, repo, logger)
	server := api.NewServer(sweepService, repo, logger)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Server.Port,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute, // large sweeps take a while
	}

	log.Printf("🚀 Starting GoPower server on port %s", appConfig.Server.Port)
	log.Fatal(httpServer.ListenAndServe())
}

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/racedesk/backend/internal/models"
	"github.com/racedesk/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Local configuration can be kept in a .env file, the environment wins
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		// Create the data directory for the default database location
		dataDir := filepath.Join(".", "data")
		err := os.MkdirAll(dataDir, os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		dsn = filepath.Join(dataDir, "gorm.db")
	}

	// Connect to the database and migrate the schema
	err := models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The ledger type catalog is fixed and seeded once at startup
	err = models.SeedLedgerTypes(models.DB)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r := router.Router()
	log.Info().Msg("backend startup complete")

	// gin reads PORT from the environment, defaulting to 8080
	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

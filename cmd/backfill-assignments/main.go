// Command backfill-assignments migrates patients created before explicit
// doctor assignment existed: every patient with an empty or missing
// assignment list is assigned to the full current set of doctor emails.
//
// Run out-of-band, not as part of request handling. Idempotent: once a
// patient carries an assignment the unassigned predicate no longer matches,
// so a second run reports zero matched rows.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carelog/carelog-server-go/internal/config"
	"github.com/carelog/carelog-server-go/internal/database"
	"github.com/carelog/carelog-server-go/internal/repository"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()

	userRepo := repository.NewUserRepository(db.DB)
	patientRepo := repository.NewPatientRepository(db.DB)

	runCtx := context.Background()

	doctorEmails, err := userRepo.ListDoctorEmails(runCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list doctor emails")
	}
	if len(doctorEmails) == 0 {
		log.Fatal().Msg("no doctors registered, nothing to assign")
	}

	matched, err := patientRepo.CountUnassigned(runCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count unassigned patients")
	}

	updated, err := patientRepo.BackfillAssignments(runCtx, doctorEmails)
	if err != nil {
		log.Fatal().Err(err).Msg("backfill failed")
	}

	log.Info().
		Int64("matched", matched).
		Int64("updated", updated).
		Int("doctors", len(doctorEmails)).
		Msg("assignment backfill complete")
}

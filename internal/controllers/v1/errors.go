package v1

import (
	"errors"
	"net/http"

	"github.com/racedesk/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for a database error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")

// Race errors
var (
	errNameRequired = errors.New("the name must be set")
	errNoFieldsSet  = errors.New("there are no fields to update")

	// errEmptyReplacement guards against wiping a race's photographers by
	// mistake: a non-empty assignment list is never replaced by an empty one.
	errEmptyReplacement = errors.New("the race cannot be left without photographers, add at least one")
)

// Photographer errors
var errRaceParameterInvalid = errors.New("the race parameter must be a valid UUID")

// Ledger errors
var (
	errTypeRequired    = errors.New("the typeId must be set")
	errRaceScopedEntry = errors.New("a ledger entry belonging to a race cannot be changed through the global ledger")
	errDateRequired    = errors.New("the date must be set in YYYY-MM-DD format")
)

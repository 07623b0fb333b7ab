package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrAnalysisInProgress indicates an analysis run is already active.
	ErrAnalysisInProgress = errors.New("analysis in progress")

	// ErrTextUnavailable indicates a note's text could not be read.
	// It is recorded per note and never aborts a run.
	ErrTextUnavailable = errors.New("text unavailable")

	// ErrVaultNotConfigured indicates no vault path was given or configured.
	ErrVaultNotConfigured = errors.New("vault not configured")

	// ErrStorageUnavailable indicates the analysis store is not configured.
	// History features are disabled without it.
	ErrStorageUnavailable = errors.New("analysis storage unavailable")
)

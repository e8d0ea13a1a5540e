package domain

import "errors"

// ============================================================================
// Setup Errors
// ============================================================================

var (
	ErrMissingCredentials = errors.New("registry credential is not set")
	ErrNoModelVersion     = errors.New("no registered model version under the requested stage")
	ErrModelNotLoaded     = errors.New("model is not loaded")
	ErrInvalidModelName   = errors.New("model name is required")
)

// ============================================================================
// Prediction Errors
// ============================================================================

// Validation errors
var (
	ErrMissingField     = errors.New("missing required field")
	ErrMalformedRequest = errors.New("malformed request")
	ErrInvalidField     = errors.New("invalid field value")
)

// Model invocation errors
var (
	ErrPredictionFailed  = errors.New("model prediction failed")
	ErrPredictionShape   = errors.New("model output is not one prediction per row")
	ErrNonBinaryOutput   = errors.New("model output is not binary")
	ErrServingNotReady   = errors.New("model server is not ready")
	ErrUnsupportedFormat = errors.New("unsupported serving protocol")
)

// ============================================================================
// Dataset Errors
// ============================================================================

var (
	ErrDatasetEmpty   = errors.New("dataset has no columns")
	ErrColumnNotFound = errors.New("column not found")
	ErrRaggedRow      = errors.New("row length does not match header")
)

// ============================================================================
// Registry Errors
// ============================================================================

var (
	ErrRegistryUnauthorized = errors.New("registry rejected credentials")
	ErrRegistryRequest      = errors.New("registry request failed")
)

// ============================================================================
// Report Errors
// ============================================================================

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrReportStoreDisabled = errors.New("report store is not configured")
	ErrInvalidReportID     = errors.New("invalid report id")
)

package domain

import (
	"strconv"
	"time"
)

// Stage is the registry lifecycle tag used to select among versions.
type Stage string

const (
	StageNone       Stage = "None"
	StageStaging    Stage = "Staging"
	StageProduction Stage = "Production"
	StageArchived   Stage = "Archived"
)

type VersionStatus string

const (
	VersionStatusPending VersionStatus = "PENDING_REGISTRATION"
	VersionStatusFailed  VersionStatus = "FAILED_REGISTRATION"
	VersionStatusReady   VersionStatus = "READY"
)

// ModelVersion is a registry-owned artifact. It is never mutated here.
type ModelVersion struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Stage       Stage         `json:"current_stage"`
	Status      VersionStatus `json:"status"`
	RunID       string        `json:"run_id"`
	Source      string        `json:"source"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// URI renders the registry reference, e.g. models:/my_model/3.
func (v *ModelVersion) URI() string {
	return "models:/" + v.Name + "/" + v.Version
}

// Number returns the numeric version, or 0 when the registry returned something else.
func (v *ModelVersion) Number() int {
	n, err := strconv.Atoi(v.Version)
	if err != nil {
		return 0
	}
	return n
}

package mlflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"model-serving-service/internal/config"
	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

const latestVersionsPath = "/api/2.0/mlflow/registered-models/get-latest-versions"

type registryClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// NewRegistryClient creates a model registry adapter for an MLflow tracking server
func NewRegistryClient(cfg *config.RegistryConfig) ports.ModelRegistry {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &registryClient{
		baseURL:  strings.TrimRight(cfg.TrackingURI, "/"),
		username: cfg.Username,
		password: cfg.Password,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// MLflow API structures
type latestVersionsRequest struct {
	Name   string   `json:"name"`
	Stages []string `json:"stages"`
}

type latestVersionsResponse struct {
	ModelVersions []modelVersion `json:"model_versions"`
}

type modelVersion struct {
	Name                 string `json:"name"`
	Version              string `json:"version"`
	CreationTimestamp    millis `json:"creation_timestamp"`
	LastUpdatedTimestamp millis `json:"last_updated_timestamp"`
	CurrentStage         string `json:"current_stage"`
	Description          string `json:"description"`
	Source               string `json:"source"`
	RunID                string `json:"run_id"`
	Status               string `json:"status"`
}

type apiError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// millis accepts epoch milliseconds as a JSON number or string.
type millis int64

func (m *millis) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp %s: %w", b, err)
	}
	*m = millis(v)
	return nil
}

func (m millis) Time() time.Time {
	if m == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(m)).UTC()
}

func (c *registryClient) GetLatestVersion(ctx context.Context, name string, stage domain.Stage) (*domain.ModelVersion, error) {
	body, err := json.Marshal(latestVersionsRequest{Name: name, Stages: []string{string(stage)}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+latestVersionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	log.WithFields(log.Fields{
		"model": name,
		"stage": stage,
		"url":   c.baseURL,
	}).Debug("resolving latest model version")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryRequest, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out latestVersionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode latest versions: %w", err)
	}

	latest := pickLatest(out.ModelVersions)
	if latest == nil {
		return nil, domain.ErrNoModelVersion
	}
	return toDomain(latest), nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	var apiErr apiError
	_ = json.Unmarshal(snippet, &apiErr)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", domain.ErrRegistryUnauthorized, resp.StatusCode)
	case apiErr.ErrorCode == "RESOURCE_DOES_NOT_EXIST":
		return fmt.Errorf("%w: %s", domain.ErrNoModelVersion, apiErr.Message)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrRegistryRequest, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
}

// pickLatest returns the highest numbered version.
func pickLatest(versions []modelVersion) *modelVersion {
	var latest *modelVersion
	best := -1
	for i := range versions {
		n, err := strconv.Atoi(versions[i].Version)
		if err != nil {
			continue
		}
		if n > best {
			best = n
			latest = &versions[i]
		}
	}
	return latest
}

func toDomain(v *modelVersion) *domain.ModelVersion {
	return &domain.ModelVersion{
		Name:        v.Name,
		Version:     v.Version,
		Stage:       domain.Stage(v.CurrentStage),
		Status:      domain.VersionStatus(v.Status),
		RunID:       v.RunID,
		Source:      v.Source,
		Description: v.Description,
		CreatedAt:   v.CreationTimestamp.Time(),
		UpdatedAt:   v.LastUpdatedTimestamp.Time(),
	}
}

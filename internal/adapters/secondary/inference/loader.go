package inference

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"model-serving-service/internal/config"
	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

type loader struct {
	locator  ports.ServingLocator
	baseURL  string
	protocol string
	client   *http.Client
}

// NewLoader creates a ModelLoader. When locator is available the model server
// is found through it and spoken to with the KServe v1 protocol; otherwise
// cfg.URL and cfg.Protocol are used.
func NewLoader(cfg *config.ServingConfig, locator ports.ServingLocator) (ports.ModelLoader, error) {
	protocol := strings.ToLower(cfg.Protocol)
	if protocol == "" {
		protocol = ProtocolMLflow
	}
	if protocol != ProtocolMLflow && protocol != ProtocolKServe {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, cfg.Protocol)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &loader{
		locator:  locator,
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		protocol: protocol,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (l *loader) Load(ctx context.Context, version *domain.ModelVersion) (ports.Predictor, error) {
	p := &httpPredictor{
		baseURL:   l.baseURL,
		modelName: version.Name,
		protocol:  l.protocol,
		client:    l.client,
	}

	if l.locator != nil && l.locator.IsAvailable() {
		ep, err := l.locator.Locate(ctx, version)
		if err != nil {
			return nil, fmt.Errorf("locate model server: %w", err)
		}
		if !ep.Ready || ep.URL == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrServingNotReady, ep.ModelName)
		}
		p.baseURL = strings.TrimRight(ep.URL, "/")
		p.modelName = ep.ModelName
		p.protocol = ProtocolKServe
	}

	if err := l.probe(ctx, p); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"url":      p.baseURL,
		"protocol": p.protocol,
		"model":    p.modelName,
	}).Info("model server reachable")
	return p, nil
}

// probe checks the server answers its health route before the handle is used.
func (l *loader) probe(ctx context.Context, p *httpPredictor) error {
	healthURL := p.baseURL + "/ping"
	if p.protocol == ProtocolKServe {
		healthURL = fmt.Sprintf("%s/v1/models/%s", p.baseURL, p.modelName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServingNotReady, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", domain.ErrServingNotReady, healthURL, resp.StatusCode)
	}
	return nil
}

package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"model-serving-service/internal/core/domain"
)

const (
	ProtocolMLflow = "mlflow"
	ProtocolKServe = "kserve"
)

// httpPredictor calls a remote model server. It holds no per-request state.
type httpPredictor struct {
	baseURL   string
	modelName string
	protocol  string
	client    *http.Client
}

// MLflow scoring server payload
type dataframeSplit struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

type mlflowRequest struct {
	DataframeSplit dataframeSplit `json:"dataframe_split"`
}

// KServe v1 payload
type kserveRequest struct {
	Instances [][]any `json:"instances"`
}

type predictionsResponse struct {
	Predictions []json.RawMessage `json:"predictions"`
}

func (p *httpPredictor) predictURL() string {
	if p.protocol == ProtocolKServe {
		return fmt.Sprintf("%s/v1/models/%s:predict", p.baseURL, p.modelName)
	}
	return p.baseURL + "/invocations"
}

func (p *httpPredictor) Predict(ctx context.Context, frame *domain.Frame) ([]float64, error) {
	var payload any
	if p.protocol == ProtocolKServe {
		payload = kserveRequest{Instances: frame.Rows}
	} else {
		payload = mlflowRequest{DataframeSplit: dataframeSplit{Columns: frame.Columns, Data: frame.Rows}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.predictURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read model server response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("model server returned %d: %s", resp.StatusCode, snippet(raw))
	}

	items, err := decodePredictions(raw)
	if err != nil {
		return nil, err
	}
	return toFloats(items)
}

// decodePredictions accepts a bare JSON array or an object with a
// "predictions" array.
func decodePredictions(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode predictions: %w", err)
		}
		return items, nil
	}

	var out predictionsResponse
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}
	if out.Predictions == nil {
		return nil, fmt.Errorf("%w: response has no predictions", domain.ErrPredictionShape)
	}
	return out.Predictions, nil
}

// toFloats flattens one scalar per row. Nested values mean the model returned
// something other than one label per row.
func toFloats(items []json.RawMessage) ([]float64, error) {
	out := make([]float64, len(items))
	for i, item := range items {
		var v any
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("decode prediction %d: %w", i, err)
		}
		switch x := v.(type) {
		case float64:
			out[i] = x
		case bool:
			if x {
				out[i] = 1
			}
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d is %q", domain.ErrPredictionShape, i, x)
			}
			out[i] = f
		default:
			return nil, fmt.Errorf("%w: row %d is %s", domain.ErrPredictionShape, i, snippet(item))
		}
	}
	return out, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 256 {
		s = s[:256] + "..."
	}
	return s
}

package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DiabetesThreshold separates the two prediction labels on the classifier
// probability.
const DiabetesThreshold = 0.60

const (
	PredictionDiabetes    = "DIABETES"
	PredictionNonDiabetes = "NON_DIABETES"
)

// ErrClassifierNotConfigured marks the collaborator-unavailable condition so
// controllers can answer 503 instead of failing the scoring core.
var ErrClassifierNotConfigured = errors.New("classifier service not configured")

// ClassifierService calls the hosted tongue/nail model. The model itself is
// opaque to this repo: bytes in, probability in [0,1] out.
type ClassifierService struct {
	client *http.Client
	url    string
	token  string
}

func NewClassifierService() *ClassifierService {
	return &ClassifierService{
		client: &http.Client{Timeout: 30 * time.Second}, // cold models can be slow
		url:    os.Getenv("CLASSIFIER_URL"),
		token:  os.Getenv("CLASSIFIER_TOKEN"),
	}
}

func (s *ClassifierService) Configured() bool {
	return s.url != ""
}

// PredictProbability sends the raw image to the inference endpoint and
// returns the diabetes probability.
func (s *ClassifierService) PredictProbability(imageData []byte, contentType string) (float64, error) {
	if !s.Configured() {
		return 0, ErrClassifierNotConfigured
	}

	req, err := http.NewRequest("POST", s.url, bytes.NewReader(imageData))
	if err != nil {
		return 0, fmt.Errorf("build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	// Ensure the host loads cold models instead of returning a "loading" error
	req.Header.Set("x-wait-for-model", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("classifier request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read classifier response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error != "" {
			return 0, fmt.Errorf("classifier api error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return 0, fmt.Errorf("classifier api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	// Preferred shape: {"probability": 0.83}
	var out struct {
		Probability *float64 `json:"probability"`
	}
	if err := json.Unmarshal(respBytes, &out); err == nil && out.Probability != nil {
		return *out.Probability, nil
	}

	// Fallback: inference-API label/score pairs
	var labeled []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(respBytes, &labeled); err == nil {
		for _, l := range labeled {
			if strings.EqualFold(l.Label, PredictionDiabetes) {
				return l.Score, nil
			}
		}
	}

	preview := string(respBytes)
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return 0, fmt.Errorf("decode classifier response error | body: %s", preview)
}

// PredictionLabel applies the fixed threshold to a probability.
func PredictionLabel(probability float64) string {
	if probability >= DiabetesThreshold {
		return PredictionDiabetes
	}
	return PredictionNonDiabetes
}

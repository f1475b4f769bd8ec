package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/somwatee/HATS-v4/shared"
	"github.com/tidwall/gjson"
)

const (
	// predictPath is the classifier inference path.
	predictPath = "/predict"
	// defaultClassifierTimeout is the default http client timeout.
	defaultClassifierTimeout = time.Second * 5
)

// ClassifierConfig represents the configuration for the classifier client.
type ClassifierConfig struct {
	// BaseURL is the base url of the inference service.
	BaseURL string
	// Timeout is the http client timeout.
	Timeout time.Duration
}

// ClassifierClient represents the inference service client.
type ClassifierClient struct {
	cfg   *ClassifierConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the ClassifierClient implements the Classifier interface.
var _ shared.Classifier = (*ClassifierClient)(nil)

// NewClassifierClient instantiates a new classifier client.
func NewClassifierClient(cfg *ClassifierConfig) *ClassifierClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultClassifierTimeout
	}

	return &ClassifierClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: timeout},
		buf:   bytes.NewBuffer(make([]byte, 0, 512)),
	}
}

// formURL creates the full url for the provided path.
func (c *ClassifierClient) formURL(path string) string {
	c.buf.WriteString(strings.TrimRight(c.cfg.BaseURL, "/"))
	c.buf.WriteString(path)
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// predictRequest is the inference request body.
type predictRequest struct {
	Features []float64 `json:"features"`
}

// ParseProbabilities parses class probabilities from the provided inference response.
func ParseProbabilities(body []byte) (map[string]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, &shared.ClassifierContractError{Reason: "response is not valid json"}
	}

	probs := gjson.GetBytes(body, "probabilities")
	if !probs.IsObject() {
		return nil, &shared.ClassifierContractError{Reason: "response has no probabilities object"}
	}

	set := make(map[string]float64)
	var err error
	probs.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = &shared.ClassifierContractError{
				Reason: fmt.Sprintf("probability for class %q is not a number", key.String()),
			}
			return false
		}

		set[key.String()] = value.Float()
		return true
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

// Predict requests class probabilities for the provided feature vector.
func (c *ClassifierClient) Predict(ctx context.Context, features []float64) (map[string]float64, error) {
	payload, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return nil, fmt.Errorf("encoding predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.formURL(predictPath), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting prediction: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected prediction status %d: %s", resp.StatusCode,
			gjson.GetBytes(body, "error").String())
	}

	return ParseProbabilities(body)
}

package openai

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

	"github.com/yungbote/skillgraph-backend/internal/observability"
	"github.com/yungbote/skillgraph-backend/internal/platform/envutil"
	"github.com/yungbote/skillgraph-backend/internal/platform/httpx"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

// Client talks to an OpenAI-compatible embeddings endpoint. Any server that
// implements POST /v1/embeddings works (hosted OpenAI, a local TEI/vLLM
// deployment of all-MiniLM-L6-v2, etc).
type Client interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
	Dimensions() int
	Model() string
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	embedModel string
	dims       int
	httpClient *http.Client
	maxRetries int
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimRight(envutil.String("EMBED_BASE_URL", "https://api.openai.com"), "/")
	apiKey := envutil.String("EMBED_API_KEY", "")
	if apiKey == "" && strings.Contains(baseURL, "api.openai.com") {
		return nil, fmt.Errorf("missing EMBED_API_KEY")
	}

	timeout := envutil.Seconds("EMBED_TIMEOUT_SECONDS", 30)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRetries := envutil.Int("EMBED_MAX_RETRIES", 4)
	if maxRetries < 0 {
		maxRetries = 0
	}
	dims := envutil.Int("EMBED_DIMENSIONS", 384)
	if dims <= 0 {
		dims = 384
	}

	return &client{
		log:        log.With("client", "EmbeddingsClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		embedModel: envutil.String("EMBED_MODEL", "all-MiniLM-L6-v2"),
		dims:       dims,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}, nil
}

func (c *client) Dimensions() int { return c.dims }
func (c *client) Model() string   { return c.embedModel }

type embedHTTPError struct {
	StatusCode int
	Body       string
}

func (e *embedHTTPError) Error() string {
	return fmt.Sprintf("embeddings http %d: %s", e.StatusCode, e.Body)
}

func (e *embedHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &embedHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	backoff := 500 * time.Millisecond
	start := time.Now()

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			observability.Current().ObserveEmbedRequest(c.embedModel, "200", time.Since(start))
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("embeddings decode error: %w", uErr)
			}
			return nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			observability.Current().ObserveEmbedRequest(c.embedModel, statusLabel(resp), time.Since(start))
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("embeddings request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}
	return fmt.Errorf("unreachable retry loop")
}

func statusLabel(resp *http.Response) string {
	if resp == nil {
		return "error"
	}
	return strconv.Itoa(resp.StatusCode)
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

func (c *client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}
	clean := make([]string, len(inputs))
	for i := range inputs {
		s := strings.TrimSpace(inputs[i])
		if s == "" {
			s = " "
		}
		clean[i] = s
	}

	var resp embeddingsResponse
	if err := c.do(ctx, "/v1/embeddings", embeddingsRequest{Model: c.embedModel, Input: clean}, &resp); err != nil {
		return nil, err
	}

	out := make([][]float32, len(clean))
	for pos, d := range resp.Data {
		idx := d.Index
		if idx < 0 || idx >= len(out) || out[idx] != nil {
			idx = pos
		}
		if idx >= len(out) {
			continue
		}
		vec := make([]float32, len(d.Embedding))
		for j, f := range d.Embedding {
			vec[j] = float32(f)
		}
		out[idx] = vec
	}
	for i := range out {
		if len(out[i]) == 0 {
			return nil, fmt.Errorf("embeddings response missing index %d: requested=%d returned=%d model=%s", i, len(clean), len(resp.Data), c.embedModel)
		}
	}
	return out, nil
}

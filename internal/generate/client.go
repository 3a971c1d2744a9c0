// AngelaMos | 2026
// client.go

package generate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/angelamos/contentai/internal/core"
)

const defaultProviderBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient talks to the generative-language streaming endpoint
// over server-sent events.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultProviderBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type streamResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GeminiClient) Stream(
	ctx context.Context,
	prompt string,
	onChunk func(chunk string) error,
) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/models/%s:streamGenerateContent?alt=sse&key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, endpoint, bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call provider: %w", core.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf(
			"provider returned %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), core.ErrUpstream,
		)
	}

	return c.readStream(resp.Body, onChunk)
}

// readStream consumes the SSE body line by line. Each data frame
// carries a partial candidate; text parts are relayed in arrival
// order.
func (c *GeminiClient) readStream(
	body io.Reader,
	onChunk func(chunk string) error,
) (string, error) {
	var full strings.Builder

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var frame streamResponse
		if err := json.Unmarshal([]byte(data), &frame); err != nil {
			return full.String(), fmt.Errorf(
				"decode provider frame: %w", core.ErrUpstream,
			)
		}

		if frame.Error != nil {
			return full.String(), fmt.Errorf(
				"provider error %d: %s: %w",
				frame.Error.Code, frame.Error.Message, core.ErrUpstream,
			)
		}

		for _, candidate := range frame.Candidates {
			for _, part := range candidate.Content.Parts {
				if part.Text == "" {
					continue
				}
				full.WriteString(part.Text)
				if err := onChunk(part.Text); err != nil {
					return full.String(), err
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf(
			"read provider stream: %w", core.ErrUpstream,
		)
	}

	return full.String(), nil
}

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"omnihub/constants"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// ErrNoAPIKey is returned when the client has no key to authenticate with.
var ErrNoAPIKey = errors.New("gemini API key is not configured")

// Client talks to the Gemini generateContent endpoint
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *fasthttp.Client
}

// NewClient creates a new Gemini client. Empty model falls back to the default one.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = constants.DefaultGeminiModel
	}
	return &Client{
		BaseURL: constants.GeminiBaseURL,
		APIKey:  apiKey,
		Model:   model,
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateJSON sends prompt with a JSON response schema and returns the text
// of the first candidate. The text is not validated against schema.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generate request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint())
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)
	req.SetBody(body)

	if err := c.do(ctx, req, resp); err != nil {
		return "", fmt.Errorf("failed to perform generate request: %w", err)
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		if resp.StatusCode() != fasthttp.StatusOK {
			return "", fmt.Errorf("generate request failed with status %d", resp.StatusCode())
		}
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		if result.Error != nil {
			return "", fmt.Errorf("generate request failed with status %d: %s", resp.StatusCode(), result.Error.Message)
		}
		return "", fmt.Errorf("generate request failed with status %d", resp.StatusCode())
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("generate response has no candidates")
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("generate response is empty")
	}
	return text, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(c.BaseURL, "/"), c.Model)
}

// do honours the context deadline, the transport has no timeout of its own.
func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return c.client.DoDeadline(req, resp, deadline)
	}
	return c.client.Do(req, resp)
}

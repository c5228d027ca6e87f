package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hub-assistant/internal/domain"
	"hub-assistant/internal/integrations/transport"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// chatRequest is the minimal request shape for the Chat Completions endpoint.
type chatRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
}

// chatResponse is the minimal response shape returned by the Chat Completions
// endpoint, success or error.
type chatResponse struct {
	Choices []struct {
		Index   int `json:"index"`
		Message *struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Code    json.RawMessage `json:"code"`
}

// Client is a focused OpenAI-compatible chat completions client.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if v := strings.TrimSpace(baseURL); v != "" {
			c.baseURL = v
		}
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if v := strings.TrimSpace(model); v != "" {
			c.model = v
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		model:      DefaultModel,
		httpClient: transport.NewHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Family() domain.Family {
	return domain.FamilyOpenAI
}

func chatURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// Payload encodes a chat-messages prompt. Output depends only on the prompt
// and the configured model.
func (c *Client) Payload(p domain.Prompt) ([]byte, error) {
	if p.Family != domain.FamilyOpenAI {
		return nil, fmt.Errorf("openai: unsupported prompt family %q", p.Family)
	}
	if len(p.Messages) == 0 {
		return nil, errors.New("openai: prompt has no messages")
	}
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: p.Messages})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}
	return body, nil
}

// Send posts the payload once with bearer authentication.
func (c *Client) Send(ctx context.Context, apiKey string, payload []byte) (domain.ProviderResponse, error) {
	url := chatURL(c.baseURL)
	header := http.Header{}
	header.Set("Authorization", "Bearer "+apiKey)
	return transport.PostJSON(ctx, c.httpClient, url, url, header, payload)
}

// ParseResponse maps a chat completions body to an Outcome. The answer lives
// at choices[0].message.content, errors at error.{code,message}.
func ParseResponse(body []byte) domain.Outcome {
	var payload chatResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.MalformedBody()
	}
	if len(payload.Choices) > 0 {
		if m := payload.Choices[0].Message; m != nil && m.Content != nil {
			return domain.Success(*m.Content)
		}
	}
	if e := payload.Error; e != nil {
		code := rawCode(e.Code)
		if code == "" {
			code = e.Type
		}
		if code != "" || e.Message != "" {
			return domain.ProviderError(code, e.Message)
		}
	}
	return domain.UnexpectedShape()
}

// rawCode renders a code that may be a string, a number, or null.
func rawCode(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

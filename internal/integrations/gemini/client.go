// Package gemini talks to the Generative Language generateContent endpoint,
// which takes one prompt blob and authenticates with a key query parameter.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hub-assistant/internal/domain"
	"hub-assistant/internal/integrations/transport"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

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
	return domain.FamilyGemini
}

func generateURL(baseURL, model string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if !strings.HasSuffix(base, "/v1beta") {
		base += "/v1beta"
	}
	return base + "/models/" + url.PathEscape(model) + ":generateContent"
}

// Payload encodes a prompt blob as a single-part content list.
func (c *Client) Payload(p domain.Prompt) ([]byte, error) {
	if p.Family != domain.FamilyGemini {
		return nil, fmt.Errorf("gemini: unsupported prompt family %q", p.Family)
	}
	if p.Text == "" {
		return nil, errors.New("gemini: prompt text is empty")
	}
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: p.Text}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}
	return body, nil
}

// Send posts the payload once with the key as a query parameter. The key is
// kept out of the URL reported in errors.
func (c *Client) Send(ctx context.Context, apiKey string, payload []byte) (domain.ProviderResponse, error) {
	endpoint := generateURL(c.baseURL, c.model)
	q := url.Values{}
	q.Set("key", apiKey)
	return transport.PostJSON(ctx, c.httpClient, endpoint+"?"+q.Encode(), endpoint, nil, payload)
}

// ParseResponse maps a generateContent body to an Outcome. The answer is the
// concatenated text of candidates[0].content.parts, errors live at
// error.{code,message}.
func ParseResponse(body []byte) domain.Outcome {
	var payload generateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.MalformedBody()
	}
	if len(payload.Candidates) > 0 && payload.Candidates[0].Content != nil {
		var (
			b     strings.Builder
			found bool
		)
		for _, p := range payload.Candidates[0].Content.Parts {
			if p.Text == nil {
				continue
			}
			found = true
			b.WriteString(*p.Text)
		}
		if found {
			return domain.Success(b.String())
		}
	}
	if e := payload.Error; e != nil && (e.Code != 0 || e.Message != "") {
		code := e.Status
		if e.Code != 0 {
			code = strconv.Itoa(e.Code)
		}
		return domain.ProviderError(code, e.Message)
	}
	return domain.UnexpectedShape()
}

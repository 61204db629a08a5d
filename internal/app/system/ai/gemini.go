// internal/app/system/ai/gemini.go
//
// Thin client for the Gemini generateContent REST API. Every entry point
// fails open: when the API is unreachable, misconfigured, or returns
// garbage, callers get a usable fallback instead of an error page.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	baseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.0-flash"

	// Placeholder imagery served when generation is unavailable.
	placeholderImage = "https://picsum.photos/800/600?random=%d"
)

// Client talks to Gemini. A zero API key is valid and puts the client in
// permanent fallback mode, which keeps local development keyless.
type Client struct {
	apiKey string
	model  string
	http   *http.Client
	log    *zap.Logger
}

func NewClient(apiKey, model string, logger *zap.Logger) *Client {
	if model == "" {
		model = defaultModel
	}
	if apiKey == "" {
		logger.Warn("gemini api key not set; ai features run in fallback mode")
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: 30 * time.Second},
		log:    logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Wire types                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| Operations                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// GenerateImage produces an image for the prompt and returns it as a URL
// or data URI. Unavailable generation yields a placeholder URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) string {
	if c.apiKey == "" {
		return placeholder()
	}
	uri, err := c.imageCall(ctx, []part{{Text: "Generate an image: " + prompt}})
	if err != nil {
		c.log.Warn("image generation failed, serving placeholder", zap.Error(err))
		return placeholder()
	}
	return uri
}

// EditImage applies an instruction to a base64-encoded source image.
func (c *Client) EditImage(ctx context.Context, imageB64, mimeType, instruction string) string {
	if c.apiKey == "" {
		return placeholder()
	}
	uri, err := c.imageCall(ctx, []part{
		{InlineData: &inlineData{MIMEType: mimeType, Data: imageB64}},
		{Text: instruction},
	})
	if err != nil {
		c.log.Warn("image edit failed, serving placeholder", zap.Error(err))
		return placeholder()
	}
	return uri
}

// Chat answers a conversational prompt. Unavailable generation yields a
// canned apology rather than an error.
func (c *Client) Chat(ctx context.Context, history []string, prompt string) string {
	const fallback = "The assistant is unavailable right now. Please try again later."
	if c.apiKey == "" {
		return fallback
	}

	req := generateRequest{}
	for i, msg := range history {
		role := "user"
		if i%2 == 1 {
			role = "model"
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: msg}}})
	}
	req.Contents = append(req.Contents, content{Role: "user", Parts: []part{{Text: prompt}}})

	resp, err := c.generate(ctx, req)
	if err != nil {
		c.log.Warn("assistant chat failed, serving fallback", zap.Error(err))
		return fallback
	}
	text := firstText(resp)
	if text == "" {
		return fallback
	}
	return text
}

// ValidateContent asks the model whether user text is acceptable for a
// community feed. It fails open: any API trouble counts as acceptable,
// because moderation outages must not block posting.
func (c *Client) ValidateContent(ctx context.Context, text string) bool {
	if c.apiKey == "" {
		return true
	}
	req := generateRequest{Contents: []content{{Role: "user", Parts: []part{{
		Text: "Answer with exactly ALLOW or BLOCK. Is the following community post acceptable (no hate speech, no explicit content, no harassment)?\n\n" + text,
	}}}}}

	resp, err := c.generate(ctx, req)
	if err != nil {
		c.log.Warn("content validation failed open", zap.Error(err))
		return true
	}
	verdict := strings.ToUpper(strings.TrimSpace(firstText(resp)))
	return !strings.HasPrefix(verdict, "BLOCK")
}

/*─────────────────────────────────────────────────────────────────────────────*
| Internals                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Client) generate(ctx context.Context, reqBody generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned %s", resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// imageCall runs generate and extracts inline image data as a data URI,
// or a bare URL if the model replied with one in text.
func (c *Client) imageCall(ctx context.Context, parts []part) (string, error) {
	resp, err := c.generate(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return "data:" + p.InlineData.MIMEType + ";base64," + p.InlineData.Data, nil
			}
		}
	}
	if text := firstText(resp); strings.HasPrefix(text, "http") {
		return strings.TrimSpace(text), nil
	}
	return "", fmt.Errorf("no image in response")
}

func firstText(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

func placeholder() string {
	return fmt.Sprintf(placeholderImage, rand.Intn(100000))
}

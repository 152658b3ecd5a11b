package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	perplexityModel  = "sonar"
	systemPrompt     = "You are an SEO content specialist. Rewrite the content you are given so it ranks well for the target keyword while staying natural and readable. Return only the rewritten content in Markdown."
	defaultSEOTarget = 70
)

// GenerationOptions tune a content generation request.
type GenerationOptions struct {
	ContentLength    int `json:"contentLength"`
	SEOOptimization  int `json:"seoOptimization"`
	ReadabilityLevel int `json:"readabilityLevel"`
}

// chatRequest is the Perplexity chat completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completions response we read.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// PerplexityClient generates SEO-optimized content through the Perplexity
// chat completions API. A client with an empty API key reports itself as
// not configured and must not be called.
type PerplexityClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string // overridable for tests
}

// NewPerplexityClient creates a Perplexity content generation client.
func NewPerplexityClient(httpClient *http.Client, apiKey, baseURL string) *PerplexityClient {
	if baseURL == "" {
		baseURL = "https://api.perplexity.ai"
	}
	return &PerplexityClient{httpClient: httpClient, apiKey: apiKey, baseURL: baseURL}
}

// Configured reports whether an API key is set.
func (c *PerplexityClient) Configured() bool {
	return c.apiKey != ""
}

// GenerateContent rewrites content for the target keyword and returns the
// optimized Markdown.
func (c *PerplexityClient) GenerateContent(ctx context.Context, content, targetKeyword string, opts GenerationOptions) (string, error) {
	if opts.SEOOptimization == 0 {
		opts.SEOOptimization = defaultSEOTarget
	}

	userPrompt := fmt.Sprintf(
		"Target keyword: %q\nContent length level: %d\nSEO optimization target: %d%%\nReadability level: %d\n\nContent to optimize:\n%s",
		targetKeyword, opts.ContentLength, opts.SEOOptimization, opts.ReadabilityLevel, content,
	)

	body, err := json.Marshal(chatRequest{
		Model: perplexityModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

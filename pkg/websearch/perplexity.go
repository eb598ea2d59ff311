package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PerplexityClient queries the Perplexity online model for a sourced answer.
type PerplexityClient struct {
	ApiKey string
	Model  string
	Client *http.Client
}

var _ Searcher = &PerplexityClient{}

func NewPerplexityClient(apiKey string) *PerplexityClient {
	return &PerplexityClient{
		ApiKey: apiKey,
		Model:  "sonar",
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *PerplexityClient) Name() string {
	return "perplexity"
}

func (p *PerplexityClient) Search(ctx context.Context, query, language string) (string, error) {
	if p.ApiKey == "" {
		return "", fmt.Errorf("perplexity: missing api key")
	}

	system := "Responda de forma objetiva e técnica, em português."
	if language == "en" {
		system = "Answer concisely and technically, in English."
	}

	payload := map[string]interface{}{
		"model": p.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": query},
		},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.perplexity.ai/chat/completions", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("perplexity request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("perplexity error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

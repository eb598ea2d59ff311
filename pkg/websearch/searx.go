package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SearxClient queries a self-hosted SearxNG instance's JSON API.
type SearxClient struct {
	BaseURL string
	Client  *http.Client
}

var _ Searcher = &SearxClient{}

func NewSearxClient(baseURL string) *SearxClient {
	return &SearxClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *SearxClient) Name() string {
	return "searx"
}

func (s *SearxClient) Search(ctx context.Context, query, language string) (string, error) {
	if s.BaseURL == "" {
		return "", fmt.Errorf("searx: missing base url")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("language", language)

	endpoint := fmt.Sprintf("%s/search?%s", s.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("searx request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("searx error: status %d", resp.StatusCode)
	}

	var parsed struct {
		Results []struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	// Summarize the top results into one block.
	var sb strings.Builder
	limit := 3
	for i, r := range parsed.Results {
		if i >= limit {
			break
		}
		if r.Content == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", r.Title, r.Content))
	}
	return strings.TrimSpace(sb.String()), nil
}

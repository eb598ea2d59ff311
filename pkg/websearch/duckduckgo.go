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

// DuckDuckGoClient uses the keyless Instant Answer API. Last resort in the
// chain: no credential required, but coverage is shallow.
type DuckDuckGoClient struct {
	Client *http.Client
}

var _ Searcher = &DuckDuckGoClient{}

func NewDuckDuckGoClient() *DuckDuckGoClient {
	return &DuckDuckGoClient{
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *DuckDuckGoClient) Name() string {
	return "duckduckgo"
}

func (d *DuckDuckGoClient) Search(ctx context.Context, query, language string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")

	endpoint := "https://api.duckduckgo.com/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("duckduckgo error: status %d", resp.StatusCode)
	}

	var parsed struct {
		AbstractText  string `json:"AbstractText"`
		RelatedTopics []struct {
			Text string `json:"Text"`
		} `json:"RelatedTopics"`
	}
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if parsed.AbstractText != "" {
		return parsed.AbstractText, nil
	}

	var sb strings.Builder
	limit := 3
	for i, t := range parsed.RelatedTopics {
		if i >= limit {
			break
		}
		if t.Text != "" {
			sb.WriteString(t.Text)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

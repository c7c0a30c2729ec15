// Package hosting queries the Green Web Foundation registry for whether a
// hostname is served from renewable-powered infrastructure.
package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.thegreenwebfoundation.org"

// Client is a greencheck API client.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type greencheckResponse struct {
	URL      string `json:"url"`
	HostedBy string `json:"hosted_by"`
	Green    bool   `json:"green"`
}

// IsGreen reports whether the registry lists hostname as green-hosted.
func (c *Client) IsGreen(ctx context.Context, hostname string) (bool, error) {
	endpoint := fmt.Sprintf("%s/api/v3/greencheck/%s", c.baseURL, url.PathEscape(hostname))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return false, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return false, fmt.Errorf("greencheck api error (status %d): %s", res.StatusCode, string(body))
	}

	var resp greencheckResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("unmarshal response failed: %w", err)
	}
	return resp.Green, nil
}

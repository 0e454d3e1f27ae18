// Package api fetches usage numbers from the Anthropic OAuth usage endpoint.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/quota"
)

const defaultBaseURL = "https://api.anthropic.com"

// usageResponse mirrors GET /api/oauth/usage. A window the endpoint does not
// report decodes as nil and stays absent from the snapshot.
type usageResponse struct {
	FiveHour     *usageWindow `json:"five_hour"`
	SevenDay     *usageWindow `json:"seven_day"`
	SevenDayOpus *usageWindow `json:"seven_day_opus"`
}

type usageWindow struct {
	Utilization float64    `json:"utilization"`
	ResetsAt    *time.Time `json:"resets_at"`
}

// Client talks to the usage endpoint with bearer-token auth. It implements
// quota.Fetcher.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client against the production endpoint.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

// FetchUsage performs one GET and converts the payload to a snapshot.
// A nil snapshot with nil error never occurs here; the refresh layer
// collapses the returned error to "no data".
func (c *Client) FetchUsage(ctx context.Context, token string) (*quota.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/oauth/usage", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("anthropic-beta", "oauth-2025-04-20")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ur usageResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return ur.snapshot(time.Now()), nil
}

// snapshot converts the wire payload into the immutable snapshot the view
// consumes.
func (r *usageResponse) snapshot(now time.Time) *quota.Snapshot {
	snap := &quota.Snapshot{
		Windows:   make(map[quota.WindowKey]quota.Window),
		FetchedAt: now,
	}
	add := func(key quota.WindowKey, w *usageWindow) {
		if w == nil {
			return
		}
		snap.Windows[key] = quota.Window{
			Utilization: clamp(w.Utilization),
			ResetsAt:    w.ResetsAt,
		}
	}
	add(quota.WindowFiveHour, r.FiveHour)
	add(quota.WindowSevenDay, r.SevenDay)
	add(quota.WindowSevenDayOpus, r.SevenDayOpus)
	return snap
}

func clamp(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

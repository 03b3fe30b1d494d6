// Package prayer fetches daily prayer times and works out which prayer is next.
package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dastanaron/tilawah/internal/models"
)

const (
	DefaultBaseURL = "https://api.aladhan.com/v1"

	// MethodISNA is the Islamic Society of North America calculation method
	MethodISNA = 2
)

// Client talks to the prayer-times provider
type Client struct {
	baseURL string
	method  int
	http    *http.Client
}

// NewClient creates a client using the ISNA method
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), method: MethodISNA, http: httpClient}
}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

// Timings fetches the prayer times for date at lat/lon
func (c *Client) Timings(ctx context.Context, lat, lon float64, date time.Time) (*models.PrayerTimeData, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("method", strconv.Itoa(c.method))
	u := fmt.Sprintf("%s/timings/%s?%s", c.baseURL, date.Format("02-01-2006"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prayer times: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch prayer times: unexpected status %s", resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode prayer times: %w", err)
	}
	if env.Code != http.StatusOK {
		// on errors the provider puts a message string in data
		var msg string
		if json.Unmarshal(env.Data, &msg) != nil || msg == "" {
			msg = "error from prayer times API"
		}
		return nil, fmt.Errorf("prayer times API: %s", msg)
	}

	var data models.PrayerTimeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode prayer times: %w", err)
	}
	return &data, nil
}

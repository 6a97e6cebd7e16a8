// Package geo consumes a Nominatim-compatible geocoding service for
// address search and reverse lookup.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Candidate is one address suggestion.
type Candidate struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) doJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("geo lookup %s -> %d: %s", rawURL, resp.StatusCode, string(b))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Search returns up to five address candidates for the given text.
// Terms shorter than three characters return nothing without querying.
func (c *Client) Search(ctx context.Context, text string) ([]Candidate, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < 3 {
		return nil, nil
	}

	u := fmt.Sprintf("%s/search?format=json&q=%s&limit=5&addressdetails=1",
		c.BaseURL, url.QueryEscape(text))

	var raw []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}
	if err := c.doJSON(ctx, u, &raw); err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(raw))
	for _, r := range raw {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		out = append(out, Candidate{Label: r.DisplayName, Lat: lat, Lng: lng})
	}

	return out, nil
}

// Reverse resolves coordinates to a display label.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	u := fmt.Sprintf("%s/reverse?format=json&lat=%v&lon=%v", c.BaseURL, lat, lng)

	var raw struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.doJSON(ctx, u, &raw); err != nil {
		return "", err
	}

	return raw.DisplayName, nil
}

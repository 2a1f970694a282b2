package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"tourism/composer"
)

// Nominatim ranks candidates itself; on top of that, prefer settlements
// over streets and POIs that happen to share the name.
var settlementTypes = map[string]bool{
	"city":         true,
	"town":         true,
	"village":      true,
	"locality":     true,
	"municipality": true,
	"suburb":       true,
}

func New(endpoint, userAgent string, timeout time.Duration) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(endpoint).
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent),
	}
}

type Client struct {
	client *resty.Client
}

// Resolve turns a free-text place name into coordinates and a display
// name via the Nominatim search endpoint. One attempt, no retries.
func (c *Client) Resolve(ctx context.Context, name string) (composer.Place, error) {
	response, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":               name,
			"format":          "jsonv2",
			"limit":           "5",
			"accept-language": "en",
		}).
		Get("/search")
	if err != nil {
		return composer.Place{}, fmt.Errorf("%w: geocoding %q: %v", composer.ErrUpstream, name, err)
	}

	if response.StatusCode() != 200 {
		return composer.Place{}, fmt.Errorf("%w: geocoding status code %d", composer.ErrUpstream, response.StatusCode())
	}

	type candidate struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
		AddressType string `json:"addresstype"`
	}

	candidates := make([]candidate, 0, 5)
	if err = json.Unmarshal(response.Body(), &candidates); err != nil {
		return composer.Place{}, fmt.Errorf("%w: geocoding response: %v", composer.ErrUpstream, err)
	}

	if len(candidates) == 0 {
		return composer.Place{}, composer.ErrNotFound
	}

	best := candidates[0]
	for i := range candidates {
		if settlementTypes[candidates[i].AddressType] {
			best = candidates[i]
			break
		}
	}

	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return composer.Place{}, fmt.Errorf("%w: geocoding latitude %q: %v", composer.ErrUpstream, best.Lat, err)
	}
	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return composer.Place{}, fmt.Errorf("%w: geocoding longitude %q: %v", composer.ErrUpstream, best.Lon, err)
	}

	return composer.Place{
		Name:        name,
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: best.DisplayName,
		AddressType: best.AddressType,
	}, nil
}

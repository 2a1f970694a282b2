package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"tourism/composer"
)

// Tags checked, in order, when labeling an attraction.
var categoryTags = []string{"tourism", "historic", "leisure", "natural", "amenity"}

func New(endpoint, userAgent string, timeout time.Duration, maxResults int) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(endpoint).
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent),
		maxResults: maxResults,
	}
}

type Client struct {
	client     *resty.Client
	maxResults int
}

// Nearby returns up to maxResults named points of interest around a
// coordinate pair. A dedicated attractions query runs first; a broader
// landmarks query tops the list up only if it came back short. Finding
// nothing is an empty slice, not an error.
func (c *Client) Nearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]composer.Attraction, error) {
	queries := []string{
		attractionsQuery(lat, lon, radiusMeters, c.maxResults),
		landmarksQuery(lat, lon, radiusMeters, c.maxResults),
	}

	seen := make(map[string]bool, c.maxResults)
	results := make([]composer.Attraction, 0, c.maxResults)

	var firstErr error
	for _, query := range queries {
		if len(results) >= c.maxResults {
			break
		}

		elements, err := c.run(ctx, query)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		for _, element := range elements {
			name := elementName(element.Tags)
			if name == "" || seen[strings.ToLower(name)] {
				continue
			}
			seen[strings.ToLower(name)] = true
			results = append(results, composer.Attraction{
				Name:     name,
				Category: elementCategory(element.Tags),
			})
			if len(results) >= c.maxResults {
				break
			}
		}
	}

	if len(results) == 0 && firstErr != nil {
		return nil, firstErr
	}

	return results, nil
}

type element struct {
	Tags map[string]string `json:"tags"`
}

func (c *Client) run(ctx context.Context, query string) ([]element, error) {
	response, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"data": query}).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("%w: places request: %v", composer.ErrUpstream, err)
	}

	if response.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: places status code %d", composer.ErrUpstream, response.StatusCode())
	}

	var result struct {
		Elements []element `json:"elements"`
	}

	if err = json.Unmarshal(response.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: places response: %v", composer.ErrUpstream, err)
	}

	return result.Elements, nil
}

// elementName prefers the English name, then the international one, then
// whatever the element is tagged with locally.
func elementName(tags map[string]string) string {
	for _, key := range []string{"name:en", "int_name", "name"} {
		name := strings.TrimSpace(tags[key])
		if name != "" && !strings.EqualFold(name, "unnamed") {
			return name
		}
	}
	return ""
}

func elementCategory(tags map[string]string) string {
	for _, key := range categoryTags {
		if value := strings.TrimSpace(tags[key]); value != "" {
			return strings.ReplaceAll(value, "_", " ")
		}
	}
	return "point of interest"
}

func attractionsQuery(lat, lon float64, radius, limit int) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["tourism"~"attraction|museum|viewpoint|zoo|gallery|theme_park|monument"](around:%[1]d,%[2]f,%[3]f);
  way["tourism"~"attraction|museum|viewpoint|zoo|gallery|theme_park|monument"](around:%[1]d,%[2]f,%[3]f);
  node["historic"~"castle|palace|ruins|monument|memorial|archaeological_site|fort"](around:%[1]d,%[2]f,%[3]f);
);
out body %[4]d;`, radius, lat, lon, limit)
}

func landmarksQuery(lat, lon float64, radius, limit int) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["leisure"~"park|garden|nature_reserve"](around:%[1]d,%[2]f,%[3]f);
  node["natural"~"peak|beach|waterfall|cliff"](around:%[1]d,%[2]f,%[3]f);
  node["amenity"~"place_of_worship|theatre|cinema|university|college"](around:%[1]d,%[2]f,%[3]f);
);
out body %[4]d;`, radius, lat, lon, limit)
}

package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"tourism/composer"
)

// WMO weather interpretation codes as documented by Open-Meteo.
var conditions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
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

// Current fetches current conditions for a coordinate pair. Unrecognized
// weather codes degrade to a generic description, not an error, since
// the temperature alone is still worth showing.
func (c *Client) Current(ctx context.Context, lat, lon float64) (composer.WeatherReport, error) {
	response, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":        strconv.FormatFloat(lat, 'f', 4, 64),
			"longitude":       strconv.FormatFloat(lon, 'f', 4, 64),
			"current_weather": "true",
		}).
		Get("/v1/forecast")
	if err != nil {
		return composer.WeatherReport{}, fmt.Errorf("%w: weather request: %v", composer.ErrUpstream, err)
	}

	if response.StatusCode() != 200 {
		return composer.WeatherReport{}, fmt.Errorf("%w: weather status code %d", composer.ErrUpstream, response.StatusCode())
	}

	var result struct {
		CurrentWeather *struct {
			Temperature float64 `json:"temperature"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}

	if err = json.Unmarshal(response.Body(), &result); err != nil {
		return composer.WeatherReport{}, fmt.Errorf("%w: weather response: %v", composer.ErrUpstream, err)
	}

	if result.CurrentWeather == nil {
		return composer.WeatherReport{}, fmt.Errorf("%w: weather response has no current_weather block", composer.ErrUpstream)
	}

	description, ok := conditions[result.CurrentWeather.WeatherCode]
	if !ok {
		description = "Unknown conditions"
	}

	return composer.WeatherReport{
		Description:  description,
		TemperatureC: result.CurrentWeather.Temperature,
	}, nil
}

package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by a Geocoder when the upstream service has
	// no match for the requested place name.
	ErrNotFound = errors.New("place not found")
	// ErrUpstream covers network failures, timeouts and malformed
	// responses from any of the external services.
	ErrUpstream = errors.New("upstream service failure")
)

type Geocoder interface {
	Resolve(ctx context.Context, name string) (Place, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (WeatherReport, error)
}

type PlacesProvider interface {
	Nearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]Attraction, error)
}

// Service is the contract both front ends consume.
type Service interface {
	Handle(ctx context.Context, raw string) (Summary, error)
}

type Place struct {
	Name        string
	Latitude    float64
	Longitude   float64
	DisplayName string
	AddressType string
}

type WeatherReport struct {
	Description  string
	TemperatureC float64
}

type Attraction struct {
	Name     string
	Category string
}

// Summary is the merged result for one query. Weather and Attractions
// are filled independently; nil means that upstream call failed or
// found nothing.
type Summary struct {
	Place       Place
	CapitalOf   string
	Weather     *WeatherReport
	Attractions []Attraction
}

// Headline is the location line shown by both front ends.
func (s Summary) Headline() string {
	if s.CapitalOf != "" {
		return fmt.Sprintf("%s (capital of %s)", s.Place.DisplayName, s.CapitalOf)
	}
	return s.Place.DisplayName
}

// ShortName is the leading segment of the display name, e.g. "Tokyo"
// out of "Tokyo, Japan".
func (s Summary) ShortName() string {
	name, _, _ := strings.Cut(s.Place.DisplayName, ",")
	return strings.TrimSpace(name)
}

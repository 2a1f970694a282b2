package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// Queries naming a whole country are answered for its capital (or the
// city the original picked where the capital is not the obvious tourist
// destination).
var countryCapitals = map[string]string{
	"egypt":          "Cairo",
	"india":          "New Delhi",
	"france":         "Paris",
	"italy":          "Rome",
	"spain":          "Madrid",
	"japan":          "Tokyo",
	"china":          "Beijing",
	"usa":            "New York",
	"united states":  "New York",
	"uk":             "London",
	"united kingdom": "London",
	"germany":        "Berlin",
	"australia":      "Sydney",
	"canada":         "Toronto",
	"brazil":         "Rio de Janeiro",
	"russia":         "Moscow",
	"thailand":       "Bangkok",
	"turkey":         "Istanbul",
	"greece":         "Athens",
	"mexico":         "Mexico City",
	"portugal":       "Lisbon",
	"netherlands":    "Amsterdam",
	"switzerland":    "Zurich",
	"austria":        "Vienna",
	"poland":         "Warsaw",
	"norway":         "Oslo",
	"sweden":         "Stockholm",
	"denmark":        "Copenhagen",
	"finland":        "Helsinki",
}

var regionTypes = map[string]bool{
	"country":  true,
	"state":    true,
	"province": true,
	"region":   true,
}

func New(geocoder Geocoder, weather WeatherProvider, places PlacesProvider, radiusMeters int) *Composer {
	return &Composer{
		geocoder: geocoder,
		weather:  weather,
		places:   places,
		radius:   radiusMeters,
	}
}

type Composer struct {
	geocoder Geocoder
	weather  WeatherProvider
	places   PlacesProvider
	radius   int
}

// Handle runs one query end to end: extract a place candidate, resolve
// it, then fetch weather and attractions for the resolved coordinates.
// Geocoding failures abort the query; weather and places failures only
// leave their section of the summary empty.
func (c *Composer) Handle(ctx context.Context, raw string) (Summary, error) {
	candidate := Extract(raw)
	if candidate == "" {
		return Summary{}, errors.New("couldn't determine the location from your query, please mention a place name")
	}

	lookup := candidate
	capitalOf := ""
	if capital, ok := countryCapitals[strings.ToLower(candidate)]; ok {
		lookup = capital
		capitalOf = titleCase(candidate)
	}

	place, err := c.geocoder.Resolve(ctx, lookup)
	switch {
	case errors.Is(err, ErrNotFound):
		return Summary{}, fmt.Errorf("couldn't find any information about %q, please check the spelling and try again", candidate)
	case err != nil:
		return Summary{}, errors.New("the location service is unreachable right now, please try again later")
	}

	if capitalOf == "" && regionTypes[place.AddressType] {
		return Summary{}, fmt.Errorf("%s is a large region, please name a specific city", candidate)
	}

	summary := Summary{Place: place, CapitalOf: capitalOf}

	// The two fetches only depend on the resolved place, so they run in
	// parallel. Each writes its own field; wg.Wait orders the reads.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		report, err := c.weather.Current(ctx, place.Latitude, place.Longitude)
		if err == nil {
			summary.Weather = &report
		}
	}()
	go func() {
		defer wg.Done()
		attractions, err := c.places.Nearby(ctx, place.Latitude, place.Longitude, c.radius)
		if err == nil {
			summary.Attractions = attractions
		}
	}()
	wg.Wait()

	return summary, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

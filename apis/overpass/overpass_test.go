package overpass

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourism/composer"
)

func newTestClient(t *testing.T, maxResults int, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "tourism-lookup/test", 2*time.Second, maxResults)
}

func TestNearbyReturnsNamedAttractions(t *testing.T) {
	client := newTestClient(t, 5, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		query := r.PostFormValue("data")
		assert.Contains(t, query, "around:10000")

		fmt.Fprint(w, `{"elements": [
  {"tags": {"name": "Tokyo Tower", "tourism": "attraction"}},
  {"tags": {"name:en": "Senso-ji", "name": "浅草寺", "amenity": "place_of_worship"}},
  {"tags": {"tourism": "museum"}},
  {"tags": {"name": "unnamed", "tourism": "viewpoint"}},
  {"tags": {"name": "Edo Castle", "historic": "castle"}}
]}`)
	})

	attractions, err := client.Nearby(context.Background(), 35.68, 139.76, 10000)
	require.NoError(t, err)
	require.Len(t, attractions, 3)
	assert.Equal(t, composer.Attraction{Name: "Tokyo Tower", Category: "attraction"}, attractions[0])
	assert.Equal(t, composer.Attraction{Name: "Senso-ji", Category: "place of worship"}, attractions[1])
	assert.Equal(t, composer.Attraction{Name: "Edo Castle", Category: "castle"}, attractions[2])
}

func TestNearbyCapsResults(t *testing.T) {
	client := newTestClient(t, 2, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"elements": [
  {"tags": {"name": "A", "tourism": "attraction"}},
  {"tags": {"name": "B", "tourism": "attraction"}},
  {"tags": {"name": "C", "tourism": "attraction"}}
]}`)
	})

	attractions, err := client.Nearby(context.Background(), 0, 0, 10000)
	require.NoError(t, err)
	assert.Len(t, attractions, 2)
}

func TestNearbyFallbackQueryTopsUp(t *testing.T) {
	var calls int
	client := newTestClient(t, 5, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		query := r.PostFormValue("data")
		if calls == 1 {
			assert.Contains(t, query, "tourism")
			fmt.Fprint(w, `{"elements": [{"tags": {"name": "City Museum", "tourism": "museum"}}]}`)
			return
		}
		assert.Contains(t, query, "leisure")
		fmt.Fprint(w, `{"elements": [
  {"tags": {"name": "City Museum", "leisure": "park"}},
  {"tags": {"name": "Central Park", "leisure": "park"}},
  {"tags": {"name": "Old Theatre", "amenity": "theatre"}}
]}`)
	})

	attractions, err := client.Nearby(context.Background(), 0, 0, 10000)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	names := make([]string, 0, len(attractions))
	for _, a := range attractions {
		names = append(names, a.Name)
	}
	// Duplicate from the fallback query is dropped case-insensitively.
	assert.Equal(t, []string{"City Museum", "Central Park", "Old Theatre"}, names)
}

func TestNearbySkipsFallbackWhenFull(t *testing.T) {
	var calls int
	client := newTestClient(t, 2, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"elements": [
  {"tags": {"name": "A", "tourism": "attraction"}},
  {"tags": {"name": "B", "tourism": "attraction"}}
]}`)
	})

	_, err := client.Nearby(context.Background(), 0, 0, 10000)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestNearbyNothingFoundIsEmptyNotError(t *testing.T) {
	client := newTestClient(t, 5, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"elements": []}`)
	})

	attractions, err := client.Nearby(context.Background(), 0, 0, 10000)
	require.NoError(t, err)
	assert.Empty(t, attractions)
}

func TestNearbyUpstreamFailure(t *testing.T) {
	client := newTestClient(t, 5, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	_, err := client.Nearby(context.Background(), 0, 0, 10000)
	assert.ErrorIs(t, err, composer.ErrUpstream)
}

func TestNearbyPrimaryFailureFallbackSuccess(t *testing.T) {
	var calls int
	client := newTestClient(t, 5, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"elements": [{"tags": {"name": "Central Park", "leisure": "park"}}]}`)
	})

	attractions, err := client.Nearby(context.Background(), 0, 0, 10000)
	require.NoError(t, err)
	require.Len(t, attractions, 1)
	assert.Equal(t, "Central Park", attractions[0].Name)
}

func TestQueriesEmbedRadiusAndCoordinates(t *testing.T) {
	query := attractionsQuery(35.68, 139.76, 5000, 5)
	assert.Contains(t, query, "around:5000,35.68")
	assert.Contains(t, query, "out body 5;")
	assert.True(t, strings.HasPrefix(query, "[out:json]"))
}

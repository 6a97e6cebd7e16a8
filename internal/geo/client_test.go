package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "10 rue de la paix", r.URL.Query().Get("q"))
		require.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name": "10, Rue de la Paix, Paris, France", "lat": "48.8692", "lon": "2.3310"},
			{"display_name": "Rue de la Paix, Lille, France", "lat": "bad", "lon": "3.0573"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	candidates, err := c.Search(context.Background(), "10 rue de la paix")
	require.NoError(t, err)

	// unparseable coordinates are skipped, not fatal
	require.Len(t, candidates, 1)
	require.Equal(t, "10, Rue de la Paix, Paris, France", candidates[0].Label)
	require.InDelta(t, 48.8692, candidates[0].Lat, 1e-6)
	require.InDelta(t, 2.3310, candidates[0].Lng, 1e-6)
}

func TestSearch_ShortTermNeverQueries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("the geocoding service must not be called for short terms")
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	for _, term := range []string{"", "ab", "  ab  "} {
		candidates, err := c.Search(context.Background(), term)
		require.NoError(t, err)
		require.Nil(t, candidates)
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.Search(context.Background(), "paris")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reverse", r.URL.Path)
		require.Equal(t, "48.8692", r.URL.Query().Get("lat"))
		require.Equal(t, "2.331", r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "10, Rue de la Paix, Paris, France"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	label, err := c.Reverse(context.Background(), 48.8692, 2.331)
	require.NoError(t, err)
	require.Equal(t, "10, Rue de la Paix, Paris, France", label)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("")

	require.Equal(t, DefaultBaseURL, c.BaseURL)
}

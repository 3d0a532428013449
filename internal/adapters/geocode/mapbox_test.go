package geocode_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotelmap/internal/adapters/geocode"
)

func TestGeocodeCity_BoundingBox(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []any{
				map[string]any{"bbox": []float64{2.2242, 48.8156, 2.4699, 48.9022}},
			},
		})
	}))
	defer ts.Close()

	cl := geocode.New(ts.URL, "tok")
	b, err := cl.GeocodeCity(context.Background(), "Paris", "FR")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.West != 2.2242 || b.South != 48.8156 || b.East != 2.4699 || b.North != 48.9022 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
	if !strings.HasSuffix(gotPath, "/Paris.json") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	for _, want := range []string{"country=FR", "types=place", "access_token=tok"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestGeocodeCity_NoFeatures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"features": []any{}})
	}))
	defer ts.Close()

	cl := geocode.New(ts.URL, "")
	_, err := cl.GeocodeCity(context.Background(), "Atlantis", "XX")
	if !errors.Is(err, geocode.ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestGeocodeCity_FeatureWithoutBBoxSkipped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []any{
				map[string]any{"center": []float64{2.35, 48.85}}, // no bbox
				map[string]any{"bbox": []float64{1, 2, 3, 4}},
			},
		})
	}))
	defer ts.Close()

	cl := geocode.New(ts.URL, "")
	b, err := cl.GeocodeCity(context.Background(), "Paris", "FR")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.West != 1 || b.South != 2 || b.East != 3 || b.North != 4 {
		t.Fatalf("expected first feature with a bbox, got %+v", b)
	}
}

func TestGeocodeCity_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
	}))
	defer ts.Close()

	cl := geocode.New(ts.URL, "bad")
	if _, err := cl.GeocodeCity(context.Background(), "Paris", "FR"); err == nil {
		t.Fatalf("expected error for 401")
	}
}

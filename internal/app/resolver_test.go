package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hotelmap/internal/app"
	"hotelmap/internal/domain"
)

func TestResolver_Place(t *testing.T) {
	client := &fakeClient{place: parisPlace()}
	r := app.NewResolver(client, &fakeGeocoder{})

	res, err := r.Resolve(context.Background(), domain.LocationSpec{
		PlaceID: &domain.PlaceReference{ID: "place-paris"},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Bounds == nil || res.Center != nil {
		t.Fatalf("expected bounds, got %+v", res)
	}
	if res.Bounds.South != 48.8156 || res.Bounds.North != 48.9022 ||
		res.Bounds.West != 2.2242 || res.Bounds.East != 2.4699 {
		t.Fatalf("unexpected bounds: %+v", res.Bounds)
	}
	if res.Locality.PlaceID != "place-paris" || res.Locality.CityName != "Paris" || res.Locality.CountryCode != "FR" {
		t.Fatalf("unexpected locality: %+v", res.Locality)
	}
}

func TestResolver_Place_MissingViewport(t *testing.T) {
	client := &fakeClient{place: domain.Place{
		Location: &domain.LatLng{Latitude: 48.8566, Longitude: 2.3522},
	}}
	r := app.NewResolver(client, &fakeGeocoder{})

	_, err := r.Resolve(context.Background(), domain.LocationSpec{
		PlaceID: &domain.PlaceReference{ID: "bad-place"},
	})
	var ipd *app.InvalidPlaceDataError
	if !errors.As(err, &ipd) {
		t.Fatalf("expected InvalidPlaceDataError, got %v", err)
	}
	if ipd.PlaceID != "bad-place" || !strings.Contains(err.Error(), "bad-place") {
		t.Fatalf("error must name the offending id: %v", err)
	}
}

func TestResolver_Place_MissingLocalityComponents(t *testing.T) {
	p := parisPlace()
	p.AddressComponents = nil
	client := &fakeClient{place: p}
	r := app.NewResolver(client, &fakeGeocoder{})

	res, err := r.Resolve(context.Background(), domain.LocationSpec{
		PlaceID: &domain.PlaceReference{ID: "p1"},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// search falls back to the place id alone
	if res.Locality.CityName != "" || res.Locality.CountryCode != "" || res.Locality.PlaceID != "p1" {
		t.Fatalf("unexpected locality: %+v", res.Locality)
	}
}

func TestResolver_Place_FetchErrorPropagates(t *testing.T) {
	boom := errors.New("place not found")
	r := app.NewResolver(&fakeClient{placeErr: boom}, &fakeGeocoder{})

	_, err := r.Resolve(context.Background(), domain.LocationSpec{
		PlaceID: &domain.PlaceReference{ID: "p1"},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
}

func TestResolver_City(t *testing.T) {
	geo := &fakeGeocoder{bounds: domain.BoundingBox{South: 1, West: 2, North: 3, East: 4}}
	r := app.NewResolver(&fakeClient{}, geo)

	res, err := r.Resolve(context.Background(), domain.LocationSpec{
		City: &domain.CityReference{Name: "Paris", CountryCode: "FR"},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Bounds == nil || *res.Bounds != geo.bounds {
		t.Fatalf("unexpected bounds: %+v", res.Bounds)
	}
	if res.Locality.CityName != "Paris" || res.Locality.CountryCode != "FR" || res.Locality.PlaceID != "" {
		t.Fatalf("unexpected locality: %+v", res.Locality)
	}
	if geo.lastName != "Paris" || geo.lastCountry != "FR" {
		t.Fatalf("geocoder called with %q %q", geo.lastName, geo.lastCountry)
	}
}

func TestResolver_City_GeocodeFailed(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("no feature")}
	r := app.NewResolver(&fakeClient{}, geo)

	_, err := r.Resolve(context.Background(), domain.LocationSpec{
		City: &domain.CityReference{Name: "Atlantis", CountryCode: "XX"},
	})
	var gf *app.GeocodeFailedError
	if !errors.As(err, &gf) {
		t.Fatalf("expected GeocodeFailedError, got %v", err)
	}
	if gf.City != "Atlantis" || gf.CountryCode != "XX" {
		t.Fatalf("error must name the city/country pair: %+v", gf)
	}
}

func TestResolver_City_CancellationNotWrapped(t *testing.T) {
	geo := &fakeGeocoder{err: context.Canceled}
	r := app.NewResolver(&fakeClient{}, geo)

	_, err := r.Resolve(context.Background(), domain.LocationSpec{
		City: &domain.CityReference{Name: "Paris", CountryCode: "FR"},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected raw cancellation, got %v", err)
	}
	var gf *app.GeocodeFailedError
	if errors.As(err, &gf) {
		t.Fatalf("cancellation must not be conflated with geocode failure")
	}
}

func TestResolver_Coordinates(t *testing.T) {
	client := &fakeClient{}
	geo := &fakeGeocoder{}
	r := app.NewResolver(client, geo)

	res, err := r.Resolve(context.Background(), domain.LocationSpec{
		Coordinates: &domain.CoordinateReference{Latitude: 40.7128, Longitude: -74.006},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Bounds != nil || res.Center == nil {
		t.Fatalf("expected center, got %+v", res)
	}
	if res.Center.Latitude != 40.7128 || res.Center.Longitude != -74.006 {
		t.Fatalf("unexpected center: %+v", res.Center)
	}
	if res.Center.Zoom >= 13 {
		t.Fatalf("coordinate zoom should be wider than a place view, got %v", res.Center.Zoom)
	}
	if res.Locality.Latitude == nil || *res.Locality.Latitude != 40.7128 {
		t.Fatalf("unexpected locality: %+v", res.Locality)
	}
	// no external calls for raw coordinates
	if client.placeCalls != 0 || geo.calls != 0 {
		t.Fatalf("coordinates must resolve without collaborator calls")
	}
}

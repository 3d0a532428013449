// Headless widget run against a configured proxy: initializes the map,
// logs the priced hotels that would be rendered, applies one optional
// config update, then tears down. Useful for smoke-testing the whole
// resolve-fetch-reconcile pipeline without a browser.
package main

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"hotelmap/internal/adapters/geocode"
	"hotelmap/internal/adapters/headless"
	"hotelmap/internal/adapters/liteapi"
	"hotelmap/internal/adapters/observability"
	"hotelmap/internal/app"
	"hotelmap/internal/domain"
)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	log.Logger = observability.NewLogger(env("APP_ENV", "dev"))
	observability.Serve(observability.InitRegistry())

	apiURL := env("WIDGET_API_URL", "http://localhost:3001")
	client, err := liteapi.New(apiURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize data client")
	}
	geo := geocode.New(
		env("GEOCODE_BASE_URL", "https://api.mapbox.com/geocoding/v5/mapbox.places"),
		os.Getenv("GEOCODE_TOKEN"),
	)
	surfaces := &headless.Provider{AutoReady: true}

	opts := app.Options{
		Selector: env("WIDGET_SELECTOR", "#map"),
		APIURL:   apiURL,
		Currency: os.Getenv("WIDGET_CURRENCY"),
	}
	switch {
	case os.Getenv("WIDGET_PLACE_ID") != "":
		opts.PlaceID = os.Getenv("WIDGET_PLACE_ID")
	case os.Getenv("WIDGET_CITY") != "":
		opts.City = &domain.CityReference{
			Name:        os.Getenv("WIDGET_CITY"),
			CountryCode: env("WIDGET_COUNTRY", "US"),
		}
	default:
		lat, _ := strconv.ParseFloat(env("WIDGET_LAT", "48.8566"), 64)
		lon, _ := strconv.ParseFloat(env("WIDGET_LON", "2.3522"), 64)
		opts.Coordinates = &domain.CoordinateReference{Latitude: lat, Longitude: lon}
	}

	widget, err := app.NewWidget(context.Background(), opts, app.Deps{
		Client:   client,
		Geocoder: geo,
		Surfaces: surfaces,
		Logger:   log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("widget init failed")
	}

	logMarkers(surfaces)

	if cur := os.Getenv("WIDGET_UPDATE_CURRENCY"); cur != "" {
		log.Info().Str("currency", cur).Msg("applying config update")
		widget.UpdateConfig(domain.ConfigPatch{Currency: &cur})
		logMarkers(surfaces)
	}

	widget.Destroy()
	log.Info().Msg("demo finished")
}

func logMarkers(p *headless.Provider) {
	s := p.Last()
	if s == nil {
		log.Warn().Msg("no surface was created")
		return
	}
	markers := s.Markers()
	log.Info().Int("count", len(markers)).Msg("rendered hotels")
	for _, m := range markers {
		log.Info().
			Str("hotel", m.Title).
			Float64("price", m.Price.Amount).
			Str("currency", m.Price.Currency).
			Str("booking", m.BookingURL).
			Msg("marker")
	}
}

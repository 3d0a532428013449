package app

import (
	"context"

	"hotelmap/internal/domain"
)

// Default zoom when only a center point is known: wider than a typical
// city view, since no bounds exist to fit.
const coordZoom = 10.0

// Resolver turns a LocationSpec into map bounds or a center point plus
// the locality parameters forwarded to hotel and rate queries. Variant
// exclusivity is enforced by the facade, not here.
type Resolver struct {
	client domain.DataClient
	geo    domain.Geocoder
}

func NewResolver(client domain.DataClient, geo domain.Geocoder) *Resolver {
	return &Resolver{client: client, geo: geo}
}

func (r *Resolver) Resolve(ctx context.Context, spec domain.LocationSpec) (domain.ResolvedLocation, error) {
	switch {
	case spec.PlaceID != nil:
		return r.resolvePlace(ctx, spec.PlaceID.ID)
	case spec.City != nil:
		return r.resolveCity(ctx, *spec.City)
	default:
		return resolveCoordinates(*spec.Coordinates), nil
	}
}

func (r *Resolver) resolvePlace(ctx context.Context, placeID string) (domain.ResolvedLocation, error) {
	place, err := r.client.FetchPlace(ctx, placeID)
	if err != nil {
		return domain.ResolvedLocation{}, err
	}
	if place.Viewport == nil {
		return domain.ResolvedLocation{}, &InvalidPlaceDataError{PlaceID: placeID}
	}

	loc := domain.LocalityParams{PlaceID: placeID}
	// Locality name and country are optional; when absent the search
	// relies on the place id alone.
	for _, c := range place.AddressComponents {
		for _, typ := range c.Types {
			switch typ {
			case "locality":
				if loc.CityName == "" {
					loc.CityName = c.LongText
				}
			case "country":
				if loc.CountryCode == "" {
					loc.CountryCode = c.ShortText
				}
			}
		}
	}

	return domain.ResolvedLocation{
		Bounds: &domain.BoundingBox{
			South: place.Viewport.Low.Latitude,
			West:  place.Viewport.Low.Longitude,
			North: place.Viewport.High.Latitude,
			East:  place.Viewport.High.Longitude,
		},
		Locality: loc,
	}, nil
}

func (r *Resolver) resolveCity(ctx context.Context, city domain.CityReference) (domain.ResolvedLocation, error) {
	bounds, err := r.geo.GeocodeCity(ctx, city.Name, city.CountryCode)
	if err != nil {
		if isCancelled(err) {
			return domain.ResolvedLocation{}, err
		}
		return domain.ResolvedLocation{}, &GeocodeFailedError{City: city.Name, CountryCode: city.CountryCode, Err: err}
	}
	return domain.ResolvedLocation{
		Bounds: &bounds,
		Locality: domain.LocalityParams{
			CityName:    city.Name,
			CountryCode: city.CountryCode,
		},
	}, nil
}

func resolveCoordinates(c domain.CoordinateReference) domain.ResolvedLocation {
	lat, lon := c.Latitude, c.Longitude
	return domain.ResolvedLocation{
		Center: &domain.Center{Latitude: lat, Longitude: lon, Zoom: coordZoom},
		Locality: domain.LocalityParams{
			Latitude:  &lat,
			Longitude: &lon,
		},
	}
}

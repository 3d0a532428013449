package domain

import "context"

// Place lookup response, already shape-checked at the data client edge.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Viewport struct {
	High LatLng `json:"high"`
	Low  LatLng `json:"low"`
}

type AddressComponent struct {
	Types     []string `json:"types"`
	LongText  string   `json:"longText"`
	ShortText string   `json:"shortText"`
}

type Place struct {
	Location          *LatLng            `json:"location,omitempty"`
	Viewport          *Viewport          `json:"viewport,omitempty"`
	AddressComponents []AddressComponent `json:"addressComponents,omitempty"`
}

// Occupancy is one room's guest composition.
type Occupancy struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children,omitempty"`
}

type HotelsQuery struct {
	Locality  LocalityParams
	Limit     int
	MinRating *float64
}

type RatesQuery struct {
	Occupancies      []Occupancy
	Checkin          string
	Checkout         string
	GuestNationality string
	Currency         string
	Locality         LocalityParams
	MaxRatesPerHotel int
	Limit            int
}

// DataClient is the backend-facing port. A cancelled call fails with the
// context's error, never with a fetch error, so callers can tell the two
// apart.
type DataClient interface {
	FetchPlace(ctx context.Context, placeID string) (Place, error)
	FetchHotels(ctx context.Context, q HotelsQuery) ([]HotelRecord, error)
	FetchRates(ctx context.Context, q RatesQuery) ([]RateQuote, error)
	FetchMapToken(ctx context.Context) (string, error)
}

// Geocoder resolves a city name + country code to a bounding box.
type Geocoder interface {
	GeocodeCity(ctx context.Context, name, countryCode string) (BoundingBox, error)
}

// SurfaceConfig describes the rendering surface to create.
type SurfaceConfig struct {
	Container string
	Token     string
	Bounds    *BoundingBox
	Center    *Center
}

// MarkerSpec is everything the surface needs to place one marker with
// its info popup.
type MarkerSpec struct {
	Latitude    float64
	Longitude   float64
	Title       string
	Stars       int
	GuestRating *float64
	Photo       string
	Price       Price
	BookingURL  string
}

type MarkerHandle interface {
	Remove()
}

// MapSurface is the rendering collaborator. Tile fetching and popup
// markup are its business; the adapter only drives lifecycle and markers.
type MapSurface interface {
	// OnReady registers a one-shot handler fired when the surface has
	// finished its initial load.
	OnReady(fn func())
	AddNavigation()
	AddMarker(m MarkerSpec) MarkerHandle
	Destroy()
}

// SurfaceProvider creates surfaces and answers whether a container
// target can be resolved, which the facade checks before constructing
// anything.
type SurfaceProvider interface {
	ContainerExists(selector string) bool
	Create(cfg SurfaceConfig) (MapSurface, error)
}

// Cache is the proxy-side response cache port.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

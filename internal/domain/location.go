package domain

// LocationSpec is the user-supplied location: exactly one of the three
// references must be populated. Enforcement happens in the widget facade.
type LocationSpec struct {
	PlaceID     *PlaceReference
	City        *CityReference
	Coordinates *CoordinateReference
}

type PlaceReference struct {
	ID string
}

type CityReference struct {
	Name        string
	CountryCode string // ISO-3166-1 alpha-2
}

type CoordinateReference struct {
	Latitude  float64
	Longitude float64
}

// Methods returns the names of the populated location variants, in a
// fixed order. Used by validation to report conflicts.
func (s LocationSpec) Methods() []string {
	var m []string
	if s.PlaceID != nil {
		m = append(m, "placeId")
	}
	if s.City != nil {
		m = append(m, "city")
	}
	if s.Coordinates != nil {
		m = append(m, "coordinates")
	}
	return m
}

// BoundingBox is a geographic rectangle.
type BoundingBox struct {
	South, West, North, East float64
}

// Center is a point plus the zoom to start the surface at.
type Center struct {
	Latitude  float64
	Longitude float64
	Zoom      float64
}

// LocalityParams scope hotel and rate queries downstream. Exactly one of
// the three groupings is set, mirroring the LocationSpec that produced it.
type LocalityParams struct {
	PlaceID     string
	CityName    string
	CountryCode string
	Latitude    *float64
	Longitude   *float64
}

// ResolvedLocation is the resolver's output: either Bounds or Center is
// set, plus the locality parameters to forward to the data client.
type ResolvedLocation struct {
	Bounds   *BoundingBox
	Center   *Center
	Locality LocalityParams
}

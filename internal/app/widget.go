package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"hotelmap/internal/domain"
	"hotelmap/internal/shared"
)

// Options is the externally-visible widget configuration. Exactly one of
// PlaceID / City / Coordinates must be set.
type Options struct {
	Selector string
	APIURL   string

	PlaceID     string
	City        *domain.CityReference
	Coordinates *domain.CoordinateReference

	Currency         string
	Adults           int
	ChildAges        []int
	GuestNationality string
	Checkin          string
	Checkout         string
	MinRating        *float64
	BookingDomain    string
}

// Deps are the collaborators the facade wires into the adapter.
type Deps struct {
	Client   domain.DataClient
	Geocoder domain.Geocoder
	Surfaces domain.SurfaceProvider
	Logger   zerolog.Logger
}

// Widget is the embeddable entry point. It validates construction input,
// owns the map adapter, and delegates config updates and teardown.
// All calls after Destroy are no-ops.
type Widget struct {
	mu        sync.Mutex
	adapter   *MapAdapter
	destroyed bool
}

// NewWidget validates the options, constructs the adapter and awaits its
// initialization. Any validation or initialization failure aborts the
// whole construction.
func NewWidget(ctx context.Context, opts Options, deps Deps) (*Widget, error) {
	if opts.Selector == "" {
		return nil, configErr("selector required")
	}
	if opts.APIURL == "" {
		return nil, configErr("apiUrl required")
	}

	spec := domain.LocationSpec{
		City:        opts.City,
		Coordinates: opts.Coordinates,
	}
	if opts.PlaceID != "" {
		spec.PlaceID = &domain.PlaceReference{ID: opts.PlaceID}
	}
	methods := spec.Methods()
	switch {
	case len(methods) == 0:
		return nil, configErr("location required")
	case len(methods) > 1:
		return nil, multipleLocationsErr(methods)
	}

	if !deps.Surfaces.ContainerExists(opts.Selector) {
		return nil, configErr("container not found")
	}

	params, err := effectiveParams(opts)
	if err != nil {
		return nil, err
	}

	adapter := NewMapAdapter(
		deps.Logger,
		deps.Client,
		deps.Geocoder,
		deps.Surfaces,
		opts.Selector,
		spec,
		params,
		opts.BookingDomain,
	)
	if err := adapter.Initialize(ctx); err != nil {
		return nil, err
	}
	return &Widget{adapter: adapter}, nil
}

// effectiveParams resolves the options against the defaults record.
func effectiveParams(opts Options) (domain.SearchParameters, error) {
	p := domain.SearchParameters{
		Currency:         domain.DefaultCurrency,
		Adults:           domain.DefaultAdults,
		GuestNationality: domain.DefaultNationality,
		Checkin:          shared.Today(),
		Checkout:         shared.Tomorrow(),
	}
	if opts.Currency != "" {
		p.Currency = opts.Currency
	}
	if opts.Adults != 0 {
		if opts.Adults < 1 {
			return domain.SearchParameters{}, configErr("adults must be at least 1")
		}
		p.Adults = opts.Adults
	}
	if len(opts.ChildAges) > 0 {
		p.ChildAges = opts.ChildAges
	}
	if opts.GuestNationality != "" {
		p.GuestNationality = opts.GuestNationality
	}
	if opts.MinRating != nil {
		if *opts.MinRating < 0 || *opts.MinRating > 10 {
			return domain.SearchParameters{}, configErr("minRating must be between 0 and 10")
		}
		p.MinRating = opts.MinRating
	}
	if opts.Checkin != "" {
		p.Checkin = opts.Checkin
	}
	if opts.Checkout != "" {
		p.Checkout = opts.Checkout
	}
	if !shared.ValidDateRange(p.Checkin, p.Checkout) {
		return domain.SearchParameters{}, configErr("checkout must be after checkin")
	}
	return p, nil
}

// UpdateConfig applies a partial parameter update and triggers exactly
// one reload, even for an empty patch. No-op once destroyed.
func (w *Widget) UpdateConfig(patch domain.ConfigPatch) {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	adapter := w.adapter
	w.mu.Unlock()
	adapter.UpdateConfig(patch)
}

// Destroy tears the session down. Calling it twice is safe.
func (w *Widget) Destroy() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	adapter := w.adapter
	w.mu.Unlock()
	adapter.Destroy()
}

// Params exposes the effective search parameters, mainly for callers
// that mirror widget state in their own UI.
func (w *Widget) Params() domain.SearchParameters {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return domain.SearchParameters{}
	}
	return w.adapter.Params()
}

package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"hotelmap/internal/adapters/observability"
	"hotelmap/internal/domain"
	"hotelmap/internal/shared"
)

// MapAdapter owns one map session: the rendering surface, the current
// search parameters, the rendered markers, and at most one in-flight
// hotel load. Starting a new load cancels the previous one before any
// network call is issued, so a slow earlier response can never overwrite
// newer markers.
type MapAdapter struct {
	log      zerolog.Logger
	client   domain.DataClient
	surfaces domain.SurfaceProvider
	resolver *Resolver

	selector      string
	location      domain.LocationSpec
	bookingDomain string

	sessionCtx    context.Context
	sessionCancel context.CancelFunc

	mu         sync.Mutex
	params     domain.SearchParameters
	mapToken   string // acquired once, cached for the session
	resolved   *domain.ResolvedLocation
	surface    domain.MapSurface
	markers    []domain.MarkerHandle
	cancelLoad context.CancelFunc
	generation uint64
	destroyed  bool
}

func NewMapAdapter(
	log zerolog.Logger,
	client domain.DataClient,
	geo domain.Geocoder,
	surfaces domain.SurfaceProvider,
	selector string,
	location domain.LocationSpec,
	params domain.SearchParameters,
	bookingDomain string,
) *MapAdapter {
	ctx, cancel := context.WithCancel(context.Background())
	return &MapAdapter{
		log:           observability.Component(log, "map_adapter"),
		client:        client,
		surfaces:      surfaces,
		resolver:      NewResolver(client, geo),
		selector:      selector,
		location:      location,
		bookingDomain: bookingDomain,
		sessionCtx:    ctx,
		sessionCancel: cancel,
		params:        params,
	}
}

// Initialize acquires the display token, resolves the location, creates
// the rendering surface and schedules the first hotel load for when the
// surface reports ready. Resolution failures propagate; there is no
// retry.
func (a *MapAdapter) Initialize(ctx context.Context) error {
	token, err := a.client.FetchMapToken(ctx)
	if err != nil {
		return err
	}
	res, err := a.resolver.Resolve(ctx, a.location)
	if err != nil {
		return err
	}

	surface, err := a.surfaces.Create(domain.SurfaceConfig{
		Container: a.selector,
		Token:     token,
		Bounds:    res.Bounds,
		Center:    res.Center,
	})
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.mapToken = token
	a.resolved = &res
	a.surface = surface
	a.mu.Unlock()

	surface.OnReady(func() { a.LoadHotels() })
	surface.AddNavigation()
	return nil
}

type loadSnapshot struct {
	params   domain.SearchParameters
	locality domain.LocalityParams
	surface  domain.MapSurface
}

// beginLoad invalidates any in-flight load and registers a new one. The
// previous load's context is cancelled synchronously, before the new
// load issues its first network call.
func (a *MapAdapter) beginLoad() (context.Context, uint64, loadSnapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed || a.surface == nil || a.resolved == nil {
		return nil, 0, loadSnapshot{}, false
	}
	if a.cancelLoad != nil {
		a.cancelLoad()
	}
	ctx, cancel := context.WithCancel(a.sessionCtx)
	a.cancelLoad = cancel
	a.generation++
	snap := loadSnapshot{
		params:   a.params,
		locality: a.resolved.Locality,
		surface:  a.surface,
	}
	return ctx, a.generation, snap, true
}

// LoadHotels runs one fetch-reconcile-render cycle. Hotel metadata and
// rates are fetched back-to-back under one cancellation context;
// reconciliation only proceeds when both succeed. Failures never
// propagate: a cancelled cycle exits silently, any other error is logged
// and the previously rendered markers stay untouched.
func (a *MapAdapter) LoadHotels() {
	ctx, gen, snap, ok := a.beginLoad()
	if !ok {
		return
	}

	hotels, err := a.client.FetchHotels(ctx, domain.HotelsQuery{
		Locality:  snap.locality,
		Limit:     domain.DefaultHotelLimit,
		MinRating: snap.params.MinRating,
	})
	if err != nil {
		a.loadFailed(err)
		return
	}

	occ := domain.Occupancy{Adults: snap.params.Adults}
	if len(snap.params.ChildAges) > 0 {
		occ.Children = snap.params.ChildAges
	}
	rates, err := a.client.FetchRates(ctx, domain.RatesQuery{
		Occupancies:      []domain.Occupancy{occ},
		Checkin:          snap.params.Checkin,
		Checkout:         snap.params.Checkout,
		GuestNationality: snap.params.GuestNationality,
		Currency:         snap.params.Currency,
		Locality:         snap.locality,
		MaxRatesPerHotel: 1,
		Limit:            domain.DefaultHotelLimit,
	})
	if err != nil {
		a.loadFailed(err)
		return
	}

	a.render(ctx, gen, Reconcile(hotels, rates), snap)
}

func (a *MapAdapter) loadFailed(err error) {
	if isCancelled(err) {
		observability.ObserveLoad("cancelled")
		a.log.Debug().Msg("hotel load superseded")
		return
	}
	observability.ObserveLoad("error")
	a.log.Error().Err(err).Msg("hotel load failed, keeping previous markers")
}

// render swaps the marker set, unless this load has been superseded or
// the session destroyed in the meantime.
func (a *MapAdapter) render(ctx context.Context, gen uint64, priced []domain.PricedHotel, snap loadSnapshot) {
	a.mu.Lock()
	if a.destroyed || gen != a.generation || ctx.Err() != nil {
		a.mu.Unlock()
		observability.ObserveLoad("cancelled")
		a.log.Debug().Msg("hotel load superseded before render")
		return
	}

	for _, m := range a.markers {
		m.Remove()
	}
	a.markers = a.markers[:0]
	for _, h := range priced {
		booking := shared.BuildBookingURL(shared.DeepLinkParams{
			HotelID:       h.ID,
			Checkin:       snap.params.Checkin,
			Checkout:      snap.params.Checkout,
			Adults:        snap.params.Adults,
			Children:      snap.params.ChildAges,
			Currency:      snap.params.Currency,
			BookingDomain: a.bookingDomain,
		})
		a.markers = append(a.markers, snap.surface.AddMarker(domain.MarkerSpec{
			Latitude:    h.Latitude,
			Longitude:   h.Longitude,
			Title:       h.Name,
			Stars:       h.Stars,
			GuestRating: h.GuestRating,
			Photo:       h.Photo,
			Price:       h.Price,
			BookingURL:  booking,
		}))
	}
	count := len(a.markers)
	a.mu.Unlock()

	observability.MarkersRendered.Set(float64(count))
	observability.ObserveLoad("ok")
	a.log.Info().Int("markers", count).Msg("hotels rendered")
}

// UpdateConfig shallow-merges the patch into the search parameters and
// reloads unconditionally. An empty patch still triggers exactly one
// reload; callers rely on that for manual refresh.
func (a *MapAdapter) UpdateConfig(patch domain.ConfigPatch) {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.params = a.params.Merge(patch)
	a.mu.Unlock()
	a.LoadHotels()
}

// Params returns a snapshot of the current search parameters.
func (a *MapAdapter) Params() domain.SearchParameters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.params
}

// Destroy cancels any in-flight load, removes markers and tears down
// the surface. Safe to call more than once.
func (a *MapAdapter) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	if a.cancelLoad != nil {
		a.cancelLoad()
	}
	a.sessionCancel()
	for _, m := range a.markers {
		m.Remove()
	}
	a.markers = nil
	surface := a.surface
	a.surface = nil
	a.resolved = nil // drop cached locality params
	a.mu.Unlock()

	if surface != nil {
		surface.Destroy()
	}
	observability.MarkersRendered.Set(0)
	a.log.Info().Msg("map session destroyed")
}

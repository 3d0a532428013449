package app_test

import (
	"context"
	"errors"
	"sync"

	"hotelmap/internal/domain"
)

var errContextless = errors.New("upstream exploded")

// ---- fakes ----

type fakeClient struct {
	mu sync.Mutex

	place    domain.Place
	placeErr error

	hotels    []domain.HotelRecord
	hotelsErr error

	rates    []domain.RateQuote
	ratesErr error
	// ratesByCall overrides rates per FetchRates invocation (1-based).
	ratesByCall map[int][]domain.RateQuote
	// ratesRelease, when set for a call number, blocks that FetchRates
	// until the channel is closed. The call ignores its context so the
	// result still arrives after cancellation.
	ratesRelease map[int]chan struct{}

	token    string
	tokenErr error

	placeCalls  int
	hotelsCalls int
	ratesCalls  int

	lastHotelsQuery domain.HotelsQuery
	lastRatesQuery  domain.RatesQuery
}

func (f *fakeClient) FetchPlace(ctx context.Context, placeID string) (domain.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placeCalls++
	if f.placeErr != nil {
		return domain.Place{}, f.placeErr
	}
	return f.place, nil
}

func (f *fakeClient) FetchHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.HotelRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hotelsCalls++
	f.lastHotelsQuery = q
	if f.hotelsErr != nil {
		return nil, f.hotelsErr
	}
	return f.hotels, nil
}

func (f *fakeClient) FetchRates(ctx context.Context, q domain.RatesQuery) ([]domain.RateQuote, error) {
	f.mu.Lock()
	f.ratesCalls++
	call := f.ratesCalls
	f.lastRatesQuery = q
	release := f.ratesRelease[call]
	err := f.ratesErr
	out := f.rates
	if byCall, ok := f.ratesByCall[call]; ok {
		out = byCall
	}
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeClient) FetchMapToken(ctx context.Context) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	if f.token == "" {
		return "test-token", nil
	}
	return f.token, nil
}

func (f *fakeClient) counts() (hotels, rates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hotelsCalls, f.ratesCalls
}

type fakeGeocoder struct {
	bounds domain.BoundingBox
	err    error

	calls       int
	lastName    string
	lastCountry string
}

func (g *fakeGeocoder) GeocodeCity(ctx context.Context, name, countryCode string) (domain.BoundingBox, error) {
	g.calls++
	g.lastName = name
	g.lastCountry = countryCode
	if g.err != nil {
		return domain.BoundingBox{}, g.err
	}
	return g.bounds, nil
}

// ---- fixtures ----

func parisPlace() domain.Place {
	return domain.Place{
		Location: &domain.LatLng{Latitude: 48.8566, Longitude: 2.3522},
		Viewport: &domain.Viewport{
			High: domain.LatLng{Latitude: 48.9022, Longitude: 2.4699},
			Low:  domain.LatLng{Latitude: 48.8156, Longitude: 2.2242},
		},
		AddressComponents: []domain.AddressComponent{
			{Types: []string{"locality"}, LongText: "Paris"},
			{Types: []string{"country"}, ShortText: "FR", LongText: "France"},
		},
	}
}

func hotel(id, name string) domain.HotelRecord {
	return domain.HotelRecord{ID: id, Name: name, Latitude: 48.8566, Longitude: 2.3522, Stars: 4}
}

func quote(hotelID string, amount float64, currency string) domain.RateQuote {
	return domain.RateQuote{
		HotelID: hotelID,
		RoomTypes: []domain.RoomRate{
			{SuggestedSellingPrice: &domain.Price{Amount: amount, Currency: currency}},
		},
	}
}

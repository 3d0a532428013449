package liteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hotelmap/internal/adapters/observability"
	"hotelmap/internal/domain"
)

// Client talks to the widget backend (the proxy in front of the travel
// data provider). One network call per operation, no retries; a slow or
// failed call is superseded by the next load cycle instead.
type Client struct {
	base string
	hc   *http.Client
}

func New(base string) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
	}, nil
}

type placeEnvelope struct {
	Data domain.Place `json:"data"`
}

type hotelsEnvelope struct {
	Data []domain.HotelRecord `json:"data"`
}

type ratesEnvelope struct {
	Data []domain.RateQuote `json:"data"`
}

type tokenEnvelope struct {
	Token string `json:"token"`
}

func (c *Client) FetchPlace(ctx context.Context, placeID string) (domain.Place, error) {
	var env placeEnvelope
	op := fmt.Sprintf("place %q", placeID)
	u := c.base + "/api/places/" + url.PathEscape(placeID)
	if err := c.getJSON(ctx, op, u, &env); err != nil {
		return domain.Place{}, err
	}
	return env.Data, nil
}

func (c *Client) FetchHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.HotelRecord, error) {
	v := url.Values{}
	encodeLocality(v, q.Locality)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.MinRating != nil {
		v.Set("minRating", strconv.FormatFloat(*q.MinRating, 'f', -1, 64))
	}
	var env hotelsEnvelope
	if err := c.getJSON(ctx, "hotels", c.base+"/api/hotels?"+v.Encode(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) FetchRates(ctx context.Context, q domain.RatesQuery) ([]domain.RateQuote, error) {
	body := map[string]any{
		"occupancies":      q.Occupancies,
		"checkin":          q.Checkin,
		"checkout":         q.Checkout,
		"guestNationality": q.GuestNationality,
		"currency":         q.Currency,
		"maxRatesPerHotel": q.MaxRatesPerHotel,
		"limit":            q.Limit,
	}
	switch {
	case q.Locality.PlaceID != "":
		body["placeId"] = q.Locality.PlaceID
	case q.Locality.CityName != "" || q.Locality.CountryCode != "":
		body["cityName"] = q.Locality.CityName
		body["countryCode"] = q.Locality.CountryCode
	case q.Locality.Latitude != nil && q.Locality.Longitude != nil:
		body["latitude"] = *q.Locality.Latitude
		body["longitude"] = *q.Locality.Longitude
	}

	var env ratesEnvelope
	if err := c.postJSON(ctx, "rates", c.base+"/api/hotels/rates", body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) FetchMapToken(ctx context.Context) (string, error) {
	var env tokenEnvelope
	if err := c.getJSON(ctx, "map token", c.base+"/api/map-token", &env); err != nil {
		return "", err
	}
	if env.Token == "" {
		return "", &RemoteFetchError{Op: "map token", Status: http.StatusOK, Message: "token missing from response"}
	}
	return env.Token, nil
}

func encodeLocality(v url.Values, loc domain.LocalityParams) {
	switch {
	case loc.PlaceID != "":
		v.Set("placeId", loc.PlaceID)
	case loc.CityName != "" || loc.CountryCode != "":
		if loc.CityName != "" {
			v.Set("cityName", loc.CityName)
		}
		if loc.CountryCode != "" {
			v.Set("countryCode", loc.CountryCode)
		}
	case loc.Latitude != nil && loc.Longitude != nil:
		v.Set("latitude", strconv.FormatFloat(*loc.Latitude, 'f', -1, 64))
		v.Set("longitude", strconv.FormatFloat(*loc.Longitude, 'f', -1, 64))
	}
}

func (c *Client) getJSON(ctx context.Context, op, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(op, req, out)
}

func (c *Client) postJSON(ctx context.Context, op, u string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		// Cancellation must surface as the context error, not as a
		// fetch error, so the adapter can ignore it silently.
		if cerr := req.Context().Err(); cerr != nil {
			return cerr
		}
		observability.ObserveExternal("backend", op, 0, time.Since(start))
		return &RemoteFetchError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("backend", op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteFetchError{Op: op, Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// errorMessage extracts the body's "error" or "message" field, falling
// back to "HTTP <status>: <status text>".
func errorMessage(resp *http.Response) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hotelmap/internal/adapters/observability"
	"hotelmap/internal/domain"
)

// ErrNoResult means the geocoder answered but produced no feature with
// a bounding box for the query.
var ErrNoResult = errors.New("geocode: no feature with a bounding box")

// Client is a forward-geocoding client against a Mapbox-style endpoint:
// GET {base}/{query}.json?country={cc}&types=place&access_token={token}
// responding {"features":[{"bbox":[west,south,east,north], ...}, ...]}.
type Client struct {
	base  string
	token string
	hc    *http.Client
}

func New(base, token string) *Client {
	return &Client{
		base:  base,
		token: token,
		hc:    &http.Client{Timeout: 15 * time.Second},
	}
}

type feature struct {
	BBox []float64 `json:"bbox"`
}

type response struct {
	Features []feature `json:"features"`
}

func (c *Client) GeocodeCity(ctx context.Context, name, countryCode string) (domain.BoundingBox, error) {
	q := url.Values{}
	q.Set("country", countryCode)
	q.Set("types", "place")
	q.Set("limit", "1")
	if c.token != "" {
		q.Set("access_token", c.token)
	}
	u := fmt.Sprintf("%s/%s.json?%s", c.base, url.PathEscape(name), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.BoundingBox{}, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return domain.BoundingBox{}, cerr
		}
		observability.ObserveExternal("geocode", "forward", 0, time.Since(start))
		return domain.BoundingBox{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("geocode", "forward", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return domain.BoundingBox{}, fmt.Errorf("geocode: HTTP %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.BoundingBox{}, err
	}
	for _, f := range out.Features {
		if len(f.BBox) == 4 {
			return domain.BoundingBox{
				West:  f.BBox[0],
				South: f.BBox[1],
				East:  f.BBox[2],
				North: f.BBox[3],
			}, nil
		}
	}
	return domain.BoundingBox{}, ErrNoResult
}

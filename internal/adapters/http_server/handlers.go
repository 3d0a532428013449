package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"hotelmap/internal/adapters/upstream"
	"hotelmap/internal/domain"
)

// Forwarder is the upstream pass-through the handlers delegate to.
type Forwarder interface {
	Get(ctx context.Context, path string, query url.Values) (*upstream.Response, error)
	Post(ctx context.Context, path string, body []byte) (*upstream.Response, error)
}

// Handlers implement the widget-facing API surface. Upstream status
// codes and error bodies pass through unchanged; only transport-level
// failures produce proxy-originated errors.
type Handlers struct {
	Upstream Forwarder
	Cache    domain.Cache // nil disables caching
	MapToken string
	CacheTTL time.Duration

	sf singleflight.Group
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/places/{placeId}", h.getPlace)
	s.mux.Get("/api/hotels", h.getHotels)
	s.mux.Post("/api/hotels/rates", h.postRates)
	s.mux.Get("/api/map-token", h.getMapToken)
}

// cachedResponse is what gets stored in redis for GET lookups.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeId")
	h.cached(w, r, "place:"+placeID, "failed to fetch place data", func(ctx context.Context) (*upstream.Response, error) {
		return h.Upstream.Get(ctx, "/data/places/"+url.PathEscape(placeID), nil)
	})
}

func (h *Handlers) getHotels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	// Encode() sorts keys, so equivalent queries share one cache entry.
	h.cached(w, r, "hotels:"+query.Encode(), "failed to fetch hotels", func(ctx context.Context) (*upstream.Response, error) {
		return h.Upstream.Get(ctx, "/data/hotels", query)
	})
}

func (h *Handlers) postRates(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}
	resp, err := h.Upstream.Post(r.Context(), "/hotels/rates", body)
	if err != nil {
		log.Error().Err(err).Msg("rates upstream failed")
		writeError(w, http.StatusBadGateway, "failed to fetch rates")
		return
	}
	writeUpstream(w, resp)
}

func (h *Handlers) getMapToken(w http.ResponseWriter, r *http.Request) {
	if h.MapToken == "" {
		writeError(w, http.StatusServiceUnavailable, "map token not configured")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": h.MapToken})
}

// cached serves a GET lookup through the response cache, collapsing
// concurrent misses for the same key into one upstream call. Only 2xx
// responses are stored.
func (h *Handlers) cached(w http.ResponseWriter, r *http.Request, key, failMsg string, fetch func(context.Context) (*upstream.Response, error)) {
	if h.Cache != nil {
		var hit cachedResponse
		if ok, err := h.Cache.Get(r.Context(), key, &hit); err == nil && ok {
			writeUpstream(w, &upstream.Response{Status: hit.Status, ContentType: hit.ContentType, Body: hit.Body})
			return
		}
	}

	v, err, _ := h.sf.Do(key, func() (any, error) {
		resp, err := fetch(r.Context())
		if err != nil {
			return nil, err
		}
		if h.Cache != nil && resp.Status >= 200 && resp.Status < 300 {
			_ = h.Cache.Set(r.Context(), key, cachedResponse{
				Status:      resp.Status,
				ContentType: resp.ContentType,
				Body:        resp.Body,
			}, int(h.CacheTTL.Seconds()))
		}
		return resp, nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("upstream fetch failed")
		writeError(w, http.StatusBadGateway, failMsg)
		return
	}
	writeUpstream(w, v.(*upstream.Response))
}

func writeUpstream(w http.ResponseWriter, resp *upstream.Response) {
	ct := resp.ContentType
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		log.Error().Err(err).Msg("failed to write upstream body")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Error().Err(err).Msg("failed to write error response")
	}
}

// Package headless is an in-process rendering surface. It draws nothing;
// it records the markers the adapter places so that the demo binary and
// tests can observe what would have been rendered.
package headless

import (
	"fmt"
	"sync"

	"hotelmap/internal/domain"
)

type Provider struct {
	// Containers lists resolvable selectors. A nil map resolves
	// everything, which is what the demo wants.
	Containers map[string]bool
	// AutoReady fires the surface's ready handlers as soon as one is
	// registered, mimicking an instantly-loaded map.
	AutoReady bool

	mu   sync.Mutex
	last *Surface
}

func (p *Provider) ContainerExists(selector string) bool {
	if p.Containers == nil {
		return selector != ""
	}
	return p.Containers[selector]
}

func (p *Provider) Create(cfg domain.SurfaceConfig) (domain.MapSurface, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("surface: display token required")
	}
	s := &Surface{cfg: cfg, autoReady: p.AutoReady}
	p.mu.Lock()
	p.last = s
	p.mu.Unlock()
	return s, nil
}

// Last returns the most recently created surface.
func (p *Provider) Last() *Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

type Surface struct {
	mu        sync.Mutex
	cfg       domain.SurfaceConfig
	autoReady bool
	ready     bool
	readyFns  []func()
	markers   []*marker
	nav       bool
	destroyed bool
}

type marker struct {
	spec    domain.MarkerSpec
	surface *Surface
}

func (m *marker) Remove() {
	s := m.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.markers {
		if cur == m {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			return
		}
	}
}

func (s *Surface) OnReady(fn func()) {
	s.mu.Lock()
	if s.ready || s.autoReady {
		s.ready = true
		s.mu.Unlock()
		fn()
		return
	}
	s.readyFns = append(s.readyFns, fn)
	s.mu.Unlock()
}

// FireReady marks the surface loaded and runs pending ready handlers,
// each at most once.
func (s *Surface) FireReady() {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return
	}
	s.ready = true
	fns := s.readyFns
	s.readyFns = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Surface) AddNavigation() {
	s.mu.Lock()
	s.nav = true
	s.mu.Unlock()
}

func (s *Surface) AddMarker(spec domain.MarkerSpec) domain.MarkerHandle {
	m := &marker{spec: spec, surface: s}
	s.mu.Lock()
	s.markers = append(s.markers, m)
	s.mu.Unlock()
	return m
}

func (s *Surface) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.markers = nil
	s.mu.Unlock()
}

// Markers snapshots the specs currently on the surface, in placement order.
func (s *Surface) Markers() []domain.MarkerSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MarkerSpec, len(s.markers))
	for i, m := range s.markers {
		out[i] = m.spec
	}
	return out
}

func (s *Surface) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

func (s *Surface) Config() domain.SurfaceConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Surface) HasNavigation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

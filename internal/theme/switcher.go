package theme

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/studymate/internal/logging"
)

// Store persists the theme preference.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Selector is an optional control that displays the current theme.
type Selector interface {
	SetTheme(t Theme)
}

// Switcher loads, applies and persists the theme for one session.
type Switcher struct {
	store    Store
	key      string
	fallback Theme
	markers  *Markers
	logger   *zap.Logger

	mu       sync.Mutex
	selector Selector
	current  Theme
	palette  Palette
}

// NewSwitcher returns a switcher that applies themes to markers and persists
// them under key. fallback is used when nothing is stored; an invalid
// fallback means Default.
func NewSwitcher(store Store, key string, fallback Theme, markers *Markers, logger *zap.Logger) *Switcher {
	if _, err := Parse(string(fallback)); err != nil {
		fallback = Default
	}
	if markers == nil {
		markers = NewMarkers()
	}
	return &Switcher{
		store:    store,
		key:      key,
		fallback: fallback,
		markers:  markers,
		logger:   logging.OrNop(logger).Named("theme"),
		current:  fallback,
		palette:  PaletteFor(fallback),
	}
}

// Attach connects a selection control. It immediately reflects the current
// theme.
func (s *Switcher) Attach(sel Selector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selector = sel
	if sel != nil {
		sel.SetTheme(s.current)
	}
}

// Load reads the stored preference and applies it. Unreadable or unknown
// stored values fall back to the default.
func (s *Switcher) Load(ctx context.Context) Theme {
	t := s.fallback
	stored, ok, err := s.store.Get(ctx, s.key)
	switch {
	case err != nil:
		s.logger.Warn("reading theme preference", zap.String("key", s.key), zap.Error(err))
	case ok:
		parsed, perr := Parse(stored)
		if perr != nil {
			s.logger.Warn("ignoring stored theme", zap.String("value", stored))
		} else {
			t = parsed
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(t)
	return t
}

// Select applies the named theme and persists it. The theme stays applied
// even when persisting fails.
func (s *Switcher) Select(ctx context.Context, name string) (Theme, error) {
	t, err := Parse(name)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.apply(t)
	s.mu.Unlock()

	if err := s.store.Set(ctx, s.key, string(t)); err != nil {
		s.logger.Error("saving theme preference", zap.String("theme", string(t)), zap.Error(err))
		return t, fmt.Errorf("saving theme: %w", err)
	}
	s.logger.Debug("theme selected", zap.String("theme", string(t)))
	return t, nil
}

// Cycle selects the theme after the current one.
func (s *Switcher) Cycle(ctx context.Context) (Theme, error) {
	return s.Select(ctx, string(s.Current().Next()))
}

// Current returns the applied theme.
func (s *Switcher) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Palette returns the applied theme's palette.
func (s *Switcher) Palette() Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palette
}

// Markers returns the rendering scope the switcher writes to.
func (s *Switcher) Markers() *Markers { return s.markers }

// apply must be called with mu held.
func (s *Switcher) apply(t Theme) {
	Apply(s.markers, t)
	s.current = t
	s.palette = PaletteFor(t)
	if s.selector != nil {
		s.selector.SetTheme(t)
	}
}

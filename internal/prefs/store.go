// Package prefs persists reader settings as a single record under a fixed
// key. Loading is tolerant: every field is validated on its own and an
// invalid field falls back to its default without discarding the others.
// Neither Load nor Save ever returns an error to the caller.
package prefs

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"sync/atomic"

	domainerrors "github.com/justyntemme/inkreader/internal/errors"
	"github.com/justyntemme/inkreader/internal/logger"
)

// StorageKey is the key the settings record is stored under.
const StorageKey = "cloud-ink-reader-settings"

// Settings is the persisted snapshot of reader state.
type Settings struct {
	ThemeIndex      int         `json:"themeIndex"`
	FontScale       float64     `json:"fontScale"`
	LineHeightScale float64     `json:"lineHeightScale"`
	WidthScale      float64     `json:"widthScale"`
	CurrentChapter  int         `json:"currentChapter"`
	Progress        map[int]int `json:"progress"`
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	out := s
	out.Progress = make(map[int]int, len(s.Progress))
	for k, v := range s.Progress {
		out.Progress[k] = v
	}
	return out
}

// Range is a closed numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Limits are the accepted bounds for each persisted field.
type Limits struct {
	ThemeCount int
	Font       Range
	LineHeight Range
	Width      Range
}

// Backend is a raw key/value persistence mechanism. Get returns an error
// matching errors.ErrNotFound when the key is absent.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store reads and writes Settings through a Backend.
type Store struct {
	backend Backend
	limits  Limits
	logger  *logger.Logger
	writes  atomic.Int64
}

// NewStore creates a store over backend, validating loads against limits.
func NewStore(backend Backend, limits Limits, l *slog.Logger) *Store {
	log := logger.Discard()
	if l != nil {
		log = &logger.Logger{Logger: l}
	}
	return &Store{
		backend: backend,
		limits:  limits,
		logger:  log.WithField("component", "prefs"),
	}
}

// Load reads the settings record. It never fails: a missing key, an
// unreadable backend or an unparsable record all yield defaults, and an
// invalid field yields that field's default.
func (s *Store) Load(ctx context.Context) Settings {
	out := Settings{Progress: map[int]int{}}

	data, err := s.backend.Get(ctx, StorageKey)
	if err != nil {
		if !domainerrors.Is(err, domainerrors.ErrNotFound) {
			s.logger.WithError(err).Warn("failed to read reader settings")
		}
		return out
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		s.logger.WithError(err).Warn("failed to parse reader settings")
		return out
	}

	if v, ok := decodeInt(fields["themeIndex"]); ok && v >= 0 && v < s.limits.ThemeCount {
		out.ThemeIndex = v
	}
	if v, ok := decodeFloat(fields["fontScale"]); ok && s.limits.Font.Contains(v) {
		out.FontScale = v
	}
	if v, ok := decodeFloat(fields["lineHeightScale"]); ok && s.limits.LineHeight.Contains(v) {
		out.LineHeightScale = v
	}
	if v, ok := decodeFloat(fields["widthScale"]); ok && s.limits.Width.Contains(v) {
		out.WidthScale = v
	}
	if v, ok := decodeInt(fields["currentChapter"]); ok && v >= 0 {
		out.CurrentChapter = v
	}

	if raw, ok := fields["progress"]; ok {
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entries); err == nil {
			for key, value := range entries {
				index, err := strconv.Atoi(key)
				if err != nil || index < 0 {
					continue
				}
				percent, ok := decodeInt(value)
				if !ok || percent < 0 || percent > 100 {
					continue
				}
				out.Progress[index] = percent
			}
		}
	}

	return out
}

// Save writes the settings record. Failures are logged and dropped.
func (s *Store) Save(ctx context.Context, settings Settings) {
	s.writes.Add(1)

	if settings.Progress == nil {
		settings.Progress = map[int]int{}
	}
	data, err := json.Marshal(settings)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode reader settings")
		return
	}
	if err := s.backend.Put(ctx, StorageKey, data); err != nil {
		s.logger.WithError(err).Warn("failed to save reader settings")
	}
}

// Reset removes the settings record.
func (s *Store) Reset(ctx context.Context) error {
	err := s.backend.Delete(ctx, StorageKey)
	if err != nil && !domainerrors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	return nil
}

// Writes returns how many times Save has been called.
func (s *Store) Writes() int {
	return int(s.writes.Load())
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func decodeFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func decodeInt(raw json.RawMessage) (int, bool) {
	v, ok := decodeFloat(raw)
	if !ok || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

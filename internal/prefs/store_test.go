package prefs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/justyntemme/inkreader/internal/errors"
)

var testLimits = Limits{
	ThemeCount: 3,
	Font:       Range{Min: -0.40, Max: 0.70},
	LineHeight: Range{Min: -0.16, Max: 0.32},
	Width:      Range{Min: -80, Max: 160},
}

func putRaw(t *testing.T, b Backend, raw string) {
	t.Helper()
	require.NoError(t, b.Put(context.Background(), StorageKey, []byte(raw)))
}

func TestLoad_AbsentKeyGivesDefaults(t *testing.T) {
	store := NewStore(NewMemoryBackend(), testLimits, nil)

	got := store.Load(context.Background())
	assert.Equal(t, Settings{Progress: map[int]int{}}, got)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend, testLimits, nil)
	want := Settings{
		ThemeIndex:      2,
		FontScale:       0.24,
		LineHeightScale: -0.08,
		WidthScale:      120,
		CurrentChapter:  4,
		Progress:        map[int]int{0: 100, 1: 50, 7: 3},
	}

	store.Save(context.Background(), want)
	got := store.Load(context.Background())

	assert.Equal(t, want, got)
	assert.Equal(t, 1, store.Writes())
}

func TestLoad_InvalidFieldsFallBackIndividually(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Settings
	}{
		{
			name: "theme out of range",
			raw:  `{"themeIndex":3,"fontScale":0.16}`,
			want: Settings{FontScale: 0.16},
		},
		{
			name: "theme wrong type",
			raw:  `{"themeIndex":"dark","widthScale":40}`,
			want: Settings{WidthScale: 40},
		},
		{
			name: "theme not integral",
			raw:  `{"themeIndex":1.5,"currentChapter":2}`,
			want: Settings{CurrentChapter: 2},
		},
		{
			name: "font above max",
			raw:  `{"fontScale":0.8,"themeIndex":1}`,
			want: Settings{ThemeIndex: 1},
		},
		{
			name: "line height below min",
			raw:  `{"lineHeightScale":-0.5,"fontScale":-0.4}`,
			want: Settings{FontScale: -0.4},
		},
		{
			name: "width wrong type",
			raw:  `{"widthScale":null,"lineHeightScale":0.32}`,
			want: Settings{LineHeightScale: 0.32},
		},
		{
			name: "negative chapter",
			raw:  `{"currentChapter":-1,"widthScale":-80}`,
			want: Settings{WidthScale: -80},
		},
		{
			name: "bad progress entries dropped",
			raw:  `{"progress":{"0":40,"x":10,"-1":5,"2":101,"3":"50","4":12.5,"5":0}}`,
			want: Settings{Progress: map[int]int{0: 40, 5: 0}},
		},
		{
			name: "progress wrong type",
			raw:  `{"progress":[1,2],"themeIndex":2}`,
			want: Settings{ThemeIndex: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemoryBackend()
			putRaw(t, backend, tt.raw)
			store := NewStore(backend, testLimits, nil)

			if tt.want.Progress == nil {
				tt.want.Progress = map[int]int{}
			}
			assert.Equal(t, tt.want, store.Load(context.Background()))
		})
	}
}

func TestLoad_UnparsableRecordGivesDefaults(t *testing.T) {
	backend := NewMemoryBackend()
	putRaw(t, backend, `{"themeIndex":2`)
	store := NewStore(backend, testLimits, nil)

	assert.Equal(t, Settings{Progress: map[int]int{}}, store.Load(context.Background()))
}

func TestLoad_BackendErrorGivesDefaults(t *testing.T) {
	backend := NewMemoryBackend()
	backend.GetErr = errors.New("disk on fire")
	store := NewStore(backend, testLimits, nil)

	assert.Equal(t, Settings{Progress: map[int]int{}}, store.Load(context.Background()))
}

func TestSave_BackendErrorIsSwallowed(t *testing.T) {
	backend := NewMemoryBackend()
	backend.PutErr = domainerrors.Storage("quota exceeded")
	store := NewStore(backend, testLimits, nil)

	assert.NotPanics(t, func() {
		store.Save(context.Background(), Settings{ThemeIndex: 1})
	})
	assert.Equal(t, 1, backend.Puts())
	assert.Equal(t, 1, store.Writes())
}

func TestSave_BackendErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	backend := NewMemoryBackend()
	backend.PutErr = errors.New("quota exceeded")
	store := NewStore(backend, testLimits, slog.New(slog.NewJSONHandler(&buf, nil)))

	store.Save(context.Background(), Settings{})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "failed to save reader settings", entry["msg"])
	assert.Equal(t, "quota exceeded", entry["error"])
	assert.Equal(t, "prefs", entry["component"])
}

func TestReset(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend, testLimits, nil)
	ctx := context.Background()

	require.NoError(t, store.Reset(ctx))

	store.Save(ctx, Settings{ThemeIndex: 2})
	require.NoError(t, store.Reset(ctx))
	assert.Equal(t, 0, store.Load(ctx).ThemeIndex)
}

func TestSettingsClone(t *testing.T) {
	s := Settings{Progress: map[int]int{1: 10}}
	c := s.Clone()
	c.Progress[1] = 99

	assert.Equal(t, 10, s.Progress[1])
}

func TestBackends(t *testing.T) {
	kinds := []string{KindFile, KindSQLite, KindBadger, KindMemory}

	for _, kind := range kinds {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			dir := filepath.Join(t.TempDir(), "data")
			backend, err := Open(kind, dir)
			require.NoError(t, err)
			defer backend.Close()

			_, err = backend.Get(ctx, StorageKey)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "got %v", err)

			require.NoError(t, backend.Put(ctx, StorageKey, []byte(`{"themeIndex":1}`)))
			require.NoError(t, backend.Put(ctx, StorageKey, []byte(`{"themeIndex":2}`)))

			got, err := backend.Get(ctx, StorageKey)
			require.NoError(t, err)
			assert.JSONEq(t, `{"themeIndex":2}`, string(got))

			require.NoError(t, backend.Delete(ctx, StorageKey))
			err = backend.Delete(ctx, StorageKey)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "got %v", err)
		})
	}
}

func TestBackends_PersistAcrossReopen(t *testing.T) {
	for _, kind := range []string{KindFile, KindSQLite, KindBadger} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()

			backend, err := Open(kind, dir)
			require.NoError(t, err)
			store := NewStore(backend, testLimits, nil)
			store.Save(ctx, Settings{ThemeIndex: 1, Progress: map[int]int{1: 50}})
			require.NoError(t, store.Close())

			backend, err = Open(kind, dir)
			require.NoError(t, err)
			store = NewStore(backend, testLimits, nil)
			defer store.Close()

			got := store.Load(ctx)
			assert.Equal(t, 1, got.ThemeIndex)
			assert.Equal(t, map[int]int{1: 50}, got.Progress)
		})
	}
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, filepath.Join("d", "settings.db"), Location(KindSQLite, "d"))
	assert.Equal(t, filepath.Join("d", StorageKey+".json"), Location(KindFile, "d"))
}

package source

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	domainerrors "github.com/justyntemme/inkreader/internal/errors"
)

const sampleDocument = `{
	"title": "The Cloud Ink",
	"author": "Anon",
	"chapters": [
		{"title": "One", "content": ["a", "b"]},
		{"title": "Two", "content": "first\n\nsecond\n\n\nthird"}
	]
}`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFetch_File(t *testing.T) {
	path := writeFile(t, "novel.json", []byte(sampleDocument))

	doc, err := NewClient().Fetch(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "The Cloud Ink", doc.Book.Title)
	assert.Equal(t, "Anon", doc.Book.Author)
	require.Len(t, doc.Book.Chapters, 2)
	assert.Equal(t, []string{"first", "second", "third"}, doc.Book.Chapters[1].Content)
	assert.Len(t, doc.Fingerprint, 64)
	assert.EqualValues(t, len(sampleDocument), doc.Size)
	assert.Contains(t, doc.String(), "2 chapters")
}

func TestFetch_XZFile(t *testing.T) {
	plain := writeFile(t, "novel.json", []byte(sampleDocument))
	packed := writeFile(t, "novel.json.xz", compress(t, []byte(sampleDocument)))

	client := NewClient()
	a, err := client.Fetch(context.Background(), plain)
	require.NoError(t, err)
	b, err := client.Fetch(context.Background(), packed)
	require.NoError(t, err)

	assert.Equal(t, a.Book, b.Book)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/novel.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(sampleDocument))
		case "/packed":
			w.Header().Set("Content-Encoding", "xz")
			w.Write(compress(t, []byte(sampleDocument)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient()

	doc, err := client.Fetch(context.Background(), srv.URL+"/novel.json")
	require.NoError(t, err)
	assert.Equal(t, "The Cloud Ink", doc.Book.Title)

	doc, err = client.Fetch(context.Background(), srv.URL+"/packed")
	require.NoError(t, err)
	assert.Len(t, doc.Book.Chapters, 2)

	_, err = client.Fetch(context.Background(), srv.URL+"/missing.json")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrLoadFailed))
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetch_MissingFile(t *testing.T) {
	_, err := NewClient().Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, domainerrors.Is(err, domainerrors.ErrLoadFailed))
}

func TestDecode_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":          `<html>`,
		"missing title":     `{"chapters":[{"title":"a","content":[]}]}`,
		"no chapters":       `{"title":"t","chapters":[]}`,
		"chapter untitled":  `{"title":"t","chapters":[{"content":"x"}]}`,
		"content bad type":  `{"title":"t","chapters":[{"title":"a","content":{}}]}`,
		"chapters not list": `{"title":"t","chapters":"a"}`,
	}

	client := NewClient()
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := client.Decode([]byte(raw))
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrMalformed), "got %v", err)
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/novel.json"))
	assert.True(t, IsRemote("http://localhost:8080/novel.json"))
	assert.False(t, IsRemote("novel.json"))
	assert.False(t, IsRemote("/srv/http/novel.json"))
}

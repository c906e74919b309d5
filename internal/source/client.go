package source

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	domainerrors "github.com/justyntemme/inkreader/internal/errors"
	"github.com/justyntemme/inkreader/pkg/models"
)

// maxDocumentSize bounds how much of a document is read
const maxDocumentSize = 64 << 20

// Document is a fetched and validated book together with facts about its payload
type Document struct {
	Book        *models.Book
	Location    string
	Size        int64
	Fingerprint string
}

// Client fetches book documents from files or over HTTP
type Client struct {
	httpClient *http.Client
	validate   *validator.Validate
}

// NewClient creates a new document client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		validate: validator.New(),
	}
}

// IsRemote reports whether location is an http(s) URL
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch reads, decodes and validates the document at location. Transport
// failures and non-success statuses are LOAD_FAILED; decode and schema
// failures are MALFORMED.
func (c *Client) Fetch(ctx context.Context, location string) (*Document, error) {
	raw, compressed, err := c.read(ctx, location)
	if err != nil {
		return nil, err
	}

	if compressed || strings.HasSuffix(location, ".xz") {
		r, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeMalformed, "open xz stream")
		}
		raw, err = io.ReadAll(io.LimitReader(r, maxDocumentSize))
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeMalformed, "decompress document")
		}
	}

	book, err := c.Decode(raw)
	if err != nil {
		return nil, err
	}

	sum := blake3.Sum256(raw)
	return &Document{
		Book:        book,
		Location:    location,
		Size:        int64(len(raw)),
		Fingerprint: hex.EncodeToString(sum[:]),
	}, nil
}

// Decode parses and validates a document payload
func (c *Client) Decode(raw []byte) (*models.Book, error) {
	var book models.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeMalformed, "parse document")
	}
	if err := c.validate.Struct(&book); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeMalformed, "invalid document")
	}
	return &book, nil
}

// read returns the payload bytes and whether the server declared xz encoding
func (c *Client) read(ctx context.Context, location string) ([]byte, bool, error) {
	if !IsRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, false, domainerrors.Wrap(err, domainerrors.CodeLoadFailed, "open document")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxDocumentSize))
		if err != nil {
			return nil, false, domainerrors.Wrap(err, domainerrors.CodeLoadFailed, "read document")
		}
		return data, false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodeLoadFailed, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodeLoadFailed, "fetch document")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, false, domainerrors.LoadFailedf("fetch document: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, false, domainerrors.Wrap(err, domainerrors.CodeLoadFailed, "read response")
	}
	return data, resp.Header.Get("Content-Encoding") == "xz", nil
}

// String returns a short description of the document for debug output
func (d *Document) String() string {
	return fmt.Sprintf("%s (%d chapters, %d bytes, blake3 %s)",
		d.Location, d.Book.ChapterCount(), d.Size, d.Fingerprint[:16])
}

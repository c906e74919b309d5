package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := LoadFailedf("fetch %s: HTTP %d", "novel.json", 404)

	assert.True(t, Is(err, ErrLoadFailed))
	assert.False(t, Is(err, ErrMalformed))
	assert.Equal(t, "fetch novel.json: HTTP 404", err.Error())
}

func TestError_WrapKeepsCause(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, CodeStorage, "read settings")

	assert.True(t, Is(err, ErrStorage))
	assert.True(t, Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, "read settings: unexpected EOF", err.Error())
}

func TestError_WrappedByFmt(t *testing.T) {
	inner := Malformed("chapters missing")
	outer := fmt.Errorf("open book: %w", inner)

	var domainErr *Error
	assert.True(t, As(outer, &domainErr))
	assert.Equal(t, CodeMalformed, domainErr.Code)
	assert.True(t, Is(outer, ErrMalformed))
}

func TestError_WithDetailsAndCause(t *testing.T) {
	base := Validation("bad config")
	detailed := base.WithDetails(map[string]string{"store": "is invalid"})
	caused := detailed.WithCause(io.EOF)

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"store": "is invalid"}, caused.Details)
	assert.Equal(t, io.EOF, caused.Unwrap())
	assert.True(t, Is(caused, ErrValidation))
}

package main

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeResponse(contentType, body string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set(headerContentTypeKey, contentType)
	}
	return &http.Response{
		Header: header,
		Body:   io.NopCloser(strings.NewReader(body)),
	}
}

func TestExtractBodyForLog(t *testing.T) {
	t.Run("unmarshals JSON payloads", func(t *testing.T) {
		r := makeResponse("application/json; charset=utf-8", `{"alpha": 1}`)
		got, err := extractBodyForLog(r)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"alpha": float64(1)}, got)
	})
	t.Run("reports binary payloads by size only", func(t *testing.T) {
		r := makeResponse("image/png", "\x89PNG....")
		got, err := extractBodyForLog(r)
		require.NoError(t, err)
		assert.Equal(t, "8 bytes", got)
	})
	t.Run("returns an error for malformed JSON", func(t *testing.T) {
		r := makeResponse("application/json", "{not json")
		_, err := extractBodyForLog(r)
		assert.Error(t, err)
	})
	t.Run("handles a missing body", func(t *testing.T) {
		r := &http.Response{Header: http.Header{}}
		got, err := extractBodyForLog(r)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCopyResponseBody(t *testing.T) {
	t.Run("preserves the body for downstream readers", func(t *testing.T) {
		r := makeResponse("text/plain", "payload")
		got, err := copyResponseBody(r)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)
		rest, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), rest)
	})
}

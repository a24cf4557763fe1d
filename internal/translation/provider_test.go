package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleWebJoinsSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gtx", r.URL.Query().Get("client"))
		assert.Equal(t, "ne", r.URL.Query().Get("tl"))
		_, _ = w.Write([]byte(`[[["नमस्ते ","Hello ",null],["संसार","world",null]],null,"en"]`))
	}))
	defer srv.Close()

	g := &GoogleWeb{BaseURL: srv.URL, Client: srv.Client()}
	got, err := g.Translate(context.Background(), "Hello world", "ne")
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते संसार", got)
}

func TestHTTP429IsRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := &GoogleWeb{BaseURL: srv.URL, Client: srv.Client()}
	_, err := g.Translate(context.Background(), "Hello", "ne")
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestMyMemoryBodyStatus(t *testing.T) {
	status := 200
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en|ne", r.URL.Query().Get("langpair"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responseData":   map[string]string{"translatedText": "सूचना"},
			"responseStatus": status,
		})
	}))
	defer srv.Close()

	m := &MyMemory{BaseURL: srv.URL, Client: srv.Client()}
	got, err := m.Translate(context.Background(), "Notice", "ne")
	require.NoError(t, err)
	assert.Equal(t, "सूचना", got)

	status = 429
	_, err = m.Translate(context.Background(), "Notice", "ne")
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestLibrePostsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ne", body["target"])
		assert.Equal(t, "secret", body["api_key"])
		_, _ = w.Write([]byte(`{"translatedText":"सेवा"}`))
	}))
	defer srv.Close()

	l := &Libre{BaseURL: srv.URL, APIKey: "secret", Client: srv.Client()}
	got, err := l.Translate(context.Background(), "Service", "ne")
	require.NoError(t, err)
	assert.Equal(t, "सेवा", got)
}

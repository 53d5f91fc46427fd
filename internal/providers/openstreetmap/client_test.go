package openstreetmap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkhongsap/mcp-concept/internal/observability"
	"github.com/tkhongsap/mcp-concept/internal/providers/httpjson"
)

const testUserAgent = "test-agent/1.0"

func testClient(baseURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := httpjson.NewClient(httpjson.Config{
		Provider:  "nominatim",
		UserAgent: testUserAgent,
		Timeout:   5 * time.Second,
	}, nil, observability.NewMetricsForTesting(), logger)
	return NewClientWithBaseURL(fetcher, baseURL, logger)
}

func TestClient_Search_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Seattle, WA", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "us", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`[{"lat":"47.6","lon":"-122.3","display_name":"Seattle, King County, Washington, United States"}]`))
	}))
	defer srv.Close()

	coords, err := testClient(srv.URL).Search(context.Background(), "Seattle, WA")
	require.NoError(t, err)
	assert.Equal(t, 47.6, coords.Latitude)
	assert.Equal(t, -122.3, coords.Longitude)
}

func TestClient_Search_NumericFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":39.1154,"lon":-107.6584}]`))
	}))
	defer srv.Close()

	coords, err := testClient(srv.URL).Search(context.Background(), "Aspen")
	require.NoError(t, err)
	assert.Equal(t, 39.1154, coords.Latitude)
	assert.Equal(t, -107.6584, coords.Longitude)
}

func TestClient_Search_UsesFirstMatchOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"1","lon":"2"},{"lat":"3","lon":"4"}]`))
	}))
	defer srv.Close()

	coords, err := testClient(srv.URL).Search(context.Background(), "Springfield")
	require.NoError(t, err)
	assert.Equal(t, 1.0, coords.Latitude)
	assert.Equal(t, 2.0, coords.Longitude)
}

func TestClient_Search_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "empty array", status: http.StatusOK, body: `[]`, wantErr: ErrNoMatch},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantErr: ErrUnavailable},
		{name: "malformed json", status: http.StatusOK, body: `[{"lat":`, wantErr: ErrUnavailable},
		{name: "unparsable latitude", status: http.StatusOK, body: `[{"lat":"north","lon":"1"}]`, wantErr: ErrUnavailable},
		{name: "missing coordinates", status: http.StatusOK, body: `[{"display_name":"Nowhere"}]`, wantErr: ErrUnavailable},
		{name: "latitude out of range", status: http.StatusOK, body: `[{"lat":"95.2","lon":"-122.3"}]`, wantErr: ErrUnavailable},
		{name: "longitude out of range", status: http.StatusOK, body: `[{"lat":47.6,"lon":-190}]`, wantErr: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).Search(context.Background(), "Somewhere")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestClient_Search_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := testClient(base).Search(context.Background(), "Seattle, WA")
	require.ErrorIs(t, err, ErrUnavailable)
}

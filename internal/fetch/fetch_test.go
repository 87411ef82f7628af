package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var gets int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		if r.Method == http.MethodGet {
			atomic.AddInt32(&gets, 1)
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &gets
}

func TestClientFetch(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
	}{
		{name: "successful_fetch", statusCode: http.StatusOK, body: "114.0.5735.90\n"},
		{name: "404_not_found", statusCode: http.StatusNotFound, body: "<Error>NoSuchKey</Error>", wantErr: true},
		{name: "500_server_error", statusCode: http.StatusInternalServerError, body: "server error", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := serve(t, tt.statusCode, tt.body)

			body, err := NewClient(WithTempDir(t.TempDir())).Fetch(context.Background(), server.URL+"/LATEST_RELEASE_114")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "/LATEST_RELEASE_114")
				var statusErr *StatusError
				if errors.As(err, &statusErr) {
					assert.Equal(t, tt.statusCode, statusErr.StatusCode)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestClientFetch_NoRetries(t *testing.T) {
	server, gets := serve(t, http.StatusServiceUnavailable, "busy")

	_, err := NewClient(WithTempDir(t.TempDir())).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(gets), int32(1))
}

func TestClientFetch_CleansUpTempFiles(t *testing.T) {
	server, _ := serve(t, http.StatusOK, "archive bytes")
	dir := t.TempDir()

	_, err := NewClient(WithTempDir(dir)).Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClientFetch_Unreachable(t *testing.T) {
	server, _ := serve(t, http.StatusOK, "x")
	url := server.URL
	server.Close()

	_, err := NewClient(WithTempDir(t.TempDir())).Fetch(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), url)
}

func TestClientFetch_CancelledContext(t *testing.T) {
	server, _ := serve(t, http.StatusOK, "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(WithTempDir(t.TempDir())).Fetch(ctx, server.URL)
	require.Error(t, err)
}

func TestWithHTTPClientKeepsUserAgent(t *testing.T) {
	server, _ := serve(t, http.StatusOK, "ok")

	c := NewClient(WithHTTPClient(&http.Client{}), WithTempDir(t.TempDir()))
	body, err := c.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestWithUserAgent(t *testing.T) {
	var seen atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	c := NewClient(WithUserAgent("driversync/v1.2.3"), WithTempDir(t.TempDir()))
	_, err := c.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "driversync/v1.2.3", seen.Load())
}

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

const listBody = `{"total":2,"items":[
	{"id":"1","name":"Road Bear","location":"Ukraine, Kyiv","form":"alcove","AC":true},
	{"id":2,"name":"Mavericks","location":"Ukraine, Lviv","form":"panelTruck"}
]}`

func newTestSource(t *testing.T, h http.HandlerFunc, retries int) *HTTPSource {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPSource(Options{
		BaseURL:    srv.URL + "/",
		MaxRetries: retries,
		BaseDelay:  time.Millisecond,
	})
}

func TestListCampers(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campers", r.URL.Path)
		_, _ = w.Write([]byte(listBody))
	}, 0)

	resp, err := src.ListCampers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, domain.ID("1"), resp.Items[0].ID)
	assert.Equal(t, domain.ID("2"), resp.Items[1].ID)
	assert.True(t, resp.Items[0].AC)
}

func TestListCampersBareArray(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"9","name":"Solo"}]`))
	}, 0)

	resp, err := src.ListCampers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "Solo", resp.Items[0].Name)
}

func TestListCampersMissingItems(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, 0)

	resp, err := src.ListCampers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestGetCamper(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campers/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"name":"Kuga","price":8000}`))
	}, 0)

	l, err := src.GetCamper(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("7"), l.ID)
	assert.Equal(t, 8000.0, l.Price)
}

func TestGetCamperNotFoundIsNotRetried(t *testing.T) {
	var calls int32
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `"Not found"`, http.StatusNotFound)
	}, 3)

	_, err := src.GetCamper(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "request failed with status 404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls int32
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(listBody))
	}, 3)

	resp, err := src.ListCampers(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetriesExhausted(t *testing.T) {
	var calls int32
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}, 2)

	_, err := src.ListCampers(context.Background())
	require.Error(t, err)
	assert.Equal(t, "request failed with status 503: upstream down", err.Error())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestNotConfigured(t *testing.T) {
	src := NewHTTPSource(Options{})
	_, err := src.ListCampers(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGetCamperEmptyID(t *testing.T) {
	src := NewHTTPSource(Options{BaseURL: "http://example.invalid"})
	_, err := src.GetCamper(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestCancelledContext(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listBody))
	}, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.ListCampers(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusErrorFallsBackToStatusText(t *testing.T) {
	err := &StatusError{Code: http.StatusInternalServerError}
	assert.Equal(t, "request failed with status 500: Internal Server Error", err.Error())
}

func TestStaticSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "campers.json")
	require.NoError(t, os.WriteFile(path, []byte(listBody), 0o644))

	src, err := LoadStaticSource(path)
	require.NoError(t, err)

	resp, err := src.ListCampers(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	l, err := src.GetCamper(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Mavericks", l.Name)

	_, err = src.GetCamper(context.Background(), "99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStaticSourceReturnsCopies(t *testing.T) {
	src := NewStaticSource([]domain.Listing{{ID: "1", Name: "a"}})
	resp, err := src.ListCampers(context.Background())
	require.NoError(t, err)
	resp.Items[0].Name = "changed"

	again, err := src.ListCampers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", again.Items[0].Name)
}

func TestLoadStaticSourceErrors(t *testing.T) {
	_, err := LoadStaticSource(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadStaticSource(path)
	require.Error(t, err)
}

package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlerter struct {
	messages []string
}

func (a *recordingAlerter) Alert(message string) {
	a.messages = append(a.messages, message)
}

func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *int32, *string) {
	var hits int32
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits, &path
}

func TestFetch_Success(t *testing.T) {
	srv, hits, path := newUpstream(t, http.StatusOK,
		`[{"published_at":"2023-05-07T14:22:09-5","data":"12.5, 70.2, 3, 100, 5, 18, 95, \"VIN\""}]`)
	client := New(Config{Endpoint: srv.URL}, nil)

	rec, err := client.Fetch(context.Background(), "uXXa2TtQ")

	require.NoError(t, err)
	assert.Equal(t, int32(1), *hits)
	assert.Equal(t, "/webhook/get/uXXa2TtQ", *path)
	assert.Equal(t, []string{"2023-05-07T14:22:09-5"}, rec.PublishedAt())
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv, hits, _ := newUpstream(t, http.StatusInternalServerError, `oops`)
	client := New(Config{Endpoint: srv.URL}, nil)

	_, err := client.Fetch(context.Background(), "key")

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, int32(1), *hits, "no retries")
}

func TestFetch_MalformedJSON(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, `{not json`)
	client := New(Config{Endpoint: srv.URL}, nil)

	_, err := client.Fetch(context.Background(), "key")

	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestLoad_FailureAlertsOnce(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusNotFound, ``)
	alerter := &recordingAlerter{}
	client := New(Config{Endpoint: srv.URL}, alerter)

	called := false
	err := client.Load(context.Background(), "key", func(*models.RawRecord) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.False(t, called)
	assert.Equal(t, []string{"Failed to get data..."}, alerter.messages)
}

func TestLoad_NetworkRejection(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, `[]`)
	endpoint := srv.URL
	srv.Close()

	alerter := &recordingAlerter{}
	client := New(Config{Endpoint: endpoint}, alerter)

	err := client.Load(context.Background(), "key", func(*models.RawRecord) error {
		t.Fatal("continuation must not run")
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, []string{FailureMessage}, alerter.messages)
}

func TestLoad_SuccessRunsContinuation(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, `[{"published_at":"a","data":"b"}]`)
	alerter := &recordingAlerter{}
	client := New(Config{Endpoint: srv.URL}, alerter)

	var got *models.RawRecord
	err := client.Load(context.Background(), "key", func(rec *models.RawRecord) error {
		got = rec
		return nil
	})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Len())
	assert.Empty(t, alerter.messages)
}

func TestWithAlerter_DoesNotTouchOriginal(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusBadGateway, ``)
	base := &recordingAlerter{}
	override := &recordingAlerter{}
	client := New(Config{Endpoint: srv.URL}, base)

	_ = client.WithAlerter(override).Load(context.Background(), "k", func(*models.RawRecord) error { return nil })

	assert.Empty(t, base.messages)
	assert.Len(t, override.messages, 1)
}

func TestURL_KeyVerbatim(t *testing.T) {
	client := New(Config{Endpoint: "http://sensors.local:8080", Path: "/data/"}, nil)

	assert.Equal(t, "http://sensors.local:8080/data/a b", client.URL("a b"))
}

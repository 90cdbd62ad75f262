package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
)

func TestClientDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","value":42}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second, nil)
	var out struct {
		ID    string `json:"id"`
		Value int    `json:"value"`
	}
	require.NoError(t, client.Get(context.Background(), "/thing", &out))
	assert.Equal(t, "x", out.ID)
	assert.Equal(t, 42, out.Value)
}

func TestClient404IsTypedNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second, nil)
	err := client.Get(context.Background(), "/missing", nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestClientServerErrorIncludesSnippet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database exploded", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second, nil)
	err := client.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.KindServer, appErrors.KindOf(err))
	assert.Contains(t, err.Error(), "database exploded")
}

func TestClientTimeoutClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 50*time.Millisecond, nil)
	err := client.Get(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.KindTimeout, appErrors.KindOf(err))
}

func TestClientConnectionRefusedIsNetwork(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := NewClient(base, time.Second, nil)
	err := client.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.KindNetwork, appErrors.KindOf(err))
}

func TestClientEmptyBodyIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second, nil)
	var out map[string]interface{}
	require.NoError(t, client.Get(context.Background(), "/empty", &out))
	assert.Nil(t, out)
}

func TestClientObserverSeesOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	var outcomes []string
	client := NewClient(srv.URL, time.Second, nil)
	client.Observer = func(outcome string, latency time.Duration) {
		outcomes = append(outcomes, outcome)
	}

	_ = client.Get(context.Background(), "/ok", nil)
	_ = client.Get(context.Background(), "/missing", nil)

	assert.Equal(t, []string{"OK", string(appErrors.KindNotFound)}, outcomes)
}

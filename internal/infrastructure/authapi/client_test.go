package authapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/infrastructure/authapi"
)

func TestHasGrant_Permitido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/grants/check", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("user_id"))
		assert.Equal(t, "branch_inventory", r.URL.Query().Get("resource"))
		assert.Equal(t, "read", r.URL.Query().Get("action"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"allowed": true}`))
	}))
	defer srv.Close()

	client := authapi.NewClient(srv.URL, time.Second)
	allowed, err := client.HasGrant(context.Background(), 9, "branch_inventory", "read")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestHasGrant_Denegado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"allowed": false}`))
	}))
	defer srv.Close()

	client := authapi.NewClient(srv.URL, time.Second)
	allowed, err := client.HasGrant(context.Background(), 9, "branch_inventory", "delete")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestHasGrant_ErrorDelServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := authapi.NewClient(srv.URL, time.Second)
	_, err := client.HasGrant(context.Background(), 9, "branch_inventory", "read")
	assert.Error(t, err, "un 5xx nunca debe interpretarse como permitido ni denegado")
}

func TestHasGrant_TimeoutNoCuelga(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{"allowed": true}`))
	}))
	defer srv.Close()

	client := authapi.NewClient(srv.URL, 50*time.Millisecond)
	start := time.Now()
	_, err := client.HasGrant(context.Background(), 9, "branch_inventory", "read")
	assert.Error(t, err, "el timeout debe cortar la llamada")
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

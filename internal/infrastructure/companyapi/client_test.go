package companyapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/companyapi"
)

func TestFindLocation_Sucursal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/branches/12", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 12, "company_id": 7}`))
	}))
	defer srv.Close()

	client := companyapi.NewClient(srv.URL, time.Second)
	loc, err := client.FindLocation(context.Background(), 12, entity.KindBranch)
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, int64(12), loc.ID)
	assert.Equal(t, int64(7), loc.CompanyID)
	assert.Equal(t, entity.KindBranch, loc.Kind)
}

func TestFindLocation_BodegaUsaOtraRuta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/warehouses/4", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 4, "company_id": 7}`))
	}))
	defer srv.Close()

	client := companyapi.NewClient(srv.URL, time.Second)
	loc, err := client.FindLocation(context.Background(), 4, entity.KindWarehouse)
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, entity.KindWarehouse, loc.Kind)
}

func TestFindLocation_NoExiste(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := companyapi.NewClient(srv.URL, time.Second)
	loc, err := client.FindLocation(context.Background(), 99, entity.KindBranch)
	require.NoError(t, err, "404 no es un fallo de infraestructura")
	assert.Nil(t, loc)
}

func TestFindLocation_ErrorDelServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := companyapi.NewClient(srv.URL, time.Second)
	_, err := client.FindLocation(context.Background(), 12, entity.KindBranch)
	assert.Error(t, err)
}

func TestFindLocation_KindDesconocido(t *testing.T) {
	client := companyapi.NewClient("http://localhost:0", time.Second)
	_, err := client.FindLocation(context.Background(), 1, entity.LocationKind("store"))
	assert.Error(t, err)
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/authz"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memstore"
	httpRouter "github.com/jhoicas/inventario-stock/internal/interfaces/http"
	"github.com/jhoicas/inventario-stock/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de colaboradores externos
// ──────────────────────────────────────────────────────────────────────────────

type stubDirectory struct {
	locations map[entity.LocationKind]map[int64]entity.Location
	err       error
}

func (s *stubDirectory) FindLocation(_ context.Context, id int64, kind entity.LocationKind) (*entity.Location, error) {
	if s.err != nil {
		return nil, s.err
	}
	loc, ok := s.locations[kind][id]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

type stubCatalog struct {
	products map[int64]entity.ProductSummary
}

func (s *stubCatalog) FindProduct(_ context.Context, id int64) (*entity.ProductSummary, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type stubGrants struct {
	grants map[int64]map[string]bool
}

func (s *stubGrants) HasGrant(_ context.Context, userID int64, resource, action string) (bool, error) {
	return s.grants[userID][resource+"|"+action], nil
}

// newTestApp arma la app completa (router + middleware de auth) sobre un store
// en memoria. Empresa 7 tiene la sucursal 12 y la bodega 4; la sucursal 30 es
// de la empresa 8; el producto 3 existe en el catálogo.
func newTestApp(t *testing.T) (*fiber.App, *stubDirectory) {
	t.Helper()

	directory := &stubDirectory{locations: map[entity.LocationKind]map[int64]entity.Location{
		entity.KindBranch: {
			12: {ID: 12, CompanyID: 7, Kind: entity.KindBranch},
			30: {ID: 30, CompanyID: 8, Kind: entity.KindBranch},
		},
		entity.KindWarehouse: {
			4: {ID: 4, CompanyID: 7, Kind: entity.KindWarehouse},
		},
	}}
	catalog := &stubCatalog{products: map[int64]entity.ProductSummary{
		3: {ID: 3, Name: "Tornillo 3/8", SKU: "TOR-038", Price: decimal.RequireFromString("1250.50")},
	}}
	grants := &stubGrants{grants: map[int64]map[string]bool{}}

	store := memstore.NewInventoryRepository()
	oracle := authz.NewOracle(grants)

	app := fiber.New()
	httpRouter.Router(app, httpRouter.RouterDeps{
		BranchInventory:    inventory.NewService(inventory.BranchScope(), store, directory, catalog, oracle),
		WarehouseInventory: inventory.NewService(inventory.WarehouseScope(), store, directory, catalog, oracle),
		JWTSecret:          testSecret,
	})
	return app, directory
}

func ownerToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, 1, 7, true, "inventario-stock", 15)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_SinHeader(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/branches/12/inventory", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeError(t, resp).Code)
}

func TestAuth_FormatoIncorrecto(t *testing.T) {
	app, _ := newTestApp(t)

	req, err := http.NewRequest(fiber.MethodGet, "/api/v1/branches/12/inventory", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Code)
}

func TestAuth_FirmaIncorrecta(t *testing.T) {
	app, _ := newTestApp(t)

	token, err := jwt.Generate("otro-secreto", 1, 7, true, "inventario-stock", 15)
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/branches/12/inventory", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, resp).Code)
}

func TestAuth_TokenExpirado(t *testing.T) {
	app, _ := newTestApp(t)

	token, err := jwt.Generate(testSecret, 1, 7, true, "inventario-stock", -5)
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/branches/12/inventory", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo del dueño
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearListarActualizarBorrar(t *testing.T) {
	app, _ := newTestApp(t)
	token := ownerToken(t)

	// POST 201 con la respuesta enriquecida
	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/branches/12/inventory", token, fiber.Map{
		"product_id": 3, "quantity": 10, "stock_min": 2, "stock_max": 100,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.InventoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, int64(3), created.ProductID)
	assert.Equal(t, int64(10), created.Quantity)
	assert.Equal(t, "TOR-038", created.ProductSKU)
	assert.False(t, created.UpdatedAt.IsZero())

	// GET listado
	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/branches/12/inventory", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.InventoryListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Tornillo 3/8", list.Items[0].ProductName)

	// PATCH parcial: solo quantity
	resp = doJSON(t, app, fiber.MethodPatch, "/api/v1/branches/12/inventory/3", token, fiber.Map{"quantity": 55})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated dto.InventoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, int64(55), updated.Quantity)
	assert.Equal(t, int64(2), *updated.StockMin)
	assert.Equal(t, int64(100), *updated.StockMax)

	// DELETE 204 y luego 404
	resp = doJSON(t, app, fiber.MethodDelete, "/api/v1/branches/12/inventory/3", token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/v1/branches/12/inventory/3", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores de dominio a estados HTTP
// ──────────────────────────────────────────────────────────────────────────────

// La sucursal de otra empresa y la inexistente responden el mismo 404.
func TestScope_CrossTenantResponde404Opaco(t *testing.T) {
	app, _ := newTestApp(t)
	token := ownerToken(t)

	respCross := doJSON(t, app, fiber.MethodGet, "/api/v1/branches/30/inventory", token, nil)
	respMissing := doJSON(t, app, fiber.MethodGet, "/api/v1/branches/999/inventory", token, nil)

	assert.Equal(t, fiber.StatusNotFound, respCross.StatusCode)
	assert.Equal(t, fiber.StatusNotFound, respMissing.StatusCode)
	assert.Equal(t, decodeError(t, respCross), decodeError(t, respMissing),
		"mismo cuerpo para cross-tenant e inexistente")
}

func TestAuthz_NoDuenoSinGrantResponde403(t *testing.T) {
	app, _ := newTestApp(t)
	token, err := jwt.Generate(testSecret, 2, 7, false, "inventario-stock", 15)
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/branches/12/inventory", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
}

func TestCreate_ProductoInexistenteResponde404(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/branches/12/inventory", ownerToken(t), fiber.Map{
		"product_id": 999, "quantity": 1,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decodeError(t, resp).Code)
}

func TestCreate_DuplicadoResponde409(t *testing.T) {
	app, _ := newTestApp(t)
	token := ownerToken(t)
	body := fiber.Map{"product_id": 3, "quantity": 10}

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/branches/12/inventory", token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/v1/branches/12/inventory", token, body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeError(t, resp).Code)
}

func TestUpdate_MergeInvalidoResponde422(t *testing.T) {
	app, _ := newTestApp(t)
	token := ownerToken(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/branches/12/inventory", token, fiber.Map{
		"product_id": 3, "quantity": 10, "stock_min": 2, "stock_max": 100,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPatch, "/api/v1/branches/12/inventory/3", token, fiber.Map{"quantity": -1})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", decodeError(t, resp).Code)
}

func TestColaboradorCaidoResponde503(t *testing.T) {
	app, directory := newTestApp(t)
	directory.err = errors.New("connection refused")

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/branches/12/inventory", ownerToken(t), nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada en el handler
// ──────────────────────────────────────────────────────────────────────────────

func TestParametrosInvalidos(t *testing.T) {
	app, _ := newTestApp(t)
	token := ownerToken(t)

	casos := []struct {
		nombre string
		method string
		path   string
		body   any
	}{
		{"locationId no numérico", fiber.MethodGet, "/api/v1/branches/abc/inventory", nil},
		{"productId cero", fiber.MethodPatch, "/api/v1/branches/12/inventory/0", fiber.Map{"quantity": 1}},
		{"product_id ausente en create", fiber.MethodPost, "/api/v1/branches/12/inventory", fiber.Map{"quantity": 1}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			resp := doJSON(t, app, tc.method, tc.path, token, tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestPatchSinCamposResponde400(t *testing.T) {
	app, _ := newTestApp(t)
	token := ownerToken(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/branches/12/inventory", token, fiber.Map{
		"product_id": 3, "quantity": 10,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPatch, "/api/v1/branches/12/inventory/3", token, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Las dos variantes comparten handler pero no estado
// ──────────────────────────────────────────────────────────────────────────────

func TestSucursalYBodegaNoColisionan(t *testing.T) {
	app, _ := newTestApp(t)
	token := ownerToken(t)

	for _, path := range []string{"/api/v1/branches/12/inventory", "/api/v1/warehouses/4/inventory"} {
		resp := doJSON(t, app, fiber.MethodPost, path, token, fiber.Map{"product_id": 3, "quantity": 7})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, fmt.Sprintf("create en %s", path))
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/warehouses/4/inventory", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.InventoryListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 1, list.Total, "el inventario de bodega no ve el de sucursal")
}

// Package companyapi cliente HTTP del servicio de Company: resolución de
// sucursales y bodegas por id, con la empresa propietaria.
package companyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

var _ inventory.LocationDirectory = (*Client)(nil)

// Client implementa inventory.LocationDirectory contra el API REST de Company.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente con timeout explícito.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type locationResponse struct {
	ID        int64 `json:"id"`
	CompanyID int64 `json:"company_id"`
}

// FindLocation busca la ubicación por id según el kind. Devuelve nil (sin
// error) si no existe; el llamante decide cómo colapsar ese caso con el de
// otra empresa. Errores de red o 5xx se propagan como error.
func (c *Client) FindLocation(ctx context.Context, id int64, kind entity.LocationKind) (*entity.Location, error) {
	var path string
	switch kind {
	case entity.KindBranch:
		path = fmt.Sprintf("%s/api/v1/branches/%d", c.baseURL, id)
	case entity.KindWarehouse:
		path = fmt.Sprintf("%s/api/v1/warehouses/%d", c.baseURL, id)
	default:
		return nil, fmt.Errorf("location kind desconocido: %q", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("armar petición de ubicación: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar ubicación: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out locationResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decodificar ubicación: %w", err)
		}
		return &entity.Location{ID: out.ID, CompanyID: out.CompanyID, Kind: kind}, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("servicio de company respondió %d", resp.StatusCode)
	}
}

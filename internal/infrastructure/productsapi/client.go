// Package productsapi cliente HTTP del servicio de Products: existencia y
// datos de presentación (nombre, SKU, precio) para enriquecer respuestas.
package productsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

var _ inventory.ProductCatalog = (*Client)(nil)

// Client implementa inventory.ProductCatalog contra el API REST de Products.
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

type productResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

// FindProduct busca el producto por id. Devuelve nil (sin error) si no existe.
func (c *Client) FindProduct(ctx context.Context, id int64) (*entity.ProductSummary, error) {
	endpoint := fmt.Sprintf("%s/api/v1/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("armar petición de producto: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar producto: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out productResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decodificar producto: %w", err)
		}
		return &entity.ProductSummary{ID: out.ID, Name: out.Name, SKU: out.SKU, Price: out.Price}, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("servicio de products respondió %d", resp.StatusCode)
	}
}

// Package authapi cliente HTTP del servicio de Auth: consulta de grants
// explícitos (usuario, recurso, acción). La emisión de tokens y el
// almacenamiento de permisos viven en ese servicio, no aquí.
package authapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/authz"
)

var _ authz.GrantStore = (*Client)(nil)

// Client implementa authz.GrantStore contra el API REST de Auth.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente con timeout explícito: una consulta de
// permisos colgada debe fallar, nunca quedar esperando indefinidamente.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type grantCheckResponse struct {
	Allowed bool `json:"allowed"`
}

// HasGrant consulta si existe un grant (usuario, recurso, acción).
// Cualquier fallo de red o respuesta no-200 es un error: el oráculo nunca
// debe tratar un fallo como permiso.
func (c *Client) HasGrant(ctx context.Context, userID int64, resource, action string) (bool, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))
	q.Set("resource", resource)
	q.Set("action", action)

	endpoint := fmt.Sprintf("%s/api/v1/grants/check?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("armar petición de grants: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("consultar grants: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("servicio de auth respondió %d", resp.StatusCode)
	}

	var out grantCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decodificar respuesta de grants: %w", err)
	}
	return out.Allowed, nil
}

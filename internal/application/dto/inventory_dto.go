package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// CreateInventoryRequest body para POST /{branches|warehouses}/:locationId/inventory.
type CreateInventoryRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	StockMin  *int64 `json:"stock_min,omitempty"`
	StockMax  *int64 `json:"stock_max,omitempty"`
}

// UpdateInventoryRequest body parcial para PATCH .../inventory/:productId.
// Solo los campos presentes se aplican.
type UpdateInventoryRequest struct {
	Quantity *int64 `json:"quantity,omitempty"`
	StockMin *int64 `json:"stock_min,omitempty"`
	StockMax *int64 `json:"stock_max,omitempty"`
}

// Patch convierte el body en el patch de dominio.
func (r UpdateInventoryRequest) Patch() entity.RecordPatch {
	return entity.RecordPatch{
		Quantity: r.Quantity,
		StockMin: r.StockMin,
		StockMax: r.StockMax,
	}
}

// InventoryResponse registro de inventario enriquecido con datos del producto
// (nombre, SKU y precio vienen del servicio de Products, no del store).
type InventoryResponse struct {
	ProductID    int64           `json:"product_id"`
	LocationID   int64           `json:"location_id"`
	Quantity     int64           `json:"quantity"`
	StockMin     *int64          `json:"stock_min"`
	StockMax     *int64          `json:"stock_max"`
	UpdatedAt    time.Time       `json:"updated_at"`
	ProductName  string          `json:"product_name"`
	ProductSKU   string          `json:"product_sku"`
	ProductPrice decimal.Decimal `json:"product_price"`
}

// InventoryListResponse listado de inventario de una ubicación.
type InventoryListResponse struct {
	Total int                 `json:"total"`
	Items []InventoryResponse `json:"items"`
}

// ToInventoryResponse arma la respuesta enriquecida a partir del registro y el producto.
func ToInventoryResponse(rec *entity.InventoryRecord, p *entity.ProductSummary) InventoryResponse {
	out := InventoryResponse{
		ProductID:  rec.ProductID,
		LocationID: rec.LocationID,
		Quantity:   rec.Quantity,
		StockMin:   rec.StockMin,
		StockMax:   rec.StockMax,
		UpdatedAt:  rec.UpdatedAt,
	}
	if p != nil {
		out.ProductName = p.Name
		out.ProductSKU = p.SKU
		out.ProductPrice = p.Price
	}
	return out
}

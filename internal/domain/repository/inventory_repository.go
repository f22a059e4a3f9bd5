package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para los registros de
// inventario (DIP). Todas las operaciones son atómicas respecto a la clave
// compuesta (producto, ubicación): dos creates concurrentes del mismo par no
// pueden tener éxito ambos, y update/delete concurrentes se serializan.
type InventoryRepository interface {
	// Get devuelve el registro o domain.ErrNotFound.
	Get(ctx context.Context, kind entity.LocationKind, productID, locationID int64) (*entity.InventoryRecord, error)
	// ListByLocation devuelve los registros de la ubicación ordenados por producto.
	ListByLocation(ctx context.Context, kind entity.LocationKind, locationID int64) ([]entity.InventoryRecord, error)
	// Create inserta un registro nuevo; domain.ErrDuplicate si la clave ya existe.
	Create(ctx context.Context, kind entity.LocationKind, rec *entity.InventoryRecord) (*entity.InventoryRecord, error)
	// Update aplica solo los campos presentes del patch y revalida invariantes
	// sobre el resultado. domain.ErrNotFound si no existe, domain.ErrInvalidState
	// si el merge viola cantidad >= 0 o stock_min <= stock_max (el registro
	// previo queda intacto).
	Update(ctx context.Context, kind entity.LocationKind, productID, locationID int64, patch entity.RecordPatch) (*entity.InventoryRecord, error)
	// Delete elimina el registro; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, kind entity.LocationKind, productID, locationID int64) error
}

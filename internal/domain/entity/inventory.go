package entity

import "time"

// LocationKind distingue los dos tipos de ubicación con inventario propio.
type LocationKind string

const (
	// KindBranch sucursal (punto de venta).
	KindBranch LocationKind = "branch"
	// KindWarehouse bodega.
	KindWarehouse LocationKind = "warehouse"
)

// Valid informa si el kind es uno de los dos soportados.
func (k LocationKind) Valid() bool {
	return k == KindBranch || k == KindWarehouse
}

// InventoryRecord representa el stock de un producto en una ubicación
// (sucursal o bodega, según el kind de la tabla que lo contiene).
// La clave compuesta (ProductID, LocationID) es única por kind.
type InventoryRecord struct {
	ProductID  int64
	LocationID int64
	Quantity   int64
	StockMin   *int64 // piso de reorden, opcional
	StockMax   *int64 // techo de capacidad, opcional; >= StockMin si ambos presentes
	UpdatedAt  time.Time
}

// Validate verifica los invariantes del registro: cantidad no negativa,
// umbrales no negativos y stock_min <= stock_max cuando ambos existen.
func (r *InventoryRecord) Validate() bool {
	if r.Quantity < 0 {
		return false
	}
	if r.StockMin != nil && *r.StockMin < 0 {
		return false
	}
	if r.StockMax != nil && *r.StockMax < 0 {
		return false
	}
	if r.StockMin != nil && r.StockMax != nil && *r.StockMin > *r.StockMax {
		return false
	}
	return true
}

// RecordPatch campos opcionales de una actualización parcial.
// Solo los punteros no nulos se aplican sobre el registro existente.
type RecordPatch struct {
	Quantity *int64
	StockMin *int64
	StockMax *int64
}

// Empty informa si el patch no trae ningún campo.
func (p RecordPatch) Empty() bool {
	return p.Quantity == nil && p.StockMin == nil && p.StockMax == nil
}

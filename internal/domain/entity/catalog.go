package entity

import "github.com/shopspring/decimal"

// Location una sucursal o bodega según el registro del servicio de Company.
// Solo interesa a quién pertenece; el resto de atributos vive en ese servicio.
type Location struct {
	ID        int64
	CompanyID int64
	Kind      LocationKind
}

// ProductSummary datos de presentación de un producto, obtenidos en vivo del
// servicio de Products. No se duplican en el store de inventario.
type ProductSummary struct {
	ID    int64
	Name  string
	SKU   string
	Price decimal.Decimal
}

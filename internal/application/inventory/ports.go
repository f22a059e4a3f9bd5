package inventory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// LocationDirectory es el puerto hacia el servicio de Company: resuelve una
// sucursal o bodega por id. Devuelve nil (sin error) si no existe; error solo
// ante fallos de infraestructura.
type LocationDirectory interface {
	FindLocation(ctx context.Context, id int64, kind entity.LocationKind) (*entity.Location, error)
}

// ProductCatalog es el puerto hacia el servicio de Products. Devuelve nil
// (sin error) si el producto no existe; error solo ante fallos de infraestructura.
type ProductCatalog interface {
	FindProduct(ctx context.Context, id int64) (*entity.ProductSummary, error)
}

// Authorizer decide permitir/denegar una acción del llamante sobre un recurso.
// Lo implementa *authz.Oracle; la interfaz permite fakes en tests.
type Authorizer interface {
	Authorize(ctx context.Context, id entity.CallerIdentity, resource, action string) error
}

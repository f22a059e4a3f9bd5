package authz

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// Recursos y acciones sobre los que el servicio de Auth emite grants.
const (
	ResourceBranchInventory    = "branch_inventory"
	ResourceWarehouseInventory = "warehouse_inventory"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// GrantStore es el puerto hacia el almacén de permisos del servicio de Auth.
// Devuelve error solo ante fallos de infraestructura (timeout, red, 5xx).
type GrantStore interface {
	HasGrant(ctx context.Context, userID int64, resource, action string) (bool, error)
}

// Decision es la decisión de autorización en dos ramas: los dueños pasan sin
// consultar grants, el resto requiere un grant explícito (usuario, recurso,
// acción). Variante etiquetada, no herencia.
type Decision struct {
	OwnerBypass bool
	Resource    string
	Action      string
}

// DecisionFor arma la decisión para una identidad, recurso y acción.
func DecisionFor(id entity.CallerIdentity, resource, action string) Decision {
	if id.IsOwner {
		return Decision{OwnerBypass: true}
	}
	return Decision{Resource: resource, Action: action}
}

// Oracle resuelve permitir/denegar por petición. Es el único punto de la
// aplicación que conoce la regla "dueño o grant".
type Oracle struct {
	grants GrantStore
}

// NewOracle construye el oráculo de permisos.
func NewOracle(grants GrantStore) *Oracle {
	return &Oracle{grants: grants}
}

// Authorize aplica la decisión: dueño → permitir; si no, permitir solo con
// grant explícito. Un fallo del almacén de grants nunca se convierte en
// permiso ni en denegación silenciosa: se propaga como ErrDependencyUnavailable.
func (o *Oracle) Authorize(ctx context.Context, id entity.CallerIdentity, resource, action string) error {
	d := DecisionFor(id, resource, action)
	if d.OwnerBypass {
		return nil
	}
	allowed, err := o.grants.HasGrant(ctx, id.UserID, d.Resource, d.Action)
	if err != nil {
		return fmt.Errorf("consultar grants: %w", domain.ErrDependencyUnavailable)
	}
	if !allowed {
		return domain.ErrForbidden
	}
	return nil
}

package inventory

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-stock/internal/application/authz"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// enrichConcurrency tope de consultas simultáneas al catálogo al enriquecer listados.
const enrichConcurrency = 4

// Scope describe en qué variante opera un Service: qué tabla usa el store,
// qué lookup hace el directorio de ubicaciones y qué recurso consulta el
// oráculo de permisos. Las dos pipelines (sucursal y bodega) son el mismo
// código parametrizado por este descriptor.
type Scope struct {
	Kind     entity.LocationKind
	Resource string
}

// BranchScope descriptor para inventario de sucursales.
func BranchScope() Scope {
	return Scope{Kind: entity.KindBranch, Resource: authz.ResourceBranchInventory}
}

// WarehouseScope descriptor para inventario de bodegas.
func WarehouseScope() Scope {
	return Scope{Kind: entity.KindWarehouse, Resource: authz.ResourceWarehouseInventory}
}

// Service orquesta la pipeline por petición, en orden fijo y con corte en el
// primer fallo: alcance → permiso → catálogo (solo mutaciones) → store →
// enriquecimiento. El alcance se verifica antes que el permiso para que el
// sondeo cross-tenant y la falta de permiso no sean distinguibles entre sí, y
// el catálogo solo después de autorizar para no filtrar existencia de
// productos a llamantes sin permiso.
type Service struct {
	scope     Scope
	store     repository.InventoryRepository
	locations LocationDirectory
	catalog   ProductCatalog
	authorize Authorizer
}

// NewService construye el orquestador para un Scope dado.
func NewService(scope Scope, store repository.InventoryRepository, locations LocationDirectory, catalog ProductCatalog, authorizer Authorizer) *Service {
	return &Service{
		scope:     scope,
		store:     store,
		locations: locations,
		catalog:   catalog,
		authorize: authorizer,
	}
}

// List devuelve el inventario de una ubicación, enriquecido con datos de producto.
func (s *Service) List(ctx context.Context, caller entity.CallerIdentity, locationID int64) (*dto.InventoryListResponse, error) {
	if err := s.validateScope(ctx, caller, locationID); err != nil {
		return nil, err
	}
	if err := s.authorize.Authorize(ctx, caller, s.scope.Resource, authz.ActionRead); err != nil {
		return nil, err
	}
	records, err := s.store.ListByLocation(ctx, s.scope.Kind, locationID)
	if err != nil {
		return nil, err
	}
	items, err := s.enrichAll(ctx, records)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryListResponse{Total: len(items), Items: items}, nil
}

// Get devuelve un registro puntual enriquecido.
func (s *Service) Get(ctx context.Context, caller entity.CallerIdentity, locationID, productID int64) (*dto.InventoryResponse, error) {
	if err := s.validateScope(ctx, caller, locationID); err != nil {
		return nil, err
	}
	if err := s.authorize.Authorize(ctx, caller, s.scope.Resource, authz.ActionRead); err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, s.scope.Kind, productID, locationID)
	if err != nil {
		return nil, err
	}
	summary, err := s.lookupProduct(ctx, productID)
	if err != nil && err != domain.ErrProductNotFound {
		return nil, err
	}
	out := dto.ToInventoryResponse(rec, summary)
	return &out, nil
}

// Create registra inventario para un producto en la ubicación. Falla con
// ErrDuplicate si la clave ya existe: no hay upsert implícito, un reenvío
// del mismo create no puede insertar dos veces.
func (s *Service) Create(ctx context.Context, caller entity.CallerIdentity, locationID int64, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if err := s.validateScope(ctx, caller, locationID); err != nil {
		return nil, err
	}
	if err := s.authorize.Authorize(ctx, caller, s.scope.Resource, authz.ActionCreate); err != nil {
		return nil, err
	}
	summary, err := s.lookupProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	rec := &entity.InventoryRecord{
		ProductID:  in.ProductID,
		LocationID: locationID,
		Quantity:   in.Quantity,
		StockMin:   in.StockMin,
		StockMax:   in.StockMax,
	}
	if !rec.Validate() {
		return nil, domain.ErrInvalidState
	}
	created, err := s.store.Create(ctx, s.scope.Kind, rec)
	if err != nil {
		return nil, err
	}
	out := dto.ToInventoryResponse(created, summary)
	return &out, nil
}

// Update aplica una actualización parcial y devuelve el registro resultante.
func (s *Service) Update(ctx context.Context, caller entity.CallerIdentity, locationID, productID int64, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	if err := s.validateScope(ctx, caller, locationID); err != nil {
		return nil, err
	}
	if err := s.authorize.Authorize(ctx, caller, s.scope.Resource, authz.ActionUpdate); err != nil {
		return nil, err
	}
	summary, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	patch := in.Patch()
	if patch.Empty() {
		return nil, domain.ErrInvalidInput
	}
	updated, err := s.store.Update(ctx, s.scope.Kind, productID, locationID, patch)
	if err != nil {
		return nil, err
	}
	out := dto.ToInventoryResponse(updated, summary)
	return &out, nil
}

// Delete elimina el registro (borrado duro, sin tombstone). No toca el
// producto ni la ubicación externos.
func (s *Service) Delete(ctx context.Context, caller entity.CallerIdentity, locationID, productID int64) error {
	if err := s.validateScope(ctx, caller, locationID); err != nil {
		return err
	}
	if err := s.authorize.Authorize(ctx, caller, s.scope.Resource, authz.ActionDelete); err != nil {
		return err
	}
	return s.store.Delete(ctx, s.scope.Kind, productID, locationID)
}

// validateScope confirma que la ubicación existe y pertenece a la empresa del
// llamante. "No existe" y "es de otra empresa" colapsan en el mismo error
// para no revelar ubicaciones de otros tenants.
func (s *Service) validateScope(ctx context.Context, caller entity.CallerIdentity, locationID int64) error {
	loc, err := s.locations.FindLocation(ctx, locationID, s.scope.Kind)
	if err != nil {
		return fmt.Errorf("buscar ubicación: %w", domain.ErrDependencyUnavailable)
	}
	if loc == nil || loc.CompanyID != caller.CompanyID {
		return domain.ErrLocationScope
	}
	return nil
}

// lookupProduct consulta el catálogo; producto inexistente es ErrProductNotFound,
// fallo del servicio es ErrDependencyUnavailable.
func (s *Service) lookupProduct(ctx context.Context, productID int64) (*entity.ProductSummary, error) {
	p, err := s.catalog.FindProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("consultar catálogo: %w", domain.ErrDependencyUnavailable)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// enrichAll resuelve los productos de un listado en paralelo acotado,
// deduplicando por producto. Un fallo del catálogo degrada todo el listado a
// ErrDependencyUnavailable; un producto ausente deja sus campos de
// presentación vacíos en lugar de ocultar el registro.
func (s *Service) enrichAll(ctx context.Context, records []entity.InventoryRecord) ([]dto.InventoryResponse, error) {
	ids := make([]int64, 0, len(records))
	seen := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.ProductID]; !ok {
			seen[r.ProductID] = struct{}{}
			ids = append(ids, r.ProductID)
		}
	}

	var mu sync.Mutex
	summaries := make(map[int64]*entity.ProductSummary, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			p, err := s.catalog.FindProduct(gctx, id)
			if err != nil {
				return fmt.Errorf("consultar catálogo: %w", domain.ErrDependencyUnavailable)
			}
			mu.Lock()
			summaries[id] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]dto.InventoryResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.ToInventoryResponse(&records[i], summaries[records[i].ProductID]))
	}
	return items, nil
}

// Package memstore implementa el puerto de inventario en memoria, para
// desarrollo local sin PostgreSQL (IN_MEMORY_DB=true) y para tests. Respeta
// el mismo contrato de atomicidad por clave compuesta que la implementación
// real: un solo mutex serializa todas las mutaciones.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

type key struct {
	kind       entity.LocationKind
	productID  int64
	locationID int64
}

// InventoryRepo store de inventario en memoria.
type InventoryRepo struct {
	mu      sync.Mutex
	records map[key]entity.InventoryRecord
}

// NewInventoryRepository construye el store vacío.
func NewInventoryRepository() *InventoryRepo {
	return &InventoryRepo{records: make(map[key]entity.InventoryRecord)}
}

func (r *InventoryRepo) Get(_ context.Context, kind entity.LocationKind, productID, locationID int64) (*entity.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key{kind, productID, locationID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := rec
	return &out, nil
}

func (r *InventoryRepo) ListByLocation(_ context.Context, kind entity.LocationKind, locationID int64) ([]entity.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []entity.InventoryRecord
	for k, rec := range r.records {
		if k.kind == kind && k.locationID == locationID {
			list = append(list, rec)
		}
	}
	// orden estable por producto, igual que la implementación SQL
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}

func (r *InventoryRepo) Create(_ context.Context, kind entity.LocationKind, rec *entity.InventoryRecord) (*entity.InventoryRecord, error) {
	if !rec.Validate() {
		return nil, domain.ErrInvalidState
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{kind, rec.ProductID, rec.LocationID}
	if _, exists := r.records[k]; exists {
		return nil, domain.ErrDuplicate
	}
	out := *rec
	out.UpdatedAt = time.Now()
	r.records[k] = out
	return &out, nil
}

func (r *InventoryRepo) Update(_ context.Context, kind entity.LocationKind, productID, locationID int64, patch entity.RecordPatch) (*entity.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{kind, productID, locationID}
	rec, ok := r.records[k]
	if !ok {
		return nil, domain.ErrNotFound
	}
	merged := rec
	if patch.Quantity != nil {
		merged.Quantity = *patch.Quantity
	}
	if patch.StockMin != nil {
		merged.StockMin = patch.StockMin
	}
	if patch.StockMax != nil {
		merged.StockMax = patch.StockMax
	}
	if !merged.Validate() {
		// el registro previo queda intacto
		return nil, domain.ErrInvalidState
	}
	merged.UpdatedAt = time.Now()
	r.records[k] = merged
	out := merged
	return &out, nil
}

func (r *InventoryRepo) Delete(_ context.Context, kind entity.LocationKind, productID, locationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{kind, productID, locationID}
	if _, ok := r.records[k]; !ok {
		return domain.ErrNotFound
	}
	delete(r.records, k)
	return nil
}

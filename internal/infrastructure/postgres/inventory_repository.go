package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
// Una sola implementación sirve a las dos tablas (sucursal y bodega): el kind
// selecciona tabla y columna de ubicación.
type InventoryRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository construye el adaptador de persistencia de inventario.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

// tableInfo tabla y columna de ubicación de cada variante.
type tableInfo struct {
	name   string
	locCol string
}

func tableFor(kind entity.LocationKind) (tableInfo, error) {
	switch kind {
	case entity.KindBranch:
		return tableInfo{name: "branch_inventory", locCol: "branch_id"}, nil
	case entity.KindWarehouse:
		return tableInfo{name: "warehouse_inventory", locCol: "warehouse_id"}, nil
	default:
		return tableInfo{}, fmt.Errorf("location kind desconocido: %q", kind)
	}
}

// Get obtiene el registro de un producto en una ubicación.
func (r *InventoryRepo) Get(ctx context.Context, kind entity.LocationKind, productID, locationID int64) (*entity.InventoryRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rec, err := fetchRecord(ctx, r.pool, t, productID, locationID, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return rec, nil
}

// ListByLocation lista los registros de una ubicación, ordenados por producto
// para que el orden sea estable entre llamadas.
func (r *InventoryRepo) ListByLocation(ctx context.Context, kind entity.LocationKind, locationID int64) ([]entity.InventoryRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT product_id, %s, quantity, stock_min, stock_max, updated_at
		FROM %s WHERE %s = $1 ORDER BY product_id`, t.locCol, t.name, t.locCol)
	rows, err := r.pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []entity.InventoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, *rec)
	}
	return list, rows.Err()
}

// Create inserta un registro nuevo. La clave primaria compuesta garantiza que
// dos creates concurrentes del mismo par no tengan éxito ambos: el perdedor
// observa la violación 23505 y recibe ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, kind entity.LocationKind, rec *entity.InventoryRecord) (*entity.InventoryRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (product_id, %s, quantity, stock_min, stock_max, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING updated_at`, t.name, t.locCol)
	out := *rec
	err = r.pool.QueryRow(ctx, query,
		rec.ProductID, rec.LocationID, rec.Quantity, rec.StockMin, rec.StockMax,
	).Scan(&out.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return nil, domain.ErrInvalidState
		}
		return nil, fmt.Errorf("insert inventory: %w", err)
	}
	return &out, nil
}

// Update aplica una actualización parcial dentro de una transacción con la
// fila bloqueada (SELECT FOR UPDATE): el merge y la revalidación ven un estado
// estable aunque haya escritores concurrentes, y un delete concurrente se
// serializa (el update aplica antes o falla con ErrNotFound después).
func (r *InventoryRepo) Update(ctx context.Context, kind entity.LocationKind, productID, locationID int64, patch entity.RecordPatch) (*entity.InventoryRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec, err := fetchRecord(ctx, tx, t, productID, locationID, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock inventory row: %w", err)
	}

	if patch.Quantity != nil {
		rec.Quantity = *patch.Quantity
	}
	if patch.StockMin != nil {
		rec.StockMin = patch.StockMin
	}
	if patch.StockMax != nil {
		rec.StockMax = patch.StockMax
	}
	if !rec.Validate() {
		// rollback diferido: el registro previo queda intacto
		return nil, domain.ErrInvalidState
	}

	updateQuery := fmt.Sprintf(`
		UPDATE %s SET quantity = $3, stock_min = $4, stock_max = $5, updated_at = now()
		WHERE product_id = $1 AND %s = $2
		RETURNING updated_at`, t.name, t.locCol)
	err = tx.QueryRow(ctx, updateQuery,
		productID, locationID, rec.Quantity, rec.StockMin, rec.StockMax,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrInvalidState
		}
		return nil, fmt.Errorf("update inventory: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return rec, nil
}

// Delete elimina el registro (borrado duro).
func (r *InventoryRepo) Delete(ctx context.Context, kind entity.LocationKind, productID, locationID int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE product_id = $1 AND %s = $2`, t.name, t.locCol)
	cmd, err := r.pool.Exec(ctx, query, productID, locationID)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// fetchRecord lee la fila de un registro usando pool o tx (Querier),
// opcionalmente bloqueándola con FOR UPDATE.
func fetchRecord(ctx context.Context, q Querier, t tableInfo, productID, locationID int64, forUpdate bool) (*entity.InventoryRecord, error) {
	suffix := ""
	if forUpdate {
		suffix = " FOR UPDATE"
	}
	query := fmt.Sprintf(`
		SELECT product_id, %s, quantity, stock_min, stock_max, updated_at
		FROM %s WHERE product_id = $1 AND %s = $2%s`, t.locCol, t.name, t.locCol, suffix)
	return scanRecord(q.QueryRow(ctx, query, productID, locationID))
}

// scanRecord escanea una fila de inventario (pgx.Row o pgx.Rows).
func scanRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ProductID, &rec.LocationID, &rec.Quantity,
		&rec.StockMin, &rec.StockMax, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stockledger/internal/domain/entity"
	"github.com/invorya/stockledger/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const recordColumns = `id, product_id, shelf_id, quantity, unit, batch_number, expiry_date, created_at, updated_at`

func scanRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var r entity.InventoryRecord
	var batch *string
	err := row.Scan(&r.ID, &r.ProductID, &r.ShelfID, &r.Quantity, &r.Unit, &batch, &r.ExpiryDate, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventory record: %w", err)
	}
	if batch != nil {
		r.BatchNumber = *batch
	}
	return &r, nil
}

// GetByID obtiene un registro por id; nil si no existe.
func (r *InventoryRecordRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE id = $1`
	return scanRecord(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRecordRepo) GetByIDForUpdate(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records WHERE id = $1 FOR UPDATE`
	return scanRecord(r.q.QueryRow(context.Background(), query, id))
}

// GetByKey obtiene el registro por la tripleta de unicidad; nil si no existe.
func (r *InventoryRecordRepo) GetByKey(productID, shelfID, batchNumber string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records
		WHERE product_id = $1 AND shelf_id = $2 AND batch_key = $3`
	return scanRecord(r.q.QueryRow(context.Background(), query, productID, shelfID, entity.NormalizeBatch(batchNumber)))
}

// GetByKeyForUpdate obtiene por tripleta y bloquea la fila.
func (r *InventoryRecordRepo) GetByKeyForUpdate(productID, shelfID, batchNumber string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records
		WHERE product_id = $1 AND shelf_id = $2 AND batch_key = $3
		FOR UPDATE`
	return scanRecord(r.q.QueryRow(context.Background(), query, productID, shelfID, entity.NormalizeBatch(batchNumber)))
}

// Create inserta un registro nuevo. Viola la unicidad -> ErrDuplicate.
func (r *InventoryRecordRepo) Create(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, product_id, shelf_id, quantity, unit, batch_number, batch_key, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	batch := (*string)(nil)
	if record.BatchNumber != "" {
		batch = &record.BatchNumber
	}
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.ShelfID, record.Quantity, record.Unit,
		batch, record.BatchKey(), record.ExpiryDate, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return translateError(fmt.Errorf("insert inventory record: %w", err))
	}
	return nil
}

// Save actualiza cantidad y metadatos de un registro existente.
func (r *InventoryRecordRepo) Save(record *entity.InventoryRecord) error {
	query := `
		UPDATE inventory_records
		SET quantity = $2, unit = $3, batch_number = $4, batch_key = $5, expiry_date = $6, updated_at = $7
		WHERE id = $1`
	batch := (*string)(nil)
	if record.BatchNumber != "" {
		batch = &record.BatchNumber
	}
	tag, err := r.q.Exec(context.Background(), query,
		record.ID, record.Quantity, record.Unit, batch, record.BatchKey(), record.ExpiryDate, record.UpdatedAt,
	)
	if err != nil {
		return translateError(fmt.Errorf("update inventory record: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update inventory record %s: fila inexistente", record.ID)
	}
	return nil
}

// Delete elimina la fila viva. El libro no se toca por esta vía.
func (r *InventoryRecordRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	return nil
}

// ListByShelf lista el stock de una estantería.
func (r *InventoryRecordRepo) ListByShelf(shelfID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records
		WHERE shelf_id = $1
		ORDER BY product_id, batch_key
		LIMIT $2 OFFSET $3`
	return r.list(query, shelfID, limit, offset)
}

// ListByProduct lista el stock de un producto en todas las estanterías.
func (r *InventoryRecordRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_records
		WHERE product_id = $1
		ORDER BY shelf_id, batch_key
		LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

func (r *InventoryRecordRepo) list(query, key string, limit, offset int) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(context.Background(), query, key, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		var batch *string
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.ShelfID, &rec.Quantity, &rec.Unit,
			&batch, &rec.ExpiryDate, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		if batch != nil {
			rec.BatchNumber = *batch
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stockledger/internal/domain/entity"
	"github.com/invorya/stockledger/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del libro de inventario sobre PostgreSQL.
// inventory_ledger no tiene FK hacia inventory_records: el historial debe
// sobrevivir al drenaje por traslado; solo DeleteByInventory lo borra.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, inventory_id, transfer_group_id, type, quantity_before, quantity_change, quantity_after, unit, reason, document_reference, actor_id, created_at`

// Create persiste un asiento. Los asientos nunca se actualizan.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO inventory_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	groupID := (*string)(nil)
	if entry.TransferGroupID != "" {
		groupID = &entry.TransferGroupID
	}
	reason := (*string)(nil)
	if entry.Reason != "" {
		reason = &entry.Reason
	}
	docRef := (*string)(nil)
	if entry.DocumentReference != "" {
		docRef = &entry.DocumentReference
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.InventoryID, groupID, entry.Type,
		entry.QuantityBefore, entry.QuantityChange, entry.QuantityAfter,
		entry.Unit, reason, docRef, entry.ActorID, entry.CreatedAt,
	)
	if err != nil {
		return translateError(fmt.Errorf("insert ledger entry: %w", err))
	}
	return nil
}

// GetByID obtiene un asiento por id; nil si no existe.
func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM inventory_ledger WHERE id = $1`
	var e entity.LedgerEntry
	var groupID, reason, docRef *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.InventoryID, &groupID, &e.Type,
		&e.QuantityBefore, &e.QuantityChange, &e.QuantityAfter,
		&e.Unit, &reason, &docRef, &e.ActorID, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	fillOptional(&e, groupID, reason, docRef)
	return &e, nil
}

// ListByInventory lista asientos de un registro, del más reciente al más antiguo.
func (r *LedgerRepo) ListByInventory(inventoryID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM inventory_ledger
		WHERE inventory_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var out []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var groupID, reason, docRef *string
		if err := rows.Scan(&e.ID, &e.InventoryID, &groupID, &e.Type,
			&e.QuantityBefore, &e.QuantityChange, &e.QuantityAfter,
			&e.Unit, &reason, &docRef, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		fillOptional(&e, groupID, reason, docRef)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// CountByInventory total de asientos de un registro (paginación).
func (r *LedgerRepo) CountByInventory(inventoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory_ledger WHERE inventory_id = $1`, inventoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	return n, nil
}

// DeleteByInventory borra el historial completo de un registro. Única ruta de
// borrado del libro; solo la usa la eliminación administrativa con cascada.
func (r *LedgerRepo) DeleteByInventory(inventoryID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_ledger WHERE inventory_id = $1`, inventoryID)
	if err != nil {
		return fmt.Errorf("delete ledger entries: %w", err)
	}
	return nil
}

func fillOptional(e *entity.LedgerEntry, groupID, reason, docRef *string) {
	if groupID != nil {
		e.TransferGroupID = *groupID
	}
	if reason != nil {
		e.Reason = *reason
	}
	if docRef != nil {
		e.DocumentReference = *docRef
	}
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/stockledger/internal/application/inventory"
	"github.com/invorya/stockledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. Los bloqueos SELECT FOR UPDATE tomados por los repos viven hasta
// el final de la tx, por eso la verificación de suficiencia y la escritura
// quedan bajo el mismo lock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	recordRepo repository.InventoryRecordRepository,
	ledgerRepo repository.LedgerRepository,
	shelfRepo repository.ShelfRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recordRepo := NewInventoryRecordRepository(tx)
	ledgerRepo := NewLedgerRepository(tx)
	shelfRepo := NewShelfRepository(tx)

	// translateError también aquí: un deadlock puede aflorar en cualquier
	// consulta dentro de fn, no solo en el commit.
	if err := fn(recordRepo, ledgerRepo, shelfRepo); err != nil {
		return translateError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

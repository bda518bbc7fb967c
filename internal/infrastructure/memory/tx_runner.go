package memory

import (
	"context"

	appinv "github.com/invorya/stockledger/internal/application/inventory"
	"github.com/invorya/stockledger/internal/domain/repository"
)

var _ appinv.TxRunner = (*TxRunner)(nil)

// TxRunner simula transacciones sobre el Store: toma el mutex global durante
// toda la función (las tx se serializan, equivalente grueso del bloqueo de
// fila), saca un snapshot del estado y lo restaura si fn devuelve error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos sin locking propio (el mutex ya está tomado).
// Todo o nada: cualquier error de fn deja el estado exactamente como estaba.
func (r *TxRunner) Run(ctx context.Context, fn func(
	recordRepo repository.InventoryRecordRepository,
	ledgerRepo repository.LedgerRepository,
	shelfRepo repository.ShelfRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entries, records := r.store.snapshot()

	err := fn(
		&RecordRepo{store: r.store},
		&LedgerRepo{store: r.store},
		&ShelfRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(entries, records)
		return err
	}
	return nil
}

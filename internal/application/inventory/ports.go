package inventory

import (
	"context"

	"github.com/invorya/stockledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Es la garantía estructural de atomicidad del módulo: actualización
// del registro y asiento del libro se confirman juntos o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.InventoryRecordRepository,
		ledgerRepo repository.LedgerRepository,
		shelfRepo repository.ShelfRepository,
	) error) error
}

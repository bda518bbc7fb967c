package repository

import "github.com/invorya/stockledger/internal/domain/entity"

// LedgerRepository define el puerto de persistencia del libro de inventario.
// Los asientos son append-only: no hay Update; DeleteByInventory existe solo
// para la eliminación administrativa en cascada de un registro.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	GetByID(id string) (*entity.LedgerEntry, error)
	// ListByInventory devuelve asientos del más reciente al más antiguo.
	ListByInventory(inventoryID string, limit, offset int) ([]*entity.LedgerEntry, error)
	CountByInventory(inventoryID string) (int, error)
	DeleteByInventory(inventoryID string) error
}

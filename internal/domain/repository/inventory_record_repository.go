package repository

import "github.com/invorya/stockledger/internal/domain/entity"

// InventoryRecordRepository define el puerto para la fila viva de stock.
// Los métodos *ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción del TxRunner.
type InventoryRecordRepository interface {
	GetByID(id string) (*entity.InventoryRecord, error)
	// GetByKey localiza por la tripleta de unicidad; batchNumber sin normalizar (vacío = sin lote).
	GetByKey(productID, shelfID, batchNumber string) (*entity.InventoryRecord, error)
	GetByIDForUpdate(id string) (*entity.InventoryRecord, error)
	GetByKeyForUpdate(productID, shelfID, batchNumber string) (*entity.InventoryRecord, error)
	Create(record *entity.InventoryRecord) error
	// Save persiste cantidad y metadatos de un registro existente.
	Save(record *entity.InventoryRecord) error
	Delete(id string) error
	ListByShelf(shelfID string, limit, offset int) ([]*entity.InventoryRecord, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryRecord, error)
}

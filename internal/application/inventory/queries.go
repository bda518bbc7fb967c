package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/stockledger/internal/domain"
	"github.com/invorya/stockledger/internal/domain/entity"
	"github.com/invorya/stockledger/internal/domain/repository"
)

// QueryUseCase lecturas del stock vivo y del libro. Trabaja con repositorios
// atados al pool (fuera de transacción): las lecturas son idempotentes.
type QueryUseCase struct {
	recordRepo repository.InventoryRecordRepository
	ledgerRepo repository.LedgerRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(recordRepo repository.InventoryRecordRepository, ledgerRepo repository.LedgerRepository) *QueryUseCase {
	return &QueryUseCase{recordRepo: recordRepo, ledgerRepo: ledgerRepo}
}

// QuantitySnapshot cantidad actual de un registro en un instante.
type QuantitySnapshot struct {
	InventoryID string
	Quantity    decimal.Decimal
	Unit        string
	UpdatedAt   time.Time
}

// GetCurrentQuantity devuelve la cantidad actual de un registro.
func (uc *QueryUseCase) GetCurrentQuantity(ctx context.Context, inventoryID string) (*QuantitySnapshot, error) {
	record, err := uc.recordRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	return &QuantitySnapshot{
		InventoryID: record.ID,
		Quantity:    record.Quantity,
		Unit:        record.Unit,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

// ListLedgerEntries lista los asientos de un registro, del más reciente al más
// antiguo, con el total para paginación. El registro puede ya no existir
// (drenado por traslado): el historial sigue siendo consultable.
func (uc *QueryUseCase) ListLedgerEntries(ctx context.Context, inventoryID string, limit, offset int) ([]*entity.LedgerEntry, int, error) {
	entries, err := uc.ledgerRepo.ListByInventory(inventoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.ledgerRepo.CountByInventory(inventoryID)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListRecordsByShelf lista el stock vivo de una estantería.
func (uc *QueryUseCase) ListRecordsByShelf(ctx context.Context, shelfID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	return uc.recordRepo.ListByShelf(shelfID, limit, offset)
}

// ListRecordsByProduct lista el stock vivo de un producto en todas las estanterías.
func (uc *QueryUseCase) ListRecordsByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	return uc.recordRepo.ListByProduct(productID, limit, offset)
}

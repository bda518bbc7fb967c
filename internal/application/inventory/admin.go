package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/stockledger/internal/domain"
	"github.com/invorya/stockledger/internal/domain/entity"
	"github.com/invorya/stockledger/internal/domain/repository"
)

// AdminUseCase operaciones administrativas sobre registros de inventario:
// edición de metadatos (asiento "update", delta cero) y eliminación con o sin
// cascada sobre el libro.
type AdminUseCase struct {
	txRunner TxRunner
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(txRunner TxRunner) *AdminUseCase {
	return &AdminUseCase{txRunner: txRunner}
}

// UpdateRecordInput edición de metadatos de un registro. Un puntero nil deja
// el campo como está; para ExpiryDate, un puntero a nil lo limpia.
type UpdateRecordInput struct {
	InventoryID string
	Unit        *string
	BatchNumber *string
	ExpiryDate  **time.Time
	Reason      string
	ActorID     string
}

// UpdateRecord aplica la edición y deja un asiento "update" con delta cero
// (before == after == cantidad actual). Un cambio de lote que colisione con
// la tripleta de unicidad de otro registro falla con ErrDuplicate.
func (uc *AdminUseCase) UpdateRecord(ctx context.Context, input UpdateRecordInput) (*entity.LedgerEntry, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.InventoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Unit != nil && *input.Unit == "" {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.LedgerEntry

	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.ShelfRepository,
	) error {
		record, err := recordRepo.GetByIDForUpdate(input.InventoryID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrRecordNotFound
		}
		// timestamp bajo el bloqueo, como en toda mutación
		now := time.Now()

		if input.BatchNumber != nil && entity.NormalizeBatch(*input.BatchNumber) != record.BatchKey() {
			other, err := recordRepo.GetByKey(record.ProductID, record.ShelfID, *input.BatchNumber)
			if err != nil {
				return err
			}
			if other != nil {
				return domain.ErrDuplicate
			}
			record.BatchNumber = *input.BatchNumber
		}
		if input.Unit != nil {
			record.Unit = *input.Unit
		}
		if input.ExpiryDate != nil {
			record.ExpiryDate = *input.ExpiryDate
		}
		record.UpdatedAt = now
		if err := recordRepo.Save(record); err != nil {
			return err
		}

		entry := &entity.LedgerEntry{
			ID:             uuid.New().String(),
			InventoryID:    record.ID,
			Type:           entity.TxTypeUpdate,
			QuantityBefore: record.Quantity,
			QuantityChange: decimal.Zero,
			QuantityAfter:  record.Quantity,
			Unit:           record.Unit,
			Reason:         input.Reason,
			ActorID:        input.ActorID,
			CreatedAt:      now,
		}
		if err := ledgerRepo.Create(entry); err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteRecordInput eliminación administrativa de un registro.
type DeleteRecordInput struct {
	InventoryID string
	// Cascade true: elimina también todo el historial del libro (única ruta
	// que borra asientos). Cascade false: conserva el historial y deja un
	// asiento "delete" como lápida con la cantidad final drenada a cero.
	Cascade bool
	Reason  string
	ActorID string
}

// DeleteRecord elimina el registro según la política indicada, todo en una tx.
func (uc *AdminUseCase) DeleteRecord(ctx context.Context, input DeleteRecordInput) error {
	if input.ActorID == "" {
		return domain.ErrUnauthenticated
	}
	if input.InventoryID == "" {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.ShelfRepository,
	) error {
		record, err := recordRepo.GetByIDForUpdate(input.InventoryID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrRecordNotFound
		}
		now := time.Now()

		if input.Cascade {
			if err := ledgerRepo.DeleteByInventory(record.ID); err != nil {
				return err
			}
			return recordRepo.Delete(record.ID)
		}

		if err := recordRepo.Delete(record.ID); err != nil {
			return err
		}
		entry := &entity.LedgerEntry{
			ID:             uuid.New().String(),
			InventoryID:    record.ID,
			Type:           entity.TxTypeDelete,
			QuantityBefore: record.Quantity,
			QuantityChange: record.Quantity.Neg(),
			QuantityAfter:  decimal.Zero,
			Unit:           record.Unit,
			Reason:         input.Reason,
			ActorID:        input.ActorID,
			CreatedAt:      now,
		}
		return ledgerRepo.Create(entry)
	})
}

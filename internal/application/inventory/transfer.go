package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/stockledger/internal/domain"
	"github.com/invorya/stockledger/internal/domain/entity"
	domaininv "github.com/invorya/stockledger/internal/domain/inventory"
	"github.com/invorya/stockledger/internal/domain/repository"
)

// TransferUseCase mueve cantidad de un registro de inventario a una estantería
// destino dentro de una sola transacción de BD: resta en origen (transfer_out),
// suma o crea en destino (transfer_in) y deja dos asientos enlazados por
// TransferGroupID. Si el origen queda exactamente en cero, se elimina la fila;
// su historial en el libro se conserva.
type TransferUseCase struct {
	txRunner TxRunner
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner}
}

// TransferInput entrada para un traslado entre estanterías.
type TransferInput struct {
	SourceInventoryID string
	TargetShelfID     string
	Amount            decimal.Decimal
	Reason            string
	DocumentReference string
	ActorID           string
}

// TransferResult los dos asientos generados por un traslado.
type TransferResult struct {
	SourceEntry *entity.LedgerEntry
	TargetEntry *entity.LedgerEntry
}

// Transfer ejecuta el traslado. La suma origen+destino se conserva; unidad,
// lote y vencimiento se copian tal cual al destino (sin conversión de unidades:
// un destino existente con otra unidad es error del caller, ErrUnitMismatch).
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.SourceInventoryID == "" || input.TargetShelfID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	groupID := uuid.New().String()
	var result *TransferResult

	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		ledgerRepo repository.LedgerRepository,
		shelfRepo repository.ShelfRepository,
	) error {
		// Bloquea la fila origen; la suficiencia se valida bajo este mismo lock
		source, err := recordRepo.GetByIDForUpdate(input.SourceInventoryID)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrRecordNotFound
		}
		if source.ShelfID == input.TargetShelfID {
			return domain.ErrInvalidInput
		}

		ok, err := shelfRepo.Exists(input.TargetShelfID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTargetNotFound
		}

		outMut, err := domaininv.ComputeMutation(source.Quantity, entity.TxTypeTransferOut, input.Amount)
		if err != nil {
			return err
		}

		dest, err := recordRepo.GetByKeyForUpdate(source.ProductID, input.TargetShelfID, source.BatchNumber)
		if err != nil {
			return err
		}
		if dest != nil && dest.Unit != source.Unit {
			return domain.ErrUnitMismatch
		}

		// timestamp con ambos bloqueos ya tomados: el orden por created_at
		// coincide con el orden real de aplicación en los dos registros
		now := time.Now()

		// Lado origen: primero el asiento, luego la mutación de la fila;
		// así el historial queda escrito aunque el registro se elimine por drenaje.
		sourceEntry := &entity.LedgerEntry{
			ID:                uuid.New().String(),
			InventoryID:       source.ID,
			TransferGroupID:   groupID,
			Type:              entity.TxTypeTransferOut,
			QuantityBefore:    outMut.Before,
			QuantityChange:    outMut.Change,
			QuantityAfter:     outMut.After,
			Unit:              source.Unit,
			Reason:            input.Reason,
			DocumentReference: input.DocumentReference,
			ActorID:           input.ActorID,
			CreatedAt:         now,
		}
		if err := ledgerRepo.Create(sourceEntry); err != nil {
			return err
		}

		if outMut.After.IsZero() {
			// Drenaje total: la fila viva se elimina, el libro permanece
			if err := recordRepo.Delete(source.ID); err != nil {
				return err
			}
		} else {
			source.Quantity = outMut.After
			source.UpdatedAt = now
			if err := recordRepo.Save(source); err != nil {
				return err
			}
		}

		// Lado destino: incrementa el existente o crea uno nuevo copiando
		// unidad, lote y vencimiento del origen.
		var inMut domaininv.Mutation
		if dest == nil {
			inMut, err = domaininv.ComputeMutation(decimal.Zero, entity.TxTypeTransferIn, input.Amount)
			if err != nil {
				return err
			}
			dest = &entity.InventoryRecord{
				ID:          uuid.New().String(),
				ProductID:   source.ProductID,
				ShelfID:     input.TargetShelfID,
				Quantity:    inMut.After,
				Unit:        source.Unit,
				BatchNumber: source.BatchNumber,
				ExpiryDate:  source.ExpiryDate,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := recordRepo.Create(dest); err != nil {
				// otro traslado pudo crear el destino entre el chequeo y el
				// insert (índice único); el reintento lo incrementará
				if errors.Is(err, domain.ErrDuplicate) {
					return domain.ErrConcurrentModification
				}
				return err
			}
		} else {
			inMut, err = domaininv.ComputeMutation(dest.Quantity, entity.TxTypeTransferIn, input.Amount)
			if err != nil {
				return err
			}
			dest.Quantity = inMut.After
			dest.UpdatedAt = now
			if err := recordRepo.Save(dest); err != nil {
				return err
			}
		}

		targetEntry := &entity.LedgerEntry{
			ID:                uuid.New().String(),
			InventoryID:       dest.ID,
			TransferGroupID:   groupID,
			Type:              entity.TxTypeTransferIn,
			QuantityBefore:    inMut.Before,
			QuantityChange:    inMut.Change,
			QuantityAfter:     inMut.After,
			Unit:              dest.Unit,
			Reason:            input.Reason,
			DocumentReference: input.DocumentReference,
			ActorID:           input.ActorID,
			CreatedAt:         now,
		}
		if err := ledgerRepo.Create(targetEntry); err != nil {
			return err
		}

		result = &TransferResult{SourceEntry: sourceEntry, TargetEntry: targetEntry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

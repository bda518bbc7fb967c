package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/stockledger/internal/domain"
	"github.com/invorya/stockledger/internal/domain/entity"
	domaininv "github.com/invorya/stockledger/internal/domain/inventory"
	"github.com/invorya/stockledger/internal/domain/repository"
)

// TransactionUseCase aplica una mutación de cantidad de forma transaccional:
// bloquea la fila de stock (SELECT FOR UPDATE), calcula la mutación con el
// motor de dominio y persiste registro + asiento del libro en una sola tx.
type TransactionUseCase struct {
	txRunner TxRunner
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(txRunner TxRunner) *TransactionUseCase {
	return &TransactionUseCase{txRunner: txRunner}
}

// TransactionInput entrada para ejecutar una transacción de inventario.
// El registro se localiza por InventoryID o, si está vacío, por la tripleta
// (ProductID, ShelfID, BatchNumber). Para initial la tripleta es obligatoria.
type TransactionInput struct {
	InventoryID       string
	ProductID         string
	ShelfID           string
	BatchNumber       string
	Type              string
	Amount            decimal.Decimal
	Unit              string
	ExpiryDate        *time.Time // solo initial
	Reason            string
	DocumentReference string
	ActorID           string
}

// Execute aplica la mutación y devuelve el asiento creado.
// Garantías: ninguna escritura si falla la validación; registro y asiento se
// confirman juntos; la suficiencia de stock se verifica bajo el mismo bloqueo
// que la escritura, nunca contra una lectura previa.
func (uc *TransactionUseCase) Execute(ctx context.Context, input TransactionInput) (*entity.LedgerEntry, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	switch input.Type {
	case entity.TxTypeInitial:
		if input.ProductID == "" || input.ShelfID == "" || input.Unit == "" {
			return nil, domain.ErrInvalidInput
		}
		if input.InventoryID != "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.TxTypeAdd, entity.TxTypeRemove, entity.TxTypeAdjust:
		if input.InventoryID == "" && (input.ProductID == "" || input.ShelfID == "") {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrUnknownTransactionType
	}

	var created *entity.LedgerEntry

	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		ledgerRepo repository.LedgerRepository,
		shelfRepo repository.ShelfRepository,
	) error {
		if input.Type == entity.TxTypeInitial {
			entry, err := uc.doInitial(recordRepo, ledgerRepo, shelfRepo, input)
			if err != nil {
				return err
			}
			created = entry
			return nil
		}

		// Bloquea la fila para que lectura y escritura queden bajo el mismo lock
		record, err := lockRecord(recordRepo, input)
		if err != nil {
			return err
		}
		if record == nil {
			// remove/adjust sobre registro inexistente: no se trata como initial implícito
			return domain.ErrRecordNotFound
		}
		if input.Unit != "" && input.Unit != record.Unit {
			return domain.ErrUnitMismatch
		}

		// el timestamp se toma con la fila ya bloqueada: el orden por
		// created_at coincide con el orden real de aplicación
		now := time.Now()

		mut, err := domaininv.ComputeMutation(record.Quantity, input.Type, input.Amount)
		if err != nil {
			return err
		}

		record.Quantity = mut.After
		record.UpdatedAt = now
		if err := recordRepo.Save(record); err != nil {
			return err
		}

		entry := &entity.LedgerEntry{
			ID:                uuid.New().String(),
			InventoryID:       record.ID,
			Type:              input.Type,
			QuantityBefore:    mut.Before,
			QuantityChange:    mut.Change,
			QuantityAfter:     mut.After,
			Unit:              record.Unit,
			Reason:            input.Reason,
			DocumentReference: input.DocumentReference,
			ActorID:           input.ActorID,
			CreatedAt:         now,
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

// doInitial crea el registro y su primer asiento. Falla con ErrDuplicate si ya
// existe stock para la tripleta y con ErrTargetNotFound si la estantería no existe.
func (uc *TransactionUseCase) doInitial(
	recordRepo repository.InventoryRecordRepository,
	ledgerRepo repository.LedgerRepository,
	shelfRepo repository.ShelfRepository,
	input TransactionInput,
) (*entity.LedgerEntry, error) {
	ok, err := shelfRepo.Exists(input.ShelfID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrTargetNotFound
	}

	existing, err := recordRepo.GetByKeyForUpdate(input.ProductID, input.ShelfID, input.BatchNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	mut, err := domaininv.ComputeMutation(decimal.Zero, entity.TxTypeInitial, input.Amount)
	if err != nil {
		return nil, err
	}

	record := &entity.InventoryRecord{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		ShelfID:     input.ShelfID,
		Quantity:    mut.After,
		Unit:        input.Unit,
		BatchNumber: input.BatchNumber,
		ExpiryDate:  input.ExpiryDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := recordRepo.Create(record); err != nil {
		return nil, err
	}

	entry := &entity.LedgerEntry{
		ID:                uuid.New().String(),
		InventoryID:       record.ID,
		Type:              entity.TxTypeInitial,
		QuantityBefore:    mut.Before,
		QuantityChange:    mut.Change,
		QuantityAfter:     mut.After,
		Unit:              record.Unit,
		Reason:            input.Reason,
		DocumentReference: input.DocumentReference,
		ActorID:           input.ActorID,
		CreatedAt:         now,
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// lockRecord localiza el registro por ID o por tripleta, bloqueando la fila.
func lockRecord(recordRepo repository.InventoryRecordRepository, input TransactionInput) (*entity.InventoryRecord, error) {
	if input.InventoryID != "" {
		return recordRepo.GetByIDForUpdate(input.InventoryID)
	}
	return recordRepo.GetByKeyForUpdate(input.ProductID, input.ShelfID, input.BatchNumber)
}

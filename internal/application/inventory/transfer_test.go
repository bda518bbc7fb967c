package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/invorya/stockledger/internal/application/inventory"
	"github.com/invorya/stockledger/internal/domain"
	"github.com/invorya/stockledger/internal/domain/entity"
)

// Escenario 5 del contrato: trasladar 25 de un registro con 25 drena el origen
// (la fila se elimina) y crea el destino; ambos asientos quedan enlazados.
func TestTransfer_DrenajeTotalEliminaOrigenYCreaDestino(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "25", "kg", "LOTE-1")

	result, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("25"),
		ActorID:           testActorID,
	})
	require.NoError(t, err)

	out, in := result.SourceEntry, result.TargetEntry
	assert.Equal(t, entity.TxTypeTransferOut, out.Type)
	assert.True(t, out.QuantityBefore.Equal(dec("25")))
	assert.True(t, out.QuantityChange.Equal(dec("-25")))
	assert.True(t, out.QuantityAfter.IsZero())

	assert.Equal(t, entity.TxTypeTransferIn, in.Type)
	assert.True(t, in.QuantityBefore.IsZero())
	assert.True(t, in.QuantityChange.Equal(dec("25")))
	assert.True(t, in.QuantityAfter.Equal(dec("25")))

	require.NotEmpty(t, out.TransferGroupID)
	assert.Equal(t, out.TransferGroupID, in.TransferGroupID, "ambos lados comparten grupo")
	assert.NotEqual(t, out.InventoryID, in.InventoryID)

	// el origen drenado ya no existe; el destino copió unidad y lote
	assert.Nil(t, env.store.Record(srcID), "el origen en cero se elimina")
	dest := env.store.Record(in.InventoryID)
	require.NotNil(t, dest)
	assert.Equal(t, "kg", dest.Unit)
	assert.Equal(t, "LOTE-1", dest.BatchNumber)
	assert.Equal(t, shelfY, dest.ShelfID)

	// el historial del origen sigue siendo consultable tras el drenaje
	entries, total, err := env.queries.ListLedgerEntries(context.Background(), srcID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total, "initial + transfer_out")
	assert.Equal(t, entity.TxTypeTransferOut, entries[0].Type)
}

func TestTransfer_ParcialConservaElOrigen(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "40", "kg", "")

	result, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("15"),
		ActorID:           testActorID,
	})
	require.NoError(t, err)

	src := env.store.Record(srcID)
	require.NotNil(t, src, "traslado parcial no elimina el origen")
	assert.True(t, src.Quantity.Equal(dec("25")))
	assert.True(t, result.TargetEntry.QuantityAfter.Equal(dec("15")))
}

func TestTransfer_DestinoExistenteIncrementa(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "40", "kg", "")

	// destino preexistente en la estantería Y, mismo producto, sin lote
	destEntry, err := env.transactions.Execute(context.Background(), appinv.TransactionInput{
		ProductID: productA,
		ShelfID:   shelfY,
		Type:      entity.TxTypeInitial,
		Amount:    dec("5"),
		Unit:      "kg",
		ActorID:   testActorID,
	})
	require.NoError(t, err)

	result, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("10"),
		ActorID:           testActorID,
	})
	require.NoError(t, err)

	assert.Equal(t, destEntry.InventoryID, result.TargetEntry.InventoryID, "debe incrementar el existente, no crear otro")
	assert.True(t, result.TargetEntry.QuantityBefore.Equal(dec("5")))
	assert.True(t, result.TargetEntry.QuantityAfter.Equal(dec("15")))
	assert.Equal(t, 2, env.store.RecordCount())
}

// Conservación: la suma origen+destino no cambia con el traslado.
func TestTransfer_ConservaLaCantidadTotal(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "40", "kg", "")
	sumaAntes := dec("40")

	result, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("12.75"),
		ActorID:           testActorID,
	})
	require.NoError(t, err)

	sumaDespues := decimal.Zero
	if src := env.store.Record(srcID); src != nil {
		sumaDespues = sumaDespues.Add(src.Quantity)
	}
	dest := env.store.Record(result.TargetEntry.InventoryID)
	require.NotNil(t, dest)
	sumaDespues = sumaDespues.Add(dest.Quantity)

	assert.True(t, sumaAntes.Equal(sumaDespues), "suma antes %s != después %s", sumaAntes, sumaDespues)
}

func TestTransfer_StockInsuficiente(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "10", "kg", "")

	_, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("10.01"),
		ActorID:           testActorID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, env.store.Record(srcID).Quantity.Equal(dec("10")), "sin cambios")
	assert.Equal(t, 1, env.store.RecordCount())
}

func TestTransfer_EstanteriaDestinoInexistente(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "10", "kg", "")

	_, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     "33333333-0000-0000-0000-000000000099",
		Amount:            dec("5"),
		ActorID:           testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestTransfer_UnidadDelDestinoNoCoincide(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "10", "kg", "")

	// destino existente con otra unidad
	_, err := env.transactions.Execute(context.Background(), appinv.TransactionInput{
		ProductID: productA,
		ShelfID:   shelfY,
		Type:      entity.TxTypeInitial,
		Amount:    dec("3"),
		Unit:      "lt",
		ActorID:   testActorID,
	})
	require.NoError(t, err)

	_, err = env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("5"),
		ActorID:           testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrUnitMismatch)
	assert.True(t, env.store.Record(srcID).Quantity.Equal(dec("10")), "nada aplicado")
}

func TestTransfer_MismaEstanteriaRechazado(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "10", "kg", "")

	_, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfX,
		Amount:            dec("5"),
		ActorID:           testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_MontoInvalido(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "10", "kg", "")

	for _, amount := range []string{"0", "-5"} {
		_, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
			SourceInventoryID: srcID,
			TargetShelfID:     shelfY,
			Amount:            dec(amount),
			ActorID:           testActorID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount=%s", amount)
	}
}

func TestTransfer_SinActor(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: "x",
		TargetShelfID:     shelfY,
		Amount:            dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// Dos traslados simultáneos hacia la misma estantería pueden chocar al crear
// el destino (índice único). El choque se reporta como modificación
// concurrente, no como duplicado: el reintento incrementa el destino que ya
// existe y termina bien.
func TestTransfer_ChoqueCreandoDestinoEsReintentable(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "40", "kg", "")

	env.store.RecordCreateHook = func(r *entity.InventoryRecord) error {
		if r.ShelfID == shelfY {
			// simula al otro traslado ganando la carrera del insert
			return domain.ErrDuplicate
		}
		return nil
	}

	_, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("15"),
		ActorID:           testActorID,
	})
	require.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.True(t, env.store.Record(srcID).Quantity.Equal(dec("40")),
		"todo revertido: el reintento parte del estado original")
	assert.Len(t, env.store.Entries(), 1, "solo el asiento del initial")

	env.store.RecordCreateHook = nil
	result, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("15"),
		ActorID:           testActorID,
	})
	require.NoError(t, err, "el reintento debe funcionar")
	assert.True(t, result.TargetEntry.QuantityAfter.Equal(dec("15")))
	assert.True(t, env.store.Record(srcID).Quantity.Equal(dec("25")))
}

// Atomicidad de los dos lados: si el asiento transfer_in falla, también se
// revierten la resta del origen y el asiento transfer_out.
func TestTransfer_FalloEnDestinoRevierteAmbosLados(t *testing.T) {
	env := newTestEnv(t)
	srcID := env.seedRecord(t, "40", "kg", "")
	asientosAntes := len(env.store.Entries())

	falloInyectado := errors.New("storage caído")
	env.store.LedgerCreateHook = func(e *entity.LedgerEntry) error {
		if e.Type == entity.TxTypeTransferIn {
			return falloInyectado
		}
		return nil
	}

	_, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: srcID,
		TargetShelfID:     shelfY,
		Amount:            dec("40"),
		ActorID:           testActorID,
	})
	require.ErrorIs(t, err, falloInyectado)

	src := env.store.Record(srcID)
	require.NotNil(t, src, "el origen drenado debe restaurarse con el rollback")
	assert.True(t, src.Quantity.Equal(dec("40")))
	assert.Equal(t, 1, env.store.RecordCount(), "el destino no debe quedar creado")
	assert.Len(t, env.store.Entries(), asientosAntes, "ningún asiento del traslado debe persistir")
}

// El vencimiento del lote se copia al destino creado.
func TestTransfer_CopiaVencimientoAlDestino(t *testing.T) {
	env := newTestEnv(t)
	exp := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	entry, err := env.transactions.Execute(context.Background(), appinv.TransactionInput{
		ProductID:   productA,
		ShelfID:     shelfX,
		BatchNumber: "LOTE-9",
		Type:        entity.TxTypeInitial,
		Amount:      dec("10"),
		Unit:        "kg",
		ExpiryDate:  &exp,
		ActorID:     testActorID,
	})
	require.NoError(t, err)

	result, err := env.transfers.Transfer(context.Background(), appinv.TransferInput{
		SourceInventoryID: entry.InventoryID,
		TargetShelfID:     shelfY,
		Amount:            dec("4"),
		ActorID:           testActorID,
	})
	require.NoError(t, err)

	dest := env.store.Record(result.TargetEntry.InventoryID)
	require.NotNil(t, dest)
	require.NotNil(t, dest.ExpiryDate)
	assert.True(t, exp.Equal(*dest.ExpiryDate))
	assert.Equal(t, "LOTE-9", dest.BatchNumber)
}

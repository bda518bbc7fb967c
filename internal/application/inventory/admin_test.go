package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/invorya/stockledger/internal/application/inventory"
	"github.com/invorya/stockledger/internal/domain"
	"github.com/invorya/stockledger/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestUpdateRecord_CambiaMetadatosConAsientoDeltaCero(t *testing.T) {
	env := newTestEnv(t)
	invID := env.seedRecord(t, "30", "kg", "LOTE-1")

	exp := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	expPtr := &exp
	entry, err := env.admin.UpdateRecord(context.Background(), appinv.UpdateRecordInput{
		InventoryID: invID,
		BatchNumber: strPtr("LOTE-2"),
		ExpiryDate:  &expPtr,
		Reason:      "reetiquetado",
		ActorID:     testActorID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TxTypeUpdate, entry.Type)
	assert.True(t, entry.QuantityChange.IsZero(), "la edición de metadatos no mueve cantidad")
	assert.True(t, entry.QuantityBefore.Equal(entry.QuantityAfter))

	record := env.store.Record(invID)
	assert.Equal(t, "LOTE-2", record.BatchNumber)
	require.NotNil(t, record.ExpiryDate)
	assert.True(t, exp.Equal(*record.ExpiryDate))
	assert.True(t, record.Quantity.Equal(dec("30")), "la cantidad queda intacta")
}

func TestUpdateRecord_ColisionDeLoteFalla(t *testing.T) {
	env := newTestEnv(t)
	invID := env.seedRecord(t, "10", "kg", "LOTE-1")
	env.seedRecord(t, "20", "kg", "LOTE-2")

	_, err := env.admin.UpdateRecord(context.Background(), appinv.UpdateRecordInput{
		InventoryID: invID,
		BatchNumber: strPtr("LOTE-2"),
		ActorID:     testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "LOTE-1", env.store.Record(invID).BatchNumber, "sin cambios tras el fallo")
}

func TestUpdateRecord_Inexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.admin.UpdateRecord(context.Background(), appinv.UpdateRecordInput{
		InventoryID: "no-existe",
		Unit:        strPtr("kg"),
		ActorID:     testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestDeleteRecord_SinCascadaDejaLapida(t *testing.T) {
	env := newTestEnv(t)
	invID := env.seedRecord(t, "30", "kg", "")

	err := env.admin.DeleteRecord(context.Background(), appinv.DeleteRecordInput{
		InventoryID: invID,
		Reason:      "baja de producto",
		ActorID:     testActorID,
	})
	require.NoError(t, err)

	assert.Nil(t, env.store.Record(invID), "la fila viva desaparece")

	entries, total, err := env.queries.ListLedgerEntries(context.Background(), invID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total, "initial + lápida delete")
	lapida := entries[0]
	assert.Equal(t, entity.TxTypeDelete, lapida.Type)
	assert.True(t, lapida.QuantityBefore.Equal(dec("30")))
	assert.True(t, lapida.QuantityChange.Equal(dec("-30")))
	assert.True(t, lapida.QuantityAfter.IsZero())
}

func TestDeleteRecord_ConCascadaBorraElLibro(t *testing.T) {
	env := newTestEnv(t)
	invID := env.seedRecord(t, "30", "kg", "")
	_, err := env.transactions.Execute(context.Background(), appinv.TransactionInput{
		InventoryID: invID,
		Type:        entity.TxTypeAdd,
		Amount:      dec("5"),
		ActorID:     testActorID,
	})
	require.NoError(t, err)

	err = env.admin.DeleteRecord(context.Background(), appinv.DeleteRecordInput{
		InventoryID: invID,
		Cascade:     true,
		ActorID:     testActorID,
	})
	require.NoError(t, err)

	assert.Nil(t, env.store.Record(invID))
	_, total, err := env.queries.ListLedgerEntries(context.Background(), invID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total, "la cascada borra todo el historial")
}

func TestDeleteRecord_SinActor(t *testing.T) {
	env := newTestEnv(t)
	err := env.admin.DeleteRecord(context.Background(), appinv.DeleteRecordInput{
		InventoryID: "x",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/invorya/stockledger/internal/application/inventory"
	"github.com/invorya/stockledger/internal/domain"
	"github.com/invorya/stockledger/internal/domain/entity"
)

func TestGetCurrentQuantity(t *testing.T) {
	env := newTestEnv(t)
	invID := env.seedRecord(t, "12.5", "kg", "")

	snap, err := env.queries.GetCurrentQuantity(context.Background(), invID)
	require.NoError(t, err)
	assert.Equal(t, invID, snap.InventoryID)
	assert.True(t, snap.Quantity.Equal(dec("12.5")))
	assert.Equal(t, "kg", snap.Unit)

	_, err = env.queries.GetCurrentQuantity(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

// Lecturas idempotentes: dos llamadas sin mutación intermedia devuelven lo mismo.
func TestLecturas_Idempotentes(t *testing.T) {
	env := newTestEnv(t)
	invID := env.seedRecord(t, "30", "un", "")
	_, err := env.transactions.Execute(context.Background(), appinv.TransactionInput{
		InventoryID: invID,
		Type:        entity.TxTypeAdd,
		Amount:      dec("5"),
		ActorID:     testActorID,
	})
	require.NoError(t, err)

	snap1, err := env.queries.GetCurrentQuantity(context.Background(), invID)
	require.NoError(t, err)
	snap2, err := env.queries.GetCurrentQuantity(context.Background(), invID)
	require.NoError(t, err)
	assert.True(t, snap1.Quantity.Equal(snap2.Quantity))
	assert.Equal(t, snap1.UpdatedAt, snap2.UpdatedAt)

	list1, total1, err := env.queries.ListLedgerEntries(context.Background(), invID, 10, 0)
	require.NoError(t, err)
	list2, total2, err := env.queries.ListLedgerEntries(context.Background(), invID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, total1, total2)
	require.Len(t, list2, len(list1))
	for i := range list1 {
		assert.Equal(t, list1[i].ID, list2[i].ID)
	}
}

func TestListLedgerEntries_OrdenYPaginacion(t *testing.T) {
	env := newTestEnv(t)
	invID := env.seedRecord(t, "100", "kg", "")
	for i := 0; i < 4; i++ {
		_, err := env.transactions.Execute(context.Background(), appinv.TransactionInput{
			InventoryID: invID,
			Type:        entity.TxTypeRemove,
			Amount:      dec("10"),
			ActorID:     testActorID,
		})
		require.NoError(t, err)
	}

	page1, total, err := env.queries.ListLedgerEntries(context.Background(), invID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total, "initial + 4 removes")
	require.Len(t, page1, 2)
	// más reciente primero: el after más bajo va primero
	assert.True(t, page1[0].QuantityAfter.Equal(dec("60")))
	assert.True(t, page1[1].QuantityAfter.Equal(dec("70")))

	page3, _, err := env.queries.ListLedgerEntries(context.Background(), invID, 2, 4)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, entity.TxTypeInitial, page3[0].Type, "el asiento más antiguo es el initial")
}

func TestListRecords_PorEstanteriaYProducto(t *testing.T) {
	env := newTestEnv(t)
	env.seedRecord(t, "10", "kg", "LOTE-A")
	env.seedRecord(t, "20", "kg", "LOTE-B")

	porEstanteria, err := env.queries.ListRecordsByShelf(context.Background(), shelfX, 10, 0)
	require.NoError(t, err)
	assert.Len(t, porEstanteria, 2)

	porProducto, err := env.queries.ListRecordsByProduct(context.Background(), productA, 10, 0)
	require.NoError(t, err)
	assert.Len(t, porProducto, 2)

	vacia, err := env.queries.ListRecordsByShelf(context.Background(), shelfY, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, vacia)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchKeyNone valor centinela para la clave de unicidad cuando el registro no tiene lote.
// La columna batch_key es NOT NULL para que el índice único (product_id, shelf_id, batch_key)
// trate "sin lote" como un lote más.
const BatchKeyNone = "SIN_LOTE"

// InventoryRecord representa el stock actual de un producto en una estantería,
// opcionalmente separado por lote. Es la fila viva que mutan las transacciones;
// el historial queda en inventory_ledger.
type InventoryRecord struct {
	ID          string
	ProductID   string
	ShelfID     string
	Quantity    decimal.Decimal // siempre >= 0
	Unit        string          // código de unidad: "kg", "un", "lt", ...
	BatchNumber string          // vacío = sin lote
	ExpiryDate  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BatchKey normaliza el número de lote para la clave de unicidad.
func (r *InventoryRecord) BatchKey() string {
	return NormalizeBatch(r.BatchNumber)
}

// NormalizeBatch devuelve el valor de batch_key para un número de lote dado.
func NormalizeBatch(batchNumber string) string {
	if batchNumber == "" {
		return BatchKeyNone
	}
	return batchNumber
}

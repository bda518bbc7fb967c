package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de inventario.
const (
	TxTypeInitial     = "initial"      // primer stock de un registro
	TxTypeAdd         = "add"          // entrada
	TxTypeRemove      = "remove"       // salida
	TxTypeAdjust      = "adjust"       // ajuste a valor absoluto
	TxTypeTransferOut = "transfer_out" // salida por traslado
	TxTypeTransferIn  = "transfer_in"  // entrada por traslado
	TxTypeUpdate      = "update"       // edición administrativa de metadatos
	TxTypeDelete      = "delete"       // eliminación administrativa
)

// LedgerEntry es el asiento inmutable que documenta una mutación de cantidad.
// Se crea exactamente una vez por mutación, en la misma transacción de BD que
// el cambio sobre inventory_records, y nunca se modifica después.
// Invariante: QuantityAfter == QuantityBefore + QuantityChange.
type LedgerEntry struct {
	ID                string
	InventoryID       string
	TransferGroupID   string // vacío salvo transfer_out/transfer_in; igual en ambos lados de un traslado
	Type              string
	QuantityBefore    decimal.Decimal
	QuantityChange    decimal.Decimal // con signo
	QuantityAfter     decimal.Decimal
	Unit              string
	Reason            string // texto libre, opcional
	DocumentReference string // factura, orden, remisión... opcional
	ActorID           string
	CreatedAt         time.Time
}

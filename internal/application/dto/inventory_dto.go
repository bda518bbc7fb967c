package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/stockledger/internal/domain/entity"
)

// TransactionRequest body para POST /api/inventory/transactions.
// Se localiza el registro por inventory_id o por (product_id, shelf_id, batch_number).
type TransactionRequest struct {
	InventoryID       string          `json:"inventory_id,omitempty"`
	ProductID         string          `json:"product_id,omitempty"`
	ShelfID           string          `json:"shelf_id,omitempty"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Unit              string          `json:"unit,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	Reason            string          `json:"reason,omitempty"`
	DocumentReference string          `json:"document_reference,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	SourceInventoryID string          `json:"source_inventory_id"`
	TargetShelfID     string          `json:"target_shelf_id"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason,omitempty"`
	DocumentReference string          `json:"document_reference,omitempty"`
}

// UpdateRecordRequest body para PUT /api/inventory/records/:id (edición de metadatos).
type UpdateRecordRequest struct {
	Unit        *string    `json:"unit,omitempty"`
	BatchNumber *string    `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	ClearExpiry bool       `json:"clear_expiry,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

// LedgerEntryDTO asiento del libro en respuestas.
type LedgerEntryDTO struct {
	ID                string          `json:"id"`
	InventoryID       string          `json:"inventory_id"`
	TransferGroupID   string          `json:"transfer_group_id,omitempty"`
	Type              string          `json:"type"`
	QuantityBefore    decimal.Decimal `json:"quantity_before"`
	QuantityChange    decimal.Decimal `json:"quantity_change"`
	QuantityAfter     decimal.Decimal `json:"quantity_after"`
	Unit              string          `json:"unit"`
	Reason            string          `json:"reason,omitempty"`
	DocumentReference string          `json:"document_reference,omitempty"`
	ActorID           string          `json:"actor_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

// FromLedgerEntry convierte la entidad al DTO de respuesta.
func FromLedgerEntry(e *entity.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:                e.ID,
		InventoryID:       e.InventoryID,
		TransferGroupID:   e.TransferGroupID,
		Type:              e.Type,
		QuantityBefore:    e.QuantityBefore,
		QuantityChange:    e.QuantityChange,
		QuantityAfter:     e.QuantityAfter,
		Unit:              e.Unit,
		Reason:            e.Reason,
		DocumentReference: e.DocumentReference,
		ActorID:           e.ActorID,
		CreatedAt:         e.CreatedAt,
	}
}

// TransferResponse los dos asientos de un traslado.
type TransferResponse struct {
	SourceEntry LedgerEntryDTO `json:"source_entry"`
	TargetEntry LedgerEntryDTO `json:"target_entry"`
}

// InventoryRecordDTO fila viva de stock en respuestas.
type InventoryRecordDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ShelfID     string          `json:"shelf_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	BatchNumber string          `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FromInventoryRecord convierte la entidad al DTO de respuesta.
func FromInventoryRecord(r *entity.InventoryRecord) InventoryRecordDTO {
	return InventoryRecordDTO{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ShelfID:     r.ShelfID,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		BatchNumber: r.BatchNumber,
		ExpiryDate:  r.ExpiryDate,
		UpdatedAt:   r.UpdatedAt,
	}
}

// QuantityResponse respuesta de GET /records/:id/quantity.
type QuantityResponse struct {
	InventoryID string          `json:"inventory_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stockledger/internal/application/dto"
	"github.com/invorya/stockledger/internal/application/inventory"
	"github.com/invorya/stockledger/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del núcleo de inventario (protegido).
type InventoryHandler struct {
	transactions *inventory.TransactionUseCase
	transfers    *inventory.TransferUseCase
	queries      *inventory.QueryUseCase
	admin        *inventory.AdminUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	transactions *inventory.TransactionUseCase,
	transfers *inventory.TransferUseCase,
	queries *inventory.QueryUseCase,
	admin *inventory.AdminUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		transactions: transactions,
		transfers:    transfers,
		queries:      queries,
		admin:        admin,
	}
}

// ExecuteTransaction registra una transacción de inventario
// (initial, add, remove, adjust) y devuelve el asiento creado.
func (h *InventoryHandler) ExecuteTransaction(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.transactions.Execute(c.Context(), inventory.TransactionInput{
		InventoryID:       in.InventoryID,
		ProductID:         in.ProductID,
		ShelfID:           in.ShelfID,
		BatchNumber:       in.BatchNumber,
		Type:              in.Type,
		Amount:            in.Amount,
		Unit:              in.Unit,
		ExpiryDate:        in.ExpiryDate,
		Reason:            in.Reason,
		DocumentReference: in.DocumentReference,
		ActorID:           GetActorID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLedgerEntry(entry))
}

// Transfer traslada cantidad entre estanterías y devuelve ambos asientos.
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.transfers.Transfer(c.Context(), inventory.TransferInput{
		SourceInventoryID: in.SourceInventoryID,
		TargetShelfID:     in.TargetShelfID,
		Amount:            in.Amount,
		Reason:            in.Reason,
		DocumentReference: in.DocumentReference,
		ActorID:           GetActorID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		SourceEntry: dto.FromLedgerEntry(result.SourceEntry),
		TargetEntry: dto.FromLedgerEntry(result.TargetEntry),
	})
}

// GetQuantity devuelve la cantidad actual de un registro.
func (h *InventoryHandler) GetQuantity(c *fiber.Ctx) error {
	snap, err := h.queries.GetCurrentQuantity(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.QuantityResponse{
		InventoryID: snap.InventoryID,
		Quantity:    snap.Quantity,
		Unit:        snap.Unit,
		UpdatedAt:   snap.UpdatedAt,
	})
}

// ListLedger lista los asientos de un registro, paginados, más reciente primero.
func (h *InventoryHandler) ListLedger(c *fiber.Ctx) error {
	var pg dto.PageRequest
	if err := c.QueryParser(&pg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	pg.DefaultPage()
	entries, total, err := h.queries.ListLedgerEntries(c.Context(), c.Params("id"), pg.Limit, pg.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromLedgerEntry(e))
	}
	return c.JSON(fiber.Map{
		"entries": out,
		"page":    dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total},
	})
}

// ListRecords lista stock vivo filtrado por shelf_id o product_id.
func (h *InventoryHandler) ListRecords(c *fiber.Ctx) error {
	var pg dto.PageRequest
	if err := c.QueryParser(&pg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	pg.DefaultPage()

	shelfID := c.Query("shelf_id")
	productID := c.Query("product_id")
	var (
		records []*entity.InventoryRecord
		err     error
	)
	switch {
	case shelfID != "":
		records, err = h.queries.ListRecordsByShelf(c.Context(), shelfID, pg.Limit, pg.Offset)
	case productID != "":
		records, err = h.queries.ListRecordsByProduct(c.Context(), productID, pg.Limit, pg.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere shelf_id o product_id"})
	}
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InventoryRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, dto.FromInventoryRecord(r))
	}
	return c.JSON(fiber.Map{
		"records": out,
		"page":    dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset},
	})
}

// UpdateRecord edición administrativa de metadatos (asiento "update", delta cero).
func (h *InventoryHandler) UpdateRecord(c *fiber.Ctx) error {
	var in dto.UpdateRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := inventory.UpdateRecordInput{
		InventoryID: c.Params("id"),
		Unit:        in.Unit,
		BatchNumber: in.BatchNumber,
		Reason:      in.Reason,
		ActorID:     GetActorID(c),
	}
	if in.ClearExpiry {
		var cleared *time.Time
		input.ExpiryDate = &cleared
	} else if in.ExpiryDate != nil {
		d := in.ExpiryDate
		input.ExpiryDate = &d
	}
	entry, err := h.admin.UpdateRecord(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromLedgerEntry(entry))
}

// DeleteRecord eliminación administrativa; ?cascade=true borra también el libro.
func (h *InventoryHandler) DeleteRecord(c *fiber.Ctx) error {
	err := h.admin.DeleteRecord(c.Context(), inventory.DeleteRecordInput{
		InventoryID: c.Params("id"),
		Cascade:     c.QueryBool("cascade"),
		Reason:      c.Query("reason"),
		ActorID:     GetActorID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

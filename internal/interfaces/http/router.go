package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stockledger/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Transactions *inventory.TransactionUseCase
	Transfers    *inventory.TransferUseCase
	Queries      *inventory.QueryUseCase
	Admin        *inventory.AdminUseCase
	JWTSecret    string
}

// Router registra las rutas del núcleo de inventario. Todo el grupo exige
// Bearer Token: el actor autenticado es obligatorio en cada operación.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	handler := NewInventoryHandler(deps.Transactions, deps.Transfers, deps.Queries, deps.Admin)

	inv := api.Group("/inventory")
	inv.Post("/transactions", handler.ExecuteTransaction)
	inv.Post("/transfers", handler.Transfer)
	inv.Get("/records", handler.ListRecords)
	inv.Get("/records/:id/quantity", handler.GetQuantity)
	inv.Get("/records/:id/ledger", handler.ListLedger)
	inv.Put("/records/:id", handler.UpdateRecord)
	inv.Delete("/records/:id", handler.DeleteRecord)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafeteria-api/internal/application/fulfillment"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orchestrator *fulfillment.Orchestrator
	Restock      *fulfillment.RestockUseCase
	Alerts       *fulfillment.AlertUseCase
	Expiry       *fulfillment.ExpirySweepUseCase
	Queries      *fulfillment.QueryUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders (protegido): solo transiciones y lectura; la creación es del checkout externo.
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orchestrator, deps.Queries)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.TransitionStatus)

	// Inventory (protegido)
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Restock, deps.Queries, deps.Expiry)
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Post("/items/:id/restock", inventoryHandler.Restock)
	inv.Post("/expiry-sweep", inventoryHandler.ExpirySweep)

	// Alerts (protegido)
	alertHandler := NewAlertHandler(deps.Alerts)
	inv.Get("/alerts", alertHandler.ListUnresolved)
	inv.Patch("/alerts/:id/resolve", alertHandler.Resolve)

	// Menu (protegido, solo lectura del flag derivado)
	menu := protected.Group("/menu-items")
	menuHandler := NewMenuHandler(deps.Queries)
	menu.Get("/:id/availability", menuHandler.Availability)
}

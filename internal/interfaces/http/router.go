package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BranchInventory    *inventory.Service
	WarehouseInventory *inventory.Service
	JWTSecret          string
}

// Router registra las rutas de la API. Las dos familias de endpoints
// (sucursales y bodegas) montan el mismo handler sobre services con distinto
// Scope; la lógica de autorización y validación no se duplica.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1", AuthMiddleware(deps.JWTSecret))

	branchHandler := NewInventoryHandler(deps.BranchInventory)
	branches := api.Group("/branches")
	branches.Get("/:locationId/inventory", branchHandler.List)
	branches.Post("/:locationId/inventory", branchHandler.Create)
	branches.Patch("/:locationId/inventory/:productId", branchHandler.Update)
	branches.Delete("/:locationId/inventory/:productId", branchHandler.Delete)

	warehouseHandler := NewInventoryHandler(deps.WarehouseInventory)
	warehouses := api.Group("/warehouses")
	warehouses.Get("/:locationId/inventory", warehouseHandler.List)
	warehouses.Post("/:locationId/inventory", warehouseHandler.Create)
	warehouses.Patch("/:locationId/inventory/:productId", warehouseHandler.Update)
	warehouses.Delete("/:locationId/inventory/:productId", warehouseHandler.Delete)
}

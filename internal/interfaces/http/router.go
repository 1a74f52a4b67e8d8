package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tharaka19/CCIMS-sub000/internal/application/equipment"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/application/project"
)

// EquipmentRouterDeps dependencias del router del servicio de equipos.
type EquipmentRouterDeps struct {
	StockUC    *equipment.EquipmentStockUseCase
	HistoryUC  *equipment.EquipmentStockHistoryUseCase
	UserLookup ports.UserLookup
}

// EquipmentRouter registra las rutas del servicio de equipos (todas protegidas).
func EquipmentRouter(app *fiber.App, deps EquipmentRouterDeps) {
	api := app.Group("/equipment", AuthMiddleware(deps.UserLookup))

	stocks := api.Group("/equipmentStock")
	stockHandler := NewEquipmentStockHandler(deps.StockUC)
	stocks.Post("/saveUpdate", stockHandler.SaveUpdate)
	stocks.Put("/updateEquipmentQuantity/:id", stockHandler.UpdateEquipmentQuantity)
	stocks.Get("/getAll", stockHandler.GetAll)
	stocks.Get("/getAllActive", stockHandler.GetAllActive)
	stocks.Get("/getById/:id", stockHandler.GetByID)
	stocks.Get("/getByEquipmentId/:equipmentId", stockHandler.GetByEquipmentID)
	stocks.Delete("/deleteById/:id", stockHandler.DeleteByID)

	history := api.Group("/equipmentStockHistory")
	historyHandler := NewEquipmentStockHistoryHandler(deps.HistoryUC)
	history.Post("/saveUpdate", historyHandler.SaveUpdate)
	history.Get("/getAllByEquipmentStock/:equipmentStockId", historyHandler.GetAllByEquipmentStock)
}

// ProjectRouterDeps dependencias del router del servicio de proyectos.
type ProjectRouterDeps struct {
	MovementUC *project.ClientProjectStockUseCase
	UserLookup ports.UserLookup
}

// ProjectRouter registra las rutas del servicio de proyectos (todas protegidas).
func ProjectRouter(app *fiber.App, deps ProjectRouterDeps) {
	api := app.Group("/project", AuthMiddleware(deps.UserLookup))

	movements := api.Group("/clientProjectEquipmentStock")
	handler := NewClientProjectEquipmentStockHandler(deps.MovementUC)
	movements.Post("/saveUpdate", handler.SaveUpdate)
	movements.Get("/getAllByClientProject/:clientProjectId", handler.GetAllByClientProject)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/equipment"
	"github.com/tharaka19/CCIMS-sub000/internal/application/project"
)

// HeaderIdempotencyKey cabecera opcional: una clave repetida devuelve el movimiento ya registrado.
const HeaderIdempotencyKey = "Idempotency-Key"

// EquipmentStockHistoryHandler movimientos del libro de stock de equipos.
type EquipmentStockHistoryHandler struct {
	uc *equipment.EquipmentStockHistoryUseCase
}

// NewEquipmentStockHistoryHandler construye el handler.
func NewEquipmentStockHistoryHandler(uc *equipment.EquipmentStockHistoryUseCase) *EquipmentStockHistoryHandler {
	return &EquipmentStockHistoryHandler{uc: uc}
}

// SaveUpdate godoc
// @Summary      Registrar movimiento de stock de equipos
// @Description  ADD suma, REMOVE y DEFECT restan sin dejar la cantidad negativa.
// @Tags         equipmentStockHistory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                            false  "Clave de idempotencia"
// @Param        body             body      dto.EquipmentStockHistoryRequest  true   "Movimiento"
// @Success      201              {object}  dto.ResponseDTO{content=dto.EquipmentStockHistoryResponse}
// @Success      200              {object}  dto.ResponseDTO{content=dto.EquipmentStockHistoryResponse}
// @Failure      404              {object}  dto.ResponseDTO
// @Failure      409              {object}  dto.ResponseDTO
// @Failure      422              {object}  dto.ResponseDTO
// @Router       /equipment/equipmentStockHistory/saveUpdate [post]
func (h *EquipmentStockHistoryHandler) SaveUpdate(c *fiber.Ctx) error {
	var in dto.EquipmentStockHistoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, created, err := h.uc.Record(c.UserContext(), GetUser(c), in, c.Get(HeaderIdempotencyKey))
	if err != nil {
		return fail(c, err)
	}
	if created {
		return success(c, fiber.StatusCreated, MsgSaved, out)
	}
	return success(c, fiber.StatusOK, MsgSaved, out)
}

// GetAllByEquipmentStock godoc
// @Summary      Listar movimientos de un registro de stock
// @Tags         equipmentStockHistory
// @Security     Bearer
// @Produce      json
// @Param        equipmentStockId  path      int  true  "ID del registro de stock"
// @Success      200               {object}  dto.ResponseDTO{content=[]dto.EquipmentStockHistoryResponse}
// @Router       /equipment/equipmentStockHistory/getAllByEquipmentStock/{equipmentStockId} [get]
func (h *EquipmentStockHistoryHandler) GetAllByEquipmentStock(c *fiber.Ctx) error {
	id, ok := paramID(c, "equipmentStockId")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.ListByStock(c.UserContext(), GetBranchCode(c), id)
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, MsgRetrieved, out)
}

// ClientProjectEquipmentStockHandler movimientos de equipos asignados a proyectos.
type ClientProjectEquipmentStockHandler struct {
	uc *project.ClientProjectStockUseCase
}

// NewClientProjectEquipmentStockHandler construye el handler.
func NewClientProjectEquipmentStockHandler(uc *project.ClientProjectStockUseCase) *ClientProjectEquipmentStockHandler {
	return &ClientProjectEquipmentStockHandler{uc: uc}
}

// SaveUpdate godoc
// @Summary      Registrar movimiento de equipos de un proyecto
// @Description  ADD asigna equipos al proyecto (resta del stock), REMOVE los devuelve (suma).
// @Tags         clientProjectEquipmentStock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                                  false  "Clave de idempotencia"
// @Param        body             body      dto.ClientProjectEquipmentStockRequest  true   "Movimiento"
// @Success      201              {object}  dto.ResponseDTO{content=dto.ClientProjectEquipmentStockResponse}
// @Success      200              {object}  dto.ResponseDTO{content=dto.ClientProjectEquipmentStockResponse}
// @Failure      404              {object}  dto.ResponseDTO
// @Failure      409              {object}  dto.ResponseDTO
// @Failure      422              {object}  dto.ResponseDTO
// @Failure      502              {object}  dto.ResponseDTO
// @Router       /project/clientProjectEquipmentStock/saveUpdate [post]
func (h *ClientProjectEquipmentStockHandler) SaveUpdate(c *fiber.Ctx) error {
	var in dto.ClientProjectEquipmentStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, created, err := h.uc.Record(c.UserContext(), GetUser(c), in, c.Get(HeaderIdempotencyKey))
	if err != nil {
		return fail(c, err)
	}
	if created {
		return success(c, fiber.StatusCreated, MsgSaved, out)
	}
	return success(c, fiber.StatusOK, MsgSaved, out)
}

// GetAllByClientProject godoc
// @Summary      Listar movimientos de equipos de un proyecto
// @Tags         clientProjectEquipmentStock
// @Security     Bearer
// @Produce      json
// @Param        clientProjectId  path      int  true  "ID del proyecto"
// @Success      200              {object}  dto.ResponseDTO{content=[]dto.ClientProjectEquipmentStockResponse}
// @Router       /project/clientProjectEquipmentStock/getAllByClientProject/{clientProjectId} [get]
func (h *ClientProjectEquipmentStockHandler) GetAllByClientProject(c *fiber.Ctx) error {
	id, ok := paramID(c, "clientProjectId")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.ListByClientProject(c.UserContext(), GetBranchCode(c), id)
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, MsgRetrieved, out)
}

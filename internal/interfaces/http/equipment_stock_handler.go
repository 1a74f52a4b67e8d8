package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/equipment"
)

// EquipmentStockHandler maneja las peticiones HTTP del registro de stock de equipos (protegido).
type EquipmentStockHandler struct {
	uc *equipment.EquipmentStockUseCase
}

// NewEquipmentStockHandler construye el handler.
func NewEquipmentStockHandler(uc *equipment.EquipmentStockUseCase) *EquipmentStockHandler {
	return &EquipmentStockHandler{uc: uc}
}

// SaveUpdate godoc
// @Summary      Crear o actualizar registro de stock
// @Description  Sin id crea el registro con cantidad 0; con id actualiza sus datos (nunca la cantidad).
// @Tags         equipmentStock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaveEquipmentStockRequest  true  "Datos del registro"
// @Success      201   {object}  dto.ResponseDTO{content=dto.EquipmentStockResponse}
// @Success      200   {object}  dto.ResponseDTO{content=dto.EquipmentStockResponse}
// @Failure      409   {object}  dto.ResponseDTO
// @Failure      422   {object}  dto.ResponseDTO
// @Router       /equipment/equipmentStock/saveUpdate [post]
func (h *EquipmentStockHandler) SaveUpdate(c *fiber.Ctx) error {
	var in dto.SaveEquipmentStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, created, err := h.uc.Save(c.UserContext(), GetBranchCode(c), in)
	if err != nil {
		return fail(c, err)
	}
	if created {
		return success(c, fiber.StatusCreated, MsgSaved, out)
	}
	return success(c, fiber.StatusOK, MsgUpdated, out)
}

// UpdateEquipmentQuantity godoc
// @Summary      Compare-and-set de la cantidad disponible
// @Description  Usado por el servicio de proyectos. Aplica solo si la cantidad actual es expected_quantity.
// @Tags         equipmentStock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                        true  "ID del registro"
// @Param        body  body      dto.UpdateQuantityRequest  true  "Cantidad esperada y nueva"
// @Success      200   {object}  dto.ResponseDTO{content=dto.EquipmentStockResponse}
// @Failure      404   {object}  dto.ResponseDTO
// @Failure      409   {object}  dto.ResponseDTO
// @Failure      422   {object}  dto.ResponseDTO
// @Router       /equipment/equipmentStock/updateEquipmentQuantity/{id} [put]
func (h *EquipmentStockHandler) UpdateEquipmentQuantity(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), GetBranchCode(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, MsgUpdated, out)
}

// GetAll godoc
// @Summary      Listar registros de stock de la sucursal
// @Tags         equipmentStock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResponseDTO{content=[]dto.EquipmentStockResponse}
// @Router       /equipment/equipmentStock/getAll [get]
func (h *EquipmentStockHandler) GetAll(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetAllActive godoc
// @Summary      Listar registros de stock activos de la sucursal
// @Tags         equipmentStock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResponseDTO{content=[]dto.EquipmentStockResponse}
// @Router       /equipment/equipmentStock/getAllActive [get]
func (h *EquipmentStockHandler) GetAllActive(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *EquipmentStockHandler) list(c *fiber.Ctx, onlyActive bool) error {
	out, err := h.uc.List(c.UserContext(), GetBranchCode(c), onlyActive)
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, MsgRetrieved, out)
}

// GetByID godoc
// @Summary      Obtener registro de stock por ID
// @Tags         equipmentStock
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del registro"
// @Success      200  {object}  dto.ResponseDTO{content=dto.EquipmentStockResponse}
// @Failure      404  {object}  dto.ResponseDTO
// @Router       /equipment/equipmentStock/getById/{id} [get]
func (h *EquipmentStockHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetBranchCode(c), id)
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, MsgRetrieved, out)
}

// GetByEquipmentID godoc
// @Summary      Obtener registro de stock de un equipo
// @Tags         equipmentStock
// @Security     Bearer
// @Produce      json
// @Param        equipmentId  path      int  true  "ID del equipo"
// @Success      200          {object}  dto.ResponseDTO{content=dto.EquipmentStockResponse}
// @Failure      404          {object}  dto.ResponseDTO
// @Router       /equipment/equipmentStock/getByEquipmentId/{equipmentId} [get]
func (h *EquipmentStockHandler) GetByEquipmentID(c *fiber.Ctx) error {
	id, ok := paramID(c, "equipmentId")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByEquipmentID(c.UserContext(), GetBranchCode(c), id)
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, MsgRetrieved, out)
}

// DeleteByID godoc
// @Summary      Eliminar registro de stock
// @Description  Falla con CONFLICT si el registro tiene movimientos.
// @Tags         equipmentStock
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del registro"
// @Success      200  {object}  dto.ResponseDTO
// @Failure      404  {object}  dto.ResponseDTO
// @Failure      409  {object}  dto.ResponseDTO
// @Router       /equipment/equipmentStock/deleteById/{id} [delete]
func (h *EquipmentStockHandler) DeleteByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), GetBranchCode(c), id); err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, MsgDeleted, nil)
}

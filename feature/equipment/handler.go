package equipment

import (
	"errors"

	"inventory-audit/core/logger"
	"inventory-audit/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the equipment catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the equipment routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/equipment")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/types", h.HandleTypes)
	group.Get("/barcode/:barcode", h.HandleGetByBarcode)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList lists or searches equipment.
// @Summary List equipment
// @Description List equipment newest first, optionally filtered by search term and type.
// @Tags equipment
// @Produce json
// @Param q query string false "Search term (name, barcode, model, serial number)"
// @Param type query string false "Equipment type or 'all'"
// @Success 200 {array} models.Equipment
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /equipment [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	term, typ := c.Query("q"), c.Query("type")

	var (
		items []models.Equipment
		err   error
	)
	if term == "" && (typ == "" || typ == TypeAll) {
		items, err = h.service.List(c.UserContext())
	} else {
		items, err = h.service.Search(c.UserContext(), term, typ)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

// HandleTypes returns the known equipment types and statuses with their labels.
// @Summary Equipment dictionaries
// @Tags equipment
// @Produce json
// @Success 200 {object} map[string][]models.Option
// @Router /equipment/types [get]
func (h *Handler) HandleTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"types":    models.EquipmentTypes(),
		"statuses": models.EquipmentStatuses(),
	})
}

// HandleGet returns a single equipment item.
// @Summary Get equipment
// @Tags equipment
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} models.Equipment
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /equipment/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	eq, err := h.service.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if eq == nil {
		return h.fail(c, ErrNotFound)
	}
	return c.JSON(eq)
}

// HandleGetByBarcode looks equipment up by its barcode.
// @Summary Find equipment by barcode
// @Tags equipment
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} models.Equipment
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /equipment/barcode/{barcode} [get]
func (h *Handler) HandleGetByBarcode(c *fiber.Ctx) error {
	eq, err := h.service.FindByBarcode(c.UserContext(), c.Params("barcode"))
	if err != nil {
		return h.fail(c, err)
	}
	if eq == nil {
		return h.fail(c, ErrNotFound)
	}
	return c.JSON(eq)
}

// HandleCreate adds equipment.
// @Summary Create equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Param equipment body Input true "Equipment"
// @Success 201 {object} models.Equipment
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Router /equipment [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, errors.Join(ErrInvalid, err))
	}
	eq, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(eq)
}

// HandleUpdate overwrites equipment fields.
// @Summary Update equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param equipment body Input true "Equipment"
// @Success 200 {object} models.Equipment
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /equipment/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, errors.Join(ErrInvalid, err))
	}
	eq, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(eq)
}

// HandleDelete removes equipment and its audit scans.
// @Summary Delete equipment
// @Tags equipment
// @Param id path string true "Equipment ID"
// @Success 204
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /equipment/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Equipment request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

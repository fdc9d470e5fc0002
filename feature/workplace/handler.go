package workplace

import (
	"errors"

	"inventory-audit/core/logger"
	"inventory-audit/core/utils"
	"inventory-audit/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for workplaces.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the workplace routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/workplaces")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/employee/:employeeId", h.HandleListByEmployee)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
	group.Get("/:id/usage", h.HandleUsage)
}

// HandleList lists workplaces.
// @Summary List workplaces
// @Tags workplaces
// @Produce json
// @Param q query string false "Search term (active workplaces only)"
// @Param include_inactive query bool false "Include deactivated workplaces"
// @Success 200 {array} models.Workplace
// @Router /workplaces [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	var (
		items []models.Workplace
		err   error
	)
	if q := c.Query("q"); q != "" {
		items, err = h.service.Search(c.UserContext(), q)
	} else {
		items, err = h.service.List(c.UserContext(), utils.ToBool(c.Query("include_inactive")))
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

// HandleListByEmployee lists the active workplaces of an employee.
// @Summary Workplaces of an employee
// @Tags workplaces
// @Produce json
// @Param employeeId path string true "Employee ID"
// @Success 200 {array} models.Workplace
// @Router /workplaces/employee/{employeeId} [get]
func (h *Handler) HandleListByEmployee(c *fiber.Ctx) error {
	items, err := h.service.ListByEmployee(c.UserContext(), c.Params("employeeId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

// HandleGet returns one workplace.
// @Summary Get workplace
// @Tags workplaces
// @Produce json
// @Param id path string true "Workplace ID"
// @Success 200 {object} models.Workplace
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /workplaces/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	e, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(e)
}

// HandleCreate adds a workplace.
// @Summary Create workplace
// @Tags workplaces
// @Accept json
// @Produce json
// @Param workplace body Input true "Workplace"
// @Success 201 {object} models.Workplace
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Router /workplaces [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, errors.Join(ErrInvalid, err))
	}
	e, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// HandleUpdate overwrites workplace fields.
// @Summary Update workplace
// @Tags workplaces
// @Accept json
// @Produce json
// @Param id path string true "Workplace ID"
// @Param workplace body Input true "Workplace"
// @Success 200 {object} models.Workplace
// @Router /workplaces/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, errors.Join(ErrInvalid, err))
	}
	e, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(e)
}

// HandleDelete deactivates a workplace, or removes it with hard=true.
// @Summary Delete workplace
// @Tags workplaces
// @Param id path string true "Workplace ID"
// @Param hard query bool false "Remove the row instead of deactivating"
// @Success 204
// @Router /workplaces/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	var err error
	if utils.ToBool(c.Query("hard")) {
		err = h.service.HardDelete(c.UserContext(), c.Params("id"))
	} else {
		err = h.service.Delete(c.UserContext(), c.Params("id"))
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUsage reports what references a workplace.
// @Summary Workplace usage
// @Tags workplaces
// @Produce json
// @Param id path string true "Workplace ID"
// @Success 200 {object} Usage
// @Router /workplaces/{id}/usage [get]
func (h *Handler) HandleUsage(c *fiber.Ctx) error {
	u, err := h.service.CheckUsage(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(u)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Workplace request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

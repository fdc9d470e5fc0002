package audit

import (
	"errors"
	"fmt"
	"strings"

	"inventory-audit/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for audits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateRequest is the body of POST /audits.
type CreateRequest struct {
	Auditor string `json:"auditor"`
}

// ScanRequest is the body of POST /audits/:id/scan.
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audits")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleDelete)
	group.Post("/:id/scan", h.HandleScan)
	group.Get("/:id/stats", h.HandleStats)
	group.Get("/:id/not-found", h.HandleNotFound)
	group.Get("/:id/items", h.HandleItems)
	group.Delete("/:id/items/:equipmentId", h.HandleUnmark)
	group.Post("/:id/complete", h.HandleComplete)
	group.Get("/:id/report", h.HandleReport)
	group.Post("/:id/report/export", h.HandleExport)
	group.Get("/:id/report/exports", h.HandleListExports)
}

// HandleList returns all audits.
// @Summary List audits
// @Tags audits
// @Produce json
// @Success 200 {array} models.InventoryAudit
// @Router /audits [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	audits, err := h.service.ListAudits(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(audits)
}

// HandleCreate opens an audit.
// @Summary Create audit
// @Tags audits
// @Accept json
// @Produce json
// @Param audit body CreateRequest true "Auditor"
// @Success 201 {object} models.InventoryAudit
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Router /audits [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, outcome(ErrValidation, "invalid request body"))
	}
	audit, err := h.service.CreateAudit(c.UserContext(), req.Auditor)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(audit)
}

// HandleGet returns an audit together with its scanned items.
// @Summary Get audit
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /audits/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id := c.Params("id")
	audit, err := h.service.GetAudit(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	items, err := h.service.GetScannedItems(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"audit": audit, "items": items})
}

// HandleDelete removes an audit and its scans.
// @Summary Delete audit
// @Tags audits
// @Param id path string true "Audit ID"
// @Success 204
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /audits/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteAudit(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleScan records a scanned barcode.
// @Summary Scan barcode
// @Description Marks the equipment carrying the barcode as found. Repeated scans return 409.
// @Tags audits
// @Accept json
// @Produce json
// @Param id path string true "Audit ID"
// @Param scan body ScanRequest true "Barcode"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Failure 404 {object} map[string]interface{} "Unknown barcode or audit"
// @Failure 409 {object} map[string]interface{} "Already scanned"
// @Router /audits/{id}/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, outcome(ErrValidation, "invalid request body"))
	}
	res, err := h.service.ScanBarcode(c.UserContext(), c.Params("id"), req.Barcode)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   res.Message,
		"equipment": res.Equipment,
	})
}

// HandleStats returns found / not found counters.
// @Summary Audit statistics
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {object} reconcile.Summary
// @Router /audits/{id}/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.GetAuditStats(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

// HandleNotFound lists equipment not yet found in the audit.
// @Summary Missing equipment
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {array} models.Equipment
// @Router /audits/{id}/not-found [get]
func (h *Handler) HandleNotFound(c *fiber.Ctx) error {
	items, err := h.service.GetNotFoundEquipment(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

// HandleItems lists the audit's scans.
// @Summary Scanned items
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {array} models.AuditItem
// @Router /audits/{id}/items [get]
func (h *Handler) HandleItems(c *fiber.Ctx) error {
	items, err := h.service.GetScannedItems(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

// HandleUnmark moves equipment back to not found.
// @Summary Unmark equipment
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Param equipmentId path string true "Equipment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /audits/{id}/items/{equipmentId} [delete]
func (h *Handler) HandleUnmark(c *fiber.Ctx) error {
	msg, err := h.service.UnmarkAsFound(c.UserContext(), c.Params("id"), c.Params("equipmentId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": msg})
}

// HandleComplete closes the audit.
// @Summary Complete audit
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {object} models.InventoryAudit
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /audits/{id}/complete [post]
func (h *Handler) HandleComplete(c *fiber.Ctx) error {
	audit, err := h.service.CompleteAudit(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(audit)
}

// HandleReport returns the audit report as JSON, CSV or XLSX.
// @Summary Audit report
// @Tags audits
// @Produce json,text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Audit ID"
// @Param format query string false "json (default), csv or xlsx"
// @Success 200 {array} ReportRow
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /audits/{id}/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	id := c.Params("id")
	format := strings.ToLower(c.Query("format", FormatJSON))

	if _, err := h.service.GetAudit(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	rows, err := h.service.GenerateReport(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	if format == FormatJSON {
		return c.JSON(rows)
	}

	data, err := Render(format, rows)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, ContentType(format))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="audit-%s.%s"`, id, format))
	return c.Send(data)
}

// HandleExport uploads the report to object storage.
// @Summary Export audit report
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Param format query string false "csv (default) or xlsx"
// @Success 201 {object} map[string]string
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Failure 503 {object} map[string]string "Storage disabled"
// @Router /audits/{id}/report/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	name, err := h.service.ExportReport(c.UserContext(), c.Params("id"), c.Query("format", FormatCSV))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"object": name})
}

// HandleListExports lists uploaded reports of the audit.
// @Summary List exported reports
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {array} string
// @Router /audits/{id}/report/exports [get]
func (h *Handler) HandleListExports(c *fiber.Ctx) error {
	names, err := h.service.ListExports(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if status, ok := statusFor(err); ok {
		return c.Status(status).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if errors.Is(err, ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Audit request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// statusFor maps expected outcomes to HTTP statuses.
func statusFor(err error) (int, bool) {
	var oe *OutcomeError
	if !errors.As(err, &oe) {
		return 0, false
	}
	switch {
	case errors.Is(oe, ErrValidation):
		return fiber.StatusBadRequest, true
	case errors.Is(oe, ErrAlreadyScanned):
		return fiber.StatusConflict, true
	case errors.Is(oe, ErrEquipmentNotFound), errors.Is(oe, ErrRecordNotFound):
		return fiber.StatusNotFound, true
	}
	return fiber.StatusBadRequest, true
}

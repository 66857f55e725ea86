package integrity

import (
	"errors"

	"pricing-modeller/core/logger"
	"pricing-modeller/core/pricing"
	"pricing-modeller/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes. Static routes come first so
// they are not taken for session ids.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/server", h.HandleServerCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Post("/model", h.HandleModelCheck)
	group.Get("/:session", h.HandleSessionCheck)
}

// HandleIntegrityCheck runs the infrastructure checks.
// @Summary Run Infrastructure Checks
// @Description Checks the submissions table schema and the export bucket.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering infrastructure checks")

	report := make(map[string]interface{})

	if srvReport, err := h.service.CheckServer(); err != nil {
		report["server"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["server"] = srvReport
	}

	if stReport, err := h.service.CheckStorage(c.UserContext()); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = stReport
	}

	return c.JSON(report)
}

// HandleServerCheck checks the submissions table schema.
// @Summary Check Server Schema
// @Description Checks if the submissions table has the columns the submission model writes.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckServer()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Server schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleStorageCheck checks the export bucket.
// @Summary Check Storage
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckStorage(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleModelCheck checks a model sent in the body.
// @Summary Check Model
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.Report "Model Report"
// @Failure 422 {object} map[string]interface{} "Invalid JSON"
// @Router /integrity/model [post]
func (h *Handler) HandleModelCheck(c *fiber.Ctx) error {
	m, err := pricing.Decode(c.Body())
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error(), "invalid_json": true})
	}
	return c.JSON(h.service.CheckModel(m))
}

// HandleSessionCheck checks the current model of a session.
// @Summary Check Session Model
// @Tags integrity
// @Produce json
// @Param session path string true "Session id"
// @Success 200 {object} checks.Report "Model Report"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /integrity/{session} [get]
func (h *Handler) HandleSessionCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("session")

	report, err := h.service.CheckSession(c.UserContext(), id)
	if errors.Is(err, reconcile.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Session check failed", zap.String("session_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.OK {
		l.Warn("Model integrity issues detected", zap.String("session_id", id), zap.Int("issues", len(report.Issues)))
	}
	return c.JSON(report)
}

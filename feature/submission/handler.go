package submission

import (
	"errors"

	"pricing-modeller/core/logger"
	"pricing-modeller/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for submissions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the submission routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/submissions")
	group.Post("/", h.HandleSubmit)
	group.Get("/:id", h.HandleGet)
}

// HandleSubmit stores a pricing model.
// @Summary Submit Model
// @Description Stores the current model of a session, or an inline model. Invalid features are removed.
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body Request true "Session id or model"
// @Success 201 {object} ChatResult "Stored submission"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /submissions [post]
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	res, err := h.service.Submit(c.UserContext(), req)
	switch {
	case errors.Is(err, ErrNoModel):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Submission failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Model submitted", zap.String("id", res.ID))
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleGet returns a stored submission.
// @Summary Get Submission
// @Tags submissions
// @Produce json
// @Param id path string true "Submission id"
// @Success 200 {object} ChatResult "Stored submission"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /submissions/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	res, err := h.service.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Submission lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

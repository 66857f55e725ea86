package modeller

import (
	"errors"

	"pricing-modeller/core/logger"
	"pricing-modeller/core/pricing"
	"pricing-modeller/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for modelling sessions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sessions")
	group.Post("/", h.HandleCreate)
	group.Get("/:id/model", h.HandleModel)
	group.Put("/:id/model", h.HandleEdit)
	group.Post("/:id/deltas", h.HandleDelta)
	group.Post("/:id/finalize", h.HandleFinalize)
	group.Post("/:id/stream", h.HandleStream)
	group.Post("/:id/abort", h.HandleAbort)
	group.Post("/:id/reset", h.HandleReset)
	group.Get("/:id/table", h.HandleTable)
	group.Delete("/:id", h.HandleDrop)
}

// HandleCreate starts a new session.
// @Summary Create Session
// @Description Starts a modelling session holding the empty pricing model.
// @Tags sessions
// @Produce json
// @Success 201 {object} map[string]string "Session id"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sessions [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	id, err := h.service.CreateSession(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	logger.WithRayID(h.service.logger, c).Info("Session created", zap.String("session_id", id))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": id})
}

// HandleModel returns the session's current model.
// @Summary Get Model
// @Tags sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} map[string]interface{} "Model and streaming flag"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/model [get]
func (h *Handler) HandleModel(c *fiber.Ctx) error {
	model, streaming, err := h.service.Model(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"pricing_model": model, "streaming": streaming})
}

// HandleEdit replaces the model with a manually edited document.
// @Summary Edit Model
// @Description Replaces the whole model. Rejected while a stream is in flight.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} map[string]interface{} "Updated model"
// @Failure 409 {object} map[string]string "Stream in progress"
// @Failure 422 {object} map[string]interface{} "Invalid JSON"
// @Router /sessions/{id}/model [put]
func (h *Handler) HandleEdit(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Edit(c.UserContext(), id, c.Body()); err != nil {
		return h.fail(c, err)
	}
	return h.HandleModel(c)
}

// HandleDelta merges one streamed partial model.
// @Summary Apply Delta
// @Description Merges a partial snapshot into the model. Malformed bodies are ignored.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Success 202 {object} map[string]interface{} "Merge summary"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/deltas [post]
func (h *Handler) HandleDelta(c *fiber.Ctx) error {
	sum, ok, err := h.service.ApplyDelta(c.UserContext(), c.Params("id"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"applied": ok && !sum.Skipped, "summary": sum})
}

// HandleFinalize replaces the model with the final snapshot of a stream.
// @Summary Finalize Stream
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} map[string]interface{} "Final model"
// @Failure 422 {object} map[string]interface{} "Invalid JSON"
// @Router /sessions/{id}/finalize [post]
func (h *Handler) HandleFinalize(c *fiber.Ctx) error {
	if err := h.service.Finalize(c.UserContext(), c.Params("id"), c.Body()); err != nil {
		return h.fail(c, err)
	}
	return h.HandleModel(c)
}

// HandleStream applies a body of newline-delimited stream envelopes.
// @Summary Apply Stream
// @Description Applies {"type":"delta|done|abort","object":...} lines in order.
// @Tags sessions
// @Accept plain
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} reconcile.StreamResult "Stream result"
// @Failure 422 {object} map[string]interface{} "Invalid final model"
// @Router /sessions/{id}/stream [post]
func (h *Handler) HandleStream(c *fiber.Ctx) error {
	res, err := h.service.Stream(c.UserContext(), c.Params("id"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	logger.WithRayID(h.service.logger, c).Debug("Stream applied",
		zap.Int("deltas", res.Deltas),
		zap.Int("ignored", res.Ignored),
		zap.Bool("finalized", res.Finalized))
	return c.JSON(res)
}

// HandleAbort ends an open stream and keeps the partial model.
// @Summary Abort Stream
// @Description Ends a stream that will not be finalized. The merged partial model is kept and saved as the draft.
// @Tags sessions
// @Param id path string true "Session id"
// @Success 204
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/abort [post]
func (h *Handler) HandleAbort(c *fiber.Ctx) error {
	if err := h.service.Abort(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	logger.WithRayID(h.service.logger, c).Debug("Stream aborted", zap.String("session_id", c.Params("id")))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReset empties the model.
// @Summary Reset Model
// @Tags sessions
// @Param id path string true "Session id"
// @Success 204
// @Router /sessions/{id}/reset [post]
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	if err := h.service.Reset(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDrop ends a session.
// @Summary Delete Session
// @Tags sessions
// @Param id path string true "Session id"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *Handler) HandleDrop(c *fiber.Ctx) error {
	if err := h.service.Drop(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleTable renders the model as ordered pricing cards.
// @Summary Pricing Table
// @Tags sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} projection.Table "Cards, failures and credit systems"
// @Router /sessions/{id}/table [get]
func (h *Handler) HandleTable(c *fiber.Ctx) error {
	table, err := h.service.Table(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(table)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var perr *pricing.ParseError
	switch {
	case errors.Is(err, reconcile.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrStreamInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &perr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error(), "invalid_json": true})
	default:
		logger.WithRayID(h.service.logger, c).Error("Session request failed",
			zap.String("session_id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

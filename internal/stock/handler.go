package stock

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sbilus/storefront-backend/internal/apperror"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/product/:id/stock", h.adjustStock)
	app.Get("/api/v1/product/:id/stock/movements", h.getMovements)
}

type adjustRequest struct {
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	MovementType string  `json:"movementType"`
	Reason       *string `json:"reason,omitempty"`
}

func (h *Handler) adjustStock(c *fiber.Ctx) error {
	payload := new(adjustRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	err := h.service.Adjust(c.UserContext(), Movement{
		ProductID: c.Params("id"),
		Size:      payload.Size,
		Quantity:  payload.Quantity,
		Type:      MovementType(payload.MovementType),
		Reason:    payload.Reason,
	})
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) getMovements(c *fiber.Ctx) error {
	limit := defaultMovementsLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	return c.JSON(h.service.Movements(c.UserContext(), c.Params("id"), limit))
}

package checkout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sbilus/storefront-backend/internal/apperror"
	"github.com/sbilus/storefront-backend/internal/cart"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes expects cart.SessionMiddleware to be installed.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout/delivery", h.quote)
	app.Post("/api/v1/checkout", h.checkout)
}

type addressRequest struct {
	Address string `json:"address"`
}

func (h *Handler) quote(c *fiber.Ctx) error {
	sessionID, err := cart.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	q, err := h.service.Quote(c.UserContext(), sessionID, payload.Address)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(q)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	sessionID, err := cart.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	res, err := h.service.Checkout(c.UserContext(), sessionID, payload.Address)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(res)
}

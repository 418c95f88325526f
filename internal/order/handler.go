package order

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sbilus/storefront-backend/internal/client"
)

// Handler serves the order history of the authenticated client.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.getOrders)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	log.Printf("[DEBUG] order.getOrders invoked, remote=%s", c.IP())
	clientID, err := client.GetClientIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.service.ListByClient(c.UserContext(), clientID))
}

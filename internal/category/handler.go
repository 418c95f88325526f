package category

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sbilus/storefront-backend/internal/apperror"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes has to be called before the product handler registers
// /api/v1/product/:id.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/product/category", h.getCategories)
	app.Get("/api/v1/product/category/:name", h.getCategory)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	log.Printf("[DEBUG] category.getCategories invoked, remote=%s", c.IP())
	return c.JSON(h.service.List(c.UserContext()))
}

func (h *Handler) getCategory(c *fiber.Ctx) error {
	item, err := h.service.GetByName(c.UserContext(), c.Params("name"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Categoria não encontrada"})
		}
		return apperror.Respond(c, err)
	}
	return c.JSON(item)
}

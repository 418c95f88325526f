package product

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sbilus/storefront-backend/internal/apperror"
)

type Handler struct {
	service    *Service
	allowReset bool
}

func NewHandler(service *Service, allowReset bool) *Handler {
	return &Handler{service: service, allowReset: allowReset}
}

// RegisterPublicRoutes must run after handlers owning literal /api/v1/product/*
// paths (category) so that :id does not capture them.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
	app.Post("/api/v1/product/:id/availability", h.checkAvailability)

	// dev-only, enabled when ALLOW_RESET_PRODUCTS=1
	app.Post("/dev/reset-products", h.resetProducts)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products := h.service.Browse(c.UserContext(), Filter{
		Category: c.Query("category"),
		Section:  Section(c.Query("section")),
	})
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Produto não encontrado"})
		}
		return apperror.Respond(c, err)
	}
	return c.JSON(p)
}

type availabilityRequest struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) checkAvailability(c *fiber.Ctx) error {
	payload := new(availabilityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	d, err := h.service.CheckAvailability(c.UserContext(), c.Params("id"), payload.Size, payload.Quantity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Produto não encontrado"})
		}
		return apperror.Respond(c, err)
	}
	return c.JSON(d)
}

// resetProducts clears the products table and inserts the provided rows (or
// the sample catalog when the body is not a row list).
func (h *Handler) resetProducts(c *fiber.Ctx) error {
	if !h.allowReset {
		return c.Status(fiber.StatusForbidden).SendString("reset not allowed")
	}

	var rows []Row
	// If parsing succeeds and client sends an empty array, treat it as "delete all" (no re-seeding).
	if err := c.BodyParser(&rows); err != nil {
		rows = SampleRows(time.Now().UTC())
	}
	if ves := validateRows(rows); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	if err := h.service.ResetProducts(c.UserContext(), rows); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"inserted": len(rows)})
}

func validateRows(rows []Row) map[string]string {
	errs := map[string]string{}
	for i, r := range rows {
		if r.Name == "" {
			errs[rowKey(i, "name")] = "name is required"
		}
		if r.Price.IsNegative() {
			errs[rowKey(i, "price")] = "price must be >= 0"
		}
		if r.PromotionalPrice != nil && r.PromotionalPrice.IsNegative() {
			errs[rowKey(i, "promotional_price")] = "promotional_price must be >= 0"
		}
	}
	return errs
}

func rowKey(i int, field string) string {
	return fmt.Sprintf("[%d].%s", i, field)
}

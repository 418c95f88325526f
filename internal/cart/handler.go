package cart

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sbilus/storefront-backend/internal/apperror"
)

// Handler delegates cart operations to the cart service.
// Every route is scoped to the browsing session, no login is needed.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Patch("/api/v1/cart/items/:index", h.updateItem)
	app.Delete("/api/v1/cart/items/:index", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	log.Printf("[DEBUG] cart.getCart invoked, remote=%s", c.IP())
	sessionID, err := SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	cart, err := h.service.GetCart(c.UserContext(), sessionID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cart.View())
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	sessionID, err := SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	cart, err := h.service.AddToCart(c.UserContext(), sessionID, payload.ProductID, payload.Size, payload.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cart.View())
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	sessionID, err := SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	cart, err := h.service.SetQuantity(c.UserContext(), sessionID, index, payload.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cart.View())
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	sessionID, err := SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}

	cart, err := h.service.RemoveItem(c.UserContext(), sessionID, index)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cart.View())
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	sessionID, err := SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.ClearCart(c.UserContext(), sessionID); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}
	return apperror.Respond(c, err)
}

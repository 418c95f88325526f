package client

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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
	app.Put("/api/v1/profile/address", h.updateAddress)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	log.Printf("[DEBUG] client.getProfile invoked, remote=%s", c.IP())
	clientID, err := GetClientIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	profile, err := h.service.GetByID(c.UserContext(), clientID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(profile)
}

func (h *Handler) updateAddress(c *fiber.Ctx) error {
	payload := new(Address)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	clientID, err := GetClientIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	profile, err := h.service.UpdateAddress(c.UserContext(), clientID, *payload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(profile)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "client not found"})
	}
	return apperror.Respond(c, err)
}

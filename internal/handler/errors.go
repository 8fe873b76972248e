package handler

import (
	"errors"
	"log"

	"go-inventory-orders/internal/service"
	"go-inventory-orders/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto the error taxonomy: validation
// failures get 400 with field detail, missing entities 404, everything
// else a generic 500 with the cause logged server-side only.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	}

	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrDuplicateSKU),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidSortKey),
		errors.Is(err, service.ErrInvalidSortOrder),
		errors.Is(err, service.ErrInvalidTypeFilter):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("[%s %s] internal error: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

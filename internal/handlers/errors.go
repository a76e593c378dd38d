package handlers

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var badRequestErrors = []error{
	services.ErrLoginTaken,
	services.ErrEmailTaken,
	services.ErrEmptyOrder,
	services.ErrInvalidQuantity,
	services.ErrInvalidPrice,
	services.ErrIncorrectPassword,
	services.ErrInvalidStatus,
	services.ErrCategoryTaken,
}

// respondError maps service errors onto HTTP statuses. action describes
// what failed and is used for the 500 message.
func respondError(c *fiber.Ctx, err error, action string) error {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": target.Error()})
		}
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": services.ErrInvalidCredentials.Error()})
	case errors.Is(err, services.ErrUnauthenticated):
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": services.ErrUnauthenticated.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not enough permissions"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	}

	log.Printf("Error: %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fmt.Sprintf("Could not %s", action),
	})
}

// bind parses the request body into out and validates it. On failure the
// 400 response has already been written and handled is true.
func bind(c *fiber.Ctx, validate *validator.Validate, out interface{}) (handled bool, err error) {
	if err := c.BodyParser(out); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return validateStruct(c, validate, out)
}

func validateStruct(c *fiber.Ctx, validate *validator.Validate, out interface{}) (bool, error) {
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return false, nil
}

type pageQuery struct {
	Skip  int `validate:"gte=0"`
	Limit int `validate:"gte=1,lte=100"`
}

// page reads skip (default 0) and limit (default 100) from the query.
func page(c *fiber.Ctx, validate *validator.Validate) (pageQuery, bool, error) {
	q := pageQuery{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}
	handled, err := validateStruct(c, validate, &q)
	return q, handled, err
}

package presenters

import (
	"Pasikuthu/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// StatusFor maps a service error onto the HTTP status the API reports it with.
func StatusFor(err error) int {
	switch {
	case domain.IsValidationError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrMutationInFlight):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrDonationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusUnauthorized
	case domain.IsUnexpectedError(err):
		return fiber.StatusInternalServerError
	case domain.IsRemoteError(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"analytics-gateway/internal/ga4"
	"analytics-gateway/internal/model"
	"analytics-gateway/internal/oauth"
	"analytics-gateway/internal/service"
)

// toFiberError maps domain errors onto HTTP statuses. The message becomes
// the error field of the response envelope.
func toFiberError(err error) error {
	var (
		fiberErr      *fiber.Error
		validationErr *service.ValidationError
		decodeErr     *oauth.CredentialDecodeError
		tokenErr      *oauth.TokenExchangeError
		fetchErr      *ga4.ReportFetchError
		configErr     *service.ConfigurationError
		upstreamErr   *service.UpstreamError
	)

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr
	case errors.As(err, &validationErr), errors.As(err, &decodeErr):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &tokenErr):
		if tokenErr.ClientFault() {
			return fiber.NewError(fiber.StatusBadRequest, tokenErr.Error())
		}
		return fiber.NewError(fiber.StatusBadGateway, tokenErr.Error())
	case errors.As(err, &fetchErr):
		return fiber.NewError(fiber.StatusBadGateway, fetchErr.Error())
	case errors.As(err, &upstreamErr):
		return fiber.NewError(fiber.StatusBadGateway, upstreamErr.Error())
	case errors.As(err, &configErr):
		return fiber.NewError(fiber.StatusInternalServerError, configErr.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
}

// ErrorHandler renders every handler error as the JSON failure envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(model.APIResponse{Success: false, Error: message})
}

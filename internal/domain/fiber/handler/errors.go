package handler

import (
	"errors"

	"github.com/fadilmartias/careers-portal/internal/service"
	"github.com/fadilmartias/careers-portal/internal/usecase"
	"github.com/fadilmartias/careers-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps usecase and service errors to HTTP status codes.
func statusFor(err error) int {
	var subErr *usecase.SubmissionError
	switch {
	case errors.Is(err, usecase.ErrInvalidStep),
		errors.Is(err, usecase.ErrInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrStepLocked),
		errors.Is(err, usecase.ErrSubmissionInProgress):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrEntryNotFound),
		errors.Is(err, usecase.ErrApplicationNotFound),
		errors.Is(err, usecase.ErrDocumentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, usecase.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrAuthRejected):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &subErr):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "Internal Server Error"
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: message,
	}, err)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"propertyapi/internal/http/middleware"
	"propertyapi/internal/repository"
	"propertyapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	// Rejected lists every file of an upload batch that was refused.
	Rejected []service.Rejection `json:"rejected,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeBatchError reports a fully rejected upload. Status and code follow the
// first refused file.
func writeBatchError(c *fiber.Ctx, batch *service.BatchRejectedError) error {
	env := errorEnvelope{
		Code:     "UNSUPPORTED_MEDIA_TYPE",
		Message:  "no image could be accepted",
		Details:  batch.Error(),
		Rejected: batch.Rejected,
	}
	status := fiber.StatusBadRequest
	switch {
	case errors.Is(batch, service.ErrPayloadTooLarge):
		status, env.Code = fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"
	case errors.Is(batch, service.ErrNoFiles):
		env.Code = "FILES_REQUIRED"
	}
	return writeEnvelope(c, status, env)
}

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeEnvelope(c, status, errorEnvelope{Code: code, Message: message})
}

func writeEnvelope(c *fiber.Ctx, status int, env errorEnvelope) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     env,
	})
}

// writeServiceError translates service and repository errors into responses.
func writeServiceError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	var batch *service.BatchRejectedError
	if errors.As(err, &batch) {
		return writeBatchError(c, batch)
	}
	switch {
	case errors.As(err, &verr):
		return writeEnvelope(c, fiber.StatusBadRequest, errorEnvelope{
			Code:    "VALIDATION_ERROR",
			Message: verr.Error(),
			Field:   verr.Field,
		})
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "listing not found")
	case errors.Is(err, service.ErrImageNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "image not found")
	case errors.Is(err, service.ErrInvalidFilename):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FILENAME", "invalid image filename")
	case errors.Is(err, service.ErrUnsupportedMediaType):
		return writeEnvelope(c, fiber.StatusBadRequest, errorEnvelope{
			Code:    "UNSUPPORTED_MEDIA_TYPE",
			Message: "only jpeg, png, gif and webp images are allowed",
			Details: err.Error(),
		})
	case errors.Is(err, service.ErrTooManyFiles):
		return writeEnvelope(c, fiber.StatusBadRequest, errorEnvelope{
			Code:    "TOO_MANY_FILES",
			Message: "too many images for one listing",
			Details: err.Error(),
		})
	case errors.Is(err, service.ErrNoFiles):
		return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "no images sent")
	case errors.Is(err, service.ErrPayloadTooLarge):
		return writeEnvelope(c, fiber.StatusRequestEntityTooLarge, errorEnvelope{
			Code:    "PAYLOAD_TOO_LARGE",
			Message: "image exceeds the size limit",
			Details: err.Error(),
		})
	case errors.Is(err, repository.ErrStorage):
		return writeEnvelope(c, fiber.StatusInternalServerError, errorEnvelope{
			Code:    "STORAGE_FAILURE",
			Message: "could not persist listings",
			Details: err.Error(),
		})
	default:
		return writeEnvelope(c, fiber.StatusInternalServerError, errorEnvelope{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
			Details: err.Error(),
		})
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := ""
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", message)
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", message)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, "SERVICE_UNAVAILABLE", "dependency unavailable")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/apperr"
)

// APIResponse defines the common structure returned by the API.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

type PaginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type PaginatedData struct {
	Items interface{}    `json:"items"`
	Meta  PaginationMeta `json:"meta"`
}

func JSONSuccess(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	if statusCode == 0 {
		statusCode = fiber.StatusOK
	}
	return c.Status(statusCode).JSON(APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func JSONError(c *fiber.Ctx, statusCode int, message string, errDetail interface{}) error {
	if statusCode == 0 {
		statusCode = fiber.StatusInternalServerError
	}
	return c.Status(statusCode).JSON(APIResponse{
		Status:  "error",
		Message: message,
		Errors:  errDetail,
	})
}

func OK(c *fiber.Ctx, message string, data interface{}) error {
	return JSONSuccess(c, fiber.StatusOK, message, data)
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return JSONSuccess(c, fiber.StatusCreated, message, data)
}

func Paginated(c *fiber.Ctx, message string, items interface{}, meta PaginationMeta) error {
	return JSONSuccess(c, fiber.StatusOK, message, PaginatedData{Items: items, Meta: meta})
}

func BadRequest(c *fiber.Ctx, message string, errDetail interface{}) error {
	return JSONError(c, fiber.StatusBadRequest, message, errDetail)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusUnauthorized, message, nil)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusForbidden, message, nil)
}

func NotFound(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusNotFound, message, nil)
}

func Conflict(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusConflict, message, nil)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusInternalServerError, message, nil)
}

// FromAppError maps a domain error from the services layer onto the envelope.
func FromAppError(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return InternalServerError(c, err.Error())
	}

	switch e.Kind {
	case apperr.KindNotFound:
		return NotFound(c, e.Error())
	case apperr.KindValidation:
		var fields interface{}
		if len(e.Fields) > 0 {
			fields = e.Fields
		}
		return BadRequest(c, e.Error(), fields)
	case apperr.KindStateConflict:
		return Conflict(c, e.Error())
	case apperr.KindStorage:
		return JSONError(c, fiber.StatusBadGateway, e.Error(), nil)
	default:
		return InternalServerError(c, e.Error())
	}
}

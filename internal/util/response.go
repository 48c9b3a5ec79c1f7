package util

import (
	"fmt"
	"runtime/debug"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/config"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// SuccessResponse writes the standard success envelope. Code defaults to 200.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	response := OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	}
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(response)
}

// ErrorResponse writes the standard error envelope. Code defaults to 500.
// Outside production the error text is included, plus a stack trace for
// server errors.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	response := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
		Details: params.Details,
	}

	if !config.LoadAppConfig().IsProduction() {
		response.DevMessage = params.DevMessage
		if response.DevMessage == "" && len(errs) > 0 && errs[0] != nil {
			response.DevMessage = errs[0].Error()
		}
		response.Trace = params.Trace
		if response.Trace == "" && code >= fiber.StatusInternalServerError && len(errs) > 0 {
			response.Trace = string(debug.Stack())
		}
	}
	return c.Status(code).JSON(response)
}

// FormErrorResponse reports field validation failures as 400 with one
// message per field under details.
func FormErrorResponse(c *fiber.Ctx, formErr *FormError) error {
	return ErrorResponse(c, ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: formErr.Message,
		Details: formErr.Errors,
	})
}

package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified API response format.
type Response struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// AppError represents a structured application error with HTTP status and error code.
// Fields carries per-field validation messages for 400 responses.
type AppError struct {
	HTTPStatus int               // HTTP status code (e.g. 400, 404, 500)
	Code       int               // Application-level error code
	Message    string            // Human-readable error message
	Fields     map[string]string // Field-indexed validation messages, nil unless validation failed
}

func (e *AppError) Error() string {
	return e.Message
}

// Pre-defined error constructors

func NewBadRequest(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Code: 400, Message: msg}
}

// NewValidation builds a 400 error carrying a field-indexed message map.
func NewValidation(fields map[string]string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Code: 400, Message: "validation failed", Fields: fields}
}

// NewFieldError builds a 400 error for a single invalid field.
func NewFieldError(field, msg string) *AppError {
	return NewValidation(map[string]string{field: msg})
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Code: 401, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Code: 403, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Code: 404, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Code: 500, Message: msg}
}

// IsKind reports whether err is an *AppError with the given HTTP status.
func IsKind(err error, httpStatus int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus == httpStatus
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response. If err is an *AppError, its code, status and
// field map are used; otherwise a generic 500 internal server error is returned
// without leaking internal detail to the caller.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Code:    500,
		Message: "internal server error",
	})
}

// Convenience error response functions

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: 400, Message: msg})
}

// Validation sends a 400 response with a field-indexed message map.
func Validation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Response{Code: 400, Message: "validation failed", Fields: fields})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Code: 401, Message: msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, Response{Code: 403, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Code: 404, Message: msg})
}

func ServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{Code: 500, Message: msg})
}

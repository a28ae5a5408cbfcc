package routes

import (
	"errors"
	"io"
	"log"
	"net/http"

	"taskpro/api/middleware"
	"taskpro/api/services"
	"taskpro/api/validation"

	"github.com/gin-gonic/gin"
)

// Error codes reported in the "code" field of the error envelope.
const (
	CodeUserNotFound     = "user_not_found"
	CodeTaskNotFound     = "task_not_found"
	CodeAccessDenied     = "access_denied"
	CodeEmptyPayload     = "empty_payload"
	CodeValidationError  = "validation_error"
	CodeUniqueViolation  = "unique_constraint_violation"
	CodeInvalidInput     = "invalid_input"
	CodeRequestTooLarge  = "request_too_large"
	CodeResourceMismatch = "resource_mismatch"
	CodeInternalError    = "internal_error"
)

const noDetails = "No additional details provided."

type ErrorBody struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details"`
	RequestID string      `json:"request_id"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// errorMessages holds the human readable message each handler reports for
// the failures it can produce. Empty fields fall back to defaultMessages.
type errorMessages struct {
	userNotFound     string
	taskNotFound     string
	accessDenied     string
	emptyPayload     string
	validation       string
	conflict         string
	resourceMismatch string
	tooLarge         string
	notInteger       string
	internal         string
}

var defaultMessages = errorMessages{
	userNotFound:     "User not found.",
	taskNotFound:     "Task not found.",
	accessDenied:     "This task does not belong to you.",
	emptyPayload:     "No input data provided.",
	validation:       "Invalid data provided.",
	conflict:         "Username already exists.",
	resourceMismatch: "One or more requested IDs do not exist.",
	tooLarge:         "Request body is too large.",
	internal:         "An unexpected error occurred.",
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func requestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return "N/A"
}

func abortWithError(c *gin.Context, status int, code, message string, details interface{}) {
	if details == nil {
		details = noDetails
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID(c),
	}})
}

// respondError translates a service or validation error into the error
// envelope. Anything unrecognised is logged and reported as internal_error.
func respondError(c *gin.Context, err error, msgs errorMessages) {
	var fieldErrs validation.Errors
	var inputErr *validation.InputError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, CodeUserNotFound, pick(msgs.userNotFound, defaultMessages.userNotFound), nil)
	case errors.Is(err, services.ErrTaskNotFound):
		abortWithError(c, http.StatusNotFound, CodeTaskNotFound, pick(msgs.taskNotFound, defaultMessages.taskNotFound), nil)
	case errors.Is(err, services.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, CodeAccessDenied, pick(msgs.accessDenied, defaultMessages.accessDenied), nil)
	case errors.Is(err, services.ErrUsernameTaken):
		abortWithError(c, http.StatusConflict, CodeUniqueViolation, pick(msgs.conflict, defaultMessages.conflict), nil)
	case errors.Is(err, services.ErrResourceMismatch):
		abortWithError(c, http.StatusNotFound, CodeResourceMismatch, pick(msgs.resourceMismatch, defaultMessages.resourceMismatch), nil)
	case errors.Is(err, validation.ErrEmptyPayload):
		abortWithError(c, http.StatusBadRequest, CodeEmptyPayload, pick(msgs.emptyPayload, defaultMessages.emptyPayload), nil)
	case errors.As(err, &fieldErrs):
		abortWithError(c, http.StatusUnprocessableEntity, CodeValidationError, pick(msgs.validation, defaultMessages.validation), map[string][]string(fieldErrs))
	case errors.As(err, &maxBytesErr):
		abortWithError(c, http.StatusRequestEntityTooLarge, CodeRequestTooLarge, defaultMessages.tooLarge, nil)
	case errors.Is(err, validation.ErrIDListTooLarge):
		abortWithError(c, http.StatusRequestEntityTooLarge, CodeRequestTooLarge, pick(msgs.tooLarge, err.Error()), nil)
	case errors.Is(err, validation.ErrIDNotInteger):
		abortWithError(c, http.StatusBadRequest, CodeInvalidInput, pick(msgs.notInteger, err.Error()), nil)
	case errors.As(err, &inputErr):
		abortWithError(c, http.StatusBadRequest, CodeInvalidInput, inputErr.Message, nil)
	default:
		log.Printf("[%s] %s %s failed: %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, CodeInternalError, pick(msgs.internal, defaultMessages.internal), nil)
	}
}

// readPayload reads the request body as a JSON object.
func readPayload(c *gin.Context) (validation.Payload, error) {
	if c.Request.Body == nil {
		return nil, validation.ErrEmptyPayload
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	return validation.ParsePayload(body)
}

// readOptionalPayload treats an absent or null body as an empty object.
func readOptionalPayload(c *gin.Context) (validation.Payload, error) {
	payload, err := readPayload(c)
	if errors.Is(err, validation.ErrEmptyPayload) {
		return validation.Payload{}, nil
	}
	return payload, err
}

// requestBody defers reading the body until the service asks for it.
// An absent or null body surfaces as validation.ErrEmptyPayload.
func requestBody(c *gin.Context) validation.PayloadSource {
	return func() (validation.Payload, error) { return readPayload(c) }
}

// optionalRequestBody is requestBody with an absent body read as {}.
func optionalRequestBody(c *gin.Context) validation.PayloadSource {
	return func() (validation.Payload, error) { return readOptionalPayload(c) }
}

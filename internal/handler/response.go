package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"receiptscan/internal/domain"
	"receiptscan/internal/llm/openai"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates pipeline errors to HTTP status codes and error
// codes. The mapping distinguishes bad input, an unavailable upstream, and a
// model that produced unusable output.
func MapDomainError(err error) (status int, code, msg string) {
	var (
		rateLimited  *openai.RateLimitError
		invalidField *domain.InvalidFieldTypeError
		invalidDate  *domain.InvalidDateError
		missingField *domain.MissingRequiredFieldError
		badModel     *domain.UnsupportedModelError
	)
	switch {
	case errors.As(err, &badModel):
		return http.StatusBadRequest, "UNSUPPORTED_MODEL", badModel.Error()
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED", "model provider rate limited the request; retry later"
	case errors.Is(err, domain.ErrUpstreamCallFailed):
		return http.StatusBadGateway, "UPSTREAM_FAILED", "model provider call failed"
	case errors.Is(err, domain.ErrEmptyModelResponse):
		return http.StatusBadGateway, "EMPTY_MODEL_RESPONSE", "model returned an empty response"
	case errors.Is(err, domain.ErrUnparsableResponse):
		return http.StatusBadGateway, "UNPARSABLE_RESPONSE", "model produced no parsable JSON"
	case errors.As(err, &invalidField), errors.As(err, &invalidDate), errors.As(err, &missingField):
		return http.StatusUnprocessableEntity, "EXTRACTION_INCOMPLETE", err.Error()
	case errors.Is(err, domain.ErrStorageWriteFailed):
		return http.StatusBadGateway, "STORAGE_WRITE_FAILED", "staging upload to object storage failed"
	case errors.Is(err, domain.ErrOcrServiceFailed):
		return http.StatusBadGateway, "OCR_FAILED", "ocr service call failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a pipeline error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}

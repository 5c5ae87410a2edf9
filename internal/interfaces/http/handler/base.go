package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/infrastructure/logger"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
	"github.com/okayo/invoicing/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString(logger.RequestIDKey)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(message, code, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.CodeBadRequest, message)
}

// HandleBindError answers a request whose body or query could not be bound.
// Validator failures list the rejected fields; anything else is a malformed
// payload.
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	if details := middleware.FieldErrors(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			shared.ErrValidation.Message, shared.CodeValidation, getRequestID(c),
		).WithDetails(details))
		return
	}

	h.BadRequest(c, "Malformed request")
}

// HandleError converts an error to the HTTP response for its code. Server
// faults are logged and answered with their public message only.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		h.logServerError(c, err)
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			"An unexpected error occurred", shared.CodeInternal, requestID,
		))
		return
	}

	status := dto.GetHTTPStatus(domainErr.Code)
	resp := dto.NewErrorResponse(domainErr.Message, domainErr.Code, requestID)
	switch {
	case len(domainErr.Details) > 0:
		resp = resp.WithDetails(domainErr.Details)
	case status < http.StatusInternalServerError && domainErr.Err != nil:
		resp = resp.WithDetails(domainErr.Err.Error())
	}
	if status >= http.StatusInternalServerError {
		h.logServerError(c, err)
	}
	c.JSON(status, resp)
}

func (h *BaseHandler) logServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
}

// parseID reads a positive integer path parameter. It answers 400 and
// returns false otherwise.
func (h *BaseHandler) parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			shared.ErrValidation.Message, shared.CodeValidation, getRequestID(c),
		).WithDetails([]shared.FieldError{{Field: param, Message: "must be a positive integer"}}))
		return 0, false
	}
	return id, true
}

package api

import (
	"errors"
	"net/http"

	"genvo-server/service"
	"genvo-server/videogen"

	"github.com/gin-gonic/gin"
)

// AppError 带 HTTP 状态码的错误
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

var (
	ErrInvalidInput    = func(err error) *AppError { return NewAppError(http.StatusBadRequest, "invalid input", err) }
	ErrProjectNotFound = NewAppError(http.StatusNotFound, "project not found", nil)
	ErrBranchNotFound  = NewAppError(http.StatusNotFound, "branch not found", nil)
	ErrTaskNotFound    = NewAppError(http.StatusNotFound, "task not found", nil)
)

// handleError 把错误映射为 {"error": msg} 响应
func (h *Handler) handleError(c *gin.Context, err error) {
	var appErr *AppError
	var genErr *videogen.Error

	switch {
	case errors.As(err, &appErr):
		msg := appErr.Message
		if appErr.Code == http.StatusBadRequest && appErr.Err != nil {
			msg = appErr.Error()
		}
		c.JSON(appErr.Code, gin.H{"error": msg})
		return
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrBranchNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.As(err, &genErr):
		switch genErr.Kind {
		case videogen.KindAuth:
			c.JSON(http.StatusUnauthorized, gin.H{"error": genErr.Message})
			return
		case videogen.KindPayment:
			c.JSON(http.StatusPaymentRequired, gin.H{"error": genErr.Message})
			return
		}
	}

	h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppError is a business-rule violation. Key is the stable message key the
// localization layer resolves for the client; Status is the HTTP severity.
type AppError struct {
	Key    string
	Status int
}

func (e *AppError) Error() string { return e.Key }

var (
	ErrValidation             = &AppError{Key: "validationError", Status: http.StatusBadRequest}
	ErrInvalidAmount          = &AppError{Key: "invalidAmount", Status: http.StatusBadRequest}
	ErrAmountExceedsRemaining = &AppError{Key: "amountExceedsRemaining", Status: http.StatusBadRequest}
	ErrInvalidTransition      = &AppError{Key: "invalidTransition", Status: http.StatusConflict}
	ErrOrderNotFound          = &AppError{Key: "orderNotFound", Status: http.StatusNotFound}
	ErrProductNotFound        = &AppError{Key: "productNotFound", Status: http.StatusNotFound}
	ErrAlreadyTerminal        = &AppError{Key: "orderAlreadyTerminal", Status: http.StatusConflict}
	ErrNoPermission           = &AppError{Key: "noPermission", Status: http.StatusForbidden}
)

// RespondAppError maps business errors to their HTTP severity and lets
// anything else through as an infrastructure error (500).
func RespondAppError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondError(c, appErr.Status, err)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		RespondError(c, http.StatusNotFound, err)
		return
	}
	RespondError(c, http.StatusInternalServerError, err)
}

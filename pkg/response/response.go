package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/pkg/apperror"
)

// OK writes a success envelope with optional data payload.
func OK(c *gin.Context, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// Created writes a 201 envelope. extra keys are merged into the body,
// which lets handlers return identifiers at the top level the way the
// client expects (userId, tempId, itemId).
func Created(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusCreated, body)
}

// Fail writes an error envelope with an explicit status.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// ValidationFailed writes the full list of collected violations so the
// client sees every problem in one round trip.
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "validation failed",
		"errors":  errs,
	})
}

// Error maps err to a status code and writes a generic body. Internal
// errors are logged with full detail and never leak storage text.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[internal error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		Fail(c, code, "internal server error")
		return
	}

	Fail(c, code, err.Error())
}

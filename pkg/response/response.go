// Package response holds the JSON envelopes every endpoint answers with.
// Entities ride bare, lists under a success envelope, and every error is a
// flat object carrying a stable machine-readable code.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error envelope shared by all endpoints. Error carries
// the failure text, Code a stable machine-readable string, Message an
// optional human hint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps list payloads
type ListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// OK writes an entity payload with status 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes an entity payload with status 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// List writes a list payload under the success envelope
func List(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, ListResponse{Success: true, Data: data})
}

// Error writes the error envelope
func Error(c *gin.Context, status int, code, errText, message string) {
	c.JSON(status, ErrorResponse{Error: errText, Code: code, Message: message})
}

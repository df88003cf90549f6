// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
)

// Envelope is the response shape every endpoint returns. The admin frontend
// depends on this exact shape: {success, result, message}.
type Envelope struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result"`
	Message string      `json:"message"`
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, result interface{}, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Result:  result,
		Message: message,
	})
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, result interface{}, message string) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Result:  result,
		Message: message,
	})
}

// Error writes a failure envelope with the status derived from the error kind.
func Error(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), Envelope{
		Success: false,
		Result:  nil,
		Message: err.Error(),
	})
}

// BadRequest writes a 400 failure envelope for request binding failures.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Result:  nil,
		Message: message,
	})
}

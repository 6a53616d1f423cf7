package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/eduverse/portal-api/pkg/errors"
)

// JSON sends a success payload as-is (a record or a list of records).
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Deleted responds with the removal confirmation pair: a human message plus
// the deleted record keyed by its entity name.
func Deleted(c *gin.Context, message, key string, record interface{}) {
	JSON(c, http.StatusOK, gin.H{"message": message, key: record})
}

// Error sends a failure payload {error, code} with the status carried by the
// typed error; unclassified errors surface as 500 internal failures.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
}

// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"offerwise/internal/modules/evaluator"
	"offerwise/internal/modules/settings"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID keeps driver IDs to simple alphanumeric tokens.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '-' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch err {
	case evaluator.ErrInvalidOffer, settings.ErrInvalidSettings, settings.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case settings.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// README: Driver settings handlers (get with defaults fallback, full replace).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"offerwise/internal/modules/evaluator"
	"offerwise/internal/modules/settings"
	"offerwise/internal/types"
)

type SettingsHandler struct {
	settings *settings.Service
}

func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

// Get handles GET /api/drivers/:id/settings. Drivers that never saved
// settings get the shipped defaults.
func (h *SettingsHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid driver id")
		return
	}
	cfg, err := h.settings.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cfg)
}

// Put handles PUT /api/drivers/:id/settings, replacing the whole record.
func (h *SettingsHandler) Put(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid driver id")
		return
	}
	var cfg evaluator.Settings
	if err := c.ShouldBindJSON(&cfg); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.settings.Save(c.Request.Context(), types.ID(id), cfg); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, cfg)
}

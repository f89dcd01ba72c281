// README: Offer evaluation handlers (JSON body, URL-parameter, and maxima forms).
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"offerwise/internal/modules/evaluator"
	"offerwise/internal/modules/settings"
	"offerwise/internal/types"
)

type EvaluateHandler struct {
	settings *settings.Service
}

func NewEvaluateHandler(settingsSvc *settings.Service) *EvaluateHandler {
	return &EvaluateHandler{settings: settingsSvc}
}

type evaluateReq struct {
	DriverID    string  `json:"driver_id"`
	Pay         float64 `json:"pay"`
	Pickups     int     `json:"pickups"`
	Drops       int     `json:"drops"`
	Miles       float64 `json:"miles"`
	Items       int     `json:"items"`
	IncludeWait bool    `json:"include_wait"`
}

// Evaluate handles POST /api/offers/evaluate.
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	var req evaluateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	h.evaluate(c, req)
}

// EvaluateQuery handles GET /api/offers/evaluate, the URL-parameter form used
// by shared links.
func (h *EvaluateHandler) EvaluateQuery(c *gin.Context) {
	var req evaluateReq
	var ok bool
	req.DriverID = c.Query("driver_id")
	if req.Pay, ok = queryFloat(c, "pay"); !ok {
		return
	}
	if req.Miles, ok = queryFloat(c, "miles"); !ok {
		return
	}
	if req.Pickups, ok = queryInt(c, "pickups"); !ok {
		return
	}
	if req.Drops, ok = queryInt(c, "drops"); !ok {
		return
	}
	if req.Items, ok = queryInt(c, "items"); !ok {
		return
	}
	req.IncludeWait = c.Query("include_wait") == "true" || c.Query("include_wait") == "1"
	h.evaluate(c, req)
}

// Maxima handles GET /api/offers/maxima: theoretical ceilings from pay and
// stop counts alone.
func (h *EvaluateHandler) Maxima(c *gin.Context) {
	pay, ok := queryFloat(c, "pay")
	if !ok {
		return
	}
	pickups, ok := queryInt(c, "pickups")
	if !ok {
		return
	}
	drops, ok := queryInt(c, "drops")
	if !ok {
		return
	}
	if pay <= 0 {
		writeError(c, http.StatusBadRequest, "pay must be positive")
		return
	}

	cfg, err := h.loadSettings(c.Request.Context(), c.Query("driver_id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	m := evaluator.ComputeMaxima(evaluator.Offer{Pay: pay, Pickups: pickups, Drops: drops}, cfg)
	writeJSON(c, http.StatusOK, m)
}

func (h *EvaluateHandler) evaluate(c *gin.Context, req evaluateReq) {
	cfg, err := h.loadSettings(c.Request.Context(), req.DriverID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	offer := evaluator.Offer{
		Pay:     req.Pay,
		Pickups: req.Pickups,
		Drops:   req.Drops,
		Miles:   req.Miles,
		Items:   req.Items,
	}

	var ev evaluator.Evaluation
	if req.IncludeWait {
		ev, err = evaluator.WhatIfWait(offer, cfg)
	} else {
		ev, err = evaluator.EvaluateOffer(offer, cfg)
	}
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, ev)
}

// loadSettings resolves the settings for an evaluation: the driver's stored
// record when a driver_id is given, the shipped defaults otherwise.
func (h *EvaluateHandler) loadSettings(ctx context.Context, driverID string) (evaluator.Settings, error) {
	if driverID == "" || h.settings == nil {
		return evaluator.DefaultSettings, nil
	}
	if !isValidID(driverID) {
		return evaluator.Settings{}, settings.ErrBadRequest
	}
	return h.settings.Get(ctx, types.ID(driverID))
}

func queryFloat(c *gin.Context, key string) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, key+" must be a number")
		return 0, false
	}
	return v, true
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, key+" must be an integer")
		return 0, false
	}
	return v, true
}

// README: AI parse handler (text or screenshot capture to structured offer).
package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"offerwise/internal/ai"
	"offerwise/internal/modules/evaluator"
)

type AIHandler struct {
	parser   ai.OfferParser
	evaluate *EvaluateHandler
}

func NewAIHandler(parser ai.OfferParser, evaluateHandler *EvaluateHandler) *AIHandler {
	return &AIHandler{parser: parser, evaluate: evaluateHandler}
}

type aiParseReq struct {
	DriverID    string `json:"driver_id"`
	Text        string `json:"text"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

type aiParseResp struct {
	Extract    *ai.OfferExtract      `json:"extract"`
	Evaluation *evaluator.Evaluation `json:"evaluation,omitempty"`
}

// Parse handles POST /api/ai/parse: reduce a capture to offer numbers, then
// evaluate them when the capture carried a pay amount.
func (h *AIHandler) Parse(c *gin.Context) {
	var req aiParseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" && req.ImageBase64 == "" {
		writeError(c, http.StatusBadRequest, "missing text or image_base64")
		return
	}
	if req.DriverID != "" && !isValidID(req.DriverID) {
		writeError(c, http.StatusBadRequest, "invalid driver id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var extract *ai.OfferExtract
	var err error
	if req.Text != "" {
		extract, err = h.parser.ParseOfferText(ctx, req.Text)
	} else {
		var data []byte
		data, err = base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			writeError(c, http.StatusBadRequest, "image_base64 is not valid base64")
			return
		}
		extract, err = h.parser.ParseOfferImage(ctx, req.MimeType, data)
	}
	if err != nil {
		writeError(c, http.StatusBadGateway, "offer parsing failed")
		return
	}

	resp := aiParseResp{Extract: extract}

	// Evaluate only when the capture carried a pay amount; a partial capture
	// is still useful to the caller as-is.
	if extract.Pay != nil && *extract.Pay > 0 {
		cfg, err := h.evaluate.loadSettings(ctx, req.DriverID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		ev, err := evaluator.EvaluateOffer(extract.ToOffer(), cfg)
		if err == nil {
			resp.Evaluation = &ev
		}
	}

	writeJSON(c, http.StatusOK, resp)
}

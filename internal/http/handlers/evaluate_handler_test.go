// README: Handler tests for evaluate, maxima, settings, and AI parse routes.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"offerwise/internal/ai"
	"offerwise/internal/http/handlers"
	"offerwise/internal/modules/settings"
)

// stubParser is a test double for ai.OfferParser.
type stubParser struct {
	extract *ai.OfferExtract
	err     error
}

func (s *stubParser) ParseOfferText(_ context.Context, _ string) (*ai.OfferExtract, error) {
	return s.extract, s.err
}

func (s *stubParser) ParseOfferImage(_ context.Context, _ string, _ []byte) (*ai.OfferExtract, error) {
	return s.extract, s.err
}

// buildTestRouter wires a minimal gin engine. The settings service has no
// store behind it; every route under test resolves before touching one.
func buildTestRouter(parser ai.OfferParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := settings.NewService(nil)
	r := gin.New()

	eh := handlers.NewEvaluateHandler(nil)
	r.POST("/api/offers/evaluate", eh.Evaluate)
	r.GET("/api/offers/evaluate", eh.EvaluateQuery)
	r.GET("/api/offers/maxima", eh.Maxima)

	sh := handlers.NewSettingsHandler(svc)
	r.PUT("/api/drivers/:id/settings", sh.Put)

	if parser != nil {
		r.POST("/api/ai/parse", handlers.NewAIHandler(parser, eh).Parse)
	}
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestEvaluatePost(t *testing.T) {
	r := buildTestRouter(nil)
	w := doRequest(r, http.MethodPost, "/api/offers/evaluate", map[string]any{
		"pay":   8.5,
		"miles": 3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["verdict"] != "good" {
		t.Errorf("verdict = %v, want good", body["verdict"])
	}
	if body["effective_hourly"] != 25.5 {
		t.Errorf("effective_hourly = %v, want 25.5", body["effective_hourly"])
	}
}

func TestEvaluateQueryParams(t *testing.T) {
	r := buildTestRouter(nil)
	w := doRequest(r, http.MethodGet, "/api/offers/evaluate?pay=21&miles=35", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["verdict"] != "bad" {
		t.Errorf("verdict = %v, want bad", body["verdict"])
	}
}

func TestEvaluateQueryRejectsGarbage(t *testing.T) {
	r := buildTestRouter(nil)
	w := doRequest(r, http.MethodGet, "/api/offers/evaluate?pay=lots", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEvaluateRejectsZeroPay(t *testing.T) {
	r := buildTestRouter(nil)
	w := doRequest(r, http.MethodPost, "/api/offers/evaluate", map[string]any{"pay": 0, "miles": 3})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMaxima(t *testing.T) {
	r := buildTestRouter(nil)
	w := doRequest(r, http.MethodGet, "/api/offers/maxima?pay=15", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["max_minutes"] != 42.86 {
		t.Errorf("max_minutes = %v, want 42.86", body["max_minutes"])
	}
	if body["max_items"] != float64(23) {
		t.Errorf("max_items = %v, want 23", body["max_items"])
	}
}

func TestPutSettingsRejectsInvalid(t *testing.T) {
	r := buildTestRouter(nil)
	w := doRequest(r, http.MethodPut, "/api/drivers/d1/settings", map[string]any{
		"per_pickup":          5,
		"per_drop":            2,
		"per_item":            1.5,
		"avg_speed":           0, // invalid
		"expected_pay":        21,
		"max_orders_per_hour": 3,
		"return_1_drop":       100,
		"return_2_drop":       75,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAIParseEvaluatesExtractedOffer(t *testing.T) {
	pay := 8.5
	miles := 3.0
	r := buildTestRouter(&stubParser{extract: &ai.OfferExtract{Pay: &pay, Miles: &miles}})

	w := doRequest(r, http.MethodPost, "/api/ai/parse", map[string]any{
		"text": "$8.50 for 3 miles",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	ev, ok := body["evaluation"].(map[string]any)
	if !ok {
		t.Fatalf("expected evaluation in response, got %s", w.Body.String())
	}
	if ev["verdict"] != "good" {
		t.Errorf("verdict = %v, want good", ev["verdict"])
	}
}

func TestAIParseRequiresInput(t *testing.T) {
	r := buildTestRouter(&stubParser{})
	w := doRequest(r, http.MethodPost, "/api/ai/parse", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"offerwise/internal/ai"
	"offerwise/internal/http/handlers"
	"offerwise/internal/http/middleware"
	"offerwise/internal/modules/settings"
)

type ServerDeps struct {
	Settings *settings.Service
	Parser   ai.OfferParser
}

// NewRouter wires the gin engine. Parser may be nil; the AI route is only
// registered when a provider is configured.
func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	evaluateHandler := handlers.NewEvaluateHandler(deps.Settings)
	r.POST("/api/offers/evaluate", evaluateHandler.Evaluate)
	r.GET("/api/offers/evaluate", evaluateHandler.EvaluateQuery)
	r.GET("/api/offers/maxima", evaluateHandler.Maxima)

	settingsHandler := handlers.NewSettingsHandler(deps.Settings)
	r.GET("/api/drivers/:id/settings", settingsHandler.Get)
	r.PUT("/api/drivers/:id/settings", settingsHandler.Put)

	if deps.Parser != nil {
		aiHandler := handlers.NewAIHandler(deps.Parser, evaluateHandler)
		r.POST("/api/ai/parse", aiHandler.Parse)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}

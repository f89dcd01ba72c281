// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"offerwise/internal/ai"
	"offerwise/internal/config"
	httptransport "offerwise/internal/http"
	"offerwise/internal/infra"
	"offerwise/internal/modules/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	settingsStore := settings.NewStore(dbPool, redisClient, cfg.Redis.SettingsCacheTTL)
	settingsSvc := settings.NewService(settingsStore)

	var parser ai.OfferParser
	if cfg.AI.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer provider.Close()
		parser = provider
	} else {
		log.Print("GEMINI_API_KEY not set; AI parse route disabled")
	}

	router := httptransport.NewRouter(httptransport.ServerDeps{
		Settings: settingsSvc,
		Parser:   parser,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formulagen/internal/ai"
	"formulagen/internal/config"
	httptransport "formulagen/internal/http"
	"formulagen/internal/infra"
	"formulagen/internal/modules/credential"
	"formulagen/internal/modules/formula"
	"formulagen/internal/modules/inflight"
	"formulagen/internal/modules/quota"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()

	credentialSvc := credential.NewService(credential.NewRedisStore(redisClient))
	if seeded, err := credentialSvc.Seed(ctx, cfg.AI.GeminiKey); err != nil {
		log.Fatalf("credential seed: %v", err)
	} else if seeded {
		log.Printf("credential: seeded from GEMINI_API_KEY")
	}

	deps := formula.ServiceDeps{
		Provider:    ai.NewGeminiProvider(),
		Credentials: credentialSvc,
		Model:       cfg.AI.Model,
		Temperature: float32(cfg.AI.Temperature),
		Gate:        inflight.NewService(inflight.NewStore(redisClient), cfg.InFlightTTL()),
	}

	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		deps.Usage = quota.NewService(quota.NewStore(dbPool), cfg.Quota.Monthly)
	} else {
		log.Printf("quota: FORMULAGEN_DB_DSN not set; generation quota disabled")
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Formula:         formula.NewService(deps),
		Credential:      credentialSvc,
		GenerateTimeout: cfg.AI.Timeout,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AI.Timeout+5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("formulagen-api listening on %s (model %s)", cfg.HTTP.Addr, cfg.AI.Model)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

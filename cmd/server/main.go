/*
main.go - Application entry point

STARTUP SEQUENCE:
  1. Load .env (if present) and parse POS_* environment config
  2. Open the SQLite snapshot store
  3. Build the session (seeding defaults on first run)
  4. Configure the router and start the HTTP server
  5. Graceful shutdown on SIGINT/SIGTERM

CONFIGURATION (envconfig, prefix POS_):
  POS_ADDR            listen address          (default :8080)
  POS_DB              SQLite path             (default pos.db, ":memory:" ok)
  POS_JWT_SECRET      token signing secret    (required)
  POS_TOKEN_TTL       token lifetime          (default 12h)
  POS_CORS_ORIGINS    allowed UI origins      (default http://localhost:5173)
  POS_RECALL_AUTOHOLD auto-hold on recall     (default false)
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/fusioneats/pos-engine/api"
	"github.com/fusioneats/pos-engine/pos"
	"github.com/fusioneats/pos-engine/store/sqlite"
)

type config struct {
	Addr           string        `envconfig:"ADDR" default:":8080"`
	DB             string        `envconfig:"DB" default:"pos.db"`
	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL       time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
	CORSOrigins    []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	RecallAutoHold bool          `envconfig:"RECALL_AUTOHOLD" default:"false"`
}

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process("pos", &cfg); err != nil {
		log.WithError(err).Fatal("failed to parse configuration")
	}

	store, err := sqlite.New(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("failed to open snapshot store")
	}
	defer store.Close()

	discard := pos.DiscardDrop
	if cfg.RecallAutoHold {
		discard = pos.DiscardAutoHold
	}
	session := pos.NewSession(context.Background(), store, pos.Options{
		Discard: discard,
		Logger:  log.StandardLogger(),
	})

	handler := api.NewHandler(session, api.Config{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.TokenTTL,
		Logger:   log.StandardLogger(),
	})
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}
	log.Info("server stopped")
}

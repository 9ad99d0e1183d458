package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"holdem-trainer/internal/config"
	"holdem-trainer/internal/mux"
	"holdem-trainer/internal/rng"
	"holdem-trainer/pkg/holdem"
	"holdem-trainer/pkg/room"
	"holdem-trainer/pkg/strategy"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 30
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")

func main() {
	flag.Parse()
	cfg := config.Instance()
	setupLogger(cfg.Log)

	gen := rng.FromSeed(cfg.Game.Seed)
	provider, err := strategy.New(cfg.Game.Strategy, logrus.StandardLogger(), gen)
	if err != nil {
		logrus.WithError(err).Fatal("could not create strategy")
	}

	engine, err := holdem.NewEngine(logrus.StandardLogger(), provider, gen, cfg.Game.Options())
	if err != nil {
		logrus.WithError(err).Fatal("could not create engine")
	}

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), engine, gen)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	listen := cfg.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	srv := &http.Server{
		Addr:         listen,
		Handler:      loggingHandler(cfg.Server, c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		logrus.Info("shutting down")
		pitBoss.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":     srv.Addr,
		"strategy": cfg.Game.Strategy,
	}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Fatal(err)
	}
}

func loggingHandler(cfg config.ServerConfig, next http.Handler) http.Handler {
	if !cfg.AccessLog {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger(cfg config.LogConfig) {
	if lvl := cfg.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

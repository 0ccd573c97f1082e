package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "prayerlog/docs"
	prayerlog "prayerlog/internal"
	"prayerlog/internal/ai"
	"prayerlog/internal/config"
)

// @title           Prayerlog API
// @version         1.0
// @description     Local API for prayer sessions, prayer requests and prayer stats
// @BasePath        /

var port string

func main() {
	flag.StringVar(&port, "port", "", "HTTP server address, overrides PRAYERLOG_ADDR (e.g. ':8080')")
	flag.Parse()

	log.SetTimeFormat(time.Stamp)
	log.SetReportCaller(true)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	log.SetLevel(cfg.LogLevel)
	if port != "" {
		cfg.Addr = port
	}

	ctx := context.Background()
	state, manager, err := prayerlog.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open state", "error", err)
	}
	defer manager.Close()

	guide := &prayerlog.GuideStore{}
	if err := guide.Load(cfg.GuidePath); err != nil {
		log.Warn("ACTS guide not available", "path", cfg.GuidePath, "error", err)
	}

	state.AddHook(prayerlog.BroadcastHook)
	if cfg.AIEnabled() {
		aiClient, err := ai.NewClient(cfg.AIURL, cfg.AIAPIKey)
		if err != nil {
			log.Warn("AI client not available, encouragement disabled", "error", err)
		} else {
			state.AddHook(prayerlog.EncouragementHook(aiClient, cfg.AIModel, nil))
		}
	}

	server := prayerlog.NewServer(state, guide)

	mux := http.NewServeMux()
	mux.Handle("/", server.SetupRoutes())
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Shutdown failed", "error", err)
		}
	}()

	log.Info("Server starting", "addr", cfg.Addr, "storage", cfg.Storage, "timezone", cfg.Location)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("Server error", "error", err)
	}
}

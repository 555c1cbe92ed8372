package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/myamashita/regsheet/internal/api"
	"github.com/myamashita/regsheet/internal/config"
	"github.com/myamashita/regsheet/internal/extract"
	"github.com/myamashita/regsheet/internal/genai"
	"github.com/myamashita/regsheet/internal/heuristic"
	"github.com/myamashita/regsheet/internal/parser"
	"github.com/myamashita/regsheet/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gemini, err := genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiVisionModel, log)
	if err != nil {
		log.Error("gemini client", "error", err)
		os.Exit(1)
	}

	orch := extract.NewOrchestrator(extract.PDFTextExtractor{}, gemini, cfg.MinJapaneseChars, log)
	dispatcher := parser.NewDispatcher(orch)
	scans := heuristic.New(heuristic.Config{TableCellGap: cfg.TableCellGap})
	proc := pipeline.NewProcessor(dispatcher, gemini, scans, log)

	srv := api.NewServer(proc, gemini, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		gemini.Close()
	}()

	log.Info("starting regsheet", "port", cfg.Port, "model", cfg.GeminiModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/propdoc/propdoc/internal/async"
	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/ingest"
	"github.com/propdoc/propdoc/internal/llm/openai"
	"github.com/propdoc/propdoc/internal/ocr"
	"github.com/propdoc/propdoc/internal/pipeline"
	"github.com/propdoc/propdoc/internal/processor"
	"github.com/propdoc/propdoc/internal/store"
)

func main() {
	var (
		watch    = flag.String("watch", "", "comma-separated directories to watch (required)")
		scan     = flag.Bool("scan", true, "process existing files on startup")
		debounce = flag.Duration("debounce", 500*time.Millisecond, "coalesce window for file events")
		workers  = flag.Int("workers", 2, "concurrent processing workers")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *watch == "" {
		logger.Error("--watch is required")
		os.Exit(1)
	}
	var roots []string
	for _, r := range strings.Split(*watch, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	recorder, err := store.OpenRecorder(ctx, cfg.Store.DSN, logger)
	if err != nil {
		logger.Error("failed to open provenance store", "error", err)
		os.Exit(1)
	}
	st := store.New(cfg.Store.OutputDir, recorder, logger)
	defer st.Close()

	oracle := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	proc := processor.New(extractor, pipeline.NewOrchestrator(oracle, cfg.Extract, logger), logger)
	queue := async.NewProcessorQueue(proc, st, logger, async.WithWorkers(*workers))

	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       roots,
		InitialScan: *scan,
		Debounce:    *debounce,
		SkipHidden:  true,
	}, logger)
	if err != nil {
		logger.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	logger.Info("propdocd started", "roots", roots, "output_dir", cfg.Store.OutputDir, "workers", *workers)
	ingest.NewService(queue, logger).Run(ctx, events, watchErrs)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	logger.Info("propdocd stopped")
}

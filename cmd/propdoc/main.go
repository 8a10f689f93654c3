package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/export"
	"github.com/propdoc/propdoc/internal/llm/openai"
	"github.com/propdoc/propdoc/internal/ocr"
	"github.com/propdoc/propdoc/internal/pipeline"
	"github.com/propdoc/propdoc/internal/processor"
	"github.com/propdoc/propdoc/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file    = flag.String("file", "", "single document to process")
		dir     = flag.String("dir", "", "directory of documents to process")
		out     = flag.String("out", "", "artifact output directory (overrides OUTPUT_DIR)")
		db      = flag.String("db", "", "provenance DSN: sqlite path or postgres URL (overrides DB_URL)")
		xlsx    = flag.String("xlsx", "", "write a batch summary workbook to this path (with --dir)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if (*file == "") == (*dir == "") {
		printError("Error: exactly one of --file or --dir is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if *out != "" {
		cfg.Store.OutputDir = *out
	}
	if *db != "" {
		cfg.Store.DSN = *db
	}
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

	if *file != "" {
		res := proc.Process(ctx, *file)
		path, err := st.Save(ctx, res)
		if err != nil {
			logger.Error("failed to save result", "error", err)
			os.Exit(1)
		}
		fmt.Printf("%s -> %s (%s)\n", *file, path, res.ProcessingStatus)
		if res.ErrorMessage != "" {
			printError("error: %s\n", res.ErrorMessage)
			os.Exit(1)
		}
		return
	}

	summary, err := proc.ProcessDir(ctx, *dir)
	if err != nil {
		logger.Error("directory processing failed", "error", err)
		os.Exit(1)
	}
	for _, res := range summary.Results {
		if _, err := st.Save(ctx, res); err != nil {
			logger.Error("failed to save result", "original", res.Metadata.OriginalFilename, "error", err)
		}
	}
	if *xlsx != "" {
		data, err := export.NewService(logger).SummaryXLSX(summary.Results)
		if err != nil {
			logger.Error("failed to build summary workbook", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsx, data, 0o644); err != nil {
			logger.Error("failed to write summary workbook", "path", *xlsx, "error", err)
			os.Exit(1)
		}
		fmt.Printf("summary workbook written to %s\n", *xlsx)
	}

	fmt.Printf("processed %d files: %d succeeded, %d failed\n",
		summary.Total, summary.Successful, summary.Failed)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

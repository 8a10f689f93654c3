// textdump runs the text-acquisition and structuring stages on one file and
// prints the result as JSON. No oracle calls; useful for debugging what the
// extraction prompt will actually see.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/ocr"
	"github.com/propdoc/propdoc/internal/segment"
	"github.com/propdoc/propdoc/internal/textclean"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "textdump <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := common.LoadConfig()
	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	start := time.Now()
	res, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err)
		os.Exit(1)
	}
	logger.Info("text extraction OK",
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	cleaned := textclean.Sanitize(res.Text)
	sections := segment.New(logger).Segment(cleaned)

	out := struct {
		Path     string             `json:"path"`
		Method   string             `json:"method"`
		Pages    int                `json:"pages"`
		Cleaned  string             `json:"cleaned_text"`
		Sections []*segment.Section `json:"sections"`
	}{
		Path:     path,
		Method:   res.Method,
		Pages:    res.Pages,
		Cleaned:  strings.TrimSpace(cleaned),
		Sections: sections,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}

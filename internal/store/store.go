package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/pipeline"
)

// Provenance is the per-file record kept in the database: which input
// produced which artifact, with what outcome.
type Provenance struct {
	OriginalFilename string
	OutputFilename   string
	FileType         string
	Status           string
	ErrorMessage     string
	Fields           int
	CreatedAt        time.Time
}

// Recorder persists provenance rows. Implementations: SQLite, Postgres, and
// a no-op for artifact-only runs.
type Recorder interface {
	Record(ctx context.Context, p Provenance) error
	Close() error
}

// Store writes result artifacts to disk and records provenance.
type Store struct {
	outputDir string
	recorder  Recorder
	logger    *slog.Logger
}

func New(outputDir string, recorder Recorder, logger *slog.Logger) *Store {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{outputDir: outputDir, recorder: recorder, logger: logger}
}

// OutputName derives the artifact filename from the original: e_<base>.json.
func OutputName(originalFilename string) string {
	base := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	return "e_" + base + ".json"
}

// Save writes the artifact under the derived output name and records
// provenance. A save failure is reported as ErrSave but does not invalidate
// the in-memory result; the caller decides whether to retry.
func (s *Store) Save(ctx context.Context, res *pipeline.StructuredResult) (string, error) {
	outName := OutputName(res.Metadata.OriginalFilename)
	res.Metadata.OutputFilename = outName
	outPath := filepath.Join(s.outputDir, outName)

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSave, common.WrapError(err, "create output dir"))
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSave, common.WrapError(err, "encode artifact"))
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSave, common.WrapError(err, "write artifact"))
	}

	prov := Provenance{
		OriginalFilename: res.Metadata.OriginalFilename,
		OutputFilename:   outName,
		FileType:         res.Metadata.FileType,
		Status:           string(res.ProcessingStatus),
		ErrorMessage:     res.ErrorMessage,
		Fields:           len(res.StructuredData),
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.recorder.Record(ctx, prov); err != nil {
		return outPath, fmt.Errorf("%w: %v", common.ErrSave, common.WrapError(err, "record provenance"))
	}

	s.logger.Info("store.save.ok",
		"original", prov.OriginalFilename,
		"output", outName,
		"status", prov.Status,
		"fields", prov.Fields)
	return outPath, nil
}

func (s *Store) Close() error {
	return s.recorder.Close()
}

// NopRecorder satisfies Recorder for artifact-only runs.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Provenance) error { return nil }
func (NopRecorder) Close() error                             { return nil }

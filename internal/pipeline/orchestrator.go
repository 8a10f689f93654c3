package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/llm"
)

// Orchestrator runs the chunk -> oracle -> parse -> merge loop for one file.
// Chunk calls are sequential: every call shares one oracle endpoint and the
// design favors predictable resource use over latency.
type Orchestrator struct {
	generator llm.Generator
	chunker   *Chunker
	policy    string
	schema    map[string]any
	logger    *slog.Logger
}

func NewOrchestrator(generator llm.Generator, cfg common.ExtractConfig, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	policy := cfg.MergePolicy
	if policy != MergeFirstWriteWins {
		policy = MergeLastWriteWins
	}
	return &Orchestrator{
		generator: generator,
		chunker:   NewChunker(cfg.ChunkParagraphs, cfg.ChunkMaxChars, logger),
		policy:    policy,
		schema:    llm.BuildChunkSchema(),
		logger:    logger,
	}
}

// Extract partitions cleaned text, queries the oracle once per chunk, and
// merges the parsed responses into a single StructuredResult.
//
// Failure handling is asymmetric on purpose: a response that fails to parse
// or validate drops that chunk only, while a timeout or call failure aborts
// the whole file — no partial merge across an unreachable oracle.
func (o *Orchestrator) Extract(ctx context.Context, cleaned, docType string) *StructuredResult {
	runID := uuid.New().String()
	start := time.Now()

	chunks := o.chunker.Chunks(cleaned)
	o.logger.Info("extract.start",
		"run_id", runID,
		"doc_type", docType,
		"chunks", len(chunks),
		"input_chars", len(cleaned))

	var parsed []map[string]any
	for i, chunk := range chunks {
		obj, err := o.extractChunk(ctx, runID, i, docType, chunk)
		if err != nil {
			if errors.Is(err, common.ErrOracleParse) {
				// local degrade: this chunk is lost, the run continues
				o.logger.Warn("extract.chunk.parse_failed",
					"run_id", runID,
					"chunk_index", i,
					"error", err.Error())
				continue
			}
			o.logger.Error("extract.abort",
				"run_id", runID,
				"chunk_index", i,
				"error", err.Error(),
				"elapsed_ms", time.Since(start).Milliseconds())
			return NewErrorResult(docType, fmt.Sprintf("oracle extraction failed on chunk %d: %v", i, err))
		}
		parsed = append(parsed, obj)
	}

	merged := mergeChunks(parsed, o.policy)
	o.logger.Info("extract.done",
		"run_id", runID,
		"chunks_parsed", len(parsed),
		"chunks_dropped", len(chunks)-len(parsed),
		"fields", len(merged),
		"elapsed_ms", time.Since(start).Milliseconds())
	return NewSuccessResult(merged, docType)
}

func (o *Orchestrator) extractChunk(ctx context.Context, runID string, index int, docType, chunk string) (map[string]any, error) {
	prompt := llm.BuildChunkPrompt(docType, chunk)

	raw, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	obj, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	// schema check keeps nested objects out of the merge
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrOracleParse, err)
	}
	if err := llm.ValidateJSONAgainstSchema(o.schema, b); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrOracleParse, err)
	}

	o.logger.Debug("extract.chunk.ok",
		"run_id", runID,
		"chunk_index", index,
		"fields", len(obj))
	return obj, nil
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/common"
)

type stubGenerator struct {
	responses []string
	err       error
	calls     int
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "{}", nil
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func extractCfg() common.ExtractConfig {
	return common.ExtractConfig{ChunkParagraphs: 1, ChunkMaxChars: 4000, MergePolicy: "last"}
}

func TestExtractMergeLastWriteWins(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		`{"asking_price": 1}`,
		`{"asking_price": 2, "unit_count": 3}`,
	}}
	o := NewOrchestrator(gen, extractCfg(), nil)

	res := o.Extract(context.Background(), "first paragraph\n\nsecond paragraph", "pdf")

	require.Equal(t, constants.StatusSuccess, res.ProcessingStatus)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, map[string]any{"asking_price": float64(2), "unit_count": float64(3)}, res.StructuredData)
	assert.Equal(t, "pdf", res.Metadata.FileType)
	assert.NotEmpty(t, res.Metadata.Timestamp)
}

func TestExtractMergeFirstWriteWins(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		`{"asking_price": 1}`,
		`{"asking_price": 2, "unit_count": 3}`,
	}}
	cfg := extractCfg()
	cfg.MergePolicy = "first"
	o := NewOrchestrator(gen, cfg, nil)

	res := o.Extract(context.Background(), "first paragraph\n\nsecond paragraph", "pdf")

	require.Equal(t, constants.StatusSuccess, res.ProcessingStatus)
	assert.Equal(t, map[string]any{"asking_price": float64(1), "unit_count": float64(3)}, res.StructuredData)
}

func TestExtractTimeoutAbortsFile(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("%w: request exceeded 30s", common.ErrOracleTimeout)}
	o := NewOrchestrator(gen, extractCfg(), nil)

	res := o.Extract(context.Background(), "one\n\ntwo\n\nthree", "pdf")

	require.Equal(t, constants.StatusError, res.ProcessingStatus)
	assert.NotEmpty(t, res.ErrorMessage)
	assert.Nil(t, res.StructuredData)
	// the first failing call aborts; later chunks never reach the oracle
	assert.Equal(t, 1, gen.calls)
}

func TestExtractParseFailureDropsChunkOnly(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		"the model rambled instead of answering",
		`{"unit_count": 48}`,
	}}
	o := NewOrchestrator(gen, extractCfg(), nil)

	res := o.Extract(context.Background(), "one\n\ntwo", "pdf")

	require.Equal(t, constants.StatusSuccess, res.ProcessingStatus)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, map[string]any{"unit_count": float64(48)}, res.StructuredData)
}

func TestExtractAllChunksUnparseable(t *testing.T) {
	gen := &stubGenerator{responses: []string{"garbage"}}
	o := NewOrchestrator(gen, extractCfg(), nil)

	res := o.Extract(context.Background(), "one\n\ntwo\n\nthree", "pdf")

	// parse failures are local: the run still succeeds, with nothing extracted
	require.Equal(t, constants.StatusSuccess, res.ProcessingStatus)
	assert.Empty(t, res.ErrorMessage)
	assert.NotNil(t, res.StructuredData)
	assert.Empty(t, res.StructuredData)
}

func TestExtractNestedObjectRejected(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		`{"address": {"street": "12 Main"}}`,
		`{"unit_count": 10}`,
	}}
	o := NewOrchestrator(gen, extractCfg(), nil)

	res := o.Extract(context.Background(), "one\n\ntwo", "pdf")

	require.Equal(t, constants.StatusSuccess, res.ProcessingStatus)
	assert.Equal(t, map[string]any{"unit_count": float64(10)}, res.StructuredData)
}

func TestChunkerGrouping(t *testing.T) {
	c := NewChunker(3, 4000, nil)

	var paras []string
	for i := 0; i < 7; i++ {
		paras = append(paras, fmt.Sprintf("paragraph %d", i))
	}
	chunks := c.Chunks(strings.Join(paras, "\n\n"))

	require.Len(t, chunks, 3)
	assert.Equal(t, "paragraph 0\n\nparagraph 1\n\nparagraph 2", chunks[0])
	assert.Equal(t, "paragraph 6", chunks[2])
}

func TestChunkerSkipsOversized(t *testing.T) {
	c := NewChunker(1, 50, nil)

	text := "short one\n\n" + strings.Repeat("x", 200) + "\n\nshort two"
	chunks := c.Chunks(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, []string{"short one", "short two"}, chunks)
}

func TestChunkerEmptyInput(t *testing.T) {
	c := NewChunker(3, 4000, nil)
	assert.Empty(t, c.Chunks(""))
	assert.Empty(t, c.Chunks("\n\n\n"))
}

package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdoc/propdoc/constants"
)

type stubRunner struct {
	stdout []byte
	err    error
}

func (s stubRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	return s.stdout, nil, s.err
}

func TestExtractPDF(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = stubRunner{stdout: []byte("page one text\fpage two text")}

	res, err := e.Extract(context.Background(), "offer.pdf")
	require.NoError(t, err)
	assert.Equal(t, constants.PDF, res.SourceType)
	assert.Equal(t, "pdf-text", res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, res.Text, "page two")
}

func TestExtractPDFFailure(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = stubRunner{err: errors.New("boom")}

	_, err := e.Extract(context.Background(), "broken.pdf")
	assert.Error(t, err)
}

func TestExtractImageMetadataDegrades(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = stubRunner{stdout: []byte("Asking Rent $1,200 for 10 units built 1998")}

	// path does not exist, so metadata falls back to unknown without
	// failing the run
	res, err := e.Extract(context.Background(), "scan.png")
	require.NoError(t, err)
	assert.Equal(t, "image-ocr", res.Method)
	require.NotNil(t, res.Image)
	assert.Equal(t, "unknown", res.Image.Format)
	assert.NotEmpty(t, res.Warnings)
	assert.Greater(t, res.Confidence, float32(0.5))
}

func TestExtractUnsupported(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	_, err := e.Extract(context.Background(), "notes.docx")
	assert.Error(t, err)
}

func TestSplitPages(t *testing.T) {
	assert.Len(t, SplitPages("a\fb\fc"), 3)
	assert.Len(t, SplitPages("a\n\n\n\nb"), 2)
	assert.Len(t, SplitPages("single page"), 1)
}

package processor

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/pipeline"
)

// BatchSummary reports one directory run.
type BatchSummary struct {
	Total      int
	Successful int
	Failed     int
	Results    []*pipeline.StructuredResult
}

// ProcessDir walks root, processes every file with an allowed extension, and
// tallies outcomes. A failed file is counted and kept in Results; only the
// walk itself can return an error.
func (p *Processor) ProcessDir(ctx context.Context, root string) (*BatchSummary, error) {
	start := time.Now()
	summary := &BatchSummary{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		res := p.Process(ctx, path)
		summary.Total++
		if res.ProcessingStatus == constants.StatusSuccess {
			summary.Successful++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("process.batch.done",
		"root", root,
		"total", summary.Total,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"duration_ms", time.Since(start).Milliseconds())
	return summary, nil
}

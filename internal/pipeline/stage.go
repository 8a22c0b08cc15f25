package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Stage is one step of the batch pipeline. Start spawns the stage's units
// and returns immediately; Join blocks until every unit has finished,
// regardless of individual outcomes.
type Stage interface {
	Name() string
	Start(ctx context.Context)
	Join()
}

// Run executes the stages strictly in sequence. Each stage is fully joined
// before the next one starts; no unit of stage N+1 ever overlaps stage N.
func Run(ctx context.Context, logger *slog.Logger, stages ...Stage) {
	for _, s := range stages {
		logger.Info("stage started", "stage", s.Name())
		s.Start(ctx)
		s.Join()
		logger.Info("stage completed", "stage", s.Name())
	}
}

// writeJSONFile writes v as indented JSON to path, creating parent
// directories as needed.
func writeJSONFile(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %v", ErrFilesystem, dir, err)
		}
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrDecode, path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrFilesystem, path, err)
	}
	return nil
}

package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

// LocalSink writes batch output to a directory on disk, for offline
// inspection of the same document shape the bucket receives.
type LocalSink struct {
	dir string
}

// NewLocal creates a sink rooted at dir ("." when empty).
func NewLocal(dir string) *LocalSink {
	if dir == "" {
		dir = "."
	}
	return &LocalSink{dir: dir}
}

// Persist writes <dir>/<name>.json.
func (s *LocalSink) Persist(_ context.Context, output model.BatchOutput, name string) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return eris.Wrap(err, "sink: marshal output")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return eris.Wrap(err, "sink: create output dir")
	}

	path := filepath.Join(s.dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "sink: write %s", path)
	}

	zap.L().Info("sink: battle cards saved locally", zap.String("path", path))
	return nil
}

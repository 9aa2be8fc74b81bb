// Package store records batch run history in a local SQLite database.
package store

import (
	"context"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

// Store defines the run-history persistence interface.
type Store interface {
	CreateRun(ctx context.Context, inputFile, outputName string) (*model.Run, error)
	FinishRun(ctx context.Context, runID string, status model.RunStatus, total, analyzed int, usage model.TokenUsage) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

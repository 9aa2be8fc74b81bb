// Package sink persists the combined {summary, battle_cards} document.
// Persistence is best-effort: failures are returned for logging but are
// never fatal to a run, whose in-memory result remains usable.
package sink

import (
	"context"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

// Sink writes one batch output document under the given name.
type Sink interface {
	Persist(ctx context.Context, output model.BatchOutput, name string) error
}

package analyzer

import (
	"sync"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

// UsageTracker accumulates batch-wide token totals. Analyzer calls run
// concurrently across the worker pool, so increments take a mutex.
type UsageTracker struct {
	mu           sync.Mutex
	inputTokens  int64
	outputTokens int64
}

// NewUsageTracker returns a zeroed tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{}
}

// Add accumulates one call's token counts.
func (t *UsageTracker) Add(input, output int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputTokens += input
	t.outputTokens += output
}

// Totals returns a snapshot of the accumulated usage.
func (t *UsageTracker) Totals() model.TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return model.TokenUsage{
		InputTokens:  t.inputTokens,
		OutputTokens: t.outputTokens,
		TotalTokens:  t.inputTokens + t.outputTokens,
	}
}

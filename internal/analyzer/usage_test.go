package analyzer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageTracker_ConcurrentAdds(t *testing.T) {
	tracker := NewUsageTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Add(10, 3)
		}()
	}
	wg.Wait()

	totals := tracker.Totals()
	assert.Equal(t, int64(500), totals.InputTokens)
	assert.Equal(t, int64(150), totals.OutputTokens)
	assert.Equal(t, int64(650), totals.TotalTokens)
}

func TestUsageTracker_Zero(t *testing.T) {
	totals := NewUsageTracker().Totals()
	assert.Zero(t, totals.InputTokens)
	assert.Zero(t, totals.OutputTokens)
	assert.Zero(t, totals.TotalTokens)
}

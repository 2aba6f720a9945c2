package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 50.0, CompletionRate(15, 30))
	assert.Equal(t, 100.0, CompletionRate(30, 30))
	assert.Equal(t, 0.0, CompletionRate(0, 30))
	assert.Equal(t, 33.3, CompletionRate(1, 3))
}

func TestCompletionRateZeroWindow(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(10, 0))
}

func TestCountInWindow(t *testing.T) {
	today := day(2025, time.June, 15)
	dates := []time.Time{
		today,
		today.AddDate(0, 0, -30), // exactly on the boundary, included
		today.AddDate(0, 0, -31), // outside
	}
	assert.Equal(t, 2, CountInWindow(dates, 30, today))
	assert.Equal(t, 3, CountInWindow(dates, 31, today))
}

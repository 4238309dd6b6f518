package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveIndex(t *testing.T) {
	assert.Equal(t, 0, ActiveIndex(0))
	assert.Equal(t, 0, ActiveIndex(-3))
	assert.Equal(t, 0, ActiveIndex(1))
	assert.Equal(t, 19, ActiveIndex(20))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		activeIndex int
		wantStart   int
		wantEnd     int
	}{
		{"empty timeline", 0, 0, 1, 1},
		{"single page", 1, 0, 1, 1},
		{"fits entirely", 5, 4, 1, 5},
		{"active near start", 20, 0, 1, 8},
		{"active centered", 20, 10, 8, 15},
		{"active at page 16 of 20", 20, 15, 13, 20},
		{"active at last page", 20, 19, 13, 20},
		{"exactly eight pages", 8, 7, 1, 8},
		{"nine pages, first active", 9, 0, 1, 8},
		{"nine pages, last active", 9, 8, 2, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.total, tt.activeIndex)
			assert.Equal(t, tt.wantStart, start, "start")
			assert.Equal(t, tt.wantEnd, end, "end")
			assert.LessOrEqual(t, end-start+1, MaxVisiblePages)
		})
	}
}

func TestProgress(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	duration := func(d int) *int { return &d }

	t.Run("halfway through", func(t *testing.T) {
		createdAt := now.AddDate(0, 0, -5)
		assert.InDelta(t, 0.5, Progress(createdAt, duration(10), now), 1e-9)
	})

	t.Run("unbounded duration always reports complete", func(t *testing.T) {
		createdAt := now.AddDate(0, 0, -1)
		assert.Equal(t, 1.0, Progress(createdAt, duration(0), now))
	})

	t.Run("unset duration always reports complete", func(t *testing.T) {
		createdAt := now.AddDate(0, 0, -1)
		assert.Equal(t, 1.0, Progress(createdAt, nil, now))
	})

	t.Run("elapsed beyond duration clamps to one", func(t *testing.T) {
		createdAt := now.AddDate(0, 0, -30)
		assert.Equal(t, 1.0, Progress(createdAt, duration(10), now))
	})

	t.Run("creation in the future clamps to zero", func(t *testing.T) {
		createdAt := now.AddDate(0, 0, 2)
		assert.Equal(t, 0.0, Progress(createdAt, duration(10), now))
	})

	t.Run("fractional days count", func(t *testing.T) {
		createdAt := now.Add(-36 * time.Hour)
		assert.InDelta(t, 0.15, Progress(createdAt, duration(10), now), 1e-9)
	})
}

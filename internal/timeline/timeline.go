// Package timeline derives client-visible navigation state from an update
// list. Everything here is pure and recomputed per request; nothing is
// persisted.
package timeline

import (
	"time"
)

// MaxVisiblePages caps the sliding pagination window.
const MaxVisiblePages = 8

// ActiveIndex returns the default active update index: the most recent
// entry, or 0 for an empty timeline.
func ActiveIndex(total int) int {
	if total <= 0 {
		return 0
	}
	return total - 1
}

// Window computes the 1-based sliding page window for a timeline of total
// pages with the given active index. The window holds at most
// MaxVisiblePages pages and keeps the active page roughly centered unless it
// sits near either boundary.
func Window(total, activeIndex int) (start, end int) {
	if total <= 0 {
		return 1, 1
	}

	current := activeIndex + 1
	start = current - 3
	if start < 1 {
		start = 1
	}
	if start+MaxVisiblePages-1 > total {
		start = total - MaxVisiblePages + 1
		if start < 1 {
			start = 1
		}
	}

	end = start + MaxVisiblePages - 1
	if end > total {
		end = total
	}

	return start, end
}

// Progress returns the time-based completion ratio in [0, 1], derived from
// the creation time and duration in days. A nil or zero duration means the
// challenge is unbounded and always reports 1. This is distinct from the
// author-reported progress percentage stored on the challenge.
func Progress(createdAt time.Time, duration *int, now time.Time) float64 {
	if duration == nil || *duration <= 0 {
		return 1
	}

	elapsedDays := now.Sub(createdAt).Hours() / 24
	ratio := elapsedDays / float64(*duration)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

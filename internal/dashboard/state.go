// Package dashboard models the dashboard view state as an explicit immutable
// snapshot updated by a pure reducer, so the refresh flow is testable without
// any UI attached.
package dashboard

import (
	"time"

	"trackr/internal/core"
	"trackr/internal/services"
)

// Snapshot is one immutable view of the dashboard.
type Snapshot struct {
	Summary   core.SummaryTable
	Feed      []core.Transaction
	Loading   bool
	Err       string
	FetchedAt time.Time
	Stale     bool
}

// CurrentSummary selects the totals for tf, falling back to the total window.
func (s Snapshot) CurrentSummary(tf core.Timeframe) core.Summary {
	return s.Summary.ForTimeframe(tf)
}

// Event is a state transition input for Reduce.
type Event interface {
	apply(Snapshot) Snapshot
}

// RefreshStarted marks the snapshot as loading and clears a previous error.
type RefreshStarted struct{}

func (RefreshStarted) apply(s Snapshot) Snapshot {
	s.Loading = true
	s.Err = ""
	return s
}

// RefreshSucceeded replaces the snapshot with a fresh consistent result.
type RefreshSucceeded struct {
	Result services.Result
}

func (e RefreshSucceeded) apply(Snapshot) Snapshot {
	return Snapshot{
		Summary:   e.Result.Summary,
		Feed:      e.Result.Feed,
		FetchedAt: e.Result.FetchedAt,
	}
}

// RefreshFailed records the error and keeps the last good summary and feed in
// place; the view degrades to stale data instead of blanking.
type RefreshFailed struct {
	Message string
}

func (e RefreshFailed) apply(s Snapshot) Snapshot {
	s.Loading = false
	s.Err = e.Message
	if !s.FetchedAt.IsZero() {
		s.Stale = true
	}
	return s
}

// Reduce applies one event to the snapshot and returns the next state. The
// input snapshot is never mutated.
func Reduce(s Snapshot, e Event) Snapshot {
	if e == nil {
		return s
	}
	return e.apply(s)
}

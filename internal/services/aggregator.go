package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"trackr/internal/core"
	"trackr/internal/session"

	"golang.org/x/sync/errgroup"
)

// Result is one consistent dashboard read: the summary table and the merged
// reverse-chronological feed, produced together or not at all.
type Result struct {
	Summary   core.SummaryTable  `json:"summary"`
	Feed      []core.Transaction `json:"feed"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Aggregator fetches the dashboard data set: summary by timeframe plus the
// expense and income collections, issued concurrently and joined. Successful
// results are cached locally so callers can fall back to stale data when a
// later refresh fails.
type Aggregator struct {
	summaries    SummaryReader
	transactions TransactionLister
	store        DashboardCache
	now          func() time.Time
}

// NewAggregator creates an aggregator. store may be nil to disable the
// last-good cache.
func NewAggregator(summaries SummaryReader, transactions TransactionLister, store DashboardCache) *Aggregator {
	return &Aggregator{
		summaries:    summaries,
		transactions: transactions,
		store:        store,
		now:          time.Now,
	}
}

// Refresh issues the three fetches concurrently and merges the outcome.
// Failure of any one fetch aborts the whole refresh; no partial result is
// ever returned. Latency is bounded by the slowest single call.
func (a *Aggregator) Refresh(ctx context.Context, sess *session.Session) (Result, error) {
	var (
		summary  core.SummaryTable
		expenses []core.Transaction
		incomes  []core.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := a.summaries.GetSummary(gctx, sess.Token)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		summary = s
		return nil
	})
	g.Go(func() error {
		list, err := a.transactions.ListTransactions(gctx, sess.Token, core.Expense)
		if err != nil {
			return fmt.Errorf("expenses: %w", err)
		}
		expenses = list
		return nil
	})
	g.Go(func() error {
		list, err := a.transactions.ListTransactions(gctx, sess.Token, core.Income)
		if err != nil {
			return fmt.Errorf("incomes: %w", err)
		}
		incomes = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, &FetchError{err: err}
	}

	res := Result{
		Summary:   summary,
		Feed:      core.BuildFeed(expenses, incomes),
		FetchedAt: a.now(),
	}
	a.saveLastGood(ctx, res)
	return res, nil
}

// LastGood returns the most recent successfully fetched result from the local
// cache, if one exists.
func (a *Aggregator) LastGood(ctx context.Context) (Result, bool) {
	if a.store == nil {
		return Result{}, false
	}
	payload, fetchedAt, err := a.store.LoadDashboard(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load cached dashboard", "error", err)
		return Result{}, false
	}
	if len(payload) == 0 {
		return Result{}, false
	}
	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		slog.WarnContext(ctx, "Failed to decode cached dashboard", "error", err)
		return Result{}, false
	}
	res.FetchedAt = fetchedAt
	return res, true
}

// saveLastGood is best effort: a cache write failure never fails the refresh.
func (a *Aggregator) saveLastGood(ctx context.Context, res Result) {
	if a.store == nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		slog.WarnContext(ctx, "Failed to encode dashboard for cache", "error", err)
		return
	}
	if err := a.store.SaveDashboard(ctx, payload, res.FetchedAt); err != nil {
		slog.WarnContext(ctx, "Failed to cache dashboard", "error", err)
	}
}

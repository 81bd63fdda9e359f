package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"trackr/internal/core"
	"trackr/internal/dashboard"
	"trackr/internal/session"
)

func formatAmount(a core.Amount) string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}

func printDashboard(w io.Writer, sess *session.Session, snap dashboard.Snapshot, tf core.Timeframe, limit int) {
	fmt.Fprintf(w, "Dashboard for %s (%s)\n", sess.User.DisplayName(), tf)
	if snap.Stale {
		fmt.Fprintf(w, "(showing cached data from %s: %s)\n",
			snap.FetchedAt.Local().Format("2006-01-02 15:04"), snap.Err)
	}

	summary := snap.CurrentSummary(tf)
	fmt.Fprintf(w, "\n  Income:  %s\n  Expense: %s\n  Balance: %s\n\n",
		formatAmount(summary.Income), formatAmount(summary.Expense), formatAmount(summary.Balance))

	if len(snap.Feed) == 0 {
		fmt.Fprintln(w, "No transactions yet.")
		return
	}

	feed := snap.Feed
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tKIND\tAMOUNT\tCATEGORY\tDESCRIPTION\tID")
	for _, t := range feed {
		category := t.CategoryName
		if category == "" {
			category = string(t.CategoryID)
		}
		sign := "-"
		if t.Kind == core.Income {
			sign = "+"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s%s\t%s\t%s\t%s\n",
			t.Date.Local().Format("2006-01-02"), t.Kind, sign, formatAmount(t.Amount),
			category, t.Description, t.ID)
	}
	tw.Flush()
}

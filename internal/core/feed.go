package core

import "sort"

// BuildFeed merges expense and income records into one reverse-chronological
// feed. Each record is tagged with its originating kind since the per-kind
// sub-resources do not carry it. The sort is stable: records with equal dates
// keep their merge order (expenses before incomes).
func BuildFeed(expenses, incomes []Transaction) []Transaction {
	feed := make([]Transaction, 0, len(expenses)+len(incomes))
	for _, t := range expenses {
		t.Kind = Expense
		feed = append(feed, t)
	}
	for _, t := range incomes {
		t.Kind = Income
		feed = append(feed, t)
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date.Time)
	})
	return feed
}

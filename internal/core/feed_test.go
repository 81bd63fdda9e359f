package core

import (
	"testing"
	"time"
)

func tx(id string, date time.Time) Transaction {
	return Transaction{ID: ID(id), Date: When{Time: date}}
}

func TestBuildFeedSortsDescending(t *testing.T) {
	expenses := []Transaction{
		tx("e1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	incomes := []Transaction{
		tx("i1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
	}

	feed := BuildFeed(expenses, incomes)
	if len(feed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(feed))
	}
	if feed[0].ID != "i1" || feed[0].Kind != Income {
		t.Fatalf("expected income first, got %+v", feed[0])
	}
	if feed[1].ID != "e1" || feed[1].Kind != Expense {
		t.Fatalf("expected expense second, got %+v", feed[1])
	}
}

func TestBuildFeedTagsKinds(t *testing.T) {
	now := time.Now()
	feed := BuildFeed(
		[]Transaction{tx("e1", now), tx("e2", now.Add(-time.Hour))},
		[]Transaction{tx("i1", now.Add(-2 * time.Hour))},
	)
	for _, item := range feed {
		switch item.ID {
		case "e1", "e2":
			if item.Kind != Expense {
				t.Fatalf("%s should be tagged expense, got %s", item.ID, item.Kind)
			}
		case "i1":
			if item.Kind != Income {
				t.Fatalf("%s should be tagged income, got %s", item.ID, item.Kind)
			}
		}
	}
}

func TestBuildFeedStableOnEqualDates(t *testing.T) {
	same := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	expenses := []Transaction{tx("e1", same), tx("e2", same)}
	incomes := []Transaction{tx("i1", same)}

	// Equal dates keep merge order: expenses first, in input order.
	feed := BuildFeed(expenses, incomes)
	want := []ID{"e1", "e2", "i1"}
	for i, id := range want {
		if feed[i].ID != id {
			t.Fatalf("position %d: got %s want %s", i, feed[i].ID, id)
		}
	}
}

func TestBuildFeedEmpty(t *testing.T) {
	if feed := BuildFeed(nil, nil); len(feed) != 0 {
		t.Fatalf("expected empty feed, got %d entries", len(feed))
	}
}

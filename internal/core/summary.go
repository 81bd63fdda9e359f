package core

const (
	Today Timeframe = "today"
	Week  Timeframe = "week"
	Month Timeframe = "month"
	Year  Timeframe = "year"
	Total Timeframe = "total"
)

type (
	// Timeframe is a summary aggregation window.
	Timeframe string

	// Summary holds the backend-computed totals for one timeframe.
	// Income and expense are non-negative; balance may be negative.
	Summary struct {
		Income  Amount `json:"income"`
		Expense Amount `json:"expense"`
		Balance Amount `json:"balance"`
	}

	// SummaryTable maps timeframes to their totals. It is read-only on the
	// client; the remote service owns the values.
	SummaryTable map[Timeframe]Summary
)

// Timeframes lists all windows in display order.
func Timeframes() []Timeframe {
	return []Timeframe{Today, Week, Month, Year, Total}
}

func (tf Timeframe) Valid() bool {
	switch tf {
	case Today, Week, Month, Year, Total:
		return true
	}
	return false
}

// ForTimeframe selects the entry for tf, falling back to the total entry
// when the key is absent.
func (t SummaryTable) ForTimeframe(tf Timeframe) Summary {
	if s, ok := t[tf]; ok {
		return s
	}
	return t[Total]
}

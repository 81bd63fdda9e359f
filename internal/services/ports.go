package services

import (
	"context"
	"time"

	"trackr/internal/api"
	"trackr/internal/core"
)

// Ports onto the remote API client. Split per concern so tests and callers
// depend only on what they use; *api.Client satisfies all of them.
type (
	SummaryReader interface {
		GetSummary(ctx context.Context, token string) (core.SummaryTable, error)
	}

	TransactionLister interface {
		ListTransactions(ctx context.Context, token string, kind core.Kind) ([]core.Transaction, error)
	}

	CategoryLister interface {
		ListCategories(ctx context.Context, token string) ([]core.Category, error)
	}

	CategoryCreator interface {
		CreateCategory(ctx context.Context, token, name string, kind core.Kind) (core.Category, error)
	}

	TransactionWriter interface {
		CreateTransaction(ctx context.Context, token string, kind core.Kind, payload api.TransactionPayload) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, token string, kind core.Kind, id core.ID, payload api.TransactionPayload) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, token string, kind core.Kind, id core.ID) error
	}

	// DashboardCache stores the last good dashboard payload locally so a
	// failed refresh can fall back to stale data.
	DashboardCache interface {
		SaveDashboard(ctx context.Context, payload []byte, fetchedAt time.Time) error
		LoadDashboard(ctx context.Context) ([]byte, time.Time, error)
	}
)

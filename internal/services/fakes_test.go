package services

import (
	"context"
	"time"

	"trackr/internal/api"
	"trackr/internal/core"
	"trackr/internal/session"
)

// fakeBackend stands in for the remote API in service tests. Every port
// method records its calls so tests can assert dispatch and call counts.
type fakeBackend struct {
	categories        []core.Category
	listCategoryCalls int
	listCategoryErr   error

	nextCategory      core.Category
	createdCategories []string
	createCategoryErr error

	createdPayloads []api.TransactionPayload
	createErr       error
	updatedID       core.ID
	updatedPayloads []api.TransactionPayload
	updateErr       error
	deleted         []core.ID
	deletedKind     core.Kind
	deleteErr       error

	summary    core.SummaryTable
	summaryErr error
	expenses   []core.Transaction
	incomes    []core.Transaction
	listTxErr  map[core.Kind]error
}

func (f *fakeBackend) ListCategories(ctx context.Context, token string) ([]core.Category, error) {
	f.listCategoryCalls++
	if f.listCategoryErr != nil {
		return nil, f.listCategoryErr
	}
	return f.categories, nil
}

func (f *fakeBackend) CreateCategory(ctx context.Context, token, name string, kind core.Kind) (core.Category, error) {
	f.createdCategories = append(f.createdCategories, name)
	if f.createCategoryErr != nil {
		return core.Category{}, f.createCategoryErr
	}
	return f.nextCategory, nil
}

func (f *fakeBackend) CreateTransaction(ctx context.Context, token string, kind core.Kind, payload api.TransactionPayload) (core.Transaction, error) {
	f.createdPayloads = append(f.createdPayloads, payload)
	if f.createErr != nil {
		return core.Transaction{}, f.createErr
	}
	return core.Transaction{ID: "new-1", Kind: kind, Amount: payload.Amount}, nil
}

func (f *fakeBackend) UpdateTransaction(ctx context.Context, token string, kind core.Kind, id core.ID, payload api.TransactionPayload) (core.Transaction, error) {
	f.updatedID = id
	f.updatedPayloads = append(f.updatedPayloads, payload)
	if f.updateErr != nil {
		return core.Transaction{}, f.updateErr
	}
	return core.Transaction{ID: id, Kind: kind, Amount: payload.Amount}, nil
}

func (f *fakeBackend) DeleteTransaction(ctx context.Context, token string, kind core.Kind, id core.ID) error {
	f.deleted = append(f.deleted, id)
	f.deletedKind = kind
	return f.deleteErr
}

func (f *fakeBackend) GetSummary(ctx context.Context, token string) (core.SummaryTable, error) {
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeBackend) ListTransactions(ctx context.Context, token string, kind core.Kind) ([]core.Transaction, error) {
	if err := f.listTxErr[kind]; err != nil {
		return nil, err
	}
	if kind == core.Income {
		return f.incomes, nil
	}
	return f.expenses, nil
}

// memCache is an in-memory DashboardCache.
type memCache struct {
	payload   []byte
	fetchedAt time.Time
	saveErr   error
	loadErr   error
}

func (m *memCache) SaveDashboard(ctx context.Context, payload []byte, fetchedAt time.Time) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.payload = payload
	m.fetchedAt = fetchedAt
	return nil
}

func (m *memCache) LoadDashboard(ctx context.Context) ([]byte, time.Time, error) {
	if m.loadErr != nil {
		return nil, time.Time{}, m.loadErr
	}
	return m.payload, m.fetchedAt, nil
}

func testSession() *session.Session {
	return &session.Session{Token: "tok", User: core.User{Username: "mario"}}
}

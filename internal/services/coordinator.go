package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"trackr/internal/api"
	"trackr/internal/core"
	"trackr/internal/session"
)

const formDateLayout = "2006-01-02"

// Form is the transient edit state for one transaction. An empty ID means the
// record does not exist yet. Date holds the form's date field: a calendar day
// (YYYY-MM-DD) for new records, or whatever the record carried for edits.
type Form struct {
	ID            core.ID
	Kind          core.Kind
	Amount        core.Amount
	Description   string
	Date          string
	CategoryID    core.ID
	CategoryInput string
}

func (f Form) Validate() error {
	if err := f.Kind.Validate(); err != nil {
		return err
	}
	if err := f.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(f.Description) == "" {
		return core.ErrEmptyDescription
	}
	if strings.TrimSpace(f.Date) == "" {
		return core.ErrEmptyDate
	}
	if f.ID.IsZero() {
		// New records need a parseable calendar day for the date policy.
		if _, err := time.Parse(formDateLayout, f.Date); err != nil {
			return errors.New("invalid date: want YYYY-MM-DD")
		}
	}
	return nil
}

// RefreshFunc is the signal sent after a successful write so the dashboard
// re-fetches.
type RefreshFunc func(ctx context.Context)

// Coordinator orchestrates transaction creates, updates and deletes against
// the remote API: category resolution first, then the date policy, then the
// dispatch to the sub-resource matching the kind.
type Coordinator struct {
	resolver   *Resolver
	categories CategoryLister
	writer     TransactionWriter
	notify     RefreshFunc
	now        func() time.Time
}

func NewCoordinator(resolver *Resolver, categories CategoryLister, writer TransactionWriter, notify RefreshFunc) *Coordinator {
	return &Coordinator{
		resolver:   resolver,
		categories: categories,
		writer:     writer,
		notify:     notify,
		now:        time.Now,
	}
}

// Submit validates the form, resolves its category and dispatches a create or
// partial update. On success the refresh signal fires and the saved record is
// returned; the caller closes the editing surface. On failure the error
// carries a user-facing message and the caller keeps the form open.
func (c *Coordinator) Submit(ctx context.Context, sess *session.Session, form Form) (core.Transaction, error) {
	if err := form.Validate(); err != nil {
		return core.Transaction{}, &SubmissionError{err: err}
	}

	// A failed category listing degrades to an empty known set rather than
	// blocking the submission; resolution may then create a category that
	// already exists server-side, which the backend rejects.
	known, err := c.categories.ListCategories(ctx, sess.Token)
	if err != nil {
		slog.WarnContext(ctx, "Failed to list categories before submit", "error", err)
		known = nil
	}

	categoryID, err := c.resolver.Resolve(ctx, sess, form.CategoryID, form.CategoryInput, form.Kind, known)
	if err != nil {
		// Resolution failures abort outright; no transaction may reference
		// an unresolved category.
		var creation *CategoryCreationError
		if errors.As(err, &creation) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, &SubmissionError{err: err}
	}

	payload := api.TransactionPayload{
		Amount:      form.Amount,
		Description: strings.TrimSpace(form.Description),
		Date:        c.outboundDate(form),
		Category:    categoryID,
		Type:        form.Kind,
	}

	var saved core.Transaction
	if form.ID.IsZero() {
		saved, err = c.writer.CreateTransaction(ctx, sess.Token, form.Kind, payload)
	} else {
		saved, err = c.writer.UpdateTransaction(ctx, sess.Token, form.Kind, form.ID, payload)
	}
	if err != nil {
		return core.Transaction{}, &SubmissionError{err: err}
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", saved.ID, "kind", saved.Kind, "new", form.ID.IsZero())
	c.signalRefresh(ctx)
	return saved, nil
}

// Delete removes the record from the sub-resource matching its kind. The
// caller is responsible for user confirmation. Exactly one refresh signal
// fires on success, none on failure.
func (c *Coordinator) Delete(ctx context.Context, sess *session.Session, id core.ID, kind core.Kind) error {
	if id.IsZero() {
		return &DeletionError{err: errors.New("missing transaction id")}
	}
	if err := kind.Validate(); err != nil {
		return &DeletionError{err: err}
	}
	if err := c.writer.DeleteTransaction(ctx, sess.Token, kind, id); err != nil {
		return &DeletionError{err: err}
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id, "kind", kind)
	c.signalRefresh(ctx)
	return nil
}

// outboundDate applies the timestamp policy:
//   - new record dated today: the exact current timestamp, so same-day
//     entries keep their creation order;
//   - new record dated another day: that calendar day combined with the
//     current time-of-day, not midnight;
//   - edit: the form's date verbatim.
func (c *Coordinator) outboundDate(form Form) string {
	if !form.ID.IsZero() {
		return form.Date
	}
	now := c.now()
	if form.Date == now.Format(formDateLayout) {
		return now.UTC().Format(time.RFC3339)
	}
	day, err := time.ParseInLocation(formDateLayout, form.Date, now.Location())
	if err != nil {
		return form.Date
	}
	stamped := time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
	return stamped.UTC().Format(time.RFC3339)
}

func (c *Coordinator) signalRefresh(ctx context.Context) {
	if c.notify != nil {
		c.notify(ctx)
	}
}

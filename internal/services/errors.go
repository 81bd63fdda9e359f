package services

import "trackr/internal/api"

// Fallback messages shown when the backend did not supply a detail string.
const (
	categoryCreationFallback = "Failed to create category. Please try a different name or select from the list."
	submissionFallback       = "Failed to save transaction. Please check your inputs."
	deletionFallback         = "Failed to delete transaction."
	fetchFallback            = "Failed to load dashboard data."
)

// CategoryCreationError means a new category could not be created; the
// transaction submission must not proceed.
type CategoryCreationError struct {
	err error
}

func (e *CategoryCreationError) Error() string       { return "create category: " + e.err.Error() }
func (e *CategoryCreationError) Unwrap() error       { return e.err }
func (e *CategoryCreationError) UserMessage() string { return userMessage(e.err, categoryCreationFallback) }

// SubmissionError covers failed transaction creates and updates.
type SubmissionError struct {
	err error
}

func (e *SubmissionError) Error() string       { return "submit transaction: " + e.err.Error() }
func (e *SubmissionError) Unwrap() error       { return e.err }
func (e *SubmissionError) UserMessage() string { return userMessage(e.err, submissionFallback) }

// DeletionError covers failed transaction deletes.
type DeletionError struct {
	err error
}

func (e *DeletionError) Error() string       { return "delete transaction: " + e.err.Error() }
func (e *DeletionError) Unwrap() error       { return e.err }
func (e *DeletionError) UserMessage() string { return userMessage(e.err, deletionFallback) }

// FetchError covers any failed dashboard fetch; no partial result exists.
type FetchError struct {
	err error
}

func (e *FetchError) Error() string       { return "refresh dashboard: " + e.err.Error() }
func (e *FetchError) Unwrap() error       { return e.err }
func (e *FetchError) UserMessage() string { return userMessage(e.err, fetchFallback) }

// userMessage prefers the server-supplied detail over the generic fallback.
func userMessage(err error, fallback string) string {
	if detail := api.Detail(err); detail != "" {
		return detail
	}
	return fallback
}

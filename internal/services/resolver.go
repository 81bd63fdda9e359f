package services

import (
	"context"
	"strings"

	"trackr/internal/core"
	"trackr/internal/session"
)

// Resolver turns the free-text category field of the edit form into a
// category id, reusing an existing category where possible and creating a new
// one otherwise.
type Resolver struct {
	categories CategoryCreator
}

func NewResolver(categories CategoryCreator) *Resolver {
	return &Resolver{categories: categories}
}

// Resolve determines the category id to submit for a transaction of the given
// kind. selected is the id from a prior list selection, empty when the user
// only typed a name.
//
// Order of precedence:
//  1. the selection still names a category whose name equals the input
//     exactly: reuse it, no network call;
//  2. a known category of the same kind matches the input case-insensitively:
//     reuse its id (never create a duplicate);
//  3. otherwise create a new category remotely.
//
// A created category is not rolled back if the transaction submission fails
// afterwards; the orphan is accepted.
func (r *Resolver) Resolve(ctx context.Context, sess *session.Session, selected core.ID, input string, kind core.Kind, known []core.Category) (core.ID, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		if !selected.IsZero() {
			return selected, nil
		}
		return "", core.ErrEmptyCategory
	}
	if err := kind.Validate(); err != nil {
		return "", err
	}

	if !selected.IsZero() {
		for _, c := range known {
			if c.ID == selected && c.Name == input {
				return selected, nil
			}
		}
	}

	for _, c := range known {
		if c.Kind == kind && c.MatchesName(input) {
			return c.ID, nil
		}
	}

	created, err := r.categories.CreateCategory(ctx, sess.Token, input, kind)
	if err != nil {
		return "", &CategoryCreationError{err: err}
	}
	return created.ID, nil
}

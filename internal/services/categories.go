package services

import (
	"context"
	"time"

	"trackr/internal/cache"
	"trackr/internal/core"
	"trackr/internal/session"
)

const (
	categoryCacheKey = "categories"
	categoryCacheTTL = time.Minute
)

// CategoryService fronts the remote category collection with a short-lived
// cache and invalidates it on writes. It satisfies both CategoryLister and
// CategoryCreator, so the resolver and coordinator share one view.
type CategoryService struct {
	lister  CategoryLister
	creator CategoryCreator
	cached  *cache.TTL[[]core.Category]
}

func NewCategoryService(lister CategoryLister, creator CategoryCreator) *CategoryService {
	return &CategoryService{
		lister:  lister,
		creator: creator,
		cached:  cache.NewTTL[[]core.Category](categoryCacheTTL),
	}
}

func (s *CategoryService) ListCategories(ctx context.Context, token string) ([]core.Category, error) {
	if cats, ok := s.cached.Get(categoryCacheKey); ok {
		return cats, nil
	}
	cats, err := s.lister.ListCategories(ctx, token)
	if err != nil {
		return nil, err
	}
	s.cached.Set(categoryCacheKey, cats)
	return cats, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, token, name string, kind core.Kind) (core.Category, error) {
	created, err := s.creator.CreateCategory(ctx, token, name, kind)
	if err != nil {
		return core.Category{}, err
	}
	s.cached.Delete(categoryCacheKey)
	return created, nil
}

// Suggestions lists category names to offer for the kind: backend categories
// first, then the built-in defaults not already covered.
func (s *CategoryService) Suggestions(ctx context.Context, sess *session.Session, kind core.Kind) ([]string, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	known, err := s.ListCategories(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return core.SuggestedNames(kind, known), nil
}

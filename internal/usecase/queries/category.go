package queries

import (
	"context"

	"equipment-reservation/internal/pkg/errs"
)

type CategoryReadStore interface {
	List(ctx context.Context) ([]*CategoryView, error)
}

type CategoryQueries interface {
	List(ctx context.Context) ([]*CategoryView, error)
}

type categoryQueriesImpl struct {
	readStore CategoryReadStore
}

func NewCategoryQueries(readStore CategoryReadStore) CategoryQueries {
	return &categoryQueriesImpl{readStore: readStore}
}

func (q *categoryQueriesImpl) List(ctx context.Context) ([]*CategoryView, error) {
	items, err := q.readStore.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list categories")
	}
	return items, nil
}

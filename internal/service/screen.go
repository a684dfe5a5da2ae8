package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/query"
	"github.com/noah-isme/campus-attendance-gateway/internal/view"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

// selectionFor keeps the raw query values that name a schema field.
func selectionFor[T any](schema *query.Schema[T], raw map[string]string) query.Selection {
	sel := query.Selection{}
	for _, name := range schema.Names() {
		if v, ok := raw[name]; ok && v != "" {
			sel[name] = v
		}
	}
	return sel
}

// mountView builds a request-scoped view, applies the caller's filters and loads it.
func mountView[T any](ctx context.Context, name string, schema *query.Schema[T], load view.Loader[T], raw map[string]string, logger *zap.Logger, failure string) (*view.ListView[T], error) {
	v := view.New(name, schema, load, logger)
	if err := v.ApplySelection(selectionFor(schema, raw)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter")
	}
	if err := v.Refresh(ctx); err != nil {
		return nil, fromUpstream(err, failure)
	}
	return v, nil
}

// snapshot renders the view's current state.
func snapshot[T any](v *view.ListView[T]) *dto.Screen[T] {
	items := v.Visible()
	if items == nil {
		items = []T{}
	}
	return &dto.Screen[T]{
		Items:     items,
		Facets:    v.Facets(),
		Filters:   v.Selection(),
		Total:     len(v.Records()),
		Matched:   len(items),
		FetchedAt: v.FetchedAt(),
	}
}

func loadScreen[T any](ctx context.Context, name string, schema *query.Schema[T], load view.Loader[T], raw map[string]string, logger *zap.Logger, failure string) (*dto.Screen[T], error) {
	v, err := mountView(ctx, name, schema, load, raw, logger, failure)
	if err != nil {
		return nil, err
	}
	defer v.Close()
	return snapshot(v), nil
}

// deleteAndReload removes id through remove, then returns the re-fetched screen.
func deleteAndReload[T any](ctx context.Context, name string, schema *query.Schema[T], load view.Loader[T], remove view.Remover, id string, raw map[string]string, logger *zap.Logger, failure string) (*dto.Screen[T], error) {
	v := view.New(name, schema, load, logger)
	defer v.Close()
	if err := v.ApplySelection(selectionFor(schema, raw)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter")
	}
	removed := false
	err := v.Delete(ctx, id, func(ctx context.Context, id string) error {
		if err := remove(ctx, id); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		if removed {
			return nil, fromUpstream(err, failure)
		}
		return nil, fromUpstream(err, "failed to delete "+name)
	}
	return snapshot(v), nil
}

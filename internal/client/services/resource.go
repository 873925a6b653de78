package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// resource is a REST collection under a fixed path, e.g. /exams/admin/programs/.
// Item paths are path + "{id}/".
type resource[T any] struct {
	api  API
	path string
}

func (r resource[T]) item(id int64, action ...string) string {
	p := r.path + strconv.FormatInt(id, 10) + "/"
	for _, a := range action {
		p += a + "/"
	}
	return p
}

func (r resource[T]) list(ctx context.Context, q url.Values) ([]T, error) {
	var out []T
	if err := r.api.Get(ctx, r.path, q, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.path, err)
	}
	return out, nil
}

func (r resource[T]) get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.api.Get(ctx, r.item(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get %s: %w", r.item(id), err)
	}
	return &out, nil
}

func (r resource[T]) create(ctx context.Context, in any) (*T, error) {
	var out T
	if err := r.api.Post(ctx, r.path, in, &out); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.path, err)
	}
	return &out, nil
}

// update sends a partial update.
func (r resource[T]) update(ctx context.Context, id int64, in any) (*T, error) {
	var out T
	if err := r.api.Patch(ctx, r.item(id), in, &out); err != nil {
		return nil, fmt.Errorf("update %s: %w", r.item(id), err)
	}
	return &out, nil
}

func (r resource[T]) delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, r.item(id)); err != nil {
		return fmt.Errorf("delete %s: %w", r.item(id), err)
	}
	return nil
}

func (r resource[T]) action(ctx context.Context, id int64, name string) error {
	if err := r.api.Post(ctx, r.item(id, name), nil, nil); err != nil {
		return fmt.Errorf("%s %s: %w", name, r.item(id), err)
	}
	return nil
}

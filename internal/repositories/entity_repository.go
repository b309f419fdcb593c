package repositories

import (
	"context"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"
)

// EntityRepository reads and mutates one CMS entity collection. T is the
// entity, I the typed mutation input.
type EntityRepository[T models.Entity, I any] struct {
	Client GraphQLClient
	Desc   Descriptor
}

func NewEntityRepository[T models.Entity, I any](c GraphQLClient, d Descriptor) EntityRepository[T, I] {
	return EntityRepository[T, I]{Client: c, Desc: d}
}

func (r EntityRepository[T, I]) FetchAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.Client.Do(ctx, "fetch "+r.Desc.Collection, r.Desc.fetchAllQuery(), nil, r.Desc.Collection, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// FetchDetail reads one entity by key. A null detail payload is a
// NotFoundError.
func (r EntityRepository[T, I]) FetchDetail(ctx context.Context, key string) (T, error) {
	var zero T
	var out *T
	vars := map[string]any{"input": map[string]any{r.Desc.DetailKey: key}}
	if err := r.Client.Do(ctx, "fetch "+r.Desc.Detail, r.Desc.detailQuery(), vars, r.Desc.Detail, &out); err != nil {
		return zero, err
	}
	if out == nil {
		return zero, domain.NotFoundError{Resource: r.Desc.Entity}
	}
	return *out, nil
}

func (r EntityRepository[T, I]) Create(ctx context.Context, in I) (T, error) {
	var out T
	err := r.Client.Do(ctx, r.Desc.Create, r.Desc.mutation(r.Desc.Create, r.Desc.Selection), map[string]any{"input": in}, r.Desc.Create, &out)
	return out, err
}

func (r EntityRepository[T, I]) Update(ctx context.Context, in I) (T, error) {
	var out T
	err := r.Client.Do(ctx, r.Desc.Update, r.Desc.mutation(r.Desc.Update, r.Desc.Selection), map[string]any{"input": in}, r.Desc.Update, &out)
	return out, err
}

// Delete removes one entity and returns the identifier the server deleted.
func (r EntityRepository[T, I]) Delete(ctx context.Context, id string) (string, error) {
	var out map[string]any
	vars := map[string]any{"input": map[string]any{r.Desc.IDField: id}}
	if err := r.Client.Do(ctx, r.Desc.Delete, r.Desc.mutation(r.Desc.Delete, r.Desc.IDField), vars, r.Desc.Delete, &out); err != nil {
		return "", err
	}
	deleted, _ := out[r.Desc.IDField].(string)
	if deleted == "" {
		deleted = id
	}
	return deleted, nil
}

// DeleteMany removes ids in one round-trip and returns the server's
// confirmation message.
func (r EntityRepository[T, I]) DeleteMany(ctx context.Context, ids []string) (string, error) {
	var msg string
	vars := map[string]any{"input": map[string]any{r.Desc.IDField + "s": ids}}
	if err := r.Client.Do(ctx, r.Desc.DeleteMany, r.Desc.mutation(r.Desc.DeleteMany, ""), vars, r.Desc.DeleteMany, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

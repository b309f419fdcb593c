package services

import (
	"context"

	"cmsadmin/internal/domain/models"
)

// Repository is the CMS surface a screen needs for one entity.
// repositories.EntityRepository satisfies it.
type Repository[T models.Entity, I any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	FetchDetail(ctx context.Context, key string) (T, error)
	Create(ctx context.Context, in I) (T, error)
	Update(ctx context.Context, in I) (T, error)
	Delete(ctx context.Context, id string) (string, error)
	DeleteMany(ctx context.Context, ids []string) (string, error)
}

package services

import (
	"context"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"
	"cmsadmin/internal/metrics"
	"cmsadmin/internal/notify"
)

// Loader fetches a whole collection once per screen activation.
type Loader[T models.Entity] struct {
	Entity string
	Fetch  func(ctx context.Context, key string) ([]T, error)
	// KeyRequired disables the loader while the lookup key is empty.
	KeyRequired bool
	// FailMessage is shown when the failure carries no CMS message.
	FailMessage string
	// NotFoundMessage, when set, replaces FailMessage for a NotFoundError.
	NotFoundMessage string
}

// Enabled reports whether a load should run for key.
func (l Loader[T]) Enabled(key string) bool {
	return !l.KeyRequired || key != ""
}

// Run performs the round-trip. It does not touch any screen state.
func (l Loader[T]) Run(ctx context.Context, key string) ([]T, error) {
	rows, err := l.Fetch(ctx, key)
	metrics.Fetches.WithLabelValues(l.Entity, metrics.Result(err)).Inc()
	return rows, err
}

// Apply folds a finished load into coll. A failure leaves coll unchanged and
// emits exactly one error notification; success is silent.
func (l Loader[T]) Apply(coll *Collection[T], n notify.Notifier, rows []T, err error) {
	if err != nil {
		fallback := l.FailMessage
		if l.NotFoundMessage != "" && domain.IsNotFound(err) {
			fallback = l.NotFoundMessage
		}
		n.Error(failureMessage(err, fallback))
		return
	}
	if rows == nil {
		rows = []T{}
	}
	coll.Replace(rows)
}

// failureMessage surfaces a CMS message verbatim and falls back to the
// action-specific text for everything else.
func failureMessage(err error, fallback string) string {
	if msg, ok := domain.RemoteMessage(err); ok && msg != "" {
		return msg
	}
	return fallback
}

package services

import (
	"context"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"
	"cmsadmin/internal/metrics"
	"cmsadmin/internal/notify"
	"cmsadmin/internal/table"
)

// commitFunc runs fn with the owning screen locked, or returns
// domain.ErrScreenClosed without running it.
type commitFunc func(fn func()) error

// Reconciler performs mutations against the CMS and folds the confirmed
// result into the screen's collection without re-fetching. Every failure
// leaves the collection and the view state untouched.
type Reconciler[T models.Entity, I any] struct {
	Entity string
	Repo   Repository[T, I]
	Caps   Capabilities
	Msg    Messages

	coll     *Collection[T]
	state    *table.State
	notifier notify.Notifier
	commit   commitFunc
}

func (r *Reconciler[T, I]) allow(op domain.Operation) error {
	if !r.Caps.Allows(op) {
		return domain.UnsupportedError{Entity: r.Entity, Op: string(op)}
	}
	return nil
}

func (r *Reconciler[T, I]) count(op domain.Operation, err error) {
	metrics.Mutations.WithLabelValues(r.Entity, string(op), metrics.Result(err)).Inc()
}

// Create submits in. The list is not appended to; the caller reloads it.
func (r *Reconciler[T, I]) Create(ctx context.Context, in I) (T, error) {
	var zero T
	if err := r.allow(domain.OpCreate); err != nil {
		return zero, err
	}
	created, err := r.Repo.Create(ctx, in)
	r.count(domain.OpCreate, err)
	if cerr := r.commit(func() {
		if err != nil {
			r.notifier.Error(failureMessage(err, r.Msg.CreateFailed))
			return
		}
		r.notifier.Success(r.Msg.Created)
	}); cerr != nil {
		return zero, cerr
	}
	return created, err
}

// Update submits in and replaces the edited row by id.
func (r *Reconciler[T, I]) Update(ctx context.Context, in I) (T, error) {
	var zero T
	if err := r.allow(domain.OpUpdate); err != nil {
		return zero, err
	}
	updated, err := r.Repo.Update(ctx, in)
	r.count(domain.OpUpdate, err)
	if cerr := r.commit(func() {
		if err != nil {
			r.notifier.Error(failureMessage(err, r.Msg.UpdateFailed))
			return
		}
		r.coll.ReplaceByID(updated)
		r.notifier.Success(r.Msg.Updated)
	}); cerr != nil {
		return zero, cerr
	}
	return updated, err
}

// Delete removes exactly the row the server deleted and drops it from the
// selection.
func (r *Reconciler[T, I]) Delete(ctx context.Context, id string) error {
	if err := r.allow(domain.OpDelete); err != nil {
		return err
	}
	if id == "" {
		return domain.ValidationError{Field: "id", Msg: "id is required"}
	}
	deleted, err := r.Repo.Delete(ctx, id)
	r.count(domain.OpDelete, err)
	if cerr := r.commit(func() {
		if err != nil {
			r.notifier.Error(failureMessage(err, r.Msg.DeleteFailed))
			return
		}
		r.coll.RemoveByID(deleted)
		r.state.Deselect(deleted)
		r.notifier.Success(r.Msg.Deleted)
	}); cerr != nil {
		return cerr
	}
	return err
}

// DeleteMany removes ids in one round-trip. Either every id leaves the
// collection and the selection is cleared, or nothing changes.
func (r *Reconciler[T, I]) DeleteMany(ctx context.Context, ids []string) (string, error) {
	if err := r.allow(domain.OpDeleteMany); err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", domain.ValidationError{Field: "ids", Msg: "select at least one row"}
	}
	msg, err := r.Repo.DeleteMany(ctx, ids)
	r.count(domain.OpDeleteMany, err)
	if cerr := r.commit(func() {
		if err != nil {
			r.notifier.Error(failureMessage(err, r.Msg.DeleteFailed))
			return
		}
		r.coll.RemoveIDs(ids)
		r.state.ClearSelection()
		if msg == "" {
			msg = r.Msg.Deleted
		}
		r.notifier.Success(msg)
	}); cerr != nil {
		return "", cerr
	}
	return msg, err
}

package repo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"candidate-tracker/internal/core/blob"
	"candidate-tracker/internal/domain"
)

type RecordRepo struct{ c *collection[domain.Record] }

func NewRecordRepo(s blob.Store, l *zap.Logger) *RecordRepo {
	return &RecordRepo{c: newCollection[domain.Record](s, blob.KeyCandidates, l)}
}

func (r *RecordRepo) List(ctx context.Context) ([]domain.Record, error) { return r.c.load(ctx) }

func (r *RecordRepo) Create(ctx context.Context, rec domain.Record) error {
	rec.Normalize()
	return r.c.mutate(ctx, func(rs []domain.Record) ([]domain.Record, bool, error) {
		return append(rs, rec), true, nil
	})
}

func (r *RecordRepo) Update(ctx context.Context, id string, patch domain.RecordPatch, now time.Time) (domain.Record, error) {
	var out domain.Record
	err := r.c.mutate(ctx, func(rs []domain.Record) ([]domain.Record, bool, error) {
		for i := range rs {
			if rs[i].ID != id {
				continue
			}
			next := rs[i]
			if err := patch.Apply(&next); err != nil {
				return nil, false, err
			}
			next.UpdatedAt = now
			rs[i] = next
			out = next
			return rs, true, nil
		}
		return nil, false, domain.ErrRecordNotFound
	})
	return out, err
}

func (r *RecordRepo) Delete(ctx context.Context, id string) error {
	return r.c.mutate(ctx, func(rs []domain.Record) ([]domain.Record, bool, error) {
		out := rs[:0]
		for _, x := range rs {
			if x.ID != id {
				out = append(out, x)
			}
		}
		return out, len(out) != len(rs), nil
	})
}

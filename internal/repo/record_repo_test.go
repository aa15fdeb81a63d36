package repo

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-tracker/internal/core/blob"
	"candidate-tracker/internal/domain"
)

func TestRecordRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewRecordRepo(blob.NewMemory(), nil)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Create(ctx, domain.Record{ID: "1", CandidateName: "A", Submissions: -3, MorningApplications: "maybe", CreatedAt: now}))
	require.NoError(t, r.Create(ctx, domain.Record{ID: "2", CandidateName: "B", Interviews: 2, CreatedAt: now}))

	rs, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, domain.Count(0), rs[0].Submissions)
	assert.Equal(t, domain.No, rs[0].MorningApplications)

	later := now.Add(time.Hour)
	subs := domain.Count(4)
	got, err := r.Update(ctx, "1", domain.RecordPatch{Submissions: &subs}, later)
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, domain.Count(4), got.Submissions)
	assert.Equal(t, now, got.CreatedAt)
	assert.Equal(t, later, got.UpdatedAt)

	_, err = r.Update(ctx, "missing", domain.RecordPatch{Submissions: &subs}, later)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	require.NoError(t, r.Delete(ctx, "missing"))
	rs, _ = r.List(ctx)
	assert.Len(t, rs, 2)

	require.NoError(t, r.Delete(ctx, "2"))
	rs, _ = r.List(ctx)
	require.Len(t, rs, 1)
	assert.Equal(t, "1", rs[0].ID)
}

func TestRecordRepoMalformedBlobIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := blob.NewMemory()
	require.NoError(t, s.Put(ctx, blob.KeyCandidates, []byte("{not json")))

	r := NewRecordRepo(s, nil)
	rs, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rs)

	require.NoError(t, r.Create(ctx, domain.Record{ID: "x", CandidateName: "A"}))
	rs, _ = r.List(ctx)
	assert.Len(t, rs, 1)
}

func TestRecordRepoNullBlob(t *testing.T) {
	ctx := context.Background()
	s := blob.NewMemory()
	require.NoError(t, s.Put(ctx, blob.KeyCandidates, []byte("null")))
	rs, err := NewRecordRepo(s, nil).List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rs)
	assert.Empty(t, rs)
}

// 随机 create/update/delete 序列后，结果与简单 map 模型一致
func TestRecordRepoRandomOps(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	r := NewRecordRepo(blob.NewMemory(), nil)
	model := map[string]domain.Count{}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 300; i++ {
		id := fmt.Sprint(rng.Intn(20))
		switch rng.Intn(3) {
		case 0:
			if _, ok := model[id]; ok {
				continue
			}
			n := domain.Count(rng.Intn(10))
			require.NoError(t, r.Create(ctx, domain.Record{ID: id, CandidateName: "c" + id, Submissions: n}))
			model[id] = n
		case 1:
			n := domain.Count(rng.Intn(10))
			_, err := r.Update(ctx, id, domain.RecordPatch{Submissions: &n}, now)
			if _, ok := model[id]; ok {
				require.NoError(t, err)
				model[id] = n
			} else {
				require.ErrorIs(t, err, domain.ErrRecordNotFound)
			}
		case 2:
			require.NoError(t, r.Delete(ctx, id))
			delete(model, id)
		}
	}

	rs, err := r.List(ctx)
	require.NoError(t, err)
	got := map[string]domain.Count{}
	ids := make([]string, 0, len(rs))
	for _, x := range rs {
		got[x.ID] = x.Submissions
		ids = append(ids, x.ID)
	}
	assert.Equal(t, model, got)
	sort.Strings(ids)
	for i := 1; i < len(ids); i++ {
		assert.NotEqual(t, ids[i-1], ids[i], "duplicate id")
	}
}

package blob

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowStore struct {
	*Memory
	gets    atomic.Int32
	release chan struct{}
}

func (s *slowStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.gets.Add(1)
	<-s.release
	return s.Memory.Get(ctx, key)
}

func TestCoalescedMergesConcurrentGets(t *testing.T) {
	ctx := context.Background()
	inner := &slowStore{Memory: NewMemory(), release: make(chan struct{})}
	require.NoError(t, inner.Put(ctx, KeyCandidates, []byte(`[]`)))
	c := NewCoalesced(inner)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.Get(ctx, KeyCandidates)
			assert.NoError(t, err)
			results[i] = b
		}()
	}
	require.Eventually(t, func() bool { return inner.gets.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	assert.Less(t, int(inner.gets.Load()), len(results))
	for _, b := range results {
		assert.Equal(t, []byte(`[]`), b)
	}
	results[0][0] = 'x'
	assert.Equal(t, []byte(`[]`), results[1])
}

func TestCoalescedPassThrough(t *testing.T) {
	ctx := context.Background()
	c := NewCoalesced(NewMemory())

	_, err := c.Get(ctx, KeyUsers)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Put(ctx, KeyUsers, []byte(`[1]`)))
	b, err := c.Get(ctx, KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), b)

	require.NoError(t, c.Delete(ctx, KeyUsers))
	_, err = c.Get(ctx, KeyUsers)
	assert.ErrorIs(t, err, ErrNotFound)
}

package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStores(t *testing.T) map[string]Store {
	t.Helper()
	b, err := NewBadger("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"badger": b,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, s := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, "guest:recipes", []byte(`{"a":1}`)))
			got, err := s.Get(ctx, "guest:recipes")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":1}`, string(got))

			require.NoError(t, s.Put(ctx, "guest:recipes", []byte(`{"a":2}`)))
			got, err = s.Get(ctx, "guest:recipes")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(got))

			require.NoError(t, s.Delete(ctx, "guest:recipes", "never-existed"))
			_, err = s.Get(ctx, "guest:recipes")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestStoreIncr(t *testing.T) {
	ctx := context.Background()

	for name, s := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			n, err := GetCount(ctx, s, "count:x")
			require.NoError(t, err)
			assert.Equal(t, int64(0), n)

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.Incr(ctx, "count:x", 1)
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			n, err = GetCount(ctx, s, "count:x")
			require.NoError(t, err)
			assert.Equal(t, int64(20), n)
		})
	}
}

func TestLocalNotifier(t *testing.T) {
	ctx := context.Background()
	n := NewLocalNotifier()

	var got []string
	unsubscribe, err := n.Subscribe(ctx, "updates", func(p string) { got = append(got, p) })
	require.NoError(t, err)

	require.NoError(t, n.Publish(ctx, "updates", "one"))
	require.NoError(t, n.Publish(ctx, "other", "ignored"))
	unsubscribe()
	require.NoError(t, n.Publish(ctx, "updates", "two"))

	assert.Equal(t, []string{"one"}, got)
}

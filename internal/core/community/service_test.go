package community

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ohmycook/internal/infrastructure/store"
)

func newService(t *testing.T) (*Service, *store.Memory, *store.LocalNotifier) {
	t.Helper()
	st := store.NewMemory()
	n := store.NewLocalNotifier()
	s, err := NewService(context.Background(), st, n)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, st, n
}

func names(view []PopularRecipe) []string {
	out := make([]string, len(view))
	for i, p := range view {
		out[i] = p.EnglishName
	}
	return out
}

func TestPopularSeedOrderWithoutCounts(t *testing.T) {
	s, _, _ := newService(t)
	view, err := s.Popular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Kimchi Jjigae", "Cream Pasta", "Ramen", "Kimchi Fried Rice", "Vegetable Stir-fry", "Bibimbap"}, names(view))
	for _, p := range view {
		assert.True(t, p.IsHydrated())
	}
}

func TestRecordSearchReordersAndInvalidates(t *testing.T) {
	s, _, _ := newService(t)
	ctx := context.Background()

	_, err := s.Popular(ctx)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = s.RecordSearch(ctx, "Bibimbap")
		require.NoError(t, err)
	}
	n, err := s.RecordSearch(ctx, "  ramen ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	view, err := s.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bibimbap", view[0].EnglishName)
	assert.Equal(t, int64(2), view[0].SearchCount)
	assert.Equal(t, "Ramen", view[1].EnglishName)
	assert.Equal(t, "Kimchi Jjigae", view[2].EnglishName)
}

func TestExternalChangeInvalidatesView(t *testing.T) {
	s, st, n := newService(t)
	ctx := context.Background()

	_, err := s.Popular(ctx)
	require.NoError(t, err)

	// 另一個實例寫入計數並發出通知
	_, err = st.Incr(ctx, countKey("Cream Pasta"), 5)
	require.NoError(t, err)
	stale, err := s.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Kimchi Jjigae", stale[0].EnglishName, "cached until notified")

	require.NoError(t, n.Publish(ctx, Channel, `{"recipe_name":"Cream Pasta","search_count":5}`))
	fresh, err := s.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cream Pasta", fresh[0].EnglishName)
}

func TestFind(t *testing.T) {
	s, _, _ := newService(t)
	r, ok := s.Find("라면 (Ramen)")
	require.True(t, ok)
	assert.Equal(t, "Ramen", r.EnglishName)

	_, ok = s.Find("kimchi jjigae")
	assert.True(t, ok)
	_, ok = s.Find("Pizza")
	assert.False(t, ok)
}

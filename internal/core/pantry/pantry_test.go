package pantry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ohmycook/internal/core/catalog"
	"ohmycook/internal/pkg/common"
)

type fakeExtractor struct {
	names []string
	err   error
	mime  string
}

func (f *fakeExtractor) ExtractIngredientsFromImage(_ context.Context, _ []byte, mimeType string) ([]string, error) {
	f.mime = mimeType
	return f.names, f.err
}

type fakeCapture struct{}

func (fakeCapture) Capture(context.Context) ([]byte, string, error) {
	return []byte{0xff}, "image/jpeg", nil
}

func TestCanonicalize(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: "대파", want: "Green Onion", ok: true},
		{raw: "  green   onion ", want: "Green Onion", ok: true},
		{raw: "zzzz not real", want: "Zzzz Not Real", ok: true},
		{raw: "DRAGON FRUIT", want: "Dragon Fruit", ok: true},
		{raw: "   ", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Canonicalize(cat, tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIngestReturnsOnlyNetNew(t *testing.T) {
	ex := &fakeExtractor{names: []string{"Egg", "egg", "대파", "zzzz not real", "Tofu", ""}}
	r := NewReceiptIngestion(ex, catalog.Default())

	existing := []common.Ingredient{{CanonicalKey: "Tofu", Quantity: "2"}}
	got, err := r.Ingest(context.Background(), []byte{1}, "image/png", existing)
	require.NoError(t, err)

	assert.Equal(t, []common.Ingredient{
		{CanonicalKey: "Egg", Quantity: DefaultQuantity},
		{CanonicalKey: "Green Onion", Quantity: DefaultQuantity},
		{CanonicalKey: "Zzzz Not Real", Quantity: DefaultQuantity},
	}, got)
	assert.Equal(t, "image/png", ex.mime)
	assert.Len(t, existing, 1, "existing set is not mutated")
}

func TestIngestPropagatesFailure(t *testing.T) {
	ex := &fakeExtractor{err: common.NewGenerationFailure("receipt", errors.New("bad gateway"))}
	_, err := NewReceiptIngestion(ex, catalog.Default()).Ingest(context.Background(), []byte{1}, "image/png", nil)
	assert.True(t, common.IsGenerationFailure(err))
}

func TestIngestCapture(t *testing.T) {
	ex := &fakeExtractor{names: []string{"Onion"}}
	got, err := NewReceiptIngestion(ex, catalog.Default()).IngestCapture(context.Background(), fakeCapture{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Onion", got[0].CanonicalKey)
	assert.Equal(t, "image/jpeg", ex.mime)
}

func TestIngredientSet(t *testing.T) {
	s := NewIngredientSet()
	assert.True(t, s.Add(common.Ingredient{CanonicalKey: "Egg"}))
	assert.False(t, s.Add(common.Ingredient{CanonicalKey: "Egg", Quantity: "3"}), "keys are unique")
	assert.True(t, s.Add(common.Ingredient{CanonicalKey: "Onion", Quantity: "2"}))

	added := s.AddAll([]common.Ingredient{{CanonicalKey: "Onion"}, {CanonicalKey: "Tofu"}})
	assert.Equal(t, []common.Ingredient{{CanonicalKey: "Tofu", Quantity: DefaultQuantity}}, added)

	require.NoError(t, s.UpdateQuantity("Egg", " 6 "))
	assert.ErrorIs(t, s.UpdateQuantity("Milk", "1"), common.ErrNotFound)

	marked, err := s.TogglePriority("Onion")
	require.NoError(t, err)
	assert.True(t, marked)
	_, err = s.TogglePriority("Milk")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, []string{"Onion"}, s.PriorityKeys())

	assert.Equal(t, []common.Ingredient{
		{CanonicalKey: "Egg", Quantity: "6"},
		{CanonicalKey: "Onion", Quantity: "2"},
		{CanonicalKey: "Tofu", Quantity: DefaultQuantity},
	}, s.List())

	data, err := s.Snapshot()
	require.NoError(t, err)

	assert.True(t, s.Remove("Onion"))
	assert.Empty(t, s.PriorityKeys(), "removing an ingredient clears its mark")
	assert.False(t, s.Remove("Onion"))

	restored := NewIngredientSet()
	require.NoError(t, restored.Restore(data))
	assert.Len(t, restored.List(), 3)
	assert.Equal(t, []string{"Onion"}, restored.PriorityKeys())
	assert.True(t, restored.Keys()["Tofu"])
}

func TestShoppingList(t *testing.T) {
	l := NewShoppingList()
	assert.True(t, l.Toggle("Milk"))
	assert.Equal(t, []string{"Sesame Oil"}, l.Add("Milk", "Sesame Oil", " "))
	assert.False(t, l.Toggle("Milk"))
	assert.Equal(t, []string{"Sesame Oil"}, l.List())

	data, err := l.Snapshot()
	require.NoError(t, err)
	restored := NewShoppingList()
	require.NoError(t, restored.Restore(data))
	assert.Equal(t, l.List(), restored.List())
}

package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ohmycook/internal/api/middleware"
	"ohmycook/internal/core/ai/generation"
	"ohmycook/internal/core/ai/provider"
	"ohmycook/internal/core/catalog"
	"ohmycook/internal/core/community"
	imageService "ohmycook/internal/core/image"
	"ohmycook/internal/core/pantry"
	"ohmycook/internal/core/recipe"
	"ohmycook/internal/core/session"
	"ohmycook/internal/infrastructure/config"
	"ohmycook/internal/infrastructure/store"
	"ohmycook/internal/pkg/common"
)

const overviewsReply = `{"recipes":[
	{"recipeName":"Onion Omelette","englishRecipeName":"Onion Omelette","difficulty":"Easy","spiciness":1,
	 "cookTime":15,"ingredients":["Onion","Egg"],"missingIngredients":["Butter"],"imageSearchQuery":"onion omelette"},
	{"recipeName":"Egg Fried Rice","englishRecipeName":"Egg Fried Rice","difficulty":"Medium","spiciness":2,
	 "cookTime":20,"ingredients":["Egg","Onion"],"missingIngredients":["Rice","Soy Sauce"],"imageSearchQuery":"egg fried rice"}
]}`

const detailReply = `{"ingredientsWithQuantities":["2 Eggs","1 Onion"],"substitutions":[],"instructions":["Whisk","Fry"]}`

// scriptedProvider 依 Op 回傳固定內容
type scriptedProvider struct {
	mu     sync.Mutex
	calls  map[string]int
	failOn string
}

func (p *scriptedProvider) Generate(_ context.Context, req *provider.Request) (*provider.Response, error) {
	p.mu.Lock()
	p.calls[req.Op]++
	p.mu.Unlock()
	if req.Op == p.failOn {
		return nil, errors.New("upstream 500")
	}
	switch req.Op {
	case generation.OpOverviews:
		return &provider.Response{Content: overviewsReply}, nil
	case generation.OpDetail:
		return &provider.Response{Content: detailReply}, nil
	case generation.OpReceipt:
		return &provider.Response{Content: `{"ingredients":["대파","Egg","Mystery Snack"]}`}, nil
	default:
		return &provider.Response{Content: "Try adding butter."}, nil
	}
}

func (p *scriptedProvider) GetModel() string { return "scripted" }
func (p *scriptedProvider) Close() error     { return nil }

func (p *scriptedProvider) count(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

type noImages struct{}

func (noImages) Search(context.Context, string) (string, error) { return "", errors.New("no image") }

type testServer struct {
	router   *gin.Engine
	provider *scriptedProvider
	arena    *session.Arena
	popular  *community.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := &scriptedProvider{calls: make(map[string]int)}
	gen := generation.NewClient(p, config.AIConfig{OverviewCount: 2})
	cat := catalog.Default()
	st := store.NewMemory()

	popular, err := community.NewService(context.Background(), st, store.NewLocalNotifier())
	require.NoError(t, err)
	t.Cleanup(popular.Close)

	arena := session.NewArena(st, gen, gen, func(r *common.Recipe) {
		_, _ = popular.RecordSearch(context.Background(), r.EnglishName)
	})

	cfg := &config.Config{}
	cfg.App.Version = "test"
	cfg.DedupWindow = 50 * time.Millisecond

	router, stop := SetupRouter(cfg, &Services{
		Arena:     arena,
		Engine:    recipe.NewEngine(gen, recipe.NewImageResolver(noImages{}, 2)),
		Catalog:   cat,
		Receipts:  pantry.NewReceiptIngestion(gen, cat),
		Images:    imageService.NewService(1 << 20),
		Community: popular,
		Store:     st,
		Model:     p.GetModel(),
	})
	t.Cleanup(stop)

	return &testServer{router: router, provider: p, arena: arena, popular: popular}
}

func (s *testServer) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(middleware.UserIDHeader, user)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type ingredientList struct {
	Items []struct {
		Key      string `json:"key"`
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
		Priority bool   `json:"priority"`
	} `json:"items"`
}

type recipeList struct {
	BatchID string           `json:"batchId"`
	Recipes []*common.Recipe `json:"recipes"`
}

func TestRecommendWithEmptySetIsRejected(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/recipes/recommend", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp common.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, common.ErrCodeEmptyIngredients, resp.Code)
	assert.Zero(t, s.provider.count(generation.OpOverviews))
}

func TestIngredientsRecommendHydrateFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/ingredients", "", map[string]interface{}{"names": []string{"onion", " Egg ", "egg"}})
	require.Equal(t, http.StatusOK, w.Code)
	var ings ingredientList
	decode(t, w, &ings)
	require.Len(t, ings.Items, 2)
	assert.Equal(t, "Onion", ings.Items[0].Key)
	assert.Equal(t, "1", ings.Items[0].Quantity)

	w = s.do(t, http.MethodPut, "/api/v1/ingredients/Egg/priority", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/recipes/recommend", "", map[string]interface{}{"filters": map[string]interface{}{"cuisine": "korean"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var batch recipeList
	decode(t, w, &batch)
	require.Len(t, batch.Recipes, 2)
	assert.NotEmpty(t, batch.BatchID)
	for _, r := range batch.Recipes {
		assert.Equal(t, common.HydrationPending, r.HydrationState)
		assert.Empty(t, r.ImageURL)
	}

	w = s.do(t, http.MethodPost, "/api/v1/recipes/"+url.PathEscape("Onion Omelette")+"/hydrate", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var hydrated struct {
		Recipe *common.Recipe `json:"recipe"`
	}
	decode(t, w, &hydrated)
	assert.True(t, hydrated.Recipe.IsHydrated())
	assert.Equal(t, []string{"Whisk", "Fry"}, hydrated.Recipe.Detail.Instructions)

	// 已載入的食譜不再呼叫生成服務
	w = s.do(t, http.MethodPost, "/api/v1/recipes/"+url.PathEscape("Onion Omelette")+"/hydrate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.provider.count(generation.OpDetail))

	count, err := s.popular.SearchCount(context.Background(), "Onion Omelette")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	w = s.do(t, http.MethodGet, "/api/v1/recipes/"+url.PathEscape("No Such Dish"), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHydrationFailureKeepsRecipePending(t *testing.T) {
	s := newTestServer(t)
	s.provider.failOn = generation.OpDetail

	s.do(t, http.MethodPost, "/api/v1/ingredients", "", map[string]interface{}{"names": []string{"Onion"}})
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/recipes/recommend", "", nil).Code)

	w := s.do(t, http.MethodPost, "/api/v1/recipes/"+url.PathEscape("Egg Fried Rice")+"/hydrate", "", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp common.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, common.ErrCodeHydrationFailure, resp.Code)

	w = s.do(t, http.MethodGet, "/api/v1/recipes/"+url.PathEscape("Egg Fried Rice"), "", nil)
	var got struct {
		Recipe *common.Recipe `json:"recipe"`
	}
	decode(t, w, &got)
	assert.Equal(t, common.HydrationPending, got.Recipe.HydrationState)
}

func TestSavedAndShopping(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/ingredients", "", map[string]interface{}{"names": []string{"Egg"}})
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/recipes/recommend", "", nil).Code)

	name := url.PathEscape("Egg Fried Rice")
	w := s.do(t, http.MethodPost, "/api/v1/saved/"+name, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/recipes/"+name+"/hydrate", "", nil).Code)

	var saved recipeList
	decode(t, s.do(t, http.MethodGet, "/api/v1/saved", "", nil), &saved)
	require.Len(t, saved.Recipes, 1)
	assert.True(t, saved.Recipes[0].IsHydrated(), "saved copy follows the later hydration")

	// 熱門食譜不在批次中也能收藏
	w = s.do(t, http.MethodPost, "/api/v1/saved/"+url.PathEscape("Bibimbap"), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/saved/"+url.PathEscape("Unknown Dish"), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/shopping/from-recipe/"+name, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shopping struct {
		Added []string `json:"added"`
		Items []string `json:"items"`
	}
	decode(t, w, &shopping)
	assert.Equal(t, []string{"Rice", "Soy Sauce"}, shopping.Items)

	var toggled struct {
		Added bool     `json:"added"`
		Items []string `json:"items"`
	}
	decode(t, s.do(t, http.MethodPost, "/api/v1/shopping/Rice", "", nil), &toggled)
	assert.False(t, toggled.Added)
	assert.Equal(t, []string{"Soy Sauce"}, toggled.Items)
}

func TestReceiptUploadAddsOnlyNewIngredients(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/ingredients", "", map[string]interface{}{"names": []string{"Egg"}})

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	w := s.do(t, http.MethodPost, "/api/v1/ingredients/receipt", "", map[string]string{"image": uri})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Added []struct {
			Key string `json:"key"`
		} `json:"added"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Added, 2)
	assert.Equal(t, "Green Onion", resp.Added[0].Key)
	assert.Equal(t, "Mystery Snack", resp.Added[1].Key)

	w = s.do(t, http.MethodPost, "/api/v1/ingredients/receipt", "", map[string]string{"image": "data:image/png;base64,bm90IGFuIGltYWdl"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatFromRecipeCard(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/chat/"+url.PathEscape("Bibimbap")+"?recipe=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ctx common.ChatContext
	decode(t, w, &ctx)
	require.Len(t, ctx.Messages, 1)
	assert.Equal(t, common.RoleModel, ctx.Messages[0].Role)

	w = s.do(t, http.MethodPost, "/api/v1/chat/"+url.PathEscape("Bibimbap")+"/messages", "", map[string]string{"message": "Can I skip the egg?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reply struct {
		Reply   common.ChatMessage `json:"reply"`
		Context common.ChatContext `json:"context"`
	}
	decode(t, w, &reply)
	assert.Equal(t, "Try adding butter.", reply.Reply.Text)
	assert.Len(t, reply.Context.Messages, 3)

	var general common.ChatContext
	decode(t, s.do(t, http.MethodGet, "/api/v1/chat/"+common.GeneralContextKey, "", nil), &general)
	assert.Empty(t, general.Messages)
}

func TestPartitionsAndClear(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/ingredients", "alice", map[string]interface{}{"names": []string{"Tofu"}})

	var guest, alice ingredientList
	decode(t, s.do(t, http.MethodGet, "/api/v1/ingredients", "", nil), &guest)
	decode(t, s.do(t, http.MethodGet, "/api/v1/ingredients", "alice", nil), &alice)
	assert.Empty(t, guest.Items)
	require.Len(t, alice.Items, 1)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/v1/session", "alice", nil).Code)
	decode(t, s.do(t, http.MethodGet, "/api/v1/ingredients", "alice", nil), &alice)
	assert.Empty(t, alice.Items)
}

func TestCatalogAndHealth(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/ingredients", "", map[string]interface{}{"names": []string{"Onion"}})

	w := s.do(t, http.MethodGet, "/api/v1/catalog/search?q=onion&lang=ko", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"key":"Onion"`)
	assert.Contains(t, w.Body.String(), "대파")

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/ready", "", nil).Code)

	w = s.do(t, http.MethodGet, "/api/v1/community/popular", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kimchi Jjigae")
}

package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ohmycook/internal/api/handlers"
	"ohmycook/internal/core/pantry"
	recipeService "ohmycook/internal/core/recipe"
	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// RecommendRequest 推薦請求；未提供 ingredients 時使用分區內的食材集合
type RecommendRequest struct {
	Filters     *common.Filters `json:"filters" validate:"-"`
	Ingredients []string        `json:"ingredients,omitempty"`
	Priority    []string        `json:"priority,omitempty"`
}

// Recommend 產生新的推薦批次
func (h *Handler) Recommend(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	var req RecommendRequest
	if c.Request.ContentLength != 0 && !handlers.BindJSON(c, &req) {
		return
	}
	lang := handlers.Lang(c)

	var keys, priority []string
	if len(req.Ingredients) > 0 {
		for _, raw := range req.Ingredients {
			if key, ok := pantry.Canonicalize(h.catalog, raw); ok {
				keys = append(keys, key)
			}
		}
		for _, raw := range req.Priority {
			if key, ok := pantry.Canonicalize(h.catalog, raw); ok {
				priority = append(priority, key)
			}
		}
	} else {
		for _, ing := range s.Ingredients.List() {
			keys = append(keys, ing.CanonicalKey)
		}
		priority = s.Ingredients.PriorityKeys()
	}

	filters := common.DefaultFilters()
	if req.Filters != nil {
		filters = req.Filters.WithDefaults()
	}

	common.LogInfo("開始處理食譜推薦請求",
		zap.String("partition", s.Partition),
		zap.Int("ingredients", len(keys)),
		zap.Int("priority", len(priority)),
		zap.String("lang", string(lang)),
	)

	recipes, err := h.engine.Recommend(c.Request.Context(), s.Recipes, recipeService.Request{
		Ingredients: h.displayNames(keys, lang),
		Priority:    h.displayNames(priority, lang),
		Filters:     filters,
		Lang:        lang,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	handlers.Persist(c, s, session.ComponentRecipes)

	c.JSON(http.StatusOK, gin.H{
		"batchId": s.Recipes.BatchID(),
		"recipes": recipes,
	})
}

// List 目前批次
func (h *Handler) List(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"batchId": s.Recipes.BatchID(),
		"recipes": s.Recipes.List(),
	})
}

// Get 以名稱取得食譜
func (h *Handler) Get(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	r, found := s.Recipes.Get(c.Param("name"))
	if !found {
		handlers.RespondError(c, common.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": r, "saved": s.Saved.Contains(r.Name)})
}

// Hydrate 確保食譜已載入詳細內容
func (h *Handler) Hydrate(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	lang := handlers.Lang(c)
	keys := make([]string, 0)
	for _, ing := range s.Ingredients.List() {
		keys = append(keys, ing.CanonicalKey)
	}

	r, err := s.Recipes.EnsureHydrated(c.Request.Context(), c.Param("name"), h.displayNames(keys, lang), lang)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": r, "saved": s.Saved.Contains(r.Name)})
}

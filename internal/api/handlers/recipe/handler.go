// Package recipe 食材、推薦、收藏與購物清單的 HTTP 處理器。
package recipe

import (
	"ohmycook/internal/core/catalog"
	"ohmycook/internal/core/community"
	"ohmycook/internal/core/image"
	"ohmycook/internal/core/pantry"
	recipeService "ohmycook/internal/core/recipe"
	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// Handler 食譜相關處理程序
type Handler struct {
	arena     *session.Arena
	engine    *recipeService.Engine
	catalog   *catalog.Catalog
	receipts  *pantry.ReceiptIngestion
	images    *image.Service
	community *community.Service
}

// NewHandler 創建新的食譜處理程序
func NewHandler(
	arena *session.Arena,
	engine *recipeService.Engine,
	cat *catalog.Catalog,
	receipts *pantry.ReceiptIngestion,
	images *image.Service,
	popular *community.Service,
) *Handler {
	return &Handler{
		arena:     arena,
		engine:    engine,
		catalog:   cat,
		receipts:  receipts,
		images:    images,
		community: popular,
	}
}

// displayNames 目錄鍵轉成指定語言的名稱，供生成提示使用
func (h *Handler) displayNames(keys []string, lang common.Language) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, h.catalog.Translate(k, lang))
	}
	return out
}

// findRecipe 目前批次、收藏、熱門食譜依序查找
func (h *Handler) findRecipe(s *session.Session, name string) (*common.Recipe, bool) {
	if r, ok := s.Recipes.Get(name); ok {
		return r, true
	}
	if r, ok := s.Saved.Get(name); ok {
		return r, true
	}
	if h.community != nil {
		return h.community.Find(name)
	}
	return nil, false
}

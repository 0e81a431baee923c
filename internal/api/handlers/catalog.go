package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ohmycook/internal/core/catalog"
	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// IngredientView 食材在指定語言下的顯示資料
type IngredientView struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Category common.Category `json:"category"`
	Emoji    string          `json:"emoji"`
}

// GroupView 分類後的食材
type GroupView struct {
	Category common.Category  `json:"category"`
	Items    []IngredientView `json:"items"`
}

// CatalogHandler 食材目錄處理器
type CatalogHandler struct {
	catalog *catalog.Catalog
	arena   *session.Arena
}

// NewCatalogHandler 創建目錄處理器
func NewCatalogHandler(cat *catalog.Catalog, arena *session.Arena) *CatalogHandler {
	return &CatalogHandler{catalog: cat, arena: arena}
}

// View 將目錄鍵轉成顯示資料，目錄外的鍵以原文顯示
func View(cat *catalog.Catalog, key string, lang common.Language) IngredientView {
	return IngredientView{
		Key:      key,
		Name:     cat.Translate(key, lang),
		Category: cat.CategoryOf(key),
		Emoji:    cat.Emoji(key),
	}
}

// Search 搜尋食材，排除使用者已持有的
func (h *CatalogHandler) Search(c *gin.Context) {
	s, ok := Session(c, h.arena)
	if !ok {
		return
	}
	lang := Lang(c)
	results := h.catalog.Search(c.Query("q"), s.Ingredients.Keys())

	groups := make([]GroupView, 0)
	for _, g := range catalog.GroupByCategory(results) {
		gv := GroupView{Category: g.Category, Items: make([]IngredientView, 0, len(g.Items))}
		for _, e := range g.Items {
			gv.Items = append(gv.Items, View(h.catalog, e.CanonicalKey, lang))
		}
		groups = append(groups, gv)
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups, "count": len(results)})
}

// Categories 分類順序
func (h *CatalogHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": common.CategoryOrder})
}

// Common 常用食材
func (h *CatalogHandler) Common(c *gin.Context) {
	lang := Lang(c)
	keys := catalog.CommonIngredients()
	items := make([]IngredientView, 0, len(keys))
	for _, k := range keys {
		items = append(items, View(h.catalog, k, lang))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

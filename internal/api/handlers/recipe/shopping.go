package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ohmycook/internal/api/handlers"
	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// ListShopping 購物清單
func (h *Handler) ListShopping(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.Shopping.List()})
}

// ToggleShopping 加入或移除項目
func (h *Handler) ToggleShopping(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	name := common.CollapseSpace(c.Param("name"))
	if name == "" {
		handlers.RespondError(c, common.NewValidationError("name is required"))
		return
	}
	added := s.Shopping.Toggle(name)
	handlers.Persist(c, s, session.ComponentShopping)
	c.JSON(http.StatusOK, gin.H{"added": added, "items": s.Shopping.List()})
}

// AddMissing 將食譜缺少的食材加入購物清單
func (h *Handler) AddMissing(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	r, found := h.findRecipe(s, c.Param("name"))
	if !found {
		handlers.RespondError(c, common.ErrRecipeNotFound)
		return
	}
	added := s.Shopping.Add(r.MissingIngredientNames...)
	if len(added) > 0 {
		handlers.Persist(c, s, session.ComponentShopping)
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "items": s.Shopping.List()})
}

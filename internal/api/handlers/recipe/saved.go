package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ohmycook/internal/api/handlers"
	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// ListSaved 收藏的食譜
func (h *Handler) ListSaved(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": s.Saved.List()})
}

// ToggleSaved 切換收藏；不在目前批次的熱門食譜也可收藏
func (h *Handler) ToggleSaved(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	name := c.Param("name")
	var fallback *common.Recipe
	if h.community != nil {
		if r, found := h.community.Find(name); found {
			fallback = r
		}
	}
	saved, err := s.ToggleSaved(name, fallback)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	handlers.Persist(c, s, session.ComponentSaved)
	c.JSON(http.StatusOK, gin.H{"name": name, "saved": saved})
}

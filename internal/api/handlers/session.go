package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// SessionHandler 分區資料處理器
type SessionHandler struct {
	arena *session.Arena
}

// NewSessionHandler 創建分區資料處理器
func NewSessionHandler(arena *session.Arena) *SessionHandler {
	return &SessionHandler{arena: arena}
}

// Clear 清除目前分區的所有資料
func (h *SessionHandler) Clear(c *gin.Context) {
	if err := h.arena.Clear(c.Request.Context(), Partition(c)); err != nil {
		RespondError(c, common.ErrServiceUnavailable.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared", "partition": Partition(c)})
}

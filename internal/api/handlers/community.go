package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ohmycook/internal/core/community"
)

// CommunityHandler 熱門食譜處理器
type CommunityHandler struct {
	community *community.Service
}

// NewCommunityHandler 創建熱門食譜處理器
func NewCommunityHandler(svc *community.Service) *CommunityHandler {
	return &CommunityHandler{community: svc}
}

// Popular 依搜尋次數排序的熱門食譜
func (h *CommunityHandler) Popular(c *gin.Context) {
	recipes, err := h.community.Popular(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

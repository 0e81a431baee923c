package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ohmycook/internal/core/community"
	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// ChatRequest 送出對話訊息
type ChatRequest struct {
	Message string             `json:"message" binding:"required"`
	Profile common.UserProfile `json:"profile" validate:"-"`
}

// ChatHandler AI Chef 對話處理器
type ChatHandler struct {
	arena     *session.Arena
	community *community.Service
}

// NewChatHandler 創建對話處理器
func NewChatHandler(arena *session.Arena, popular *community.Service) *ChatHandler {
	return &ChatHandler{arena: arena, community: popular}
}

// recipeContext 上下文鍵對應的食譜：目前批次、收藏、熱門食譜依序查找
func (h *ChatHandler) recipeContext(s *session.Session, key string) *common.Recipe {
	if key == common.GeneralContextKey {
		return nil
	}
	if r, ok := s.Recipes.Get(key); ok {
		return r
	}
	if r, ok := s.Saved.Get(key); ok {
		return r
	}
	if h.community != nil {
		if r, ok := h.community.Find(key); ok {
			return r
		}
	}
	return nil
}

// GetContext 取得對話紀錄；?recipe=true 表示從食譜卡片進入
func (h *ChatHandler) GetContext(c *gin.Context) {
	s, ok := Session(c, h.arena)
	if !ok {
		return
	}
	key := c.Param("key")

	if c.Query("recipe") != "" && key != common.GeneralContextKey {
		name := key
		if r := h.recipeContext(s, key); r != nil {
			name = common.ShortRecipeName(r.Name)
		}
		before := len(s.Chats.GetOrCreate(key).Messages)
		ctx := s.Chats.Open(key, name, Lang(c))
		if len(ctx.Messages) != before {
			Persist(c, s, session.ComponentChats)
		}
		c.JSON(http.StatusOK, ctx)
		return
	}

	c.JSON(http.StatusOK, s.Chats.GetOrCreate(key))
}

// SendMessage 加入使用者訊息並取得回覆
func (h *ChatHandler) SendMessage(c *gin.Context) {
	s, ok := Session(c, h.arena)
	if !ok {
		return
	}
	var req ChatRequest
	if !BindJSON(c, &req) {
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		RespondError(c, common.NewValidationError("message must not be empty"))
		return
	}
	profile := req.Profile.WithDefaults()
	if err := common.ValidateStruct(profile); err != nil {
		RespondError(c, err)
		return
	}

	key := c.Param("key")
	recipe := h.recipeContext(s, key)

	reply, err := s.Chats.AppendAndReply(c.Request.Context(), key, text, profile, Lang(c), recipe)
	if err != nil {
		RespondError(c, err)
		return
	}
	Persist(c, s, session.ComponentChats)

	common.LogDebug("Chat reply appended",
		zap.String("context_key", key),
		zap.Bool("recipe_context", recipe != nil),
	)
	c.JSON(http.StatusOK, gin.H{
		"reply":   reply,
		"context": s.Chats.GetOrCreate(key),
	})
}

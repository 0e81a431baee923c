package recipe

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ohmycook/internal/api/handlers"
	"ohmycook/internal/core/image"
	"ohmycook/internal/core/pantry"
	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// IngredientItem 使用者持有的食材（含顯示資料）
type IngredientItem struct {
	handlers.IngredientView
	Quantity string `json:"quantity"`
	Priority bool   `json:"priority"`
}

// AddIngredientsRequest 加入食材，可為目錄鍵或任意輸入
type AddIngredientsRequest struct {
	Names    []string `json:"names" binding:"required,min=1"`
	Quantity string   `json:"quantity,omitempty"`
}

// QuantityRequest 更新數量
type QuantityRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

// ReceiptRequest JSON 形式的收據圖片
type ReceiptRequest struct {
	Image string `json:"image" binding:"required"`
}

func (h *Handler) ingredientItems(s *session.Session, lang common.Language) []IngredientItem {
	priority := make(map[string]bool)
	for _, k := range s.Ingredients.PriorityKeys() {
		priority[k] = true
	}
	list := s.Ingredients.List()
	items := make([]IngredientItem, 0, len(list))
	for _, ing := range list {
		items = append(items, IngredientItem{
			IngredientView: handlers.View(h.catalog, ing.CanonicalKey, lang),
			Quantity:       ing.Quantity,
			Priority:       priority[ing.CanonicalKey],
		})
	}
	return items
}

// ListIngredients 目前持有的食材
func (h *Handler) ListIngredients(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.ingredientItems(s, handlers.Lang(c))})
}

// AddIngredients 正規化後加入食材，已存在的略過
func (h *Handler) AddIngredients(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	var req AddIngredientsRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	quantity := strings.TrimSpace(req.Quantity)
	if quantity == "" {
		quantity = pantry.DefaultQuantity
	}

	var batch []common.Ingredient
	for _, raw := range req.Names {
		if key, ok := pantry.Canonicalize(h.catalog, raw); ok {
			batch = append(batch, common.Ingredient{CanonicalKey: key, Quantity: quantity})
		}
	}
	added := s.Ingredients.AddAll(batch)
	if len(added) > 0 {
		handlers.Persist(c, s, session.ComponentIngredients)
	}

	c.JSON(http.StatusOK, gin.H{
		"added": len(added),
		"items": h.ingredientItems(s, handlers.Lang(c)),
	})
}

// RemoveIngredient 移除食材
func (h *Handler) RemoveIngredient(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	if !s.Ingredients.Remove(c.Param("key")) {
		handlers.RespondError(c, common.ErrNotFound)
		return
	}
	handlers.Persist(c, s, session.ComponentIngredients)
	c.JSON(http.StatusOK, gin.H{"items": h.ingredientItems(s, handlers.Lang(c))})
}

// UpdateQuantity 更新數量
func (h *Handler) UpdateQuantity(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	var req QuantityRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	if err := s.Ingredients.UpdateQuantity(c.Param("key"), strings.TrimSpace(req.Quantity)); err != nil {
		handlers.RespondError(c, err)
		return
	}
	handlers.Persist(c, s, session.ComponentIngredients)
	c.JSON(http.StatusOK, gin.H{"items": h.ingredientItems(s, handlers.Lang(c))})
}

// TogglePriority 切換優先使用標記
func (h *Handler) TogglePriority(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}
	marked, err := s.Ingredients.TogglePriority(c.Param("key"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	handlers.Persist(c, s, session.ComponentIngredients)
	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "priority": marked})
}

// UploadReceipt 從收據或食材照片匯入，只加入尚未持有的食材
func (h *Handler) UploadReceipt(c *gin.Context) {
	s, ok := handlers.Session(c, h.arena)
	if !ok {
		return
	}

	upload, source, err := h.readReceipt(c)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	upload, err = h.images.Normalize(upload)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("收到收據圖片",
		zap.String("request_id", requestid.Get(c)),
		zap.String("partition", s.Partition),
		zap.String("source", source),
		zap.Int("width", upload.Width),
		zap.Int("height", upload.Height),
		zap.Int("bytes", len(upload.Data)),
	)

	fresh, err := h.receipts.Ingest(c.Request.Context(), upload.Data, upload.MIMEType, s.Ingredients.List())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	added := s.Ingredients.AddAll(fresh)
	if len(added) > 0 {
		handlers.Persist(c, s, session.ComponentIngredients)
	}

	lang := handlers.Lang(c)
	views := make([]handlers.IngredientView, 0, len(added))
	for _, ing := range added {
		views = append(views, handlers.View(h.catalog, ing.CanonicalKey, lang))
	}
	c.JSON(http.StatusOK, gin.H{
		"added": views,
		"items": h.ingredientItems(s, lang),
	})
}

// readReceipt 支援 multipart 的 image 欄位或 JSON 的 data URI
func (h *Handler) readReceipt(c *gin.Context) (*image.Upload, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			return nil, "", common.NewValidationError("missing image file")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", common.ErrInvalidRequest.Wrap(err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", common.ErrInvalidRequest.Wrap(fmt.Errorf("failed to read image: %w", err))
		}
		u, err := h.images.Validate(data)
		if err != nil {
			return nil, "", err
		}
		return u, getImageType(fh.Header.Get("Content-Type"), true), nil
	}

	var req ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, "", common.NewValidationError("invalid request body: " + err.Error())
	}
	common.LogDebug("收據圖片格式", zap.String("prefix", getImagePrefix(req.Image)))
	u, err := h.images.DecodeDataURI(req.Image)
	if err != nil {
		return nil, "", err
	}
	return u, getImageType(u.MIMEType, false), nil
}

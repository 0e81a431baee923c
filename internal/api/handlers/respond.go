// Package handlers HTTP 處理器與共用的回應工具。
package handlers

import (
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ohmycook/internal/api/middleware"
	"ohmycook/internal/core/session"
	"ohmycook/internal/pkg/common"
)

// Lang 從 ?lang= 或 Accept-Language 取得語言，預設英文
func Lang(c *gin.Context) common.Language {
	if q := c.Query("lang"); q != "" {
		return common.ParseLanguage(q)
	}
	if strings.HasPrefix(strings.ToLower(c.GetHeader("Accept-Language")), "ko") {
		return common.LangKorean
	}
	return common.LangEnglish
}

// Partition 目前請求的分區鍵
func Partition(c *gin.Context) string {
	if p := c.GetString(middleware.PartitionKey); p != "" {
		return p
	}
	return session.GuestPartition
}

// RespondError 將錯誤轉成 {code, message} 並依語言在地化訊息
func RespondError(c *gin.Context, err error) {
	ce := common.ToCustomError(err)
	resp := common.ErrorResponse{
		Code:    ce.Code,
		Message: common.LocalizedMessage(ce.Code, Lang(c), ce.Message),
	}
	if common.IsValidationError(err) {
		resp.Details = err.Error()
	} else if gin.IsDebugging() && ce.Err != nil {
		resp.Details = ce.Err.Error()
	}

	fields := []zap.Field{
		zap.String("code", ce.Code),
		zap.Int("status", ce.Status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
		zap.Error(err),
	}
	if ce.Status >= 500 {
		common.LogError("Request failed", fields...)
	} else {
		common.LogDebug("Request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, resp)
}

// BindJSON 解析 JSON 並執行 validate 標籤檢查，失敗時已回應錯誤
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		RespondError(c, common.NewValidationError("invalid request body: "+err.Error()))
		return false
	}
	if err := common.ValidateStruct(v); err != nil {
		RespondError(c, err)
		return false
	}
	return true
}

// Session 取得目前分區的 Session，失敗時已回應錯誤
func Session(c *gin.Context, arena *session.Arena) (*session.Session, bool) {
	s, err := arena.Get(c.Request.Context(), Partition(c))
	if err != nil {
		RespondError(c, common.ErrServiceUnavailable.Wrap(err))
		return nil, false
	}
	return s, true
}

// Persist 寫回變更過的元件；失敗只記錄，記憶體中的狀態仍有效
func Persist(c *gin.Context, s *session.Session, components ...string) {
	if err := s.Save(c.Request.Context(), components...); err != nil {
		common.LogError("Failed to persist session",
			zap.String("partition", s.Partition),
			zap.Strings("components", components),
			zap.String("request_id", requestid.Get(c)),
			zap.Error(err),
		)
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"ohmycook/internal/core/session"
)

// PartitionKey gin context 中保存分區鍵的名稱
const PartitionKey = "partition"

// UserIDHeader 呼叫者身分標頭
const UserIDHeader = "X-User-ID"

// Partition 由 X-User-ID 決定分區，沒有標頭時為訪客
func Partition() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(PartitionKey, session.PartitionKey(c.GetHeader(UserIDHeader)))
		c.Next()
	}
}

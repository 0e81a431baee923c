package common

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// CollapseSpace 去除前後空白並合併連續空白
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ShortRecipeName 取括號前的顯示名稱，例如 "김치찌개 (Kimchi Jjigae)" → "김치찌개"
func ShortRecipeName(name string) string {
	if i := strings.Index(name, "("); i > 0 {
		return strings.TrimSpace(name[:i])
	}
	return strings.TrimSpace(name)
}

// RecipeID 以英文名稱與批次產生穩定的識別碼
func RecipeID(englishName, batchID string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(CollapseSpace(englishName)) + "|" + batchID))
	return hex.EncodeToString(sum[:8])
}

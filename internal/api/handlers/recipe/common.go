package recipe

import (
	"strings"
)

// getImageType 圖片來源類型（用於日誌記錄）
func getImageType(contentType string, fromMultipart bool) string {
	source := "json"
	if fromMultipart {
		source = "multipart"
	}
	if contentType == "" {
		return source + "_unknown"
	}
	return source + "_" + strings.TrimPrefix(contentType, "image/")
}

// getImagePrefix data URI 的前綴（用於日誌記錄，不輸出圖片內容）
func getImagePrefix(image string) string {
	if strings.HasPrefix(image, "data:image/") {
		if i := strings.Index(image, ";base64,"); i > 0 {
			return image[:i]
		}
		return "[INVALID_DATA_URI]"
	}
	if strings.HasPrefix(image, "http") {
		return "[IMAGE_URL]"
	}
	return "[UNKNOWN_FORMAT]"
}

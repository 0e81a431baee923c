package pantry

import (
	"context"

	"go.uber.org/zap"

	"ohmycook/internal/pkg/common"
)

// IngredientExtractor 從圖片辨識出原始食材名稱
type IngredientExtractor interface {
	ExtractIngredientsFromImage(ctx context.Context, image []byte, mimeType string) ([]string, error)
}

// ImageCapture 裝置拍照能力
type ImageCapture interface {
	Capture(ctx context.Context) (data []byte, mimeType string, err error)
}

// ReceiptIngestion 將收據辨識結果轉成目錄鍵，只回傳新的食材，不修改集合
type ReceiptIngestion struct {
	extractor IngredientExtractor
	resolver  Resolver
}

// NewReceiptIngestion 創建收據匯入
func NewReceiptIngestion(extractor IngredientExtractor, resolver Resolver) *ReceiptIngestion {
	return &ReceiptIngestion{extractor: extractor, resolver: resolver}
}

// Ingest 辨識圖片並回傳不在 existing 中的新食材
func (r *ReceiptIngestion) Ingest(ctx context.Context, image []byte, mimeType string, existing []common.Ingredient) ([]common.Ingredient, error) {
	names, err := r.extractor.ExtractIngredientsFromImage(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing)+len(names))
	for _, ing := range existing {
		seen[ing.CanonicalKey] = true
	}

	out := []common.Ingredient{}
	for _, raw := range names {
		key, ok := Canonicalize(r.resolver, raw)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, common.Ingredient{CanonicalKey: key, Quantity: DefaultQuantity})
	}

	common.LogInfo("Receipt ingested",
		zap.Int("extracted", len(names)),
		zap.Int("new", len(out)),
	)
	return out, nil
}

// IngestCapture 先透過裝置拍照再匯入
func (r *ReceiptIngestion) IngestCapture(ctx context.Context, capture ImageCapture, existing []common.Ingredient) ([]common.Ingredient, error) {
	data, mimeType, err := capture.Capture(ctx)
	if err != nil {
		return nil, err
	}
	return r.Ingest(ctx, data, mimeType, existing)
}

package recipe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ohmycook/internal/pkg/common"
)

// OverviewGenerator 產生食譜概要
type OverviewGenerator interface {
	GenerateOverviews(ctx context.Context, ingredients, priority []string, filters common.Filters, lang common.Language) ([]common.RecipeOverview, error)
}

// Request 推薦請求
type Request struct {
	Ingredients []string
	Priority    []string
	Filters     common.Filters
	Lang        common.Language
}

// Engine 推薦流程：產生概要、補圖片、寫入快取
type Engine struct {
	generator OverviewGenerator
	images    *ImageResolver
}

// NewEngine 創建推薦引擎
func NewEngine(generator OverviewGenerator, images *ImageResolver) *Engine {
	return &Engine{generator: generator, images: images}
}

// Recommend 以新批次取代快取內容並回傳。
// 若期間有更新的推薦已寫入快取，回傳快取中較新的批次；
// 快取在期間被清空時回傳 ErrBatchSuperseded，不回傳空清單。
func (e *Engine) Recommend(ctx context.Context, cache *Cache, req Request) ([]*common.Recipe, error) {
	if len(req.Ingredients) == 0 {
		return nil, common.ErrEmptyIngredientSet
	}
	filters := req.Filters.WithDefaults()
	if err := common.ValidateStruct(filters); err != nil {
		return nil, err
	}

	ticket := cache.BeginBatch()
	start := time.Now()

	overviews, err := e.generator.GenerateOverviews(ctx, req.Ingredients, req.Priority, filters, req.Lang)
	if err != nil {
		return nil, err
	}
	e.images.Resolve(ctx, overviews)

	batchID := common.GenerateUUID()
	if !cache.Put(ticket, batchID, overviews) {
		if newer := cache.List(); len(newer) > 0 {
			return newer, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		common.LogWarn("Recommendation superseded by reset",
			zap.String("batch_id", batchID),
			zap.Int("recipes", len(overviews)),
		)
		return nil, common.ErrBatchSuperseded
	}

	common.LogInfo("Recommendation batch ready",
		zap.String("batch_id", batchID),
		zap.Int("recipes", len(overviews)),
		zap.Duration("duration", time.Since(start)),
	)
	return cache.List(), nil
}

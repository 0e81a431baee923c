package recipe

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ohmycook/internal/pkg/common"
)

// ImageFinder 以搜尋字串找一張圖片網址
type ImageFinder interface {
	Search(ctx context.Context, query string) (string, error)
}

// ImageResolver 為一批概要並行補上圖片
type ImageResolver struct {
	finder ImageFinder
	limit  int
}

// NewImageResolver 創建圖片補齊器，limit <= 0 時不限制並行數
func NewImageResolver(finder ImageFinder, limit int) *ImageResolver {
	return &ImageResolver{finder: finder, limit: limit}
}

// Resolve 每份食譜先用 imageSearchQuery，失敗再用英文名稱，仍失敗則不設圖片。
// 全部查詢結束後才回傳。
func (r *ImageResolver) Resolve(ctx context.Context, overviews []common.RecipeOverview) {
	if r == nil || r.finder == nil {
		return
	}

	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i := range overviews {
		o := &overviews[i]
		g.Go(func() error {
			o.ImageURL = r.lookup(ctx, o)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *ImageResolver) lookup(ctx context.Context, o *common.RecipeOverview) string {
	for _, q := range []string{o.ImageSearchQuery, o.EnglishName} {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		url, err := r.finder.Search(ctx, q)
		if err == nil && url != "" {
			return url
		}
		common.LogDebug("Image lookup missed",
			zap.String("recipe", o.Name),
			zap.String("query", q),
			zap.Error(err),
		)
	}
	return ""
}

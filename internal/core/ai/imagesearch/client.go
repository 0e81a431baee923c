// Package imagesearch 以 Google Custom Search JSON API 查詢食譜圖片
package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"ohmycook/internal/core/ai/cache"
	"ohmycook/internal/infrastructure/config"
	"ohmycook/internal/pkg/common"
)

// ErrNoImage 查無圖片或服務未設定
var ErrNoImage = errors.New("imagesearch: no image found")

// Client 圖片搜尋客戶端
type Client struct {
	client  *resty.Client
	apiKey  string
	cx      string
	enabled bool
	cache   *cache.CacheManager
}

type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// NewClient 建立客戶端；未設定 api key 或 cx 時所有查詢回傳 ErrNoImage
func NewClient(cfg config.ImageSearchConfig, cacheManager *cache.CacheManager) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	enabled := cfg.Enabled && cfg.APIKey != "" && cfg.CX != ""
	if cfg.Enabled && !enabled {
		common.LogWarn("Image search enabled but api key or cx missing, images disabled")
	}
	return &Client{
		client:  resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(timeout),
		apiKey:  cfg.APIKey,
		cx:      cfg.CX,
		enabled: enabled,
		cache:   cacheManager,
	}
}

// Search 回傳第一張圖片的網址
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	query = common.CollapseSpace(query)
	if !c.enabled || query == "" {
		return "", ErrNoImage
	}

	key := cache.Key("image", query)
	if link, err := c.cache.Get(ctx, key); err == nil {
		return link, nil
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":        c.apiKey,
			"cx":         c.cx,
			"q":          query,
			"searchType": "image",
			"num":        "1",
			"safe":       "off",
		}).
		Get("")
	if err != nil {
		return "", fmt.Errorf("imagesearch: request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("Google image search failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("query", query),
		)
		return "", fmt.Errorf("imagesearch: status %d", resp.StatusCode())
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("imagesearch: decode response: %w", err)
	}
	if len(result.Items) == 0 || strings.TrimSpace(result.Items[0].Link) == "" {
		return "", ErrNoImage
	}

	link := result.Items[0].Link
	if err := c.cache.Set(ctx, key, link); err != nil {
		common.LogDebug("Image search result not cached", zap.Error(err))
	}
	return link, nil
}

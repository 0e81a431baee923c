package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ohmycook/internal/core/ai/provider"
	"ohmycook/internal/infrastructure/config"
	"ohmycook/internal/pkg/common"
)

const (
	OpOverviews = "overviews"
	OpDetail    = "detail"
	OpReceipt   = "receipt"
	OpChat      = "chat"
)

// Client 食譜生成服務：概要、詳細內容、收據辨識與對話
type Client struct {
	provider            provider.Provider
	overviewCount       int
	overviewTemperature float64
	detailTemperature   float64
}

// NewClient 創建新的生成客戶端
func NewClient(p provider.Provider, cfg config.AIConfig) *Client {
	count := cfg.OverviewCount
	if count <= 0 {
		count = 5
	}
	return &Client{
		provider:            p,
		overviewCount:       count,
		overviewTemperature: cfg.OverviewTemperature,
		detailTemperature:   cfg.DetailTemperature,
	}
}

// OverviewCount 每次推薦要求的食譜數量
func (c *Client) OverviewCount() int {
	return c.overviewCount
}

// call 單次呼叫提供者並記錄耗時；任何錯誤都包成 GenerationFailure
func (c *Client) call(ctx context.Context, req *provider.Request) (string, error) {
	start := time.Now()
	resp, err := c.provider.Generate(ctx, req)
	common.LogAICall(req.Op, c.provider.GetModel(), time.Since(start), err)
	if err != nil {
		return "", common.NewGenerationFailure(req.Op, err)
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", common.NewGenerationFailure(req.Op, errors.New("empty response"))
	}
	return text, nil
}

type overviewEnvelope struct {
	Recipes []common.RecipeOverview `json:"recipes"`
}

// GenerateOverviews 依食材與條件產生 N 份食譜概要
func (c *Client) GenerateOverviews(ctx context.Context, ingredients, priority []string, filters common.Filters, lang common.Language) ([]common.RecipeOverview, error) {
	prompt := buildOverviewPrompt(ingredients, priority, filters, lang, c.overviewCount)
	text, err := c.call(ctx, &provider.Request{
		Op:          OpOverviews,
		Messages:    []provider.Message{{Role: provider.RoleUser, Content: prompt}},
		JSON:        true,
		Schema:      overviewSchema,
		Temperature: provider.Float32(c.overviewTemperature),
	})
	if err != nil {
		return nil, err
	}

	overviews, err := parseOverviews(text)
	if err != nil {
		return nil, common.NewGenerationFailure(OpOverviews, err)
	}
	if len(overviews) == 0 {
		return nil, common.NewGenerationFailure(OpOverviews, errors.New("no recipes in response"))
	}
	if len(overviews) != c.overviewCount {
		common.LogWarn("Recipe count differs from requested",
			zap.Int("requested", c.overviewCount),
			zap.Int("received", len(overviews)),
		)
	}
	return overviews, nil
}

// parseOverviews 接受 {"recipes": [...]} 或裸陣列
func parseOverviews(text string) ([]common.RecipeOverview, error) {
	payload, err := common.ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var raw []common.RecipeOverview
	if strings.HasPrefix(payload, "[") {
		if err := common.ParseJSON(payload, &raw); err != nil {
			return nil, fmt.Errorf("malformed recipe list: %w", err)
		}
	} else {
		var env overviewEnvelope
		if err := common.ParseJSON(payload, &env); err != nil {
			return nil, fmt.Errorf("malformed recipe list: %w", err)
		}
		raw = env.Recipes
	}

	out := make([]common.RecipeOverview, 0, len(raw))
	for _, o := range raw {
		o.Name = strings.TrimSpace(o.Name)
		if o.Name == "" {
			common.LogWarn("Dropping recipe without a name", zap.String("english_name", o.EnglishName))
			continue
		}
		o.EnglishName = strings.TrimSpace(o.EnglishName)
		o.ImageSearchQuery = strings.TrimSpace(o.ImageSearchQuery)
		o.Difficulty = common.NormalizeDifficulty(string(o.Difficulty))
		o.Spiciness = clamp(o.Spiciness, 1, 5)
		if o.IngredientNames == nil {
			o.IngredientNames = []string{}
		}
		if o.MissingIngredientNames == nil {
			o.MissingIngredientNames = []string{}
		}
		o.ImageURL = ""
		out = append(out, o)
	}
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type detailWire struct {
	Ingredients   []string              `json:"ingredients"`
	Substitutions []common.Substitution `json:"substitutions"`
	Instructions  []string              `json:"instructions"`
}

// HydrateDetail 取得單一食譜的份量、步驟與替代建議
func (c *Client) HydrateDetail(ctx context.Context, recipeName string, ingredients []string, lang common.Language) (*common.RecipeDetail, error) {
	text, err := c.call(ctx, &provider.Request{
		Op:          OpDetail,
		Messages:    []provider.Message{{Role: provider.RoleUser, Content: buildDetailPrompt(recipeName, ingredients, lang)}},
		JSON:        true,
		Schema:      detailSchema,
		Temperature: provider.Float32(c.detailTemperature),
	})
	if err != nil {
		return nil, err
	}

	var wire detailWire
	if err := common.ParseModelJSON(text, &wire); err != nil {
		return nil, common.NewGenerationFailure(OpDetail, fmt.Errorf("malformed detail: %w", err))
	}
	if len(wire.Instructions) == 0 {
		return nil, common.NewGenerationFailure(OpDetail, errors.New("detail has no instructions"))
	}
	if wire.Ingredients == nil {
		wire.Ingredients = []string{}
	}
	if wire.Substitutions == nil {
		wire.Substitutions = []common.Substitution{}
	}
	return &common.RecipeDetail{
		IngredientsWithQuantities: wire.Ingredients,
		Substitutions:             wire.Substitutions,
		Instructions:              wire.Instructions,
	}, nil
}

// ExtractIngredientsFromImage 從收據圖片辨識食材名稱（英文）
func (c *Client) ExtractIngredientsFromImage(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	text, err := c.call(ctx, &provider.Request{
		Op:       OpReceipt,
		Messages: []provider.Message{{Role: provider.RoleUser, Content: receiptPrompt}},
		Images:   []provider.Image{{Data: image, MIMEType: mimeType}},
		JSON:     true,
		Schema:   receiptSchema,
	})
	if err != nil {
		return nil, err
	}

	payload, err := common.ExtractJSON(text)
	if err != nil {
		return nil, common.NewGenerationFailure(OpReceipt, err)
	}
	var names []string
	if strings.HasPrefix(payload, "[") {
		err = common.ParseJSON(payload, &names)
	} else {
		var env struct {
			Ingredients []string `json:"ingredients"`
		}
		err = common.ParseJSON(payload, &env)
		names = env.Ingredients
	}
	if err != nil {
		return nil, common.NewGenerationFailure(OpReceipt, fmt.Errorf("malformed ingredient list: %w", err))
	}
	return names, nil
}

// Chat 以完整歷史與新訊息取得 AI Chef 回覆
func (c *Client) Chat(ctx context.Context, history []common.ChatMessage, message string, profile common.UserProfile, lang common.Language, recipe *common.Recipe) (string, error) {
	msgs := make([]provider.Message, 0, len(history)+1)
	for _, m := range history {
		role := provider.RoleUser
		if m.Role == common.RoleModel {
			role = provider.RoleModel
		}
		msgs = append(msgs, provider.Message{Role: role, Content: m.Text})
	}
	msgs = append(msgs, provider.Message{Role: provider.RoleUser, Content: message})

	return c.call(ctx, &provider.Request{
		Op:       OpChat,
		System:   buildChatSystem(profile.WithDefaults(), lang, recipe),
		Messages: msgs,
		Chat:     true,
	})
}

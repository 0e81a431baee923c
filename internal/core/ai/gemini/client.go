// Package gemini 以 Google GenAI SDK 實作 provider.Provider
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"ohmycook/internal/core/ai/provider"
	"ohmycook/internal/infrastructure/config"
)

// Client Gemini 提供者
type Client struct {
	genAI     *genai.Client
	model     string
	chatModel string
}

// NewClient 建立 Gemini 客戶端
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating genai client: %w", err)
	}
	chatModel := cfg.Gemini.ChatModel
	if chatModel == "" {
		chatModel = cfg.Gemini.Model
	}
	return &Client{
		genAI:     genAI,
		model:     cfg.Gemini.Model,
		chatModel: chatModel,
	}, nil
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.model
}

// Close SDK 沒有需要釋放的連線
func (c *Client) Close() error {
	return nil
}

// Generate 呼叫 GenerateContent；對話紀錄以 user/model 交替的 Content 傳入
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	model := c.model
	if req.Chat {
		model = c.chatModel
	}

	res, err := c.genAI.Models.GenerateContent(ctx, model, toContents(req), toConfig(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: generating content: %w", err)
	}

	text := responseText(res)
	if text == "" {
		return nil, fmt.Errorf("gemini: unexpected generation result: no text candidates")
	}

	out := &provider.Response{Content: text}
	if u := res.UsageMetadata; u != nil {
		out.Usage.PromptTokens = int(u.PromptTokenCount)
		out.Usage.CompletionTokens = int(u.CandidatesTokenCount)
		out.Usage.TotalTokens = int(u.TotalTokenCount)
	}
	return out, nil
}

func toContents(req *provider.Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for i, m := range req.Messages {
		var role genai.Role = genai.RoleUser
		if m.Role == provider.RoleModel {
			role = genai.RoleModel
		}
		if i == len(req.Messages)-1 && len(req.Images) > 0 {
			parts := make([]*genai.Part, 0, len(req.Images)+1)
			for _, img := range req.Images {
				mime := img.MIMEType
				if mime == "" {
					mime = "image/jpeg"
				}
				parts = append(parts, genai.NewPartFromBytes(img.Data, mime))
			}
			parts = append(parts, genai.NewPartFromText(m.Content))
			contents = append(contents, genai.NewContentFromParts(parts, role))
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

func toConfig(req *provider.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleModel)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toSchema(req.Schema)
	}
	return cfg
}

func toSchema(s *provider.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genai.Type(strings.ToUpper(s.Type)),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       toSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toSchema(p)
		}
	}
	return out
}

func responseText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			sb.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

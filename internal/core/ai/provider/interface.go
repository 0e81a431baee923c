package provider

import (
	"context"
)

// Role 對話角色
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message 表示與 AI 模型的對話消息
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Image 隨最後一則使用者訊息送出的圖片
type Image struct {
	Data     []byte
	MIMEType string
}

// Schema 與提供者無關的結構化輸出描述
type Schema struct {
	Type        string             `json:"type"` // object | array | string | integer
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Request 表示發送到 AI 提供者的請求
type Request struct {
	// Op 只用於日誌
	Op          string
	System      string
	Messages    []Message
	Images      []Image
	JSON        bool
	Schema      *Schema
	Temperature *float32
	MaxTokens   int
	// Chat 為 true 時使用對話模型
	Chat bool
}

// Response 表示從 AI 提供者收到的響應
type Response struct {
	Content string `json:"content"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Provider 定義 AI 提供者介面
type Provider interface {
	// Generate 單次請求/回應，不重試
	Generate(ctx context.Context, req *Request) (*Response, error)

	// GetModel 獲取當前使用的模型名稱
	GetModel() string

	// Close 關閉提供者連接
	Close() error
}

// Float32 便於設定 Temperature
func Float32(v float64) *float32 {
	f := float32(v)
	return &f
}

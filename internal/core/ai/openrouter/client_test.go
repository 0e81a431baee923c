package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ohmycook/internal/core/ai/provider"
	"ohmycook/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.OpenRouter.APIKey = "sk-test"
	cfg.OpenRouter.BaseURL = srv.URL
	cfg.OpenRouter.Model = "test/model"
	cfg.OpenRouter.MaxTokens = 100
	return NewClient(cfg)
}

func TestGenerateBuildsChatCompletion(t *testing.T) {
	var captured map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[\"Egg\"]"}}],"usage":{"total_tokens":7}}`))
	})

	resp, err := c.Generate(context.Background(), &provider.Request{
		System: "be helpful",
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "hi"},
			{Role: provider.RoleModel, Content: "hello"},
			{Role: provider.RoleUser, Content: "read this"},
		},
		Images:      []provider.Image{{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"}},
		JSON:        true,
		Temperature: provider.Float32(0.5),
	})
	require.NoError(t, err)
	assert.Equal(t, `["Egg"]`, resp.Content)
	assert.Equal(t, 7, resp.Usage.TotalTokens)

	assert.Equal(t, "test/model", captured["model"])
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, captured["response_format"])

	msgs := captured["messages"].([]interface{})
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].(map[string]interface{})["role"])
	assert.Equal(t, "assistant", msgs[2].(map[string]interface{})["role"])

	last := msgs[3].(map[string]interface{})["content"].([]interface{})
	require.Len(t, last, 2)
	img := last[1].(map[string]interface{})["image_url"].(map[string]interface{})["url"].(string)
	assert.True(t, strings.HasPrefix(img, "data:image/jpeg;base64,"))
}

func TestGenerateSurfacesAPIErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","code":429}}`))
	})

	_, err := c.Generate(context.Background(), &provider.Request{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGenerateRejectsEmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.Generate(context.Background(), &provider.Request{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "hi"}},
	})
	assert.Error(t, err)
}

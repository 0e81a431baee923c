package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"ohmycook/internal/core/ai/provider"
)

func TestToContentsAlternatesRolesAndAttachesImage(t *testing.T) {
	req := &provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "q1"},
			{Role: provider.RoleModel, Content: "a1"},
			{Role: provider.RoleUser, Content: "q2"},
		},
		Images: []provider.Image{{Data: []byte("img"), MIMEType: "image/png"}},
	}

	contents := toContents(req)
	require.Len(t, contents, 3)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "a1", contents[1].Parts[0].Text)

	last := contents[2]
	require.Len(t, last.Parts, 2)
	require.NotNil(t, last.Parts[0].InlineData)
	assert.Equal(t, "image/png", last.Parts[0].InlineData.MIMEType)
	assert.Equal(t, "q2", last.Parts[1].Text)
}

func TestToConfigJSONSchema(t *testing.T) {
	req := &provider.Request{
		System:      "chef",
		JSON:        true,
		Temperature: provider.Float32(0.7),
		Schema: &provider.Schema{
			Type: "array",
			Items: &provider.Schema{
				Type: "object",
				Properties: map[string]*provider.Schema{
					"recipeName": {Type: "string"},
					"difficulty": {Type: "string", Enum: []string{"Easy", "Medium", "Hard"}},
				},
				Required: []string{"recipeName"},
			},
		},
	}

	cfg := toConfig(req)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "chef", cfg.SystemInstruction.Parts[0].Text)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)

	require.NotNil(t, cfg.ResponseSchema)
	assert.Equal(t, genai.TypeArray, cfg.ResponseSchema.Type)
	item := cfg.ResponseSchema.Items
	require.NotNil(t, item)
	assert.Equal(t, genai.TypeObject, item.Type)
	assert.Equal(t, []string{"Easy", "Medium", "Hard"}, item.Properties["difficulty"].Enum)
	assert.Equal(t, []string{"recipeName"}, item.Required)
}

func TestToConfigPlainText(t *testing.T) {
	cfg := toConfig(&provider.Request{})
	assert.Empty(t, cfg.ResponseMIMEType)
	assert.Nil(t, cfg.ResponseSchema)
	assert.Nil(t, cfg.SystemInstruction)
}

func TestResponseText(t *testing.T) {
	res := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "[\"Egg\","}, {Text: "\"Tofu\"]"}}},
		}},
	}
	assert.Equal(t, `["Egg","Tofu"]`, responseText(res))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(nil))
}

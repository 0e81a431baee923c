package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "fenced object", raw: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "array with prose", raw: "Here you go: [\"Egg\", \"Onion\"] enjoy", want: `["Egg", "Onion"]`},
		{name: "no json", raw: "sorry, I cannot help", wantErr: true},
		{name: "unterminated", raw: `{"a":1`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]int
	assert.NoError(t, ParseJSON(`{"a":1}`, &v))
	assert.Error(t, ParseJSON(`{"a":1}{"b":2}`, &v))
}

func TestToCustomError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"hydration", &HydrationFailure{Name: "Ramen", Err: NewGenerationFailure("detail", errors.New("boom"))}, ErrCodeHydrationFailure, http.StatusBadGateway},
		{"generation", NewGenerationFailure("overviews", errors.New("boom")), ErrCodeGenerationFailure, http.StatusBadGateway},
		{"validation", NewValidationError("servings must satisfy max=10"), ErrCodeInvalidRequest, http.StatusBadRequest},
		{"wrapped custom", fmt.Errorf("recommend: %w", ErrEmptyIngredientSet), ErrCodeEmptyIngredients, http.StatusBadRequest},
		{"deadline", context.DeadlineExceeded, ErrCodeGatewayTimeout, http.StatusGatewayTimeout},
		{"unknown", errors.New("disk on fire"), ErrCodeInternalError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := ToCustomError(tt.err)
			assert.Equal(t, tt.code, ce.Code)
			assert.Equal(t, tt.status, ce.Status)
		})
	}
	assert.Nil(t, ToCustomError(nil))
}

func TestWrappedErrorStillMatches(t *testing.T) {
	err := ErrNotFound.Wrap(errors.New("key Egg"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRecipeNotFound)
}

func TestLocalizedMessage(t *testing.T) {
	assert.Contains(t, LocalizedMessage(ErrCodeEmptyIngredients, LangKorean, ""), "재료")
	assert.Equal(t, "fallback", LocalizedMessage("SOMETHING_ELSE", LangEnglish, "fallback"))
}

func TestFilters(t *testing.T) {
	f := Filters{Cuisine: "korean"}.WithDefaults()
	assert.Equal(t, "korean", f.Cuisine)
	assert.Equal(t, 2, f.Servings)
	assert.NoError(t, ValidateStruct(f))

	f.Servings = 11
	err := ValidateStruct(f)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "Servings")

	f = DefaultFilters()
	f.Cuisine = "martian"
	assert.Error(t, ValidateStruct(f))
}

func TestUserProfileDefaults(t *testing.T) {
	p := UserProfile{}.WithDefaults()
	assert.Equal(t, "Beginner", p.CookingLevel)
	assert.NoError(t, ValidateStruct(p))
}

func TestRecipeCloneIsDeep(t *testing.T) {
	r := &Recipe{
		RecipeOverview: RecipeOverview{Name: "Ramen", IngredientNames: []string{"Noodles"}, MissingIngredientNames: []string{}},
		Detail:         &RecipeDetail{Instructions: []string{"Boil"}},
	}
	c := r.Clone()
	c.IngredientNames[0] = "Rice"
	c.Detail.Instructions[0] = "Fry"
	assert.Equal(t, "Noodles", r.IngredientNames[0])
	assert.Equal(t, "Boil", r.Detail.Instructions[0])
	assert.NotNil(t, c.MissingIngredientNames)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "김치찌개", ShortRecipeName("김치찌개 (Kimchi Jjigae)"))
	assert.Equal(t, "Ramen", ShortRecipeName(" Ramen "))
	assert.Equal(t, RecipeID("Kimchi  Stew", "b1"), RecipeID("kimchi stew", "b1"))
	assert.NotEqual(t, RecipeID("Kimchi Stew", "b1"), RecipeID("Kimchi Stew", "b2"))
	assert.Equal(t, LangKorean, ParseLanguage("KO"))
	assert.Equal(t, LangEnglish, ParseLanguage("fr"))
}

func TestDeadlineWinsOverGenerationFailure(t *testing.T) {
	err := &HydrationFailure{Name: "Ramen", Err: NewGenerationFailure("detail", context.DeadlineExceeded)}
	assert.Equal(t, ErrCodeGatewayTimeout, ToCustomError(err).Code)
}

package generation

import (
	"fmt"
	"strings"

	"ohmycook/internal/core/ai/provider"
	"ohmycook/internal/pkg/common"
)

func joinOrDefault(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// buildOverviewPrompt 第一階段：只要概要，不要步驟與份量
func buildOverviewPrompt(ingredients, priority []string, f common.Filters, lang common.Language, count int) string {
	cuisine := f.Cuisine
	if cuisine == "" || cuisine == "any" {
		cuisine = "Any"
	}
	return fmt.Sprintf(`You are an expert chef creating recipes for the "OhMyCook" app.

CONTEXT:
- User Ingredients: %s.
- Priority Ingredients (Must use if possible): %s.

FILTERS:
- Cuisine: %s
- Servings: %d
- Spiciness: %s
- Difficulty: %s
- Max Cook Time: %d minutes

TASK:
Recommend exactly %d diverse and delicious recipes matching these conditions.
Only propose a recipe if every ingredient the user lacks has a plausible substitute, or list that ingredient under "missingIngredients".

IMPORTANT OUTPUT INSTRUCTIONS:
1. Language: return all user-facing text (recipeName, description, ingredients, missingIngredients) in %s.
2. englishRecipeName is mandatory and always in English.
3. imageSearchQuery: a keyword-focused English query for an image search based on the recipe name (e.g. "kimchi fried rice"). Avoid subjective adjectives.
4. Overview only: for "ingredients" list ONLY names (e.g. "Onion"), no quantities. Do NOT include instructions or substitutions.
5. difficulty is one of Easy, Medium, Hard. spiciness is an integer from 1 to 5.
6. Respond with a JSON object of the form {"recipes": [...]} and nothing else.`,
		joinOrDefault(ingredients, "None"),
		joinOrDefault(priority, "None"),
		cuisine,
		f.Servings,
		f.Spiciness,
		f.Difficulty,
		f.MaxCookTime,
		count,
		lang.TargetName(),
	)
}

// buildDetailPrompt 第二階段：單一食譜的份量、步驟與替代建議
func buildDetailPrompt(recipeName string, ingredients []string, lang common.Language) string {
	return fmt.Sprintf(`You are an expert chef.

CONTEXT:
- Selected Recipe: "%s"
- User Ingredients: %s

TASK:
Provide the detailed cooking information for this recipe.

IMPORTANT OUTPUT INSTRUCTIONS:
1. Language: return all text in %s.
2. ingredients: the full list of ingredients with specific quantities (e.g. "200g Pork", "1/2 Onion", "1 tsp Salt").
3. instructions: detailed, step-by-step cooking instructions.
4. substitutions: if the user is missing any required ingredient based on their list, suggest a specific substitute as {"missing": ..., "substitute": ...}.
5. Respond with a JSON object {"ingredients": [...], "substitutions": [...], "instructions": [...]} and nothing else.`,
		recipeName,
		joinOrDefault(ingredients, "None"),
		lang.TargetName(),
	)
}

const receiptPrompt = `Analyze this receipt image. Extract only the names of the food ingredients purchased. ` +
	`Return the result as a JSON object {"ingredients": [...]} whose array holds strings in English, for example {"ingredients": ["Egg", "Green Onion", "Tofu"]}. ` +
	`Do not include quantities, prices, or any other text.`

// buildChatSystem AI Chef 的系統指示，帶入使用者資料與可選的食譜上下文
func buildChatSystem(p common.UserProfile, lang common.Language, rc *common.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `You are 'AI Chef', a helpful and friendly cooking assistant for the OhMyCook app.

USER PROFILE:
- Cooking Level: %s
- Allergies: %s
- Tools: %s`,
		p.CookingLevel,
		joinOrDefault(p.Allergies, "None"),
		joinOrDefault(p.AvailableTools, "Basic"),
	)
	if len(p.DislikedIngredients) > 0 {
		fmt.Fprintf(&sb, "\n- Disliked Ingredients: %s", strings.Join(p.DislikedIngredients, ", "))
	}
	fmt.Fprintf(&sb, `

INSTRUCTIONS:
- Answer in %s.
- Keep answers concise, friendly, and easy to understand.`, lang.TargetName())

	if rc != nil {
		ingredients := rc.IngredientNames
		var instructions []string
		if rc.Detail != nil {
			if len(rc.Detail.IngredientsWithQuantities) > 0 {
				ingredients = rc.Detail.IngredientsWithQuantities
			}
			instructions = rc.Detail.Instructions
		}
		fmt.Fprintf(&sb, `

CURRENT RECIPE CONTEXT:
Name: %s
Ingredients: %s
Instructions: %s`,
			rc.Name,
			joinOrDefault(ingredients, "Unknown"),
			joinOrDefault(instructions, "Not loaded yet"),
		)
	}
	return sb.String()
}

func stringArray(desc string) *provider.Schema {
	return &provider.Schema{Type: "array", Description: desc, Items: &provider.Schema{Type: "string"}}
}

var overviewSchema = &provider.Schema{
	Type: "object",
	Properties: map[string]*provider.Schema{
		"recipes": {
			Type: "array",
			Items: &provider.Schema{
				Type: "object",
				Properties: map[string]*provider.Schema{
					"recipeName":         {Type: "string", Description: "Creative name of the recipe, in the target language."},
					"englishRecipeName":  {Type: "string", Description: "The English name of the recipe. Mandatory."},
					"description":        {Type: "string", Description: "A short, enticing description in the target language."},
					"cuisine":            {Type: "string"},
					"cookTime":           {Type: "integer", Description: "Estimated cooking time in minutes."},
					"difficulty":         {Type: "string", Enum: []string{"Easy", "Medium", "Hard"}},
					"spiciness":          {Type: "integer", Description: "Spiciness level from 1 to 5."},
					"calories":           {Type: "integer", Description: "Estimated calories per serving."},
					"servings":           {Type: "integer"},
					"ingredients":        stringArray("Main ingredient NAMES only, no quantities. In the target language."),
					"missingIngredients": stringArray("Names of ingredients the user is missing. In the target language."),
					"imageSearchQuery":   {Type: "string", Description: "A concise English image search query focused on main ingredients and dish type."},
				},
				Required: []string{"recipeName", "englishRecipeName", "imageSearchQuery", "description", "cuisine", "cookTime", "difficulty", "spiciness", "calories", "servings", "ingredients"},
			},
		},
	},
	Required: []string{"recipes"},
}

var detailSchema = &provider.Schema{
	Type: "object",
	Properties: map[string]*provider.Schema{
		"ingredients": stringArray("Ingredients with specific QUANTITIES. In the target language."),
		"substitutions": {
			Type: "array",
			Items: &provider.Schema{
				Type: "object",
				Properties: map[string]*provider.Schema{
					"missing":    {Type: "string"},
					"substitute": {Type: "string"},
				},
				Required: []string{"missing", "substitute"},
			},
		},
		"instructions": stringArray("Step-by-step cooking instructions in the target language."),
	},
	Required: []string{"ingredients", "instructions"},
}

var receiptSchema = &provider.Schema{
	Type: "object",
	Properties: map[string]*provider.Schema{
		"ingredients": stringArray("Ingredient names in English."),
	},
	Required: []string{"ingredients"},
}

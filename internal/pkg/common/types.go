package common

import (
	"strings"
)

// Language 介面語言
type Language string

const (
	LangEnglish Language = "en"
	LangKorean  Language = "ko"
)

// ParseLanguage 解析語言代碼，未知時回退為英文
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ko", "kr", "ko-kr":
		return LangKorean
	default:
		return LangEnglish
	}
}

// TargetName 提示詞中使用的語言名稱
func (l Language) TargetName() string {
	if l == LangKorean {
		return "Korean"
	}
	return "English"
}

// Category 食材分類
type Category string

const (
	CategoryVegetables  Category = "vegetables"
	CategoryFruits      Category = "fruits"
	CategoryMeat        Category = "meat"
	CategorySeafood     Category = "seafood"
	CategoryGrainsCarbs Category = "grainsCarbs"
	CategoryDairy       Category = "dairy"
	CategorySeasoning   Category = "seasoning"
	CategoryNutsSeeds   Category = "nutsSeeds"
	CategoryOthers      Category = "others"
)

// CategoryOrder 分類的固定呈現順序
var CategoryOrder = []Category{
	CategoryVegetables,
	CategoryFruits,
	CategoryMeat,
	CategorySeafood,
	CategoryGrainsCarbs,
	CategoryDairy,
	CategorySeasoning,
	CategoryNutsSeeds,
	CategoryOthers,
}

// Translations 雙語顯示名稱
type Translations struct {
	EN string `json:"en"`
	KO string `json:"ko"`
}

// Get 依語言取得名稱
func (t Translations) Get(lang Language) string {
	if lang == LangKorean {
		return t.KO
	}
	return t.EN
}

// IngredientEntry 食材目錄條目
type IngredientEntry struct {
	CanonicalKey string       `json:"canonicalKey"`
	Translations Translations `json:"translations"`
	Category     Category     `json:"category"`
	Emoji        string       `json:"emoji"`
}

// Ingredient 使用者持有的食材
type Ingredient struct {
	CanonicalKey string `json:"canonicalKey"`
	Quantity     string `json:"quantity"`
}

// Difficulty 難度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// NormalizeDifficulty 將模型輸出的難度正規化
func NormalizeDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// RecipeOverview 食譜概要（第一階段）
type RecipeOverview struct {
	Name                   string     `json:"recipeName"`
	EnglishName            string     `json:"englishRecipeName"`
	Description            string     `json:"description"`
	Cuisine                string     `json:"cuisine"`
	CookTimeMinutes        int        `json:"cookTime"`
	Difficulty             Difficulty `json:"difficulty"`
	Spiciness              int        `json:"spiciness"`
	Calories               int        `json:"calories"`
	Servings               int        `json:"servings"`
	IngredientNames        []string   `json:"ingredients"`
	MissingIngredientNames []string   `json:"missingIngredients"`
	ImageSearchQuery       string     `json:"imageSearchQuery"`
	ImageURL               string     `json:"imageUrl,omitempty"`
}

// Substitution 缺少食材的替代建議
type Substitution struct {
	Missing    string `json:"missing"`
	Substitute string `json:"substitute"`
}

// RecipeDetail 食譜詳細內容（第二階段）
type RecipeDetail struct {
	IngredientsWithQuantities []string       `json:"ingredientsWithQuantities"`
	Substitutions             []Substitution `json:"substitutions"`
	Instructions              []string       `json:"instructions"`
}

// HydrationState 詳細內容載入狀態
type HydrationState string

const (
	HydrationPending  HydrationState = "pending"
	HydrationHydrated HydrationState = "hydrated"
)

// Recipe 概要加上可選的詳細內容
type Recipe struct {
	RecipeOverview
	ID             string         `json:"id"`
	BatchID        string         `json:"batchId"`
	HydrationState HydrationState `json:"hydrationState"`
	Detail         *RecipeDetail  `json:"detail,omitempty"`
}

// IsHydrated 是否已載入詳細內容
func (r *Recipe) IsHydrated() bool {
	return r.HydrationState == HydrationHydrated && r.Detail != nil
}

// Clone 深拷貝，避免呼叫端修改快取內容
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	out := *r
	out.IngredientNames = cloneStrings(r.IngredientNames)
	out.MissingIngredientNames = cloneStrings(r.MissingIngredientNames)
	if r.Detail != nil {
		d := RecipeDetail{
			IngredientsWithQuantities: cloneStrings(r.Detail.IngredientsWithQuantities),
			Instructions:              cloneStrings(r.Detail.Instructions),
		}
		if r.Detail.Substitutions != nil {
			d.Substitutions = make([]Substitution, len(r.Detail.Substitutions))
			copy(d.Substitutions, r.Detail.Substitutions)
		}
		out.Detail = &d
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ChatRole 對話角色
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// GeneralContextKey 一般對話的上下文鍵
const GeneralContextKey = "__general__"

// ChatMessage 對話訊息
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// ChatContext 一個上下文鍵下的對話紀錄
type ChatContext struct {
	Key      string        `json:"key"`
	Messages []ChatMessage `json:"messages"`
}

// Filters 推薦條件
type Filters struct {
	Cuisine     string `json:"cuisine" validate:"oneof=any korean japanese chinese western"`
	Servings    int    `json:"servings" validate:"min=1,max=10"`
	Spiciness   string `json:"spiciness" validate:"oneof=mild medium spicy"`
	Difficulty  string `json:"difficulty" validate:"oneof=easy medium hard"`
	MaxCookTime int    `json:"maxCookTime" validate:"min=5,max=240"`
}

// DefaultFilters 預設推薦條件
func DefaultFilters() Filters {
	return Filters{
		Cuisine:     "any",
		Servings:    2,
		Spiciness:   "medium",
		Difficulty:  "medium",
		MaxCookTime: 45,
	}
}

// WithDefaults 以預設值補齊未填欄位
func (f Filters) WithDefaults() Filters {
	d := DefaultFilters()
	if f.Cuisine == "" {
		f.Cuisine = d.Cuisine
	}
	if f.Servings == 0 {
		f.Servings = d.Servings
	}
	if f.Spiciness == "" {
		f.Spiciness = d.Spiciness
	}
	if f.Difficulty == "" {
		f.Difficulty = d.Difficulty
	}
	if f.MaxCookTime == 0 {
		f.MaxCookTime = d.MaxCookTime
	}
	return f
}

// UserProfile 對話時使用的使用者資料
type UserProfile struct {
	CookingLevel        string   `json:"cookingLevel" validate:"oneof=Beginner Intermediate Advanced"`
	Allergies           []string `json:"allergies"`
	PreferredCuisines   []string `json:"preferredCuisines"`
	DislikedIngredients []string `json:"dislikedIngredients"`
	AvailableTools      []string `json:"availableTools"`
	SpicinessPreference int      `json:"spicinessPreference" validate:"min=1,max=5"`
	MaxCookTime         int      `json:"maxCookTime" validate:"min=5,max=240"`
}

// WithDefaults 以預設值補齊使用者資料
func (p UserProfile) WithDefaults() UserProfile {
	if p.CookingLevel == "" {
		p.CookingLevel = "Beginner"
	}
	if p.SpicinessPreference == 0 {
		p.SpicinessPreference = 3
	}
	if p.MaxCookTime == 0 {
		p.MaxCookTime = 30
	}
	return p
}

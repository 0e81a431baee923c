package common

// 錯誤代碼對應的在地化訊息
var localizedMessages = map[string]Translations{
	ErrCodeEmptyIngredients: {
		EN: "Add at least one ingredient to get recipe recommendations.",
		KO: "레시피를 추천받으려면 재료를 하나 이상 추가해 주세요.",
	},
	ErrCodeGenerationFailure: {
		EN: "Something went wrong while talking to the AI chef. Please try again.",
		KO: "AI 셰프와 통신하는 중 문제가 발생했습니다. 다시 시도해 주세요.",
	},
	ErrCodeHydrationFailure: {
		EN: "Could not load the recipe details. Please try again.",
		KO: "레시피 상세 정보를 불러오지 못했습니다. 다시 시도해 주세요.",
	},
	ErrCodeRecipeNotFound: {
		EN: "That recipe is no longer in your recommendations.",
		KO: "해당 레시피를 추천 목록에서 찾을 수 없습니다.",
	},
	ErrCodeBatchSuperseded: {
		EN: "Your recommendations were reset. Please try again.",
		KO: "추천 목록이 초기화되었습니다. 다시 시도해 주세요.",
	},
	ErrCodeInvalidRequest: {
		EN: "The request is invalid.",
		KO: "잘못된 요청입니다.",
	},
	"INVALID_IMAGE_FORMAT": {
		EN: "Unsupported image. Please upload a JPEG, PNG, GIF or WebP photo.",
		KO: "지원하지 않는 이미지입니다. JPEG, PNG, GIF, WebP 사진을 올려 주세요.",
	},
	"INVALID_IMAGE_SIZE": {
		EN: "The image is too large.",
		KO: "이미지 용량이 너무 큽니다.",
	},
	ErrCodeTooManyRequests: {
		EN: "Too many requests. Please slow down.",
		KO: "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
	},
	ErrCodeGatewayTimeout: {
		EN: "The request took too long. Please try again.",
		KO: "요청 시간이 초과되었습니다. 다시 시도해 주세요.",
	},
}

// LocalizedMessage 取得錯誤代碼的使用者訊息，沒有對應時使用 fallback
func LocalizedMessage(code string, lang Language, fallback string) string {
	if t, ok := localizedMessages[code]; ok {
		return t.Get(lang)
	}
	return fallback
}

// ChatGreeting 從食譜卡片進入對話時的問候語
func ChatGreeting(recipeName string, lang Language) string {
	if lang == LangKorean {
		return "안녕하세요! \"" + recipeName + "\"에 대해 무엇이든 물어보세요. 재료 대체, 조리 팁, 단계별 도움을 드릴게요."
	}
	return "Hi! Ask me anything about \"" + recipeName + "\". I can help with substitutions, cooking tips, or any step of the recipe."
}

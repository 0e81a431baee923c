package catalog

import "ohmycook/internal/pkg/common"

func entry(en, ko string, cat common.Category, emoji string) common.IngredientEntry {
	return common.IngredientEntry{
		CanonicalKey: en,
		Translations: common.Translations{EN: en, KO: ko},
		Category:     cat,
		Emoji:        emoji,
	}
}

// ingredientData 食材目錄，鍵為英文正式名稱。只能追加，不可修改既有鍵。
var ingredientData = []common.IngredientEntry{
	// Vegetables
	entry("Onion", "양파", common.CategoryVegetables, "🧅"),
	entry("Garlic", "마늘", common.CategoryVegetables, "🧄"),
	entry("Green Onion", "대파", common.CategoryVegetables, "🌱"),
	entry("Potato", "감자", common.CategoryVegetables, "🥔"),
	entry("Carrot", "당근", common.CategoryVegetables, "🥕"),
	entry("Bell Pepper", "파프리카", common.CategoryVegetables, "🫑"),
	entry("Cabbage", "양배추", common.CategoryVegetables, "🥬"),
	entry("Lettuce", "상추", common.CategoryVegetables, "🥬"),
	entry("Spinach", "시금치", common.CategoryVegetables, "🥬"),
	entry("Kale", "케일", common.CategoryVegetables, "🥬"),
	entry("Broccoli", "브로콜리", common.CategoryVegetables, "🥦"),
	entry("Cauliflower", "콜리플라워", common.CategoryVegetables, "🥦"),
	entry("Zucchini", "애호박", common.CategoryVegetables, "🥒"),
	entry("Eggplant", "가지", common.CategoryVegetables, "🍆"),
	entry("Tomato", "토마토", common.CategoryVegetables, "🍅"),
	entry("Cucumber", "오이", common.CategoryVegetables, "🥒"),
	entry("Mushroom", "버섯", common.CategoryVegetables, "🍄"),
	entry("Radish", "무", common.CategoryVegetables, "🥕"),
	entry("Sweet Potato", "고구마", common.CategoryVegetables, "🍠"),
	entry("Pumpkin", "호박", common.CategoryVegetables, "🎃"),
	entry("Asparagus", "아스파라거스", common.CategoryVegetables, "🌿"),
	entry("Celery", "샐러리", common.CategoryVegetables, "🌿"),
	entry("Leek", "부추", common.CategoryVegetables, "🌿"),
	entry("Bean Sprouts", "콩나물", common.CategoryVegetables, "🌱"),
	entry("Kimchi", "김치", common.CategoryVegetables, "🥬"),
	entry("Coriander", "고수", common.CategoryVegetables, "🌿"),

	// Fruits
	entry("Apple", "사과", common.CategoryFruits, "🍎"),
	entry("Banana", "바나나", common.CategoryFruits, "🍌"),
	entry("Lemon", "레몬", common.CategoryFruits, "🍋"),
	entry("Lime", "라임", common.CategoryFruits, "🍋"),
	entry("Orange", "오렌지", common.CategoryFruits, "🍊"),
	entry("Avocado", "아보카도", common.CategoryFruits, "🥑"),
	entry("Strawberry", "딸기", common.CategoryFruits, "🍓"),
	entry("Blueberry", "블루베리", common.CategoryFruits, "🫐"),

	// Meat
	entry("Chicken Breast", "닭가슴살", common.CategoryMeat, "🍗"),
	entry("Chicken Thigh", "닭다리살", common.CategoryMeat, "🍗"),
	entry("Pork Belly", "삼겹살", common.CategoryMeat, "🥓"),
	entry("Pork Loin", "돼지 등심", common.CategoryMeat, "🥩"),
	entry("Beef Sirloin", "소고기 등심", common.CategoryMeat, "🥩"),
	entry("Ground Beef", "다진 소고기", common.CategoryMeat, "🥩"),
	entry("Ground Pork", "다진 돼지고기", common.CategoryMeat, "🥩"),
	entry("Sausage", "소시지", common.CategoryMeat, "🌭"),
	entry("Bacon", "베이컨", common.CategoryMeat, "🥓"),
	entry("Ham", "햄", common.CategoryMeat, "🍖"),
	entry("Tofu", "두부", common.CategoryMeat, "🧈"),
	entry("Egg", "계란", common.CategoryMeat, "🥚"),

	// Seafood
	entry("Shrimp", "새우", common.CategorySeafood, "🦐"),
	entry("Salmon", "연어", common.CategorySeafood, "🐟"),
	entry("Tuna", "참치", common.CategorySeafood, "🐟"),
	entry("Squid", "오징어", common.CategorySeafood, "🦑"),
	entry("Clams", "조개", common.CategorySeafood, "🦪"),

	// Grains & Carbs
	entry("Rice", "밥", common.CategoryGrainsCarbs, "🍚"),
	entry("Pasta", "파스타", common.CategoryGrainsCarbs, "🍝"),
	entry("Bread", "빵", common.CategoryGrainsCarbs, "🍞"),
	entry("Flour", "밀가루", common.CategoryGrainsCarbs, "🌾"),
	entry("Noodles", "국수", common.CategoryGrainsCarbs, "🍜"),
	entry("Ramen Noodles", "라면", common.CategoryGrainsCarbs, "🍜"),
	entry("Rice Cakes (Tteok)", "떡", common.CategoryGrainsCarbs, "🍡"),
	entry("Oats", "오트밀", common.CategoryGrainsCarbs, "🥣"),
	entry("Quinoa", "퀴노아", common.CategoryGrainsCarbs, "🌾"),
	entry("Corn", "옥수수", common.CategoryGrainsCarbs, "🌽"),

	// Dairy & Alternatives
	entry("Milk", "우유", common.CategoryDairy, "🥛"),
	entry("Cheese", "치즈", common.CategoryDairy, "🧀"),
	entry("Cheddar Cheese", "체다 치즈", common.CategoryDairy, "🧀"),
	entry("Mozzarella Cheese", "모짜렐라 치즈", common.CategoryDairy, "🧀"),
	entry("Parmesan Cheese", "파마산 치즈", common.CategoryDairy, "🧀"),
	entry("Yogurt", "요거트", common.CategoryDairy, "🥛"),
	entry("Butter", "버터", common.CategoryDairy, "🧈"),
	entry("Heavy Cream", "생크림", common.CategoryDairy, "🥛"),
	entry("Sour Cream", "사워크림", common.CategoryDairy, "🥛"),
	entry("Cream Cheese", "크림치즈", common.CategoryDairy, "🧀"),
	entry("Soy Milk", "두유", common.CategoryDairy, "🥛"),
	entry("Almond Milk", "아몬드 우유", common.CategoryDairy, "🥛"),

	// Spices & Sauces
	entry("Salt", "소금", common.CategorySeasoning, "🧂"),
	entry("Black Pepper", "후추", common.CategorySeasoning, "🌶️"),
	entry("Sugar", "설탕", common.CategorySeasoning, "🍬"),
	entry("Brown Sugar", "흑설탕", common.CategorySeasoning, "🍬"),
	entry("Honey", "꿀", common.CategorySeasoning, "🍯"),
	entry("Olive Oil", "올리브 오일", common.CategorySeasoning, "🫒"),
	entry("Vegetable Oil", "식용유", common.CategorySeasoning, "🛢️"),
	entry("Sesame Oil", "참기름", common.CategorySeasoning, "🛢️"),
	entry("Soy Sauce", "간장", common.CategorySeasoning, "🍶"),
	entry("Vinegar", "식초", common.CategorySeasoning, "🍶"),
	entry("Gochujang (Korean Chili Paste)", "고추장", common.CategorySeasoning, "🌶️"),
	entry("Doenjang (Soybean Paste)", "된장", common.CategorySeasoning, "🥣"),
	entry("Gochugaru (Chili Powder)", "고춧가루", common.CategorySeasoning, "🌶️"),
	entry("Ketchup", "케첩", common.CategorySeasoning, "🍅"),
	entry("Mayonnaise", "마요네즈", common.CategorySeasoning, "🥚"),
	entry("Mustard", "머스타드", common.CategorySeasoning, "🟡"),
	entry("Chili Flakes", "칠리 플레이크", common.CategorySeasoning, "🌶️"),
	entry("Paprika", "파프리카 가루", common.CategorySeasoning, "🌶️"),
	entry("Cumin", "큐민", common.CategorySeasoning, "🌿"),
	entry("Turmeric", "강황", common.CategorySeasoning, "🟠"),
	entry("Ginger", "생강", common.CategorySeasoning, "🫚"),
	entry("Rosemary", "로즈마리", common.CategorySeasoning, "🌿"),
	entry("Thyme", "타임", common.CategorySeasoning, "🌿"),
	entry("Basil", "바질", common.CategorySeasoning, "🌿"),
	entry("Oregano", "오레가노", common.CategorySeasoning, "🌿"),
	entry("Cinnamon", "계피", common.CategorySeasoning, "🪵"),
	entry("Nutmeg", "넛맥", common.CategorySeasoning, "🌰"),
	entry("Fish Sauce", "액젓", common.CategorySeasoning, "🐟"),
	entry("Oyster Sauce", "굴소스", common.CategorySeasoning, "🦪"),
	entry("Mirin", "미림", common.CategorySeasoning, "🍶"),

	// Nuts & Seeds
	entry("Almonds", "아몬드", common.CategoryNutsSeeds, "🌰"),
	entry("Walnuts", "호두", common.CategoryNutsSeeds, "🌰"),
	entry("Peanuts", "땅콩", common.CategoryNutsSeeds, "🥜"),
	entry("Sesame Seeds", "참깨", common.CategoryNutsSeeds, "🌾"),
	entry("Chia Seeds", "치아씨드", common.CategoryNutsSeeds, "🌾"),

	// Others
	entry("Seaweed (Gim)", "김", common.CategoryOthers, "🌊"),
}

// commonIngredients 新使用者的常用食材
var commonIngredients = []string{
	"Onion", "Garlic", "Green Onion", "Potato", "Carrot",
	"Egg", "Tofu",
	"Rice", "Flour",
	"Milk", "Cheese", "Butter",
	"Salt", "Black Pepper", "Sugar", "Olive Oil", "Soy Sauce",
}

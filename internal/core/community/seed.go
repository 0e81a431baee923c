package community

import "ohmycook/internal/pkg/common"

func seeded(name, english, description, cuisine string, cookTime int, difficulty common.Difficulty, spiciness, calories, servings int, ingredients, instructions []string) *common.Recipe {
	return &common.Recipe{
		RecipeOverview: common.RecipeOverview{
			Name:                   name,
			EnglishName:            english,
			Description:            description,
			Cuisine:                cuisine,
			CookTimeMinutes:        cookTime,
			Difficulty:             difficulty,
			Spiciness:              spiciness,
			Calories:               calories,
			Servings:               servings,
			IngredientNames:        ingredients,
			MissingIngredientNames: []string{},
			ImageSearchQuery:       english,
		},
		ID:             common.RecipeID(english, "community"),
		BatchID:        "community",
		HydrationState: common.HydrationHydrated,
		Detail: &common.RecipeDetail{
			IngredientsWithQuantities: ingredients,
			Substitutions:             []common.Substitution{},
			Instructions:              instructions,
		},
	}
}

var popularSeed = []*common.Recipe{
	seeded("김치찌개 (Kimchi Jjigae)", "Kimchi Jjigae",
		"A classic Korean stew made with kimchi and other ingredients, such as pork, tofu, and green onions.",
		"Korean", 30, common.DifficultyMedium, 4, 450, 2,
		[]string{"Kimchi", "Pork Belly", "Tofu", "Green Onion", "Onion", "Garlic", "Gochujang (Korean Chili Paste)", "Gochugaru (Chili Powder)", "Soy Sauce", "Sugar", "Water"},
		[]string{
			"Cut the pork belly and kimchi into bite-sized pieces.",
			"In a pot, stir-fry the pork belly until it's slightly browned.",
			"Add the kimchi and continue to stir-fry for a few minutes until it softens.",
			"Add water, gochujang, gochugaru, soy sauce, and sugar. Bring to a boil.",
			"Reduce the heat and let it simmer for 15-20 minutes.",
			"Add tofu, onion, and garlic. Cook for another 5 minutes.",
			"Garnish with chopped green onions before serving.",
		}),
	seeded("크림 파스타 (Cream Pasta)", "Cream Pasta",
		"A rich and creamy pasta dish made with heavy cream, Parmesan cheese, and bacon.",
		"Western", 25, common.DifficultyEasy, 1, 600, 2,
		[]string{"Pasta", "Heavy Cream", "Bacon", "Onion", "Garlic", "Parmesan Cheese", "Olive Oil", "Salt", "Black Pepper"},
		[]string{
			"Cook the pasta according to package directions. Drain and set aside.",
			"While the pasta is cooking, heat olive oil in a pan over medium heat.",
			"Add chopped bacon and cook until crispy. Remove from pan and set aside.",
			"In the same pan, sauté chopped onion and minced garlic until softened.",
			"Pour in the heavy cream and bring to a simmer. Let it thicken slightly.",
			"Stir in the Parmesan cheese, salt, and pepper.",
			"Add the cooked pasta and bacon back to the pan. Toss to coat everything in the sauce.",
			"Serve immediately, garnished with more Parmesan cheese if desired.",
		}),
	seeded("라면 (Ramen)", "Ramen",
		"A simple yet satisfying instant noodle dish, customizable with your favorite toppings.",
		"Japanese", 20, common.DifficultyEasy, 3, 500, 1,
		[]string{"Ramen Noodles", "Egg", "Green Onion", "Mushroom"},
		[]string{
			"Bring 2 cups of water to a boil in a small pot.",
			"Add the ramen noodles and the soup base packet. Cook for 3-4 minutes.",
			"While the noodles are cooking, slice the green onions and mushrooms.",
			"In the last minute of cooking, crack an egg directly into the pot.",
			"You can either stir the egg to create ribbons or let it poach whole.",
			"Transfer the ramen to a bowl and top with green onions and mushrooms.",
			"Serve hot.",
		}),
	seeded("김치볶음밥 (Kimchi Fried Rice)", "Kimchi Fried Rice",
		"A popular Korean fried rice dish made with kimchi, rice, and other ingredients.",
		"Korean", 15, common.DifficultyEasy, 3, 550, 1,
		[]string{"Rice", "Kimchi", "Pork Belly", "Egg", "Green Onion", "Sesame Oil", "Soy Sauce"},
		[]string{
			"Chop kimchi and pork belly into small pieces.",
			"Heat a pan with oil and stir-fry the pork belly.",
			"Add kimchi and cook until it's slightly softened.",
			"Add cooked rice to the pan and break it up with a spoon.",
			"Stir-fry everything together, adding soy sauce for seasoning.",
			"Drizzle sesame oil and mix well. Remove from heat.",
			"In a separate pan, make a sunny-side-up fried egg.",
			"Serve the fried rice with the egg on top and garnish with chopped green onions.",
		}),
	seeded("야채볶음 (Vegetable Stir-fry)", "Vegetable Stir-fry",
		"A quick and healthy stir-fry with a variety of colorful vegetables.",
		"Chinese", 20, common.DifficultyEasy, 1, 300, 2,
		[]string{"Broccoli", "Carrot", "Bell Pepper", "Onion", "Mushroom", "Garlic", "Soy Sauce", "Oyster Sauce", "Vegetable Oil"},
		[]string{
			"Chop all vegetables into bite-sized pieces.",
			"Heat vegetable oil in a large pan or wok over high heat.",
			"Add garlic and stir-fry for 30 seconds until fragrant.",
			"Add the harder vegetables first, like carrots and broccoli. Stir-fry for 2-3 minutes.",
			"Add the remaining vegetables (bell pepper, onion, mushrooms) and continue to stir-fry for another 3-4 minutes until tender-crisp.",
			"In a small bowl, mix soy sauce and oyster sauce. Pour over the vegetables.",
			"Toss everything together to coat well. Cook for 1 more minute.",
			"Serve immediately with rice.",
		}),
	seeded("비빔밥 (Bibimbap)", "Bibimbap",
		"A Korean mixed rice dish topped with assorted seasoned vegetables, meat, and a fried egg.",
		"Korean", 20, common.DifficultyMedium, 2, 650, 2,
		[]string{"Rice", "Spinach", "Carrot", "Bean Sprouts", "Ground Beef", "Egg", "Gochujang (Korean Chili Paste)", "Sesame Oil", "Soy Sauce", "Garlic"},
		[]string{
			"Cook the ground beef with soy sauce and garlic. Set aside.",
			"Blanch the spinach and bean sprouts separately. Squeeze out excess water and season with salt and sesame oil.",
			"Julienne the carrot and sauté lightly in a pan.",
			"Fry two eggs sunny-side-up.",
			"Assemble the bibimbap: place a serving of warm rice in a bowl.",
			"Arrange the seasoned vegetables and cooked beef neatly on top of the rice.",
			"Place the fried egg in the center.",
			"Serve with a side of gochujang and a drizzle of sesame oil. Mix everything together before eating.",
		}),
}

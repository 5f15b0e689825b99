// Package plan provides the application layer for meal plan
// generation: the fallback builder, the draft normalizer, and the
// service orchestrating both around the model completion client.
package plan

import "github.com/mealkit/v1/internal/domain/plan"

// MealTemplate is a fixed meal definition used only by the fallback
// path. Macro numbers are literals, not computed from ingredients.
type MealTemplate struct {
	Name         string
	Description  string
	Ingredients  []string
	Instructions []string
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
}

var breakfastTemplates = []MealTemplate{
	{
		Name:        "Garden Veggie Scramble",
		Description: "Egg scramble with seasonal vegetables and herbs.",
		Ingredients: []string{"Eggs", "Spinach", "Cherry tomatoes", "Fresh herbs", "Whole grain toast"},
		Instructions: []string{
			"Saute spinach and tomatoes with olive oil.",
			"Whisk eggs with herbs and cook until just set.",
			"Serve with toasted whole grain bread.",
		},
		Calories: 420, Protein: 28, Carbs: 38, Fat: 18,
	},
	{
		Name:        "Protein Oat Bowl",
		Description: "Warm oats topped with nut butter and fruit.",
		Ingredients: []string{"Rolled oats", "Almond milk", "Chia seeds", "Banana", "Almond butter"},
		Instructions: []string{
			"Simmer oats with almond milk until creamy.",
			"Stir in chia seeds for extra fiber.",
			"Top with sliced banana and almond butter.",
		},
		Calories: 390, Protein: 17, Carbs: 52, Fat: 14,
	},
	{
		Name:        "Greek Yogurt Parfait",
		Description: "Creamy yogurt layered with fruit and crunch.",
		Ingredients: []string{"Plain Greek yogurt", "Mixed berries", "Granola", "Honey", "Pumpkin seeds"},
		Instructions: []string{
			"Layer yogurt and berries in a glass.",
			"Sprinkle granola and pumpkin seeds between layers.",
			"Finish with a light drizzle of honey.",
		},
		Calories: 360, Protein: 24, Carbs: 42, Fat: 11,
	},
}

var lunchTemplates = []MealTemplate{
	{
		Name:        "Roasted Veggie Grain Bowl",
		Description: "Foundation of grains topped with hearty roasted vegetables.",
		Ingredients: []string{"Quinoa", "Roasted sweet potato", "Chickpeas", "Kale", "Lemon tahini sauce"},
		Instructions: []string{
			"Cook quinoa until fluffy.",
			"Roast sweet potato and chickpeas with spices.",
			"Massage kale with lemon tahini sauce and assemble the bowl.",
		},
		Calories: 540, Protein: 22, Carbs: 68, Fat: 18,
	},
	{
		Name:        "Mediterranean Pita Stack",
		Description: "Layered pita with hummus and crisp produce.",
		Ingredients: []string{"Whole wheat pita", "Hummus", "Cucumber", "Cherry tomatoes", "Feta", "Olives"},
		Instructions: []string{
			"Warm pita and spread with hummus.",
			"Top with chopped cucumber, tomatoes, olives, and feta.",
			"Finish with a squeeze of lemon.",
		},
		Calories: 480, Protein: 20, Carbs: 54, Fat: 18,
	},
	{
		Name:        "Hearty Lentil Soup",
		Description: "Comforting soup packed with legumes and vegetables.",
		Ingredients: []string{"Green lentils", "Carrots", "Celery", "Vegetable broth", "Bay leaf"},
		Instructions: []string{
			"Saute aromatics in olive oil.",
			"Add lentils, broth, and bay leaf then simmer until tender.",
			"Season to taste and serve with a squeeze of lemon.",
		},
		Calories: 410, Protein: 24, Carbs: 48, Fat: 10,
	},
}

var dinnerTemplates = []MealTemplate{
	{
		Name:        "Tofu Stir-Fry",
		Description: "Quick stir-fry with colorful vegetables and tofu.",
		Ingredients: []string{"Firm tofu", "Broccoli florets", "Bell peppers", "Snap peas", "Brown rice", "Soy-ginger sauce"},
		Instructions: []string{
			"Press and cube tofu then sear until golden.",
			"Stir-fry vegetables until crisp-tender.",
			"Toss with sauce and serve over cooked brown rice.",
		},
		Calories: 560, Protein: 32, Carbs: 62, Fat: 18,
	},
	{
		Name:        "Stuffed Portobello Caps",
		Description: "Portobello mushrooms filled with quinoa and greens.",
		Ingredients: []string{"Portobello caps", "Quinoa", "Spinach", "Sun-dried tomatoes", "Goat cheese"},
		Instructions: []string{
			"Roast the mushroom caps until tender.",
			"Combine cooked quinoa with sauteed spinach and tomatoes.",
			"Fill caps, crumble goat cheese on top, and bake briefly.",
		},
		Calories: 500, Protein: 24, Carbs: 44, Fat: 22,
	},
	{
		Name:        "Coconut Chickpea Curry",
		Description: "Comforting curry finished with coconut milk and lime.",
		Ingredients: []string{"Chickpeas", "Coconut milk", "Diced tomatoes", "Spinach", "Brown basmati rice"},
		Instructions: []string{
			"Simmer aromatics with curry spices.",
			"Add chickpeas, tomatoes, and coconut milk then cook until thickened.",
			"Fold in spinach and serve over rice.",
		},
		Calories: 540, Protein: 18, Carbs: 66, Fat: 20,
	},
}

// TemplateFor selects the template for a meal type and day index.
// Selection is a round-robin over the fixed set, so identical inputs
// always pick the same template.
func TemplateFor(mealType plan.MealType, dayIndex int) MealTemplate {
	var set []MealTemplate
	switch mealType {
	case plan.MealTypeBreakfast:
		set = breakfastTemplates
	case plan.MealTypeLunch:
		set = lunchTemplates
	default:
		set = dinnerTemplates
	}
	return set[dayIndex%len(set)]
}

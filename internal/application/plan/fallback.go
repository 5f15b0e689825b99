package plan

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mealkit/v1/internal/domain/plan"
)

// Fixed weekly totals for the fallback path. These are deliberate
// approximations, not sums of the generated meals.
const (
	fallbackDailyCalories = 1850
	fallbackDailyProtein  = 90
	fallbackDailyCarbs    = 210
	fallbackDailyFat      = 60
	fallbackDailyFiber    = 28
	fallbackDailyIron     = 18
)

// Budget category shares of max(weeklyBudget, 75). The four shares are
// rounded independently and need not re-sum to the base budget.
var budgetShares = []struct {
	Category string
	Share    float64
}{
	{"produce", 0.40},
	{"pantry", 0.25},
	{"protein", 0.20},
	{"other", 0.15},
}

const minFallbackBudget = 75

var defaultSnacks = []string{
	"Fresh fruit cup",
	"Roasted chickpeas",
	"Veggie sticks with hummus",
}

var defaultPantryItems = []string{"Olive oil", "Mixed herbs", "Rolled oats"}

const shoppingListCap = 40

// BuildFallback assembles a complete, invariant-satisfying document
// from the normalized preferences and the template catalog alone. It
// performs no external calls and cannot fail on well-formed input.
// Identity and timestamps are left zero for the repository to assign.
func BuildFallback(prefs plan.Preferences, startDate time.Time, title string) *plan.Document {
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("%s 7-Day Meal Plan", prefs.FitnessGoal)
	}

	doc := &plan.Document{
		Title:       title,
		StartDate:   startDate,
		TimeZoneID:  prefs.TimeZoneID,
		Preferences: prefs,
		Days:        make([]plan.MealDay, 0, plan.DaysPerPlan),
		Meta: plan.MealPlanMeta{
			Summary: fmt.Sprintf(
				"Balanced vegetarian schedule focused on %s to support %s goals.",
				prefs.NutritionFocus, strings.ToLower(prefs.FitnessGoal),
			),
			PrimaryFocus:    prefs.FitnessGoal,
			DailyHighlights: map[string]string{},
			WeeklyTotals: plan.MealNutrition{
				Calories: plan.DaysPerPlan * fallbackDailyCalories,
				Protein:  plan.DaysPerPlan * fallbackDailyProtein,
				Carbs:    plan.DaysPerPlan * fallbackDailyCarbs,
				Fat:      plan.DaysPerPlan * fallbackDailyFat,
				Micros: plan.FlexFloatMap{
					"fiber": plan.DaysPerPlan * fallbackDailyFiber,
					"iron":  plan.DaysPerPlan * fallbackDailyIron,
				},
			},
		},
		Shopping: plan.ShoppingPlanner{
			Items:        []plan.ShoppingItem{},
			PantryChecks: []string{},
			BatchCookingIdeas: []string{
				"Batch roast vegetables for two days of lunches.",
				"Cook double portions of grains for quick dinners.",
				"Prepare smoothie packs to blend in the morning.",
			},
		},
		Budget: plan.BudgetPlanner{
			EstimatedTotal: plan.FlexFloat(prefs.WeeklyBudget),
			CategoryTotals: plan.FlexFloatMap{},
			SavingsTip:     "Buy frozen vegetables and bulk grains to stretch the budget.",
		},
		Prep: plan.PrepScheduler{
			WeekendPrep: []string{
				"Roast trays of chickpeas and sweet potatoes for bowls.",
				"Cook quinoa and brown rice for quick reheats.",
				"Blend a citrus herb dressing for salads.",
			},
			DailyQuickPrep: []string{
				"Set oats to soak overnight for ready breakfasts.",
				"Pre-chop vegetables after dinner for the next day.",
			},
			LeftoverIdeas: []string{
				"Turn extra quinoa into a breakfast parfait with berries.",
				"Blend leftover roasted vegetables into soup.",
			},
		},
		Pantry: plan.PantrySnapshot{
			PantryItems: []string{},
			LowStockAlerts: []string{
				"Check olive oil level",
				"Restock garlic powder",
			},
			IngredientSwaps: []string{
				"Swap quinoa for brown rice when desired",
				"Use black beans instead of chickpeas for variety",
			},
		},
		CookingTips: []string{
			"Group chopping tasks to cover several meals at once.",
			"Season with fresh herbs and citrus to keep flavors bright.",
			"Store snack portions in clear containers for easy grabs.",
		},
	}

	if len(prefs.FavoriteIngredients) > 0 {
		doc.Pantry.PantryItems = append(doc.Pantry.PantryItems, prefs.FavoriteIngredients...)
	} else {
		doc.Pantry.PantryItems = append(doc.Pantry.PantryItems, defaultPantryItems...)
	}

	budget := math.Max(prefs.WeeklyBudget, minFallbackBudget)
	for _, s := range budgetShares {
		doc.Budget.CategoryTotals[s.Category] = plan.FlexFloat(round2(budget * s.Share))
	}

	snacks := buildSnacks(prefs.SnackPreferences)

	// Shopping list accumulates in first-seen order so the fallback
	// stays deterministic.
	seen := map[string]bool{}
	var allIngredients []string

	for dayIndex := 0; dayIndex < plan.DaysPerPlan; dayIndex++ {
		day := plan.MealDay{
			Day:               plan.FlexString(startDate.AddDate(0, 0, dayIndex).Weekday().String()),
			Meals:             make([]plan.PlannedMeal, 0, len(plan.MealTypes)),
			Snacks:            append([]string(nil), snacks...),
			HydrationReminder: fmt.Sprintf("Aim for %s spread across the day.", prefs.HydrationGoal),
			MovementReminder:  "Take a 20-minute walk or gentle stretch session.",
		}

		for _, mealType := range plan.MealTypes {
			meal := buildFallbackMeal(mealType, dayIndex, prefs)
			day.Meals = append(day.Meals, meal)
			for _, ingredient := range meal.Ingredients {
				key := strings.ToLower(ingredient)
				if !seen[key] {
					seen[key] = true
					allIngredients = append(allIngredients, ingredient)
				}
			}
		}

		doc.Days = append(doc.Days, day)
		doc.Meta.DailyHighlights[string(day.Day)] = fmt.Sprintf(
			"Focus on %s with balanced %s choices.",
			strings.ToLower(prefs.NutritionFocus),
			strings.ToLower(string(plan.MealTypes[dayIndex%len(plan.MealTypes)])),
		)
	}

	if len(allIngredients) > shoppingListCap {
		allIngredients = allIngredients[:shoppingListCap]
	}
	for _, ingredient := range allIngredients {
		doc.Shopping.Items = append(doc.Shopping.Items, plan.ShoppingItem{
			Name:     ingredient,
			Category: inferCategory(ingredient),
			Quantity: "As needed",
			Optional: false,
		})
	}

	checks := doc.Pantry.PantryItems
	if len(checks) > 5 {
		checks = checks[:5]
	}
	doc.Shopping.PantryChecks = append(doc.Shopping.PantryChecks, checks...)

	return doc
}

// buildFallbackMeal builds one meal from the catalog, appending a goal
// sentence to the template description. Micronutrient values are
// literals varying slightly by meal type.
func buildFallbackMeal(mealType plan.MealType, dayIndex int, prefs plan.Preferences) plan.PlannedMeal {
	tpl := TemplateFor(mealType, dayIndex)

	fiber := plan.FlexFloat(7)
	if mealType == plan.MealTypeLunch {
		fiber = 10
	}
	vitaminC := plan.FlexFloat(25)
	if mealType == plan.MealTypeBreakfast {
		vitaminC = 60
	}

	return plan.PlannedMeal{
		Type: mealType,
		Name: tpl.Name,
		Description: fmt.Sprintf(
			"%s Supports %s goals with a %s focus.",
			tpl.Description,
			strings.ToLower(prefs.FitnessGoal),
			strings.ToLower(prefs.NutritionFocus),
		),
		Ingredients:  append([]string(nil), tpl.Ingredients...),
		Instructions: append([]string(nil), tpl.Instructions...),
		Nutrition: plan.MealNutrition{
			Calories: plan.FlexFloat(tpl.Calories),
			Protein:  plan.FlexFloat(tpl.Protein),
			Carbs:    plan.FlexFloat(tpl.Carbs),
			Fat:      plan.FlexFloat(tpl.Fat),
			Micros: plan.FlexFloatMap{
				"fiber":     fiber,
				"vitamin_c": vitaminC,
				"iron":      5,
			},
		},
	}
}

// buildSnacks returns the caller's snack preferences verbatim unless
// the list is empty or any entry is "any" (case-insensitive), in which
// case the fixed default set applies.
func buildSnacks(preferences []string) []string {
	if len(preferences) > 0 {
		usable := true
		for _, snack := range preferences {
			if strings.EqualFold(snack, "any") {
				usable = false
				break
			}
		}
		if usable {
			return append([]string(nil), preferences...)
		}
	}
	return append([]string(nil), defaultSnacks...)
}

// inferCategory buckets an ingredient by keyword. Pantry doubles as
// the default for unmatched items.
func inferCategory(ingredient string) string {
	text := strings.ToLower(ingredient)
	switch {
	case containsAny(text, "spinach", "kale", "broccoli", "berries", "tomato"):
		return "Produce"
	case containsAny(text, "tofu", "chickpea", "lentil", "yogurt", "cheese"):
		return "Protein"
	case containsAny(text, "rice", "quinoa", "oat", "pita", "bread"):
		return "Grains"
	default:
		return "Pantry"
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

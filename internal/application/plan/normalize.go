package plan

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mealkit/v1/internal/domain/plan"
)

// NormalizeDraft converts an untrusted draft into a document satisfying
// every data-model invariant: no nil collection survives, day labels
// become real weekday names, and missing narrative fields are
// synthesized with the same wording the fallback builder uses.
// Identity and timestamps are left zero for the repository to assign.
func NormalizeDraft(draft *plan.Draft, prefs plan.Preferences, startDate time.Time, title string) *plan.Document {
	if strings.TrimSpace(title) == "" {
		title = draft.Title
	}
	if strings.TrimSpace(title) == "" {
		title = "Weekly Meal Plan"
	}

	doc := &plan.Document{
		Title:       title,
		StartDate:   startDate,
		TimeZoneID:  prefs.TimeZoneID,
		Preferences: prefs,
		Days:        draft.Days,
		CookingTips: draft.Tips,
	}
	if draft.Meta != nil {
		doc.Meta = *draft.Meta
	}
	if draft.Shopping != nil {
		doc.Shopping = *draft.Shopping
	}
	if draft.Budget != nil {
		doc.Budget = *draft.Budget
	}
	if draft.Prep != nil {
		doc.Prep = *draft.Prep
	}
	if draft.Pantry != nil {
		doc.Pantry = *draft.Pantry
	}

	normalizeDocument(doc, prefs, startDate)
	return doc
}

// normalizeDocument repairs the document in place so that every
// invariant holds regardless of what the model omitted.
func normalizeDocument(doc *plan.Document, prefs plan.Preferences, startDate time.Time) {
	if startDate.IsZero() {
		startDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	if doc.Days == nil {
		doc.Days = []plan.MealDay{}
	}
	for i := range doc.Days {
		day := &doc.Days[i]

		if isBlankOrNumeric(string(day.Day)) {
			day.Day = plan.FlexString(startDate.AddDate(0, 0, i).Weekday().String())
		}
		if day.Meals == nil {
			day.Meals = []plan.PlannedMeal{}
		}
		if day.Snacks == nil {
			day.Snacks = []string{}
		}
		for m := range day.Meals {
			meal := &day.Meals[m]
			if meal.Ingredients == nil {
				meal.Ingredients = []string{}
			}
			if meal.Instructions == nil {
				meal.Instructions = []string{}
			}
			if meal.Nutrition.Micros == nil {
				meal.Nutrition.Micros = plan.FlexFloatMap{}
			}
		}
	}

	focus := prefs.NutritionFocus
	if strings.TrimSpace(focus) == "" {
		focus = "balanced nutrition"
	}
	goal := prefs.FitnessGoal
	if strings.TrimSpace(goal) == "" {
		goal = "overall wellness"
	}

	if strings.TrimSpace(doc.Meta.Summary) == "" {
		doc.Meta.Summary = fmt.Sprintf(
			"Weekly plan centered on %s supporting %s goals.",
			focus, strings.ToLower(goal),
		)
	}
	if strings.TrimSpace(doc.Meta.PrimaryFocus) == "" {
		doc.Meta.PrimaryFocus = goal
	}
	if doc.Meta.DailyHighlights == nil {
		doc.Meta.DailyHighlights = map[string]string{}
	}
	for i := range doc.Days {
		label := string(doc.Days[i].Day)
		if _, ok := doc.Meta.DailyHighlights[label]; !ok {
			doc.Meta.DailyHighlights[label] = fmt.Sprintf(
				"Focus on %s with balanced meals.", strings.ToLower(focus),
			)
		}
	}
	if doc.Meta.WeeklyTotals.Micros == nil {
		doc.Meta.WeeklyTotals.Micros = plan.FlexFloatMap{}
	}

	if doc.Shopping.Items == nil {
		doc.Shopping.Items = []plan.ShoppingItem{}
	}
	if doc.Shopping.PantryChecks == nil {
		doc.Shopping.PantryChecks = []string{}
	}
	if doc.Shopping.BatchCookingIdeas == nil {
		doc.Shopping.BatchCookingIdeas = []string{}
	}

	if doc.Budget.CategoryTotals == nil {
		doc.Budget.CategoryTotals = plan.FlexFloatMap{}
	}
	if strings.TrimSpace(doc.Budget.SavingsTip) == "" {
		doc.Budget.SavingsTip = "Plan meals around seasonal produce to stretch the budget."
	}

	if doc.Prep.WeekendPrep == nil {
		doc.Prep.WeekendPrep = []string{}
	}
	if doc.Prep.DailyQuickPrep == nil {
		doc.Prep.DailyQuickPrep = []string{}
	}
	if doc.Prep.LeftoverIdeas == nil {
		doc.Prep.LeftoverIdeas = []string{}
	}

	if doc.Pantry.PantryItems == nil {
		doc.Pantry.PantryItems = []string{}
	}
	if doc.Pantry.LowStockAlerts == nil {
		doc.Pantry.LowStockAlerts = []string{}
	}
	if doc.Pantry.IngredientSwaps == nil {
		doc.Pantry.IngredientSwaps = []string{}
	}

	if doc.CookingTips == nil {
		doc.CookingTips = []string{}
	}
}

// isBlankOrNumeric reports whether a day label is unusable: empty,
// whitespace, or a bare number standing in for a weekday name.
func isBlankOrNumeric(label string) bool {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return true
	}
	_, err := strconv.Atoi(trimmed)
	return err == nil
}

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealkit/v1/internal/domain/plan"
)

func TestNormalizeDraftTitle(t *testing.T) {
	draft := &plan.Draft{Title: "Model Title"}

	t.Run("RequestTitleWins", func(t *testing.T) {
		doc := NormalizeDraft(draft, basePrefs(), testStart, "My Plan")
		assert.Equal(t, "My Plan", doc.Title)
	})

	t.Run("DraftTitleWhenRequestBlank", func(t *testing.T) {
		doc := NormalizeDraft(draft, basePrefs(), testStart, "  ")
		assert.Equal(t, "Model Title", doc.Title)
	})

	t.Run("DefaultWhenBothBlank", func(t *testing.T) {
		doc := NormalizeDraft(&plan.Draft{Title: "  "}, basePrefs(), testStart, "")
		assert.Equal(t, "Weekly Meal Plan", doc.Title)
	})
}

func TestNormalizeDraftDayLabels(t *testing.T) {
	draft := &plan.Draft{
		Days: []plan.MealDay{
			{Day: "Monday"},
			{Day: "2"},
			{Day: "  "},
			{Day: "Thursday"},
		},
	}

	doc := NormalizeDraft(draft, basePrefs(), testStart, "")

	assert.Equal(t, "Monday", string(doc.Days[0].Day))
	// Numeric and blank labels become weekday names from the start
	// date offset by position.
	assert.Equal(t, testStart.AddDate(0, 0, 1).Weekday().String(), string(doc.Days[1].Day))
	assert.Equal(t, testStart.AddDate(0, 0, 2).Weekday().String(), string(doc.Days[2].Day))
	assert.Equal(t, "Thursday", string(doc.Days[3].Day))
}

func TestNormalizeDraftRepairsCollections(t *testing.T) {
	draft := &plan.Draft{
		Days: []plan.MealDay{
			{Day: "Monday", Meals: []plan.PlannedMeal{{Type: plan.MealTypeBreakfast, Name: "Oats"}}},
		},
	}

	doc := NormalizeDraft(draft, basePrefs(), testStart, "")

	day := doc.Days[0]
	require.NotNil(t, day.Snacks)
	meal := day.Meals[0]
	require.NotNil(t, meal.Ingredients)
	require.NotNil(t, meal.Instructions)
	require.NotNil(t, meal.Nutrition.Micros)

	require.NotNil(t, doc.Shopping.Items)
	require.NotNil(t, doc.Shopping.PantryChecks)
	require.NotNil(t, doc.Shopping.BatchCookingIdeas)
	require.NotNil(t, doc.Budget.CategoryTotals)
	require.NotNil(t, doc.Prep.WeekendPrep)
	require.NotNil(t, doc.Pantry.PantryItems)
	require.NotNil(t, doc.CookingTips)
	require.NotNil(t, doc.Meta.WeeklyTotals.Micros)
}

func TestNormalizeDraftNarrativeDefaults(t *testing.T) {
	t.Run("SynthesizedFromPreferences", func(t *testing.T) {
		draft := &plan.Draft{Days: []plan.MealDay{{Day: "Monday"}}}
		doc := NormalizeDraft(draft, basePrefs(), testStart, "")

		assert.Equal(t, "Weekly plan centered on high protein supporting strength goals.", doc.Meta.Summary)
		assert.Equal(t, "Strength", doc.Meta.PrimaryFocus)
		assert.Equal(t, "Focus on high protein with balanced meals.", doc.Meta.DailyHighlights["Monday"])
		assert.Equal(t, "Plan meals around seasonal produce to stretch the budget.", doc.Budget.SavingsTip)
	})

	t.Run("GenericWhenPreferencesBlank", func(t *testing.T) {
		prefs := basePrefs()
		prefs.NutritionFocus = ""
		prefs.FitnessGoal = ""

		draft := &plan.Draft{}
		doc := NormalizeDraft(draft, prefs, testStart, "")

		assert.Equal(t, "Weekly plan centered on balanced nutrition supporting overall wellness goals.", doc.Meta.Summary)
		assert.Equal(t, "overall wellness", doc.Meta.PrimaryFocus)
	})

	t.Run("ModelTextPreserved", func(t *testing.T) {
		draft := &plan.Draft{
			Meta: &plan.MealPlanMeta{
				Summary:         "A week of hearty vegetarian cooking.",
				PrimaryFocus:    "Muscle gain",
				DailyHighlights: map[string]string{"Monday": "Protein push."},
			},
			Budget: &plan.BudgetPlanner{SavingsTip: "Buy in bulk."},
			Days:   []plan.MealDay{{Day: "Monday"}},
		}

		doc := NormalizeDraft(draft, basePrefs(), testStart, "")

		assert.Equal(t, "A week of hearty vegetarian cooking.", doc.Meta.Summary)
		assert.Equal(t, "Muscle gain", doc.Meta.PrimaryFocus)
		assert.Equal(t, "Protein push.", doc.Meta.DailyHighlights["Monday"])
		assert.Equal(t, "Buy in bulk.", doc.Budget.SavingsTip)
	})
}

func TestIsBlankOrNumeric(t *testing.T) {
	assert.True(t, isBlankOrNumeric(""))
	assert.True(t, isBlankOrNumeric("   "))
	assert.True(t, isBlankOrNumeric("3"))
	assert.True(t, isBlankOrNumeric(" 12 "))
	assert.False(t, isBlankOrNumeric("Monday"))
	assert.False(t, isBlankOrNumeric("Day 1"))
}

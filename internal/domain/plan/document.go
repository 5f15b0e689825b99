// Package plan contains the core domain model for weekly meal plans.
// The document stays flexible enough for AI generated content while
// remaining easy to query.
package plan

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MealType identifies one of the three canonical meal slots.
type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
)

// MealTypes lists the canonical meal slots in serving order.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}

// DaysPerPlan is the fixed length of the Days collection.
const DaysPerPlan = 7

// Document is the persisted weekly meal plan aggregate. All nested
// objects are owned by the document and have no independent identity.
type Document struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	StartDate   time.Time       `json:"startDate"`
	TimeZoneID  string          `json:"timeZoneId"`
	Preferences Preferences     `json:"preferences"`
	Days        []MealDay       `json:"days"`
	Meta        MealPlanMeta    `json:"meta"`
	Shopping    ShoppingPlanner `json:"shopping"`
	Budget      BudgetPlanner   `json:"budget"`
	Prep        PrepScheduler   `json:"prep"`
	Pantry      PantrySnapshot  `json:"pantry"`
	CookingTips []string        `json:"cookingTips"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MealDay holds one weekday of the plan: exactly three meals in
// breakfast/lunch/dinner order plus snacks and reminders.
type MealDay struct {
	Day              FlexString    `json:"day"`
	Meals            []PlannedMeal `json:"meals"`
	Snacks           []string      `json:"snacks"`
	HydrationReminder string       `json:"hydrationReminder"`
	MovementReminder  string       `json:"movementReminder"`
}

// PlannedMeal is a single breakfast, lunch, or dinner entry.
type PlannedMeal struct {
	Type         MealType      `json:"type"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions"`
	Nutrition    MealNutrition `json:"nutrition"`
}

// MealNutrition carries macro totals and a micronutrient mapping.
type MealNutrition struct {
	Calories FlexFloat    `json:"calories"`
	Protein  FlexFloat    `json:"protein"`
	Carbs    FlexFloat    `json:"carbs"`
	Fat      FlexFloat    `json:"fat"`
	Micros   FlexFloatMap `json:"micros"`
}

// MealPlanMeta summarizes the week.
type MealPlanMeta struct {
	Summary         string            `json:"summary"`
	PrimaryFocus    string            `json:"primaryFocus"`
	DailyHighlights map[string]string `json:"dailyHighlights"`
	WeeklyTotals    MealNutrition     `json:"weeklyTotals"`
}

// ShoppingPlanner aggregates the shopping list derived from the week.
type ShoppingPlanner struct {
	Items             []ShoppingItem `json:"items"`
	PantryChecks      []string       `json:"pantryChecks"`
	BatchCookingIdeas []string       `json:"batchCookingIdeas"`
}

// ShoppingItem is one entry on the shopping list.
type ShoppingItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity string `json:"quantity"`
	Optional bool   `json:"optional"`
}

// BudgetPlanner splits the weekly budget across categories.
type BudgetPlanner struct {
	EstimatedTotal FlexFloat    `json:"estimatedTotal"`
	CategoryTotals FlexFloatMap `json:"categoryTotals"`
	SavingsTip     string       `json:"savingsTip"`
}

// PrepScheduler lists preparation guidance for the week.
type PrepScheduler struct {
	WeekendPrep    []string `json:"weekendPrep"`
	DailyQuickPrep []string `json:"dailyQuickPrep"`
	LeftoverIdeas  []string `json:"leftoverIdeas"`
}

// PantrySnapshot tracks what the kitchen already holds.
type PantrySnapshot struct {
	PantryItems     []string `json:"pantryItems"`
	LowStockAlerts  []string `json:"lowStockAlerts"`
	IngredientSwaps []string `json:"ingredientSwaps"`
}

// FlexFloat is a float64 that tolerates model output quirks: JSON
// numbers, numbers quoted as strings, and null all parse; anything
// unparseable becomes zero instead of failing the whole document.
type FlexFloat float64

// UnmarshalJSON implements lenient numeric decoding.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			*f = 0
			return nil
		}
		s = strings.TrimSpace(inner)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// MarshalJSON renders the value as a plain JSON number.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(f), 'f', -1, 64), nil
}

// FlexFloatMap is a name-to-amount mapping that tolerates null, string
// values, and non-object payloads from the model.
type FlexFloatMap map[string]FlexFloat

// UnmarshalJSON implements lenient map decoding. A null or non-object
// value yields an empty map.
func (m *FlexFloatMap) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*m = FlexFloatMap{}
		return nil
	}
	var raw map[string]FlexFloat
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		*m = FlexFloatMap{}
		return nil
	}
	*m = FlexFloatMap(raw)
	return nil
}

// FlexString is a string that also accepts JSON numbers, booleans, and
// null. The model occasionally emits weekday labels as bare numbers.
type FlexString string

// UnmarshalJSON implements lenient string decoding.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "" || trimmed == "null":
		*s = ""
	case strings.HasPrefix(trimmed, `"`):
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		*s = FlexString(inner)
	default:
		*s = FlexString(trimmed)
	}
	return nil
}

// MarshalJSON always renders a JSON string.
func (s FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

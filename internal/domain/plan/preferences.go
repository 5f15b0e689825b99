package plan

import (
	"fmt"
	"strings"
	"time"
)

// Preferences is the canonical, fully defaulted user profile snapshot
// stored inside every generated document. Every list field is non-nil
// after normalization, never absent.
type Preferences struct {
	AgeRange              string   `json:"ageRange"`
	Gender                string   `json:"gender"`
	WeightInLbs           float64  `json:"weightInLbs"`
	HeightFeet            int      `json:"heightFeet"`
	HeightInches          int      `json:"heightInches"`
	TimeZoneID            string   `json:"timeZoneId"`
	FitnessGoal           string   `json:"fitnessGoal"`
	DietaryPreference     string   `json:"dietaryPreference"`
	NutritionFocus        string   `json:"nutritionFocus"`
	Allergies             []string `json:"allergies"`
	CuisinePreferences    []string `json:"cuisinePreferences"`
	MealsPerDay           int      `json:"mealsPerDay"`
	WeeklyBudget          float64  `json:"weeklyBudget"`
	CookingSkillLevel     string   `json:"cookingSkillLevel"`
	TimeAvailability      string   `json:"timeAvailability"`
	HealthConditions      []string `json:"healthConditions"`
	FoodsToAvoid          []string `json:"foodsToAvoid"`
	FavoriteIngredients   []string `json:"favoriteIngredients"`
	DislikedIngredients   []string `json:"dislikedIngredients"`
	SnackPreferences      []string `json:"snackPreferences"`
	HydrationGoal         string   `json:"hydrationGoal"`
	SupplementPreferences []string `json:"supplementPreferences"`
	EatingSchedule        string   `json:"eatingSchedule"`
	CulturalNotes         string   `json:"culturalNotes"`
	SeasonalFocus         string   `json:"seasonalFocus"`
	LifestyleNotes        string   `json:"lifestyleNotes"`
}

// GenerateRequest collects consumer preferences before the planner
// asks the model for a plan. Bounds are enforced at the request
// boundary by the validator, not by the core.
type GenerateRequest struct {
	Age                   int       `json:"age" validate:"required,gte=10,lte=110"`
	Gender                string    `json:"gender" validate:"required"`
	WeightInLbs           float64   `json:"weightInLbs" validate:"required,gte=70,lte=700"`
	HeightFeet            int       `json:"heightFeet" validate:"omitempty,gte=4,lte=7"`
	HeightInches          int       `json:"heightInches" validate:"gte=0,lte=11"`
	TimeZoneID            string    `json:"timeZoneId"`
	FitnessGoal           string    `json:"fitnessGoal" validate:"required"`
	DietaryPreference     string    `json:"dietaryPreference" validate:"required"`
	NutritionFocus        string    `json:"nutritionFocus"`
	Allergies             []string  `json:"allergies"`
	CuisinePreferences    []string  `json:"cuisinePreferences"`
	MealsPerDay           int       `json:"mealsPerDay" validate:"omitempty,gte=1,lte=6"`
	WeeklyBudget          float64   `json:"weeklyBudget" validate:"omitempty,gte=25,lte=2000"`
	CookingSkillLevel     string    `json:"cookingSkillLevel"`
	TimeAvailability      string    `json:"timeAvailability"`
	HealthConditions      []string  `json:"healthConditions"`
	FoodsToAvoid          []string  `json:"foodsToAvoid"`
	FavoriteIngredients   []string  `json:"favoriteIngredients"`
	DislikedIngredients   []string  `json:"dislikedIngredients"`
	SnackPreferences      []string  `json:"snackPreferences"`
	HydrationGoal         string    `json:"hydrationGoal"`
	SupplementPreferences []string  `json:"supplementPreferences"`
	EatingSchedule        string    `json:"eatingSchedule"`
	CulturalNotes         string    `json:"culturalNotes"`
	SeasonalFocus         string    `json:"seasonalFocus"`
	LifestyleNotes        string    `json:"lifestyleNotes"`
	StartDate             time.Time `json:"startDate"`
	Title                 string    `json:"title"`
}

// ApplyDefaults fills the blanks a caller may legitimately omit. The
// zero StartDate becomes today's UTC date so weekday labels stay
// well defined.
func (r *GenerateRequest) ApplyDefaults() {
	if r.TimeZoneID == "" {
		r.TimeZoneID = "UTC"
	}
	if r.MealsPerDay == 0 {
		r.MealsPerDay = 3
	}
	if r.WeeklyBudget == 0 {
		r.WeeklyBudget = 150
	}
	if r.HydrationGoal == "" {
		r.HydrationGoal = "2L daily"
	}
	if r.HeightFeet == 0 {
		r.HeightFeet = 5
		if r.HeightInches == 0 {
			r.HeightInches = 6
		}
	}
	if r.StartDate.IsZero() {
		r.StartDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
}

// ToPreferences converts the raw request into the canonical profile.
// Pure and total: text fields are trimmed (possibly to empty), list
// fields are never nil, and the age becomes a readable range string.
func (r GenerateRequest) ToPreferences() Preferences {
	return Preferences{
		AgeRange:              fmt.Sprintf("%d years", r.Age),
		Gender:                strings.TrimSpace(r.Gender),
		WeightInLbs:           r.WeightInLbs,
		HeightFeet:            r.HeightFeet,
		HeightInches:          r.HeightInches,
		TimeZoneID:            strings.TrimSpace(r.TimeZoneID),
		FitnessGoal:           strings.TrimSpace(r.FitnessGoal),
		DietaryPreference:     strings.TrimSpace(r.DietaryPreference),
		NutritionFocus:        strings.TrimSpace(r.NutritionFocus),
		Allergies:             trimmedList(r.Allergies),
		CuisinePreferences:    trimmedList(r.CuisinePreferences),
		MealsPerDay:           r.MealsPerDay,
		WeeklyBudget:          r.WeeklyBudget,
		CookingSkillLevel:     strings.TrimSpace(r.CookingSkillLevel),
		TimeAvailability:      strings.TrimSpace(r.TimeAvailability),
		HealthConditions:      trimmedList(r.HealthConditions),
		FoodsToAvoid:          trimmedList(r.FoodsToAvoid),
		FavoriteIngredients:   trimmedList(r.FavoriteIngredients),
		DislikedIngredients:   trimmedList(r.DislikedIngredients),
		SnackPreferences:      trimmedList(r.SnackPreferences),
		HydrationGoal:         strings.TrimSpace(r.HydrationGoal),
		SupplementPreferences: trimmedList(r.SupplementPreferences),
		EatingSchedule:        strings.TrimSpace(r.EatingSchedule),
		CulturalNotes:         strings.TrimSpace(r.CulturalNotes),
		SeasonalFocus:         strings.TrimSpace(r.SeasonalFocus),
		LifestyleNotes:        strings.TrimSpace(r.LifestyleNotes),
	}
}

// trimmedList copies a list with trimmed entries, returning an empty
// slice (never nil) when the input is nil.
func trimmedList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// Package testutils provides test data factories and doubles for
// consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	appplan "github.com/mealkit/v1/internal/application/plan"
	"github.com/mealkit/v1/internal/domain/plan"
)

// PlanFactory provides methods to create test plan data
type PlanFactory struct {
	faker *gofakeit.Faker
}

// NewPlanFactory creates a new plan factory with seeded faker
func NewPlanFactory(seed int64) *PlanFactory {
	return &PlanFactory{
		faker: gofakeit.New(seed),
	}
}

// GenerateRequest builds a valid generation request with randomized
// but bounded profile values.
func (f *PlanFactory) GenerateRequest() plan.GenerateRequest {
	return plan.GenerateRequest{
		Age:               f.faker.Number(18, 80),
		Gender:            f.faker.RandomString([]string{"female", "male", "nonbinary"}),
		WeightInLbs:       float64(f.faker.Number(110, 260)),
		HeightFeet:        f.faker.Number(5, 6),
		HeightInches:      f.faker.Number(0, 11),
		TimeZoneID:        "America/New_York",
		FitnessGoal:       f.faker.RandomString([]string{"Strength", "Endurance", "Weight Loss"}),
		DietaryPreference: "vegetarian",
		NutritionFocus:    f.faker.RandomString([]string{"high protein", "whole foods", "low sugar"}),
		MealsPerDay:       3,
		WeeklyBudget:      float64(f.faker.Number(80, 300)),
		HydrationGoal:     "2L daily",
		StartDate:         time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		Title:             f.faker.Sentence(3),
	}
}

// Document builds a complete, invariant-satisfying document from a
// randomized request by running it through the fallback builder.
func (f *PlanFactory) Document() *plan.Document {
	req := f.GenerateRequest()
	req.ApplyDefaults()
	return appplan.BuildFallback(req.ToPreferences(), req.StartDate, req.Title)
}

// Draft builds a minimal but well-formed model draft.
func (f *PlanFactory) Draft() *plan.Draft {
	days := make([]plan.MealDay, 0, plan.DaysPerPlan)
	for i := 0; i < plan.DaysPerPlan; i++ {
		meals := make([]plan.PlannedMeal, 0, len(plan.MealTypes))
		for _, mealType := range plan.MealTypes {
			meals = append(meals, plan.PlannedMeal{
				Type:         mealType,
				Name:         f.faker.Dinner(),
				Description:  f.faker.Sentence(8),
				Ingredients:  []string{f.faker.Vegetable(), f.faker.Fruit(), "Olive oil"},
				Instructions: []string{"Prepare the ingredients.", "Cook and serve."},
				Nutrition: plan.MealNutrition{
					Calories: plan.FlexFloat(f.faker.Number(300, 700)),
					Protein:  plan.FlexFloat(f.faker.Number(10, 40)),
					Carbs:    plan.FlexFloat(f.faker.Number(20, 80)),
					Fat:      plan.FlexFloat(f.faker.Number(5, 30)),
					Micros:   plan.FlexFloatMap{"fiber": 8},
				},
			})
		}
		days = append(days, plan.MealDay{
			Day:               plan.FlexString(time.Weekday((i + 1) % 7).String()),
			Meals:             meals,
			Snacks:            []string{"Fresh fruit cup"},
			HydrationReminder: "Drink water through the day.",
			MovementReminder:  "Take a short walk.",
		})
	}

	return &plan.Draft{
		Title: f.faker.Sentence(3),
		Days:  days,
		Meta: &plan.MealPlanMeta{
			Summary:         f.faker.Sentence(10),
			PrimaryFocus:    "Strength",
			DailyHighlights: map[string]string{},
			WeeklyTotals: plan.MealNutrition{
				Calories: 12950,
				Protein:  630,
				Carbs:    1470,
				Fat:      420,
				Micros:   plan.FlexFloatMap{"fiber": 196, "iron": 126, "vitamin_c": 400},
			},
		},
		Shopping: &plan.ShoppingPlanner{
			Items: []plan.ShoppingItem{
				{Name: "Spinach", Category: "Produce", Quantity: "2 bags", Optional: false},
			},
			PantryChecks:      []string{"Olive oil"},
			BatchCookingIdeas: []string{"Roast vegetables ahead."},
		},
		Budget: &plan.BudgetPlanner{
			EstimatedTotal: 150,
			CategoryTotals: plan.FlexFloatMap{"produce": 60, "pantry": 40, "protein": 50},
			SavingsTip:     "Shop seasonal produce.",
		},
		Prep: &plan.PrepScheduler{
			WeekendPrep:    []string{"Cook grains ahead.", "Roast vegetables.", "Mix dressings."},
			DailyQuickPrep: []string{"Soak oats overnight.", "Chop vegetables."},
			LeftoverIdeas:  []string{"Turn extras into soup.", "Build grain bowls."},
		},
		Pantry: &plan.PantrySnapshot{
			PantryItems:     []string{"Olive oil", "Rolled oats", "Quinoa", "Chickpeas", "Brown rice"},
			LowStockAlerts:  []string{"Check olive oil.", "Restock oats."},
			IngredientSwaps: []string{"Swap quinoa for rice.", "Use lentils for chickpeas."},
		},
		Tips: []string{"Batch your chopping.", "Season with citrus.", "Store snacks visibly."},
	}
}

package plan

// Draft is the semi-trusted plan payload parsed from the model's
// completion. Every block is optional; a Draft must pass through the
// normalizer before it may be treated as a Document.
type Draft struct {
	Title    string           `json:"title"`
	Days     []MealDay        `json:"days"`
	Meta     *MealPlanMeta    `json:"meta"`
	Shopping *ShoppingPlanner `json:"shopping"`
	Budget   *BudgetPlanner   `json:"budget"`
	Prep     *PrepScheduler   `json:"prep"`
	Pantry   *PantrySnapshot  `json:"pantry"`
	Tips     []string         `json:"tips"`
}

// ResponseFormat is the structural contract sent with every completion
// request. It mirrors the Draft shape above and is the authoritative
// description of what the model must return: exactly 7 days, exactly 3
// meals per day in the breakfast/lunch/dinner enum, bounded ingredient,
// instruction, shopping, prep, pantry, and tip arrays.
var ResponseFormat = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name": "meal_plan",
		"schema": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"title", "days", "meta", "shopping", "budget", "prep", "pantry", "tips"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"days": map[string]any{
					"type":     "array",
					"minItems": DaysPerPlan,
					"maxItems": DaysPerPlan,
					"items": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"required":             []string{"day", "meals", "snacks", "hydrationReminder", "movementReminder"},
						"properties": map[string]any{
							"day": map[string]any{"type": "string"},
							"meals": map[string]any{
								"type":     "array",
								"minItems": 3,
								"maxItems": 3,
								"items": map[string]any{
									"type":                 "object",
									"additionalProperties": false,
									"required":             []string{"type", "name", "description", "ingredients", "instructions", "nutrition"},
									"properties": map[string]any{
										"type":        map[string]any{"type": "string", "enum": MealTypes},
										"name":        map[string]any{"type": "string"},
										"description": map[string]any{"type": "string"},
										"ingredients": map[string]any{
											"type":     "array",
											"items":    map[string]any{"type": "string"},
											"minItems": 3,
											"maxItems": 6,
										},
										"instructions": map[string]any{
											"type":     "array",
											"items":    map[string]any{"type": "string"},
											"minItems": 2,
											"maxItems": 4,
										},
										"nutrition": nutritionSchema(1),
									},
								},
							},
							"snacks": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 1,
								"maxItems": 4,
							},
							"hydrationReminder": map[string]any{"type": "string"},
							"movementReminder":  map[string]any{"type": "string"},
						},
					},
				},
				"meta": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"summary", "primaryFocus", "dailyHighlights", "weeklyTotals"},
					"properties": map[string]any{
						"summary":      map[string]any{"type": "string"},
						"primaryFocus": map[string]any{"type": "string"},
						"dailyHighlights": map[string]any{
							"type":                 "object",
							"minProperties":        DaysPerPlan,
							"additionalProperties": map[string]any{"type": "string"},
						},
						"weeklyTotals": nutritionSchema(3),
					},
				},
				"shopping": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"items", "pantryChecks", "batchCookingIdeas"},
					"properties": map[string]any{
						"items": map[string]any{
							"type":     "array",
							"minItems": 12,
							"maxItems": 40,
							"items": map[string]any{
								"type":                 "object",
								"additionalProperties": false,
								"required":             []string{"name", "category", "quantity", "optional"},
								"properties": map[string]any{
									"name":     map[string]any{"type": "string"},
									"category": map[string]any{"type": "string"},
									"quantity": map[string]any{"type": "string"},
									"optional": map[string]any{"type": "boolean"},
								},
							},
						},
						"pantryChecks": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 3,
							"maxItems": 5,
						},
						"batchCookingIdeas": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
							"maxItems": 3,
						},
					},
				},
				"budget": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"estimatedTotal", "categoryTotals", "savingsTip"},
					"properties": map[string]any{
						"estimatedTotal": map[string]any{"type": "number"},
						"categoryTotals": map[string]any{
							"type":                 "object",
							"minProperties":        3,
							"additionalProperties": map[string]any{"type": "number"},
						},
						"savingsTip": map[string]any{"type": "string"},
					},
				},
				"prep": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"weekendPrep", "dailyQuickPrep", "leftoverIdeas"},
					"properties": map[string]any{
						"weekendPrep": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 3,
							"maxItems": 4,
						},
						"dailyQuickPrep": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
							"maxItems": 4,
						},
						"leftoverIdeas": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
							"maxItems": 4,
						},
					},
				},
				"pantry": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"pantryItems", "lowStockAlerts", "ingredientSwaps"},
					"properties": map[string]any{
						"pantryItems": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 5,
							"maxItems": 10,
						},
						"lowStockAlerts": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
							"maxItems": 5,
						},
						"ingredientSwaps": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
							"maxItems": 5,
						},
					},
				},
				"tips": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 3,
					"maxItems": 6,
				},
			},
		},
	},
}

// nutritionSchema describes a MealNutrition block requiring at least
// minMicros micronutrient entries.
func nutritionSchema(minMicros int) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"calories", "protein", "carbs", "fat", "micros"},
		"properties": map[string]any{
			"calories": map[string]any{"type": "number"},
			"protein":  map[string]any{"type": "number"},
			"carbs":    map[string]any{"type": "number"},
			"fat":      map[string]any{"type": "number"},
			"micros": map[string]any{
				"type":                 "object",
				"minProperties":        minMicros,
				"additionalProperties": map[string]any{"type": "number"},
			},
		},
	}
}

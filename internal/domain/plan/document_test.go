package plan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloatUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{"PlainNumber", `42.5`, 42.5},
		{"Integer", `180`, 180},
		{"QuotedNumber", `"19.25"`, 19.25},
		{"QuotedInteger", `"60"`, 60},
		{"Null", `null`, 0},
		{"EmptyString", `""`, 0},
		{"Garbage", `"about twelve"`, 0},
		{"Boolean", `true`, 0},
		{"QuotedNaN", `"NaN"`, 0},
		{"QuotedInfinity", `"Inf"`, 0},
		{"QuotedNegativeInfinity", `"-Inf"`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexFloat
			err := json.Unmarshal([]byte(tc.input), &f)
			require.NoError(t, err)
			assert.Equal(t, tc.want, float64(f))
		})
	}
}

func TestFlexFloatMarshal(t *testing.T) {
	data, err := json.Marshal(FlexFloat(42.5))
	require.NoError(t, err)
	assert.Equal(t, "42.5", string(data))

	data, err = json.Marshal(FlexFloat(180))
	require.NoError(t, err)
	assert.Equal(t, "180", string(data))
}

func TestFlexFloatNonFiniteStaysMarshalable(t *testing.T) {
	var f FlexFloat
	require.NoError(t, json.Unmarshal([]byte(`"NaN"`), &f))

	// The zeroed value must re-encode as a valid JSON number so a
	// document carrying it can still be persisted.
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, "0", string(data))
}

func TestFlexFloatMapUnmarshal(t *testing.T) {
	t.Run("Object", func(t *testing.T) {
		var m FlexFloatMap
		err := json.Unmarshal([]byte(`{"fiber": 28, "iron": "18", "zinc": null}`), &m)
		require.NoError(t, err)
		assert.Equal(t, FlexFloat(28), m["fiber"])
		assert.Equal(t, FlexFloat(18), m["iron"])
		assert.Equal(t, FlexFloat(0), m["zinc"])
	})

	t.Run("Null", func(t *testing.T) {
		var m FlexFloatMap
		err := json.Unmarshal([]byte(`null`), &m)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Empty(t, m)
	})

	t.Run("NonObject", func(t *testing.T) {
		var m FlexFloatMap
		err := json.Unmarshal([]byte(`[1, 2, 3]`), &m)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Empty(t, m)
	})
}

func TestFlexStringUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"String", `"Monday"`, "Monday"},
		{"Number", `3`, "3"},
		{"Decimal", `2.5`, "2.5"},
		{"Boolean", `true`, "true"},
		{"Null", `null`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s FlexString
			err := json.Unmarshal([]byte(tc.input), &s)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(s))
		})
	}
}

func TestDocumentRoundTripTolerance(t *testing.T) {
	// A payload with the quirks models actually produce: numeric day
	// labels, quoted nutrition values, null micros.
	raw := `{
		"title": "Test Plan",
		"days": [{
			"day": 1,
			"meals": [{
				"type": "Breakfast",
				"name": "Oats",
				"description": "Warm oats.",
				"ingredients": ["Oats"],
				"instructions": ["Cook."],
				"nutrition": {"calories": "390", "protein": 17, "carbs": null, "fat": 14, "micros": null}
			}],
			"snacks": ["Fruit"],
			"hydrationReminder": "Drink water.",
			"movementReminder": "Walk."
		}]
	}`

	var doc Document
	err := json.Unmarshal([]byte(raw), &doc)
	require.NoError(t, err)

	require.Len(t, doc.Days, 1)
	assert.Equal(t, FlexString("1"), doc.Days[0].Day)

	meal := doc.Days[0].Meals[0]
	assert.Equal(t, MealTypeBreakfast, meal.Type)
	assert.Equal(t, FlexFloat(390), meal.Nutrition.Calories)
	assert.Equal(t, FlexFloat(0), meal.Nutrition.Carbs)
	require.NotNil(t, meal.Nutrition.Micros)
	assert.Empty(t, meal.Nutrition.Micros)
}

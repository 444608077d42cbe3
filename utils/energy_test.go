package utils

import (
	"math"
	"testing"
)

func TestMacroTargetsSumBackToCalories(t *testing.T) {
	for _, calories := range []float64{1200, 1650, 1979, 2000, 2500, 3200} {
		protein, carbs, fats := MacroTargets(calories)
		sum := MacroKcalSum(protein, carbs, fats)
		if math.Abs(sum-calories) > 4 {
			t.Fatalf("calories %v: macros sum to %v", calories, sum)
		}
	}
}

func TestRecommendCalories(t *testing.T) {
	t.Run("SedentaryMaintenance", func(t *testing.T) {
		got, err := RecommendCalories(30, 70, 175, "male", "sedentary", "maintainWeight")
		if err != nil {
			t.Fatal(err)
		}
		// Mifflin-St Jeor: (700 + 1093.75 - 150 + 5) * 1.2 = 1978.5
		if math.Abs(got-1979) > 1 {
			t.Fatalf("calories = %v, want ~1979", got)
		}
	})

	t.Run("LossAdjustment", func(t *testing.T) {
		maintain, _ := RecommendCalories(30, 70, 175, "male", "sedentary", "maintainWeight")
		lose, _ := RecommendCalories(30, 70, 175, "male", "sedentary", "loseWeight")
		if maintain-lose != 500 {
			t.Fatalf("loss adjustment = %v, want 500", maintain-lose)
		}
	})

	t.Run("SafetyFloor", func(t *testing.T) {
		got, err := RecommendCalories(80, 40, 150, "female", "sedentary", "loseWeight")
		if err != nil {
			t.Fatal(err)
		}
		if got < 1200 {
			t.Fatalf("recommendation %v below safety floor", got)
		}
	})

	t.Run("InvalidInputs", func(t *testing.T) {
		cases := []struct {
			name                            string
			age                             int
			weight, height                  float64
			gender, activity, objective     string
		}{
			{"BadAge", 0, 70, 175, "male", "sedentary", "maintainWeight"},
			{"BadActivity", 30, 70, 175, "male", "couch", "maintainWeight"},
			{"BadGender", 30, 70, 175, "other", "sedentary", "maintainWeight"},
			{"BadObjective", 30, 70, 175, "male", "sedentary", "bulk"},
			{"BadWeight", 30, 0, 175, "male", "sedentary", "maintainWeight"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := RecommendCalories(tc.age, tc.weight, tc.height, tc.gender, tc.activity, tc.objective); err == nil {
					t.Fatal("expected error")
				}
			})
		}
	})
}

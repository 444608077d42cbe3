package utils

import (
	"fmt"
	"math"
)

// kcal per gram of each macro.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// ActivityMultipliers maps activity level names to their TDEE
// multiplier. It is also the source of truth for valid activity levels
// in profile validation.
var ActivityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryActive": 1.9,
}

// objectiveAdjustments shifts the maintenance calories per goal.
var objectiveAdjustments = map[string]float64{
	"loseWeight":     -500,
	"maintainWeight": 0,
	"gainMuscle":     300,
}

// MacroTargets splits a calorie total into protein/carb/fat grams using
// a 30/45/25 kcal split, so the grams always multiply back to the total
// under the 4/4/9 rule.
func MacroTargets(calories float64) (protein, carbs, fats float64) {
	protein = math.Round(calories * 0.30 / KcalPerGramProtein)
	fats = math.Round(calories * 0.25 / KcalPerGramFat)
	// Carbs absorb the rounding remainder so the kcal sum stays exact.
	carbs = math.Round((calories - protein*KcalPerGramProtein - fats*KcalPerGramFat) / KcalPerGramCarbs)
	return protein, carbs, fats
}

// RecommendCalories computes a daily calorie target from profile data:
// Mifflin-St Jeor BMR, activity multiplier, then the objective
// adjustment. Used both as the offline recommendation path and to
// sanity-bound AI responses.
func RecommendCalories(age int, weightKg, heightCm float64, gender, activityLevel, objective string) (float64, error) {
	if age <= 0 || age > 130 {
		return 0, fmt.Errorf("age out of range")
	}
	if weightKg <= 0 || heightCm <= 0 {
		return 0, fmt.Errorf("weight and height must be positive")
	}
	mult, ok := ActivityMultipliers[activityLevel]
	if !ok {
		return 0, fmt.Errorf("unknown activity level %q", activityLevel)
	}
	adj, ok := objectiveAdjustments[objective]
	if !ok {
		return 0, fmt.Errorf("unknown objective %q", objective)
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		return 0, fmt.Errorf("unknown gender %q", gender)
	}

	calories := math.Round(bmr*mult + adj)
	if calories < 1200 {
		calories = 1200 // never recommend below a safe floor
	}
	return calories, nil
}

// MacroKcalSum converts macro grams back to kcal under the 4/4/9 rule.
func MacroKcalSum(protein, carbs, fats float64) float64 {
	return protein*KcalPerGramProtein + carbs*KcalPerGramCarbs + fats*KcalPerGramFat
}

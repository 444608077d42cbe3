package services

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"
)

func TestValidateRecommendation(t *testing.T) {
	t.Run("ConsistentMacrosAccepted", func(t *testing.T) {
		rec := CalorieRecommendation{
			RecommendedCalories: 2000,
			RecommendedProtein:  150, // 600 kcal
			RecommendedCarbs:    200, // 800 kcal
			RecommendedFats:     67,  // 603 kcal -> 2003, within tolerance
		}
		if err := ValidateRecommendation(rec); err != nil {
			t.Fatalf("consistent recommendation rejected: %v", err)
		}
	})

	t.Run("InconsistentMacrosRejected", func(t *testing.T) {
		rec := CalorieRecommendation{
			RecommendedCalories: 2000,
			RecommendedProtein:  150,
			RecommendedCarbs:    200,
			RecommendedFats:     70, // sums to 2030 kcal
		}
		if err := ValidateRecommendation(rec); err == nil {
			t.Fatal("30 kcal drift accepted")
		}
	})

	t.Run("NonPositiveValuesRejected", func(t *testing.T) {
		cases := []CalorieRecommendation{
			{RecommendedCalories: 0},
			{RecommendedCalories: 2000, RecommendedProtein: -10, RecommendedCarbs: 300, RecommendedFats: 50},
		}
		for _, rec := range cases {
			if err := ValidateRecommendation(rec); err == nil {
				t.Fatalf("accepted %+v", rec)
			}
		}
	})
}

func TestLocalRecommendation(t *testing.T) {
	svc := &AIService{} // no apiKey, forces the offline path
	rec, err := svc.RecommendCalories(RecommendationRequest{
		Age: 30, WeightKg: 70, HeightCm: 175,
		Gender: "male", ActivityLevel: "moderate", Objective: "maintainWeight",
	})
	if err != nil {
		t.Fatal(err)
	}

	// The offline path must satisfy the same contract enforced on AI
	// responses.
	if err := ValidateRecommendation(*rec); err != nil {
		t.Fatalf("local recommendation fails its own validation: %v", err)
	}

	fatShare := rec.RecommendedFats * utils.KcalPerGramFat / rec.RecommendedCalories
	if math.Abs(fatShare-0.25) > 0.01 {
		t.Fatalf("fat share = %.3f, want ~0.25", fatShare)
	}
	if rec.Explanation == "" {
		t.Fatal("missing explanation")
	}
}

func TestRecommendCaloriesStrictDecode(t *testing.T) {
	t.Run("UnknownFieldRejected", func(t *testing.T) {
		svc := aiServiceForText(t, `{"recommendedCalories": 2000, "recommendedProtein": 150, "recommendedCarbs": 200, "recommendedFats": 67, "explanation": "ok", "surprise": true}`)
		if _, err := svc.RecommendCalories(sampleProfile()); err == nil {
			t.Fatal("response with extra field accepted")
		}
	})

	t.Run("MarkdownFencesStripped", func(t *testing.T) {
		svc := aiServiceForText(t, "```json\n{\"recommendedCalories\": 2000, \"recommendedProtein\": 150, \"recommendedCarbs\": 200, \"recommendedFats\": 67, \"explanation\": \"ok\"}\n```")
		rec, err := svc.RecommendCalories(sampleProfile())
		if err != nil {
			t.Fatal(err)
		}
		if rec.RecommendedCalories != 2000 {
			t.Fatalf("calories = %v", rec.RecommendedCalories)
		}
	})

	t.Run("InconsistentResponseRejectedWhole", func(t *testing.T) {
		svc := aiServiceForText(t, `{"recommendedCalories": 2000, "recommendedProtein": 150, "recommendedCarbs": 200, "recommendedFats": 70, "explanation": "ok"}`)
		rec, err := svc.RecommendCalories(sampleProfile())
		if err == nil {
			t.Fatal("inconsistent macros accepted")
		}
		if rec != nil {
			t.Fatal("partial recommendation returned alongside error")
		}
	})
}

func TestResolvePlanItems(t *testing.T) {
	foods := []models.FoodItem{{
		Name: "Chicken Breast", Calories: 165, Protein: 31, Carbs: 0, Fats: 3.6,
		ServingSize: 100, ServingUnit: "g",
	}}
	meals := []models.CustomMeal{{
		Name: "Overnight Oats", Calories: 420, Protein: 18, Carbs: 60, Fats: 12,
		ServingSize: 1, ServingUnit: "bowl",
	}}

	t.Run("CatalogItemsResolve", func(t *testing.T) {
		plan := aiMealPlan{
			Breakfast: []aiPlanItem{{Name: "overnight oats", Quantity: 1}},
			Lunch:     []aiPlanItem{{Name: "Chicken Breast", Quantity: 200}},
		}
		out, err := resolvePlanItems(plan, foods, meals)
		if err != nil {
			t.Fatal(err)
		}
		lunch := out[models.SlotLunch]
		if len(lunch) != 1 || lunch[0].Facts.Calories != 165 || lunch[0].Quantity != 200 {
			t.Fatalf("lunch resolved badly: %+v", lunch)
		}
		if lunch[0].InstanceID == "" {
			t.Fatal("resolved item missing instance id")
		}
		if got := out[models.SlotBreakfast][0].SourceKind; got != "meal" {
			t.Fatalf("breakfast source kind = %q", got)
		}
	})

	t.Run("UnknownNameRejectsWholePlan", func(t *testing.T) {
		plan := aiMealPlan{
			Breakfast: []aiPlanItem{{Name: "overnight oats", Quantity: 1}},
			Dinner:    []aiPlanItem{{Name: "unicorn steak", Quantity: 1}},
		}
		out, err := resolvePlanItems(plan, foods, meals)
		if err == nil {
			t.Fatal("invented item accepted")
		}
		if out != nil {
			t.Fatal("partial plan returned alongside error")
		}
	})

	t.Run("NonPositiveQuantityRejected", func(t *testing.T) {
		plan := aiMealPlan{Lunch: []aiPlanItem{{Name: "chicken breast", Quantity: 0}}}
		if _, err := resolvePlanItems(plan, foods, meals); err == nil {
			t.Fatal("zero quantity accepted")
		}
	})
}

func sampleProfile() RecommendationRequest {
	return RecommendationRequest{
		Age: 30, WeightKg: 70, HeightCm: 175,
		Gender: "male", ActivityLevel: "moderate", Objective: "maintainWeight",
	}
}

// aiServiceForText spins up a stub completion endpoint that always
// returns text as the single candidate.
func aiServiceForText(t *testing.T, text string) *AIService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]string{{"text": text}},
				}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return &AIService{client: srv.Client(), apiKey: "test-key", baseURL: srv.URL}
}

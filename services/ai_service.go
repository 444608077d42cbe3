package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"

	"github.com/google/uuid"
)

// AIService calls the generative AI endpoint for calorie recommendations
// and meal plans. Responses are duck-shaped text, so everything is
// decoded against a strict schema and validated before any of it is
// applied; a response that fails validation is rejected whole.
type AIService struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewAIService() *AIService {
	baseURL := os.Getenv("AI_API_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	}
	return &AIService{
		client:  &http.Client{Timeout: 30 * time.Second},
		apiKey:  os.Getenv("AI_API_KEY"),
		baseURL: baseURL,
	}
}

type RecommendationRequest struct {
	Age           int     `json:"age" binding:"required"`
	WeightKg      float64 `json:"weight" binding:"required"`
	HeightCm      float64 `json:"height" binding:"required"`
	Gender        string  `json:"gender" binding:"required"`
	ActivityLevel string  `json:"activity_level" binding:"required"`
	Objective     string  `json:"goal" binding:"required"`
}

type CalorieRecommendation struct {
	RecommendedCalories float64 `json:"recommendedCalories"`
	RecommendedProtein  float64 `json:"recommendedProtein"`
	RecommendedCarbs    float64 `json:"recommendedCarbs"`
	RecommendedFats     float64 `json:"recommendedFats"`
	Explanation         string  `json:"explanation"`
}

// macroToleranceKcal is how far the macro kcal sum may drift from the
// recommended calories before the response is rejected (rounding slack).
const macroToleranceKcal = 5

// ValidateRecommendation enforces the schema contract: non-negative
// values and macro grams that multiply back (4/4/9) to the calorie total
// within tolerance.
func ValidateRecommendation(rec CalorieRecommendation) error {
	if rec.RecommendedCalories <= 0 || rec.RecommendedProtein < 0 ||
		rec.RecommendedCarbs < 0 || rec.RecommendedFats < 0 {
		return fmt.Errorf("recommendation contains non-positive values")
	}
	sum := utils.MacroKcalSum(rec.RecommendedProtein, rec.RecommendedCarbs, rec.RecommendedFats)
	if math.Abs(sum-rec.RecommendedCalories) > macroToleranceKcal {
		return fmt.Errorf("macros sum to %.0f kcal but calories say %.0f", sum, rec.RecommendedCalories)
	}
	return nil
}

// RecommendCalories returns calorie/macro targets for the profile. With
// no API key configured it computes the recommendation locally
// (Mifflin-St Jeor), which keeps the endpoint usable offline; otherwise
// the AI response is decoded strictly and validated, and a schema
// violation is an error, never a partial apply.
func (s *AIService) RecommendCalories(req RecommendationRequest) (*CalorieRecommendation, error) {
	if s.apiKey == "" {
		return s.localRecommendation(req)
	}

	prompt := fmt.Sprintf(`You are a nutrition assistant. Compute daily calorie and macro targets.
Profile: age %d, weight %.1f kg, height %.1f cm, gender %s, activity level %s, goal %s.
Respond with ONLY a JSON object, no markdown fences, with this exact shape:
{"recommendedCalories": number, "recommendedProtein": number, "recommendedCarbs": number, "recommendedFats": number, "explanation": string}
Macros are grams per day. protein*4 + carbs*4 + fats*9 must equal recommendedCalories.`,
		req.Age, req.WeightKg, req.HeightCm, req.Gender, req.ActivityLevel, req.Objective)

	raw, err := s.generate(prompt)
	if err != nil {
		return nil, err
	}

	var rec CalorieRecommendation
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("ai response did not match recommendation schema: %w", err)
	}
	if err := ValidateRecommendation(rec); err != nil {
		return nil, fmt.Errorf("ai recommendation rejected: %w", err)
	}
	return &rec, nil
}

func (s *AIService) localRecommendation(req RecommendationRequest) (*CalorieRecommendation, error) {
	calories, err := utils.RecommendCalories(req.Age, req.WeightKg, req.HeightCm,
		req.Gender, req.ActivityLevel, req.Objective)
	if err != nil {
		return nil, err
	}
	protein, carbs, fats := utils.MacroTargets(calories)
	return &CalorieRecommendation{
		RecommendedCalories: calories,
		RecommendedProtein:  protein,
		RecommendedCarbs:    carbs,
		RecommendedFats:     fats,
		Explanation: fmt.Sprintf(
			"Estimated with Mifflin-St Jeor for a %s %s profile, adjusted for the %s goal.",
			req.ActivityLevel, req.Gender, req.Objective),
	}, nil
}

// aiPlanItem is one generated entry: a name from the supplied catalog
// plus a quantity in that item's serving unit.
type aiPlanItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type aiMealPlan struct {
	Breakfast []aiPlanItem `json:"breakfast"`
	Lunch     []aiPlanItem `json:"lunch"`
	Dinner    []aiPlanItem `json:"dinner"`
	Snacks    []aiPlanItem `json:"snacks"`
}

// GenerateMealPlan asks the AI for a day of meals hitting goals, drawn
// only from the user's foods and custom meals. Items naming anything
// outside the supplied catalog invalidate the whole response.
func (s *AIService) GenerateMealPlan(goals models.Goals, foods []models.FoodItem, meals []models.CustomMeal) (map[models.Slot][]models.PlanMealItem, error) {
	if len(foods) == 0 && len(meals) == 0 {
		return nil, fmt.Errorf("no foods or meals available to plan with")
	}
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI_API_KEY not set")
	}

	var catalog bytes.Buffer
	for _, f := range foods {
		fmt.Fprintf(&catalog, "- %s: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fats per %.0f %s\n",
			f.Name, f.Calories, f.Protein, f.Carbs, f.Fats, f.ServingSize, f.ServingUnit)
	}
	for _, m := range meals {
		fmt.Fprintf(&catalog, "- %s: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fats per %.0f %s\n",
			m.Name, m.Calories, m.Protein, m.Carbs, m.Fats, m.ServingSize, m.ServingUnit)
	}

	prompt := fmt.Sprintf(`You are a nutrition assistant. Build one day of meals from ONLY the foods listed below; never invent foods.
Daily targets: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fats.
Available foods:
%s
Respond with ONLY a JSON object, no markdown fences, with this exact shape:
{"breakfast": [{"name": string, "quantity": number}], "lunch": [...], "dinner": [...], "snacks": [...]}
where name is exactly a listed food name and quantity is in that food's serving unit.`,
		goals.Calories, goals.Protein, goals.Carbs, goals.Fats, catalog.String())

	raw, err := s.generate(prompt)
	if err != nil {
		return nil, err
	}

	var plan aiMealPlan
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("ai response did not match meal plan schema: %w", err)
	}

	return resolvePlanItems(plan, foods, meals)
}

// resolvePlanItems maps generated {name, quantity} pairs back onto the
// catalog, snapshotting nutrition facts into plan items. Unknown names
// and non-positive quantities reject the response.
func resolvePlanItems(plan aiMealPlan, foods []models.FoodItem, meals []models.CustomMeal) (map[models.Slot][]models.PlanMealItem, error) {
	type source struct {
		facts       models.Nutrition
		servingSize float64
		servingUnit string
		kind        string
		id          uint
	}
	catalog := make(map[string]source, len(foods)+len(meals))
	for _, f := range foods {
		catalog[strings.ToLower(f.Name)] = source{f.Facts(), f.ServingSize, f.ServingUnit, "food", f.ID}
	}
	for _, m := range meals {
		catalog[strings.ToLower(m.Name)] = source{m.Facts(), m.ServingSize, m.ServingUnit, "meal", m.ID}
	}

	out := make(map[models.Slot][]models.PlanMealItem, 4)
	slots := map[models.Slot][]aiPlanItem{
		models.SlotBreakfast: plan.Breakfast,
		models.SlotLunch:     plan.Lunch,
		models.SlotDinner:    plan.Dinner,
		models.SlotSnacks:    plan.Snacks,
	}
	for slot, items := range slots {
		for _, it := range items {
			src, ok := catalog[strings.ToLower(strings.TrimSpace(it.Name))]
			if !ok {
				return nil, fmt.Errorf("generated plan references unknown item %q", it.Name)
			}
			if it.Quantity <= 0 {
				return nil, fmt.Errorf("generated plan has non-positive quantity for %q", it.Name)
			}
			out[slot] = append(out[slot], models.PlanMealItem{
				InstanceID:  uuid.NewString(),
				Label:       it.Name,
				Facts:       src.facts,
				ServingSize: src.servingSize,
				ServingUnit: src.servingUnit,
				Quantity:    it.Quantity,
				SourceKind:  src.kind,
				SourceID:    src.id,
			})
		}
	}
	return out, nil
}

// generate posts a single prompt to the completion endpoint and returns
// the raw generated text with any stray markdown fences stripped.
func (s *AIService) generate(prompt string) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":      0.2,
			"responseMimeType": "application/json",
		},
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", s.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build ai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ai response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("ai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("ai api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode ai response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty ai response")
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text), nil
}

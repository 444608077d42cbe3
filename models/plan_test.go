package models

import (
	"testing"
)

func sampleItem(label string, calories, servingSize, quantity float64) PlanMealItem {
	return PlanMealItem{
		InstanceID:  label + "-1",
		Label:       label,
		Facts:       Nutrition{Calories: calories, Protein: 10, Carbs: 20, Fats: 5},
		ServingSize: servingSize,
		ServingUnit: "g",
		Quantity:    quantity,
		SourceKind:  "food",
		SourceID:    1,
	}
}

func TestConsumedRatio(t *testing.T) {
	t.Run("HalfServing", func(t *testing.T) {
		it := sampleItem("oats", 200, 100, 50)
		got := it.Consumed()
		if got.Calories != 100 {
			t.Fatalf("expected 100 kcal, got %v", got.Calories)
		}
		if got.Protein != 5 || got.Carbs != 10 || got.Fats != 2.5 {
			t.Fatalf("macros not scaled: %+v", got)
		}
	})

	t.Run("ZeroServingSize", func(t *testing.T) {
		it := sampleItem("mystery", 200, 0, 50)
		got := it.Consumed()
		if got != (Nutrition{}) {
			t.Fatalf("zero serving size must contribute nothing, got %+v", got)
		}
	})
}

func TestDailyPlanTotals(t *testing.T) {
	day := NewDailyPlan()
	day.Slots[SlotBreakfast] = []PlanMealItem{
		sampleItem("oats", 200, 100, 50),
		sampleItem("milk", 60, 100, 200),
	}
	day.Slots[SlotDinner] = []PlanMealItem{
		sampleItem("rice", 130, 100, 100),
	}

	if got := day.SlotTotal(SlotBreakfast).Calories; got != 100+120 {
		t.Fatalf("breakfast total = %v, want 220", got)
	}
	if got := day.Total().Calories; got != 220+130 {
		t.Fatalf("day total = %v, want 350", got)
	}
}

func TestIsEmpty(t *testing.T) {
	day := NewDailyPlan()
	if !day.IsEmpty() {
		t.Fatal("fresh day should be empty")
	}

	withGoals := NewDailyPlan()
	withGoals.Goals.Calories = 1800
	if withGoals.IsEmpty() {
		t.Fatal("day with goals is not empty")
	}

	withItems := NewDailyPlan()
	withItems.Slots[SlotSnacks] = []PlanMealItem{sampleItem("apple", 52, 100, 150)}
	if withItems.IsEmpty() {
		t.Fatal("day with items is not empty")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	day := NewDailyPlan()
	day.Slots[SlotLunch] = []PlanMealItem{sampleItem("rice", 130, 100, 100)}

	cp := day.Clone()
	cp.Slots[SlotLunch][0].Quantity = 999

	if day.Slots[SlotLunch][0].Quantity == 999 {
		t.Fatal("clone shares item storage with the original")
	}
}

func ptr(v float64) *float64 { return &v }

func TestApplyDayUpdate(t *testing.T) {
	monday := "2026-08-31"
	tuesday := "2026-09-01"

	week := WeeklyPlan{}
	mondayPlan := NewDailyPlan()
	mondayPlan.Goals = Goals{Calories: 2200, Protein: 160, Carbs: 230, Fats: 70}
	mondayPlan.Slots[SlotBreakfast] = []PlanMealItem{sampleItem("oats", 200, 100, 50)}
	week[monday] = mondayPlan

	t.Run("OtherDatesUntouched", func(t *testing.T) {
		got := ApplyDayUpdate(week, tuesday, DayUpdate{
			Goals: &GoalsUpdate{Calories: ptr(1800.0)},
		})

		if got[monday].Goals.Calories != 2200 {
			t.Fatalf("monday goals changed: %v", got[monday].Goals.Calories)
		}
		if len(got[monday].Slots[SlotBreakfast]) != 1 {
			t.Fatal("monday slots changed")
		}
		if got[tuesday].Goals.Calories != 1800 {
			t.Fatalf("tuesday calorie goal = %v, want 1800", got[tuesday].Goals.Calories)
		}
	})

	t.Run("AbsentDateStartsEmpty", func(t *testing.T) {
		got := ApplyDayUpdate(week, tuesday, DayUpdate{
			Goals: &GoalsUpdate{Protein: ptr(120.0)},
		})
		day := got[tuesday]
		if day.Goals.Calories != 0 || day.Goals.Protein != 120 {
			t.Fatalf("unexpected goals %+v", day.Goals)
		}
		for _, s := range Slots() {
			if len(day.Slots[s]) != 0 {
				t.Fatalf("slot %s should be empty", s)
			}
		}
	})

	t.Run("GoalsMergeFieldByField", func(t *testing.T) {
		got := ApplyDayUpdate(week, monday, DayUpdate{
			Goals: &GoalsUpdate{Fats: ptr(80.0)},
		})
		g := got[monday].Goals
		if g.Calories != 2200 || g.Protein != 160 || g.Carbs != 230 {
			t.Fatalf("untouched goal fields changed: %+v", g)
		}
		if g.Fats != 80 {
			t.Fatalf("fats = %v, want 80", g.Fats)
		}
	})

	t.Run("SlotUpdateReplacesWholeList", func(t *testing.T) {
		got := ApplyDayUpdate(week, monday, DayUpdate{
			Slots: map[Slot][]PlanMealItem{
				SlotLunch: {sampleItem("rice", 130, 100, 100)},
			},
		})
		day := got[monday]
		if len(day.Slots[SlotLunch]) != 1 {
			t.Fatal("lunch not replaced")
		}
		// Breakfast was not in the update's slot map, so the new list
		// has it empty: the update replaces the full slot list.
		if len(day.Slots[SlotBreakfast]) != 0 {
			t.Fatal("slot update must replace the full slot list")
		}
		if day.Goals.Calories != 2200 {
			t.Fatal("goals must survive a slots-only update")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		u := DayUpdate{Goals: &GoalsUpdate{Calories: ptr(1900.0), Fats: ptr(65.0)}}
		once := ApplyDayUpdate(week, monday, u)
		twice := ApplyDayUpdate(once, monday, u)
		if once[monday].Goals != twice[monday].Goals {
			t.Fatalf("goal update not idempotent: %+v vs %+v",
				once[monday].Goals, twice[monday].Goals)
		}
	})

	t.Run("NoAliasingWithInput", func(t *testing.T) {
		items := []PlanMealItem{sampleItem("rice", 130, 100, 100)}
		got := ApplyDayUpdate(week, monday, DayUpdate{
			Slots: map[Slot][]PlanMealItem{SlotLunch: items},
		})
		items[0].Quantity = 1
		if got[monday].Slots[SlotLunch][0].Quantity == 1 {
			t.Fatal("result aliases the update's item slice")
		}
	})
}

func TestWeeklyPlanDay(t *testing.T) {
	week := WeeklyPlan{}
	day := week.Day("2026-09-01")
	if !day.IsEmpty() {
		t.Fatal("absent date must read as an empty day")
	}
}

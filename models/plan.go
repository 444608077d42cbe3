package models

// In-memory view of a user's nutrition plan. These types are what the
// aggregation and autosave layers operate on; the gorm rows in
// daily_entry.go are their persisted form.

// Slot is one of the fixed meal-time categories of a day.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
	SlotSnacks    Slot = "snacks"
)

// Slots returns the meal slots of a day in display order.
func Slots() []Slot {
	return []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnacks}
}

// ValidSlot reports whether s is one of the fixed slot names.
func ValidSlot(s Slot) bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnacks:
		return true
	}
	return false
}

// Nutrition is an energy/macro quadruple, in kcal and grams.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Add returns the component-wise sum of n and o.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fats:     n.Fats + o.Fats,
	}
}

// Scale returns n multiplied by factor.
func (n Nutrition) Scale(factor float64) Nutrition {
	return Nutrition{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Carbs:    n.Carbs * factor,
		Fats:     n.Fats * factor,
	}
}

// Goals are daily calorie/macro targets. A zero calorie target means
// "no goal set for this day yet".
type Goals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// IsZero reports whether no target has been set.
func (g Goals) IsZero() bool {
	return g.Calories == 0 && g.Protein == 0 && g.Carbs == 0 && g.Fats == 0
}

// PlanMealItem is one food or custom meal placed into a slot with a chosen
// quantity. Facts are a snapshot per one serving of the source item, so a
// plan entry survives later edits or deletion of the source.
type PlanMealItem struct {
	InstanceID  string    `json:"instance_id"` // unique within the day
	Label       string    `json:"label"`
	Facts       Nutrition `json:"facts"` // per serving
	ServingSize float64   `json:"serving_size"`
	ServingUnit string    `json:"serving_unit"`
	Quantity    float64   `json:"quantity"` // in ServingUnit
	SourceKind  string    `json:"source_kind"` // "food" | "meal"
	SourceID    uint      `json:"source_id"`
}

// Consumed returns the nutrition this item contributes, scaled by
// quantity/servingSize. A serving size of zero means the ratio is
// undefined and the item contributes nothing.
func (m PlanMealItem) Consumed() Nutrition {
	if m.ServingSize <= 0 {
		return Nutrition{}
	}
	return m.Facts.Scale(m.Quantity / m.ServingSize)
}

// DailyPlan is one calendar day's meal slots plus that day's goals.
type DailyPlan struct {
	Slots map[Slot][]PlanMealItem `json:"slots"`
	Goals Goals                   `json:"goals"`
}

// NewDailyPlan returns an empty day: every slot present and empty,
// goals zeroed.
func NewDailyPlan() DailyPlan {
	slots := make(map[Slot][]PlanMealItem, len(Slots()))
	for _, s := range Slots() {
		slots[s] = nil
	}
	return DailyPlan{Slots: slots}
}

// Clone returns a deep copy; item slices are never shared with the
// receiver, so the copy can be mutated (or handed to the autosave timer)
// without aliasing.
func (d DailyPlan) Clone() DailyPlan {
	out := DailyPlan{Goals: d.Goals, Slots: make(map[Slot][]PlanMealItem, len(d.Slots))}
	for slot, items := range d.Slots {
		if items == nil {
			out.Slots[slot] = nil
			continue
		}
		cp := make([]PlanMealItem, len(items))
		copy(cp, items)
		out.Slots[slot] = cp
	}
	return out
}

// IsEmpty reports whether the day has no goals and no items in any slot.
// Empty days are never persisted.
func (d DailyPlan) IsEmpty() bool {
	if !d.Goals.IsZero() {
		return false
	}
	for _, items := range d.Slots {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

// SlotTotal sums the consumed nutrition of one slot.
func (d DailyPlan) SlotTotal(s Slot) Nutrition {
	var total Nutrition
	for _, it := range d.Slots[s] {
		total = total.Add(it.Consumed())
	}
	return total
}

// Total sums the consumed nutrition of the whole day.
func (d DailyPlan) Total() Nutrition {
	var total Nutrition
	for _, s := range Slots() {
		total = total.Add(d.SlotTotal(s))
	}
	return total
}

// WeeklyPlan maps date keys (YYYY-MM-DD) to daily plans for the displayed
// week. A missing key is equivalent to an empty day.
type WeeklyPlan map[string]DailyPlan

// Day returns the plan for key, or an empty day if absent.
func (w WeeklyPlan) Day(key string) DailyPlan {
	if d, ok := w[key]; ok {
		return d
	}
	return NewDailyPlan()
}

// GoalsUpdate overrides individual goal fields; nil fields keep the
// current value.
type GoalsUpdate struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
}

// DayUpdate is a partial update to one day. A nil Slots map keeps the
// current slots; a non-nil map replaces the full slot list. Goals merge
// field by field.
type DayUpdate struct {
	Slots map[Slot][]PlanMealItem `json:"slots"`
	Goals *GoalsUpdate            `json:"goals"`
}

// ApplyDayUpdate returns a new WeeklyPlan in which only key's entry is
// replaced by u merged onto the existing day (or onto an empty day if key
// was absent). Other dates keep their existing DailyPlan values; the
// target day is deep-copied so the result never aliases week's item
// slices.
func ApplyDayUpdate(week WeeklyPlan, key string, u DayUpdate) WeeklyPlan {
	out := make(WeeklyPlan, len(week)+1)
	for k, v := range week {
		out[k] = v
	}

	day := week.Day(key).Clone()
	if u.Slots != nil {
		slots := make(map[Slot][]PlanMealItem, len(Slots()))
		for _, s := range Slots() {
			if items, ok := u.Slots[s]; ok && items != nil {
				cp := make([]PlanMealItem, len(items))
				copy(cp, items)
				slots[s] = cp
			} else {
				slots[s] = nil
			}
		}
		day.Slots = slots
	}
	if u.Goals != nil {
		if u.Goals.Calories != nil {
			day.Goals.Calories = *u.Goals.Calories
		}
		if u.Goals.Protein != nil {
			day.Goals.Protein = *u.Goals.Protein
		}
		if u.Goals.Carbs != nil {
			day.Goals.Carbs = *u.Goals.Carbs
		}
		if u.Goals.Fats != nil {
			day.Goals.Fats = *u.Goals.Fats
		}
	}

	out[key] = day
	return out
}

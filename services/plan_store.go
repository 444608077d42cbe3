package services

import (
	"fmt"
	"sort"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewInstanceID mints the identifier that distinguishes two entries of
// the same food within one day.
func NewInstanceID() string {
	return uuid.NewString()
}

// PlanStore is the narrow persistence contract the weekly aggregator and
// autosave run against. The gorm implementation below is the production
// one; tests substitute fakes.
type PlanStore interface {
	// GetDays returns the stored plans among keys. Dates with no stored
	// entry are simply absent from the result.
	GetDays(userID uint, keys []string) (map[string]models.DailyPlan, error)
	// SaveDay overwrites the full record for one date: goals plus the
	// entire slot list.
	SaveDay(userID uint, dateKey string, day models.DailyPlan) error
	// GetStandingGoals returns the user's standing targets, or nil when
	// none were ever set.
	GetStandingGoals(userID uint) (*models.Goals, error)
	SaveStandingGoals(userID uint, goals models.Goals) error
}

type GormPlanStore struct{}

func NewPlanStore() *GormPlanStore {
	return &GormPlanStore{}
}

func (s *GormPlanStore) GetDays(userID uint, keys []string) (map[string]models.DailyPlan, error) {
	var entries []models.DailyEntry
	err := config.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("plan_items.position ASC")
		}).
		Where("user_id = ? AND date_key IN ?", userID, keys).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("fetch plan days: %w", err)
	}

	out := make(map[string]models.DailyPlan, len(entries))
	for _, e := range entries {
		out[e.DateKey] = entryToPlan(e)
	}
	return out, nil
}

func (s *GormPlanStore) SaveDay(userID uint, dateKey string, day models.DailyPlan) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.DailyEntry{UserID: userID, DateKey: dateKey}
		if err := tx.Where("user_id = ? AND date_key = ?", userID, dateKey).
			FirstOrCreate(&entry).Error; err != nil {
			return fmt.Errorf("upsert daily entry: %w", err)
		}

		entry.CalorieGoal = day.Goals.Calories
		entry.ProteinGoal = day.Goals.Protein
		entry.CarbGoal = day.Goals.Carbs
		entry.FatGoal = day.Goals.Fats
		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("save daily goals: %w", err)
		}

		// Full-record overwrite: drop the previous item set and recreate
		// it from the plan, never merge item by item.
		if err := tx.Where("entry_id = ?", entry.ID).
			Delete(&models.PlanItem{}).Error; err != nil {
			return fmt.Errorf("clear plan items: %w", err)
		}
		for _, slot := range models.Slots() {
			for pos, it := range day.Slots[slot] {
				row := models.PlanItem{
					EntryID:     entry.ID,
					Slot:        string(slot),
					Position:    pos,
					InstanceID:  it.InstanceID,
					Label:       it.Label,
					Calories:    it.Facts.Calories,
					Protein:     it.Facts.Protein,
					Carbs:       it.Facts.Carbs,
					Fats:        it.Facts.Fats,
					ServingSize: it.ServingSize,
					ServingUnit: it.ServingUnit,
					Quantity:    it.Quantity,
					SourceKind:  it.SourceKind,
					SourceID:    it.SourceID,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("create plan item: %w", err)
				}
			}
		}
		return nil
	})
}

func (s *GormPlanStore) GetStandingGoals(userID uint) (*models.Goals, error) {
	var row models.UserGoals
	err := config.DB.Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch standing goals: %w", err)
	}
	g := row.Goals()
	return &g, nil
}

func (s *GormPlanStore) SaveStandingGoals(userID uint, goals models.Goals) error {
	row := models.UserGoals{UserID: userID}
	if err := config.DB.Where("user_id = ?", userID).FirstOrCreate(&row).Error; err != nil {
		return fmt.Errorf("upsert standing goals: %w", err)
	}
	row.Calories = goals.Calories
	row.Protein = goals.Protein
	row.Carbs = goals.Carbs
	row.Fats = goals.Fats
	return config.DB.Save(&row).Error
}

func entryToPlan(e models.DailyEntry) models.DailyPlan {
	day := models.NewDailyPlan()
	day.Goals = models.Goals{
		Calories: e.CalorieGoal,
		Protein:  e.ProteinGoal,
		Carbs:    e.CarbGoal,
		Fats:     e.FatGoal,
	}

	sort.SliceStable(e.Items, func(i, j int) bool {
		return e.Items[i].Position < e.Items[j].Position
	})
	for _, it := range e.Items {
		slot := models.Slot(it.Slot)
		if !models.ValidSlot(slot) {
			continue // legacy slot names are skipped, not fatal
		}
		day.Slots[slot] = append(day.Slots[slot], models.PlanMealItem{
			InstanceID:  it.InstanceID,
			Label:       it.Label,
			Facts:       models.Nutrition{Calories: it.Calories, Protein: it.Protein, Carbs: it.Carbs, Fats: it.Fats},
			ServingSize: it.ServingSize,
			ServingUnit: it.ServingUnit,
			Quantity:    it.Quantity,
			SourceKind:  it.SourceKind,
			SourceID:    it.SourceID,
		})
	}
	return day
}

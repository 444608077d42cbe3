package services

import (
	"fmt"
	"time"

	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"
)

// WeeklyPlanService builds the in-memory WeeklyPlan for a displayed
// Monday–Sunday window.
type WeeklyPlanService struct {
	store PlanStore
	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewWeeklyPlanService(store PlanStore) *WeeklyPlanService {
	return &WeeklyPlanService{store: store, now: time.Now}
}

// LoadWeek fetches the 7 days of the week starting at weekStart for
// ownerID. Missing days resolve to empty plans. When the window contains
// today, the viewer is the owner, and today's stored calorie goal is
// zero, today's goals are seeded from standing (the user's non-date
// targets). Seeding never touches other days and never applies to a
// professional viewing a client's plan.
//
// On a store failure the caller keeps whatever week it was already
// showing; this method returns only the error.
func (s *WeeklyPlanService) LoadWeek(ownerID, viewerID uint, weekStart time.Time, standing *models.Goals) (models.WeeklyPlan, error) {
	keys := utils.WeekKeys(weekStart)

	stored, err := s.store.GetDays(ownerID, keys)
	if err != nil {
		return nil, fmt.Errorf("load week: %w", err)
	}

	week := make(models.WeeklyPlan, len(keys))
	for _, key := range keys {
		if day, ok := stored[key]; ok {
			week[key] = day
		} else {
			week[key] = models.NewDailyPlan()
		}
	}

	today := utils.DateKey(s.now())
	if _, inWindow := week[today]; inWindow &&
		viewerID == ownerID &&
		standing != nil &&
		week[today].Goals.Calories == 0 {
		day := week[today].Clone()
		day.Goals = *standing
		week[today] = day
	}

	return week, nil
}

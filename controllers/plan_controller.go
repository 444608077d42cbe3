package controllers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/services"
	"github.com/Tobix2/Calorika-sub000/utils"

	"github.com/gin-gonic/gin"
)

// resolvePlanOwner decides whose plan the request targets: the caller's
// own, or — for professionals with an active link — a client's,
// read-only.
func resolvePlanOwner(c *gin.Context) (ownerID uint, viewerID uint, ok bool) {
	viewerID = middlewares.UserID(c)
	ownerID = viewerID

	if raw := c.Query("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client_id"})
			return 0, 0, false
		}
		ownerID = uint(id)

		allowed, err := services.CanViewPlan(viewerID, ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return 0, 0, false
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "no access to this client's plan"})
			return 0, 0, false
		}
	}
	return ownerID, viewerID, true
}

// GetWeek returns the 7-day plan window starting at ?start (any date
// inside the desired week; defaults to today). Days never stored come
// back as empty plans.
func GetWeek(c *gin.Context) {
	ownerID, viewerID, ok := resolvePlanOwner(c)
	if !ok {
		return
	}

	weekStart := time.Now()
	if raw := c.Query("start"); raw != "" {
		t, err := utils.ParseDateKey(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		weekStart = t
	}

	// Standing goals seed today's plan only when the owner views their
	// own week.
	var standing *models.Goals
	if ownerID == viewerID {
		goals, err := services.GetStandingGoals(ownerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !goals.IsZero() {
			standing = &goals
		}
	}

	// Loading a week must never write back what it just read (seeding
	// included), so scheduling for this plan's owner pauses for the
	// duration of the fetch.
	services.Saver.SuspendLoads(ownerID)
	defer services.Saver.ResumeLoads(ownerID)

	weekly := services.NewWeeklyPlanService(services.NewPlanStore())
	week, err := weekly.LoadWeek(ownerID, viewerID, weekStart, standing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load week, showing last known plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week_start": utils.DateKey(utils.WeekStart(weekStart)),
		"days":       week,
	})
}

// UpdateDay applies a partial update to one date of the caller's own
// plan and schedules a debounced write; rapid edits to the same date
// collapse into one store write.
func UpdateDay(c *gin.Context) {
	userID := middlewares.UserID(c)

	dateKey := c.Param("date")
	if _, err := utils.ParseDateKey(dateKey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var update models.DayUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for slot, items := range update.Slots {
		if !models.ValidSlot(slot) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal slot " + string(slot)})
			return
		}
		for i := range items {
			if items[i].Quantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be non-negative"})
				return
			}
			if items[i].InstanceID == "" {
				items[i].InstanceID = services.NewInstanceID()
			}
		}
	}
	if update.Goals != nil {
		for _, v := range []*float64{update.Goals.Calories, update.Goals.Protein, update.Goals.Carbs, update.Goals.Fats} {
			if v != nil && *v < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "goals must be non-negative"})
				return
			}
		}
	}

	// Base state is the pending debounced day when one exists: edits
	// inside the quiet window must stack, not overwrite each other from
	// a stale store read.
	var week models.WeeklyPlan
	if pending, ok := services.Saver.Pending(userID, dateKey); ok {
		week = models.WeeklyPlan{dateKey: pending}
	} else {
		stored, err := services.NewPlanStore().GetDays(userID, []string{dateKey})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		week = models.WeeklyPlan(stored)
	}
	week = models.ApplyDayUpdate(week, dateKey, update)
	day := week[dateKey]

	services.Saver.Schedule(userID, dateKey, day)

	c.JSON(http.StatusOK, gin.H{
		"date":  dateKey,
		"day":   day,
		"total": day.Total(),
	})
}

// FlushPlans persists the caller's pending edits immediately, used when
// a session is about to end.
func FlushPlans(c *gin.Context) {
	services.Saver.FlushUser(middlewares.UserID(c))
	c.Status(http.StatusNoContent)
}

// Bootstrap performs the combined initial load: food database, custom
// meals, standing goals, then the current week (which needs the goals
// for seeding). The three independent fetches run concurrently.
func Bootstrap(c *gin.Context) {
	userID := middlewares.UserID(c)

	var (
		wg    sync.WaitGroup
		foods []models.FoodItem
		meals []models.CustomMeal
		goals models.Goals

		foodsErr, mealsErr, goalsErr error
	)

	wg.Add(3)
	go func() { defer wg.Done(); foods, foodsErr = services.ListFoods(userID) }()
	go func() { defer wg.Done(); meals, mealsErr = services.ListCustomMeals(userID) }()
	go func() { defer wg.Done(); goals, goalsErr = services.GetStandingGoals(userID) }()
	wg.Wait()

	for _, err := range []error{foodsErr, mealsErr, goalsErr} {
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	var standing *models.Goals
	if !goals.IsZero() {
		standing = &goals
	}

	// The week fetch waits for goals above; seeding must see them. As
	// with GetWeek, scheduling pauses so the load cannot write back.
	services.Saver.SuspendLoads(userID)
	defer services.Saver.ResumeLoads(userID)

	weekly := services.NewWeeklyPlanService(services.NewPlanStore())
	week, err := weekly.LoadWeek(userID, userID, time.Now(), standing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"foods":        foods,
		"custom_meals": meals,
		"goals":        goals,
		"week_start":   utils.DateKey(utils.WeekStart(time.Now())),
		"days":         week,
	})
}

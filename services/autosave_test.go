package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Tobix2/Calorika-sub000/models"
)

type recordingWriter struct {
	mu     sync.Mutex
	writes []recordedWrite
	err    error
}

type recordedWrite struct {
	userID  uint
	dateKey string
	day     models.DailyPlan
}

func (w *recordingWriter) SaveDay(userID uint, dateKey string, day models.DailyPlan) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.writes = append(w.writes, recordedWrite{userID, dateKey, day})
	return nil
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.writes)
}

func (w *recordingWriter) last() recordedWrite {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes[len(w.writes)-1]
}

func dayWithCalories(calories float64) models.DailyPlan {
	day := models.NewDailyPlan()
	day.Goals = models.Goals{Calories: calories}
	return day
}

func fptr(v float64) *float64 { return &v }

func TestAutosaveDebounce(t *testing.T) {
	const quiet = 40 * time.Millisecond

	t.Run("BurstCollapsesToOneWrite", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, quiet, nil)

		for i := 1; i <= 5; i++ {
			a.Schedule(7, "2026-09-02", dayWithCalories(float64(i*100)))
			time.Sleep(5 * time.Millisecond)
		}
		time.Sleep(4 * quiet)

		if got := w.count(); got != 1 {
			t.Fatalf("writes = %d, want 1", got)
		}
		if got := w.last(); got.day.Goals.Calories != 500 {
			t.Fatalf("persisted calories = %v, want final 500", got.day.Goals.Calories)
		}
	})

	t.Run("KeysDebounceIndependently", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, quiet, nil)

		a.Schedule(7, "2026-09-02", dayWithCalories(100))
		a.Schedule(7, "2026-09-03", dayWithCalories(200))
		a.Schedule(8, "2026-09-02", dayWithCalories(300))
		time.Sleep(4 * quiet)

		if got := w.count(); got != 3 {
			t.Fatalf("writes = %d, want 3", got)
		}
	})

	t.Run("EmptyDaySkipped", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, quiet, nil)

		a.Schedule(7, "2026-09-02", models.NewDailyPlan())
		time.Sleep(4 * quiet)

		if got := w.count(); got != 0 {
			t.Fatalf("empty day persisted: %d writes", got)
		}
	})

	t.Run("SuspendedLoadsDoNotWrite", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, quiet, nil)

		a.SuspendLoads(7)
		a.Schedule(7, "2026-09-02", dayWithCalories(100))

		// Suspension is per user: someone else's edit still lands.
		a.Schedule(8, "2026-09-02", dayWithCalories(200))

		a.ResumeLoads(7)
		time.Sleep(4 * quiet)

		if got := w.count(); got != 1 {
			t.Fatalf("writes during suspension = %d, want only the other user's", got)
		}
		if got := w.last(); got.userID != 8 {
			t.Fatalf("wrote user %d, want 8", got.userID)
		}

		// Scheduling works again once resumed.
		a.Schedule(7, "2026-09-02", dayWithCalories(100))
		time.Sleep(4 * quiet)
		if got := w.count(); got != 2 {
			t.Fatalf("writes after resume = %d, want 2", got)
		}
	})

	t.Run("PendingExposesScheduledState", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, time.Minute, nil)

		if _, ok := a.Pending(7, "2026-09-02"); ok {
			t.Fatal("pending state reported before any schedule")
		}

		a.Schedule(7, "2026-09-02", dayWithCalories(100))
		got, ok := a.Pending(7, "2026-09-02")
		if !ok || got.Goals.Calories != 100 {
			t.Fatalf("pending = (%+v, %v)", got.Goals, ok)
		}

		// The copy is detached from what will be written.
		got.Goals.Calories = 999
		a.Flush()
		if w.last().day.Goals.Calories != 100 {
			t.Fatal("pending copy aliased the scheduled state")
		}
	})

	t.Run("PartialEditsStackWithinWindow", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, quiet, nil)

		// Two partial updates inside one quiet window, each applied onto
		// the then-current day: pending state if any, else the store.
		applyEdit := func(update models.DayUpdate) {
			week := models.WeeklyPlan{}
			if pending, ok := a.Pending(7, "2026-09-02"); ok {
				week["2026-09-02"] = pending
			}
			week = models.ApplyDayUpdate(week, "2026-09-02", update)
			a.Schedule(7, "2026-09-02", week["2026-09-02"])
		}

		applyEdit(models.DayUpdate{Goals: &models.GoalsUpdate{Calories: fptr(1800)}})
		applyEdit(models.DayUpdate{Goals: &models.GoalsUpdate{Protein: fptr(150)}})
		time.Sleep(4 * quiet)

		if got := w.count(); got != 1 {
			t.Fatalf("writes = %d, want 1", got)
		}
		goals := w.last().day.Goals
		if goals.Calories != 1800 || goals.Protein != 150 {
			t.Fatalf("persisted goals = %+v, first edit of the burst was lost", goals)
		}
	})

	t.Run("StopCancelsPending", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, quiet, nil)

		a.Schedule(7, "2026-09-02", dayWithCalories(100))
		a.Stop()
		time.Sleep(4 * quiet)

		if got := w.count(); got != 0 {
			t.Fatalf("stopped scheduler still wrote: %d", got)
		}

		a.Schedule(7, "2026-09-03", dayWithCalories(200))
		time.Sleep(4 * quiet)
		if got := w.count(); got != 0 {
			t.Fatalf("stopped scheduler accepted new work: %d", got)
		}
	})

	t.Run("FlushWritesImmediately", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, time.Minute, nil)

		a.Schedule(7, "2026-09-02", dayWithCalories(100))
		a.Schedule(7, "2026-09-03", dayWithCalories(200))
		a.Flush()

		if got := w.count(); got != 2 {
			t.Fatalf("flush wrote %d days, want 2", got)
		}
	})

	t.Run("FlushUserLeavesOthersPending", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, time.Minute, nil)

		a.Schedule(7, "2026-09-02", dayWithCalories(100))
		a.Schedule(8, "2026-09-02", dayWithCalories(200))
		a.FlushUser(7)

		if got := w.count(); got != 1 {
			t.Fatalf("flush-user wrote %d days, want 1", got)
		}
		if got := w.last(); got.userID != 7 {
			t.Fatalf("flushed user %d, want 7", got.userID)
		}

		a.Flush()
		if got := w.count(); got != 2 {
			t.Fatalf("remaining user lost: %d writes total", got)
		}
	})

	t.Run("WriteFailureNotifiesWithKey", func(t *testing.T) {
		w := &recordingWriter{err: errors.New("save failed")}
		failed := make(chan string, 1)
		a := NewAutosave(w, quiet, func(userID uint, dateKey string, err error) {
			failed <- dateKey
		})

		a.Schedule(7, "2026-09-02", dayWithCalories(100))
		select {
		case got := <-failed:
			if got != "2026-09-02" {
				t.Fatalf("error callback got date %q", got)
			}
		case <-time.After(10 * quiet):
			t.Fatal("error callback never fired")
		}
	})

	t.Run("ScheduledStateIsDetached", func(t *testing.T) {
		w := &recordingWriter{}
		a := NewAutosave(w, quiet, nil)

		day := dayWithCalories(100)
		day.Slots[models.SlotLunch] = []models.PlanMealItem{{InstanceID: "a", Label: "rice", Quantity: 100, ServingSize: 100}}
		a.Schedule(7, "2026-09-02", day)

		// Mutations after Schedule must not leak into the write.
		day.Slots[models.SlotLunch][0].Quantity = 999
		time.Sleep(4 * quiet)

		if got := w.last().day.Slots[models.SlotLunch][0].Quantity; got != 100 {
			t.Fatalf("pending state aliased caller's day: quantity %v", got)
		}
	})
}

package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"
)

// DayWriter is the write half of PlanStore, all Autosave needs.
type DayWriter interface {
	SaveDay(userID uint, dateKey string, day models.DailyPlan) error
}

// DefaultQuietInterval is how long a day must stay unedited before its
// pending write fires.
const DefaultQuietInterval = time.Second

// Saver is the process-wide autosave scheduler, wired in main.
var Saver *Autosave

func InitAutosave(writer DayWriter, quiet time.Duration) {
	Saver = NewAutosave(writer, quiet, func(userID uint, dateKey string, err error) {
		utils.Log.WithField("user_id", userID).WithField("date", dateKey).
			Errorf("autosave failed: %v", err)
		Notify(userID, "error", "We couldn't save your plan for "+dateKey+". Your changes are still on screen; please retry.")
	})
}

type pendingWrite struct {
	timer *time.Timer
	day   models.DailyPlan
}

// Autosave coalesces bursts of edits to the same (user, date) into one
// store write: each Schedule cancels the previous pending timer for that
// key and starts a new one, so only the final state of a burst is
// persisted. Different dates debounce independently and carry no
// cross-key ordering guarantee.
type Autosave struct {
	writer  DayWriter
	quiet   time.Duration
	onError func(userID uint, dateKey string, err error)

	mu        sync.Mutex
	pending   map[string]*pendingWrite // key: "userID/dateKey"
	suspended map[uint]int             // users whose loads are in flight
	stopped   bool
}

func NewAutosave(writer DayWriter, quiet time.Duration, onError func(uint, string, error)) *Autosave {
	if quiet <= 0 {
		quiet = DefaultQuietInterval
	}
	if onError == nil {
		onError = func(userID uint, dateKey string, err error) {
			utils.Log.WithField("user_id", userID).WithField("date", dateKey).
				Errorf("autosave failed: %v", err)
		}
	}
	return &Autosave{
		writer:    writer,
		quiet:     quiet,
		onError:   onError,
		pending:   make(map[string]*pendingWrite),
		suspended: make(map[uint]int),
	}
}

func autosaveKey(userID uint, dateKey string) string {
	return fmt.Sprintf("%d/%s", userID, dateKey)
}

// Schedule records day as the state to persist for (userID, dateKey)
// after the quiet interval. Genuinely empty days are skipped so days the
// user never touched don't grow spurious records, and nothing is
// scheduled while loads are suspended (the fetch-then-seed path must not
// write back what it just read).
func (a *Autosave) Schedule(userID uint, dateKey string, day models.DailyPlan) {
	if day.IsEmpty() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped || a.suspended[userID] > 0 {
		return
	}

	key := autosaveKey(userID, dateKey)
	if prev, ok := a.pending[key]; ok {
		prev.timer.Stop()
	}

	p := &pendingWrite{day: day.Clone()}
	p.timer = time.AfterFunc(a.quiet, func() {
		a.fire(userID, dateKey, key, p)
	})
	a.pending[key] = p
}

func (a *Autosave) fire(userID uint, dateKey, key string, p *pendingWrite) {
	a.mu.Lock()
	// A newer schedule may have replaced us between the timer firing and
	// the lock being taken; only the current pending entry may write.
	if a.pending[key] != p {
		a.mu.Unlock()
		return
	}
	delete(a.pending, key)
	a.mu.Unlock()

	if err := a.writer.SaveDay(userID, dateKey, p.day); err != nil {
		a.onError(userID, dateKey, err)
	}
}

// Pending returns a detached copy of the not-yet-persisted day for
// (userID, dateKey), if one is waiting on its quiet interval. Edits
// inside the interval must build on this state, not on the store, or
// the burst's earlier edits are lost when their timer is cancelled.
func (a *Autosave) Pending(userID uint, dateKey string) (models.DailyPlan, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.pending[autosaveKey(userID, dateKey)]
	if !ok {
		return models.DailyPlan{}, false
	}
	return p.day.Clone(), true
}

// SuspendLoads pauses scheduling for one user while an initial load or
// week navigation is applying fetched state; what was just read must
// not be written back. Other users' edits are unaffected. Balanced by
// ResumeLoads.
func (a *Autosave) SuspendLoads(userID uint) {
	a.mu.Lock()
	a.suspended[userID]++
	a.mu.Unlock()
}

func (a *Autosave) ResumeLoads(userID uint) {
	a.mu.Lock()
	if a.suspended[userID] > 1 {
		a.suspended[userID]--
	} else {
		delete(a.suspended, userID)
	}
	a.mu.Unlock()
}

// Flush writes every pending day immediately.
func (a *Autosave) Flush() {
	a.mu.Lock()
	drained := a.pending
	a.pending = make(map[string]*pendingWrite)
	a.mu.Unlock()

	for key, p := range drained {
		p.timer.Stop()
		userID, dateKey := splitAutosaveKey(key)
		if err := a.writer.SaveDay(userID, dateKey, p.day); err != nil {
			a.onError(userID, dateKey, err)
		}
	}
}

// FlushUser writes the pending days of one user immediately, used when a
// session ends.
func (a *Autosave) FlushUser(userID uint) {
	prefix := fmt.Sprintf("%d/", userID)

	a.mu.Lock()
	drained := make(map[string]*pendingWrite)
	for key, p := range a.pending {
		if strings.HasPrefix(key, prefix) {
			drained[key] = p
			delete(a.pending, key)
		}
	}
	a.mu.Unlock()

	for key, p := range drained {
		p.timer.Stop()
		uid, dateKey := splitAutosaveKey(key)
		if err := a.writer.SaveDay(uid, dateKey, p.day); err != nil {
			a.onError(uid, dateKey, err)
		}
	}
}

// Stop cancels all pending timers without writing. After Stop the
// scheduler accepts nothing new.
func (a *Autosave) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	for key, p := range a.pending {
		p.timer.Stop()
		delete(a.pending, key)
	}
}

func splitAutosaveKey(key string) (uint, string) {
	i := strings.IndexByte(key, '/')
	if i < 0 {
		return 0, key
	}
	uid, _ := strconv.ParseUint(key[:i], 10, 64)
	return uint(uid), key[i+1:]
}

package verse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sadopc/vigil/internal/logger"
	"github.com/sadopc/vigil/internal/prayer"
)

// PinDuration is how long an assignment stays in place after the
// occurrence it was made for.
const PinDuration = 24 * time.Hour

const assignmentKeyPrefix = "prayer_verses_"

// AssignmentKey is the storage key of slotID's assignment.
func AssignmentKey(slotID string) string {
	return assignmentKeyPrefix + slotID
}

// Assignment pins a verse pair to one prayer slot.
type Assignment struct {
	Verses      []Verse    `json:"verses"`
	PrayerTime  string     `json:"prayerTime"`
	CreatedAt   time.Time  `json:"createdAt"`
	PrayerID    string     `json:"prayerId"`
	CompletedAt *time.Time `json:"completedAt"`
}

// ExpiresAt is PinDuration after scheduledTime on the day the assignment was
// created, taken in loc. Without a usable time the pin runs from CreatedAt.
func (a Assignment) ExpiresAt(scheduledTime string, loc *time.Location) time.Time {
	created := a.CreatedAt.In(loc)
	occurrence, err := prayer.Occurrence(scheduledTime, created)
	if err != nil {
		return created.Add(PinDuration)
	}
	return occurrence.Add(PinDuration)
}

func (a Assignment) pair() ([2]Verse, bool) {
	if len(a.Verses) < 2 {
		return [2]Verse{}, false
	}
	return [2]Verse{a.Verses[0], a.Verses[1]}, true
}

// Assignments is the per-slot verse cache. Each slot gets an independent
// random pair from the pool of its time-of-day category; the rotation
// ledger is not involved.
type Assignments struct {
	kv   KV
	pool Pool
	now  func() time.Time
	pick *picker

	mu    sync.Mutex
	slots map[string]*sync.Mutex
}

func NewAssignments(kv KV, opts ...Option) *Assignments {
	s := newSettings(opts)
	return &Assignments{
		kv:    kv,
		pool:  s.pool,
		now:   s.now,
		pick:  &picker{rng: s.rng},
		slots: make(map[string]*sync.Mutex),
	}
}

func (a *Assignments) lock(slotID string) func() {
	a.mu.Lock()
	m, ok := a.slots[slotID]
	if !ok {
		m = &sync.Mutex{}
		a.slots[slotID] = m
	}
	a.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// ForPrayer returns the verses pinned to slotID, drawing and storing a new
// pair when there is none or the pin has expired.
func (a *Assignments) ForPrayer(slotID, scheduledTime string) [2]Verse {
	defer a.lock(slotID)()

	now := a.now()
	key := AssignmentKey(slotID)

	if cached, ok := a.load(key); ok {
		pair, complete := cached.pair()
		if complete && now.Before(cached.ExpiresAt(scheduledTime, now.Location())) {
			return pair
		}
		logger.Debug("verse assignment expired", "slot", slotID, "created_at", cached.CreatedAt)
		if err := a.kv.Delete(key); err != nil {
			logger.Error("delete verse assignment", "slot", slotID, "err", err)
		}
	}

	category := CategoryForTime(scheduledTime)
	picked := a.pick.pick(a.pool.For(category), 2)
	if len(picked) < 2 {
		logger.Warn("verse category too small", "category", category, "size", len(picked))
		return Fallback
	}

	a.save(key, Assignment{
		Verses:     picked,
		PrayerTime: scheduledTime,
		CreatedAt:  now,
		PrayerID:   slotID,
	})
	logger.Debug("assigned verses", "slot", slotID, "category", category,
		"refs", []string{picked[0].Reference, picked[1].Reference})
	return [2]Verse{picked[0], picked[1]}
}

// Peek returns the stored assignment for slotID, if any, without checking
// expiry.
func (a *Assignments) Peek(slotID string) (Assignment, bool) {
	defer a.lock(slotID)()
	return a.load(AssignmentKey(slotID))
}

// MarkCompleted stamps the assignment of slotID as completed. It does not
// change when the assignment expires.
func (a *Assignments) MarkCompleted(slotID string) {
	defer a.lock(slotID)()

	key := AssignmentKey(slotID)
	cached, ok := a.load(key)
	if !ok {
		return
	}
	now := a.now()
	cached.CompletedAt = &now
	a.save(key, cached)
}

// Refresh drops the assignment of slotID so the next ForPrayer draws anew.
func (a *Assignments) Refresh(slotID string) {
	defer a.lock(slotID)()

	if err := a.kv.Delete(AssignmentKey(slotID)); err != nil {
		logger.Error("delete verse assignment", "slot", slotID, "err", err)
	}
}

func (a *Assignments) load(key string) (Assignment, bool) {
	raw, ok, err := a.kv.Get(key)
	if err != nil {
		logger.Error("load verse assignment", "key", key, "err", err)
		return Assignment{}, false
	}
	if !ok {
		return Assignment{}, false
	}
	var as Assignment
	if err := json.Unmarshal([]byte(raw), &as); err != nil {
		logger.Error("decode verse assignment", "key", key, "err", err)
		return Assignment{}, false
	}
	return as, true
}

func (a *Assignments) save(key string, as Assignment) {
	data, err := json.Marshal(as)
	if err != nil {
		logger.Error("encode verse assignment", "key", key, "err", err)
		return
	}
	if err := a.kv.Set(key, string(data)); err != nil {
		logger.Error("save verse assignment", "key", key, "err", err)
	}
}

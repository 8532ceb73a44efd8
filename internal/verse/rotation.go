package verse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sadopc/vigil/internal/logger"
	"github.com/sadopc/vigil/internal/prayer"
)

// RotationKey is where the ledger is stored.
const RotationKey = "verseRotationState"

// Ledger tracks which verses of the flat pool have been handed out since the
// last reset.
type Ledger struct {
	AvailableVerses []Verse `json:"availableVerses"`
	UsedVerses      []Verse `json:"usedVerses"`
	LastResetDate   string  `json:"lastResetDate"`
}

type RotationStats struct {
	Total         int
	Available     int
	Used          int
	LastResetDate string
	PercentUsed   int
}

// Rotation hands out verse pairs from the flat pool without repeats until
// the pool runs low or the day changes, then starts over.
type Rotation struct {
	kv   KV
	pool []Verse
	now  func() time.Time
	pick *picker

	mu sync.Mutex
}

func NewRotation(kv KV, opts ...Option) *Rotation {
	s := newSettings(opts)
	return &Rotation{
		kv:   kv,
		pool: s.pool.All(),
		now:  s.now,
		pick: &picker{rng: s.rng},
	}
}

// Draw returns two verses not drawn since the last reset. Storage failures
// are logged and the draw continues from an in-memory ledger.
func (r *Rotation) Draw() [2]Verse {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pool) < 2 {
		logger.Warn("verse pool too small for rotation", "size", len(r.pool))
		return Fallback
	}

	today := prayer.Today(r.now())
	l := r.load(today)
	if l.LastResetDate != today || len(l.AvailableVerses) < 2 {
		logger.Debug("resetting verse rotation",
			"last_reset", l.LastResetDate, "available", len(l.AvailableVerses))
		l = r.fresh(today)
	}

	picked := r.pick.pick(l.AvailableVerses, 2)
	for _, v := range picked {
		l.AvailableVerses = removeFirst(l.AvailableVerses, v)
	}
	l.UsedVerses = append(l.UsedVerses, picked...)

	r.save(l)
	return [2]Verse{picked[0], picked[1]}
}

// Stats reports the stored ledger without changing it.
func (r *Rotation) Stats() RotationStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.load(prayer.Today(r.now()))
	st := RotationStats{
		Total:         len(r.pool),
		Available:     len(l.AvailableVerses),
		Used:          len(l.UsedVerses),
		LastResetDate: l.LastResetDate,
	}
	if st.Total > 0 {
		st.PercentUsed = int(float64(st.Used)/float64(st.Total)*100 + 0.5)
	}
	return st
}

// Reset refills the ledger from the full pool and persists it.
func (r *Rotation) Reset() Ledger {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.fresh(prayer.Today(r.now()))
	r.save(l)
	return l
}

func (r *Rotation) fresh(today string) Ledger {
	available := make([]Verse, len(r.pool))
	copy(available, r.pool)
	return Ledger{
		AvailableVerses: available,
		UsedVerses:      []Verse{},
		LastResetDate:   today,
	}
}

func (r *Rotation) load(today string) Ledger {
	raw, ok, err := r.kv.Get(RotationKey)
	if err != nil {
		logger.Error("load verse rotation", "err", err)
		return r.fresh(today)
	}
	if !ok {
		return r.fresh(today)
	}
	var l Ledger
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		logger.Error("decode verse rotation", "err", err)
		return r.fresh(today)
	}
	return l
}

func (r *Rotation) save(l Ledger) {
	data, err := json.Marshal(l)
	if err != nil {
		logger.Error("encode verse rotation", "err", err)
		return
	}
	if err := r.kv.Set(RotationKey, string(data)); err != nil {
		logger.Error("save verse rotation", "err", err)
	}
}

func removeFirst(vs []Verse, v Verse) []Verse {
	for i := range vs {
		if vs[i].Same(v) {
			return append(vs[:i:i], vs[i+1:]...)
		}
	}
	return vs
}

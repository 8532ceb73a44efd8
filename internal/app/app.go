// Package app ties the status engine, the verse caches and the store
// together into the operations the CLI and the TUI expose.
package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sadopc/vigil/internal/logger"
	"github.com/sadopc/vigil/internal/prayer"
	"github.com/sadopc/vigil/internal/store"
	"github.com/sadopc/vigil/internal/verse"
)

var (
	ErrNotAvailable = errors.New("prayer is not available")
	ErrInvalidTime  = errors.New("invalid time, want HH:MM")
)

// Row is one prayer together with its status at a given instant.
type Row struct {
	Prayer store.Prayer
	Status prayer.Status
}

func (r Row) Label(points int) string {
	return prayer.Label(r.Status, points)
}

type App struct {
	Store       *store.Store
	Rotation    *verse.Rotation
	Assignments *verse.Assignments
	Points      int

	now func() time.Time
	mu  sync.Mutex // serializes Complete
}

type Option func(*options)

type options struct {
	now  func() time.Time
	seed *uint64
	pool verse.Pool
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSeed makes every verse draw deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = &seed }
}

func WithPool(p verse.Pool) Option {
	return func(o *options) { o.pool = p }
}

func New(s *store.Store, points int, opts ...Option) *App {
	o := options{now: time.Now, pool: verse.DefaultPool}
	for _, opt := range opts {
		opt(&o)
	}

	rotOpts := []verse.Option{verse.WithClock(o.now), verse.WithPool(o.pool)}
	asgOpts := []verse.Option{verse.WithClock(o.now), verse.WithPool(o.pool)}
	if o.seed != nil {
		// Each cache owns its generator.
		rotOpts = append(rotOpts, verse.WithRand(rand.New(rand.NewPCG(*o.seed, 1))))
		asgOpts = append(asgOpts, verse.WithRand(rand.New(rand.NewPCG(*o.seed, 2))))
	}

	return &App{
		Store:       s,
		Rotation:    verse.NewRotation(s, rotOpts...),
		Assignments: verse.NewAssignments(s, asgOpts...),
		Points:      points,
		now:         o.now,
	}
}

func (a *App) Now() time.Time {
	return a.now()
}

// Today returns every prayer with its status, in time order.
func (a *App) Today() ([]Row, error) {
	now := a.now()
	prayers, err := a.Store.ListPrayers()
	if err != nil {
		return nil, err
	}
	history, err := a.Store.CompletionsOn(prayer.Today(now))
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(prayers))
	for _, p := range prayers {
		rows = append(rows, Row{
			Prayer: p,
			Status: prayer.ComputeStatus(p.Time, history, p.SlotID, now),
		})
	}
	return rows, nil
}

func (a *App) Status(slotID string) (Row, error) {
	p, err := a.Store.GetPrayer(slotID)
	if err != nil {
		return Row{}, err
	}
	now := a.now()
	history, err := a.Store.CompletionsOn(prayer.Today(now))
	if err != nil {
		return Row{}, err
	}
	return Row{Prayer: *p, Status: prayer.ComputeStatus(p.Time, history, slotID, now)}, nil
}

// Next returns the prayer that is open now or still ahead today. When every
// prayer today is done or past, ok is false and row holds tomorrow's first
// scheduled prayer.
func (a *App) Next() (row Row, ok bool, err error) {
	now := a.now()
	prayers, err := a.Store.ListPrayers()
	if err != nil {
		return Row{}, false, err
	}
	history, err := a.Store.CompletionsOn(prayer.Today(now))
	if err != nil {
		return Row{}, false, err
	}

	bySlot := make(map[string]store.Prayer, len(prayers))
	var defs []prayer.Definition
	for _, p := range prayers {
		if !prayer.ValidTime(p.Time) {
			continue
		}
		bySlot[p.SlotID] = p
		defs = append(defs, p.Definition())
	}

	if def, st, found := prayer.NextAvailable(defs, history, now); found {
		return Row{Prayer: bySlot[def.SlotID], Status: st}, true, nil
	}
	if def, found := prayer.NextPrayer(defs, now); found {
		return Row{Prayer: bySlot[def.SlotID]}, false, nil
	}
	return Row{}, false, nil
}

// Complete records a completion of slotID. It fails with ErrNotAvailable
// unless the prayer is inside its window and not yet completed today.
func (a *App) Complete(slotID string) (*store.Completion, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	row, err := a.Status(slotID)
	if err != nil {
		return nil, err
	}
	if !row.Status.CanComplete() {
		return nil, fmt.Errorf("%s is %s: %w", slotID, row.Status.Kind, ErrNotAvailable)
	}

	c, err := a.Store.RecordCompletion(slotID, a.now(), a.Points)
	if err != nil {
		return nil, err
	}
	a.Assignments.MarkCompleted(slotID)
	logger.Info("prayer completed", "slot", slotID, "points", a.Points)
	return c, nil
}

// Verses returns the pinned pair for slotID.
func (a *App) Verses(slotID string) ([2]verse.Verse, error) {
	p, err := a.Store.GetPrayer(slotID)
	if err != nil {
		return verse.Placeholder, err
	}
	return a.Assignments.ForPrayer(p.SlotID, p.Time), nil
}

// RefreshVerses drops the pin for slotID and draws a new pair.
func (a *App) RefreshVerses(slotID string) ([2]verse.Verse, error) {
	p, err := a.Store.GetPrayer(slotID)
	if err != nil {
		return verse.Placeholder, err
	}
	a.Assignments.Refresh(p.SlotID)
	return a.Assignments.ForPrayer(p.SlotID, p.Time), nil
}

func (a *App) AddPrayer(slotID, name, scheduled string) (*store.Prayer, error) {
	if slotID == "" {
		return nil, errors.New("slot id is required")
	}
	if scheduled != "" && !prayer.ValidTime(scheduled) {
		return nil, fmt.Errorf("%q: %w", scheduled, ErrInvalidTime)
	}
	if name == "" {
		name = slotID
	}
	return a.Store.CreatePrayer(slotID, name, scheduled)
}

// EditPrayer renames and/or reschedules slotID; empty arguments are left
// unchanged. A new time drops the slot's verse pin so the next draw uses
// the matching category.
func (a *App) EditPrayer(slotID, name, scheduled string) error {
	p, err := a.Store.GetPrayer(slotID)
	if err != nil {
		return err
	}
	if name != "" && name != p.Name {
		if err := a.Store.RenamePrayer(slotID, name); err != nil {
			return err
		}
	}
	if scheduled != "" && scheduled != p.Time {
		if !prayer.ValidTime(scheduled) {
			return fmt.Errorf("%q: %w", scheduled, ErrInvalidTime)
		}
		if err := a.Store.UpdatePrayerTime(slotID, scheduled); err != nil {
			return err
		}
		a.Assignments.Refresh(slotID)
		logger.Debug("prayer rescheduled", "slot", slotID, "from", p.Time, "to", scheduled)
	}
	return nil
}

func (a *App) RemovePrayer(slotID string) error {
	if err := a.Store.DeletePrayer(slotID); err != nil {
		return err
	}
	a.Assignments.Refresh(slotID)
	return nil
}

// Names maps slot ids to display names.
func (a *App) Names() (map[string]string, error) {
	prayers, err := a.Store.ListPrayers()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(prayers))
	for _, p := range prayers {
		names[p.SlotID] = p.Name
	}
	return names, nil
}

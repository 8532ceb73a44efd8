package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/vigil/internal/prayer"
)

func (s *Store) CreatePrayer(slotID, name, scheduled string) (*Prayer, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO prayers (slot_id, name, time, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		slotID, name, scheduled, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert prayer: %w", err)
	}
	return s.GetPrayer(slotID)
}

func (s *Store) GetPrayer(slotID string) (*Prayer, error) {
	p := &Prayer{}
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, slot_id, name, time, created_at, updated_at FROM prayers WHERE slot_id = ?`, slotID,
	).Scan(&p.ID, &p.SlotID, &p.Name, &p.Time, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get prayer %q: %w", slotID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get prayer %q: %w", slotID, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

// ListPrayers returns every prayer ordered by time of day.
func (s *Store) ListPrayers() ([]Prayer, error) {
	rows, err := s.db.Query(`SELECT id, slot_id, name, time, created_at, updated_at FROM prayers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list prayers: %w", err)
	}
	defer rows.Close()

	var prayers []Prayer
	for rows.Next() {
		var p Prayer
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.SlotID, &p.Name, &p.Time, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		prayers = append(prayers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// "H:MM" and "HH:MM" do not sort as text, so order in Go.
	sort.SliceStable(prayers, func(i, j int) bool {
		return prayer.MinuteOfDay(prayers[i].Time) < prayer.MinuteOfDay(prayers[j].Time)
	})
	return prayers, nil
}

// Definitions returns the prayers as engine definitions, in time order.
func (s *Store) Definitions() ([]prayer.Definition, error) {
	prayers, err := s.ListPrayers()
	if err != nil {
		return nil, err
	}
	defs := make([]prayer.Definition, 0, len(prayers))
	for _, p := range prayers {
		defs = append(defs, p.Definition())
	}
	return defs, nil
}

func (s *Store) UpdatePrayerTime(slotID, scheduled string) error {
	return s.updatePrayer(slotID, `time = ?`, scheduled)
}

func (s *Store) RenamePrayer(slotID, name string) error {
	return s.updatePrayer(slotID, `name = ?`, name)
}

func (s *Store) updatePrayer(slotID, set string, value any) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE prayers SET `+set+`, updated_at = ? WHERE slot_id = ?`, value, now, slotID,
	)
	if err != nil {
		return fmt.Errorf("update prayer %q: %w", slotID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update prayer %q: %w", slotID, ErrNotFound)
	}
	return nil
}

// DeletePrayer removes the slot. Its completion history is kept.
func (s *Store) DeletePrayer(slotID string) error {
	res, err := s.db.Exec(`DELETE FROM prayers WHERE slot_id = ?`, slotID)
	if err != nil {
		return fmt.Errorf("delete prayer %q: %w", slotID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete prayer %q: %w", slotID, ErrNotFound)
	}
	return nil
}

// SeedPrayers inserts defs only when no prayer exists yet. It reports
// whether anything was inserted.
func (s *Store) SeedPrayers(defs []prayer.Definition) (bool, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM prayers`).Scan(&count); err != nil {
		return false, fmt.Errorf("count prayers: %w", err)
	}
	if count > 0 || len(defs) == 0 {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range defs {
		if _, err := tx.Exec(
			`INSERT INTO prayers (slot_id, name, time, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			d.SlotID, d.Name, d.Time, now, now,
		); err != nil {
			return false, fmt.Errorf("seed prayer %q: %w", d.SlotID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/vigil/internal/prayer"
)

// RecordCompletion stores one completion of slotID at the given instant.
// The date is taken in at's location.
func (s *Store) RecordCompletion(slotID string, at time.Time, points int) (*Completion, error) {
	c := &Completion{
		ID:          uuid.NewString(),
		SlotID:      slotID,
		Date:        at.Format(prayer.DateFormat),
		CompletedAt: at,
		Points:      points,
	}
	_, err := s.db.Exec(
		`INSERT INTO completions (id, slot_id, date, completed_at, points) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.SlotID, c.Date, at.UTC().Format(time.RFC3339), c.Points,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}
	return c, nil
}

func (s *Store) ListCompletions(f CompletionFilter) ([]Completion, error) {
	var where []string
	var args []any
	if f.SlotID != "" {
		where = append(where, "slot_id = ?")
		args = append(args, f.SlotID)
	}
	if f.From != "" {
		where = append(where, "date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		where = append(where, "date < ?")
		args = append(args, f.To)
	}

	query := `SELECT id, slot_id, date, completed_at, points FROM completions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY completed_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var completedAt string
		if err := rows.Scan(&c.ID, &c.SlotID, &c.Date, &completedAt, &c.Points); err != nil {
			return nil, err
		}
		c.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CompletionsOn returns the completion records for one day in the form the
// status engine consumes.
func (s *Store) CompletionsOn(date string) ([]prayer.CompletionRecord, error) {
	rows, err := s.db.Query(`SELECT slot_id, date FROM completions WHERE date = ?`, date)
	if err != nil {
		return nil, fmt.Errorf("completions on %s: %w", date, err)
	}
	defer rows.Close()

	var out []prayer.CompletionRecord
	for rows.Next() {
		var r prayer.CompletionRecord
		if err := rows.Scan(&r.SlotID, &r.Date); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DailyCounts groups completions per day and slot over [from, to).
func (s *Store) DailyCounts(from, to string) ([]DailyCount, error) {
	rows, err := s.db.Query(`
		SELECT date, slot_id, COUNT(*)
		FROM completions
		WHERE date >= ? AND date < ?
		GROUP BY date, slot_id
		ORDER BY date, slot_id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	defer rows.Close()

	var out []DailyCount
	for rows.Next() {
		var d DailyCount
		if err := rows.Scan(&d.Date, &d.SlotID, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) TotalPoints() (int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COALESCE(SUM(points), 0) FROM completions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("total points: %w", err)
	}
	return total, nil
}

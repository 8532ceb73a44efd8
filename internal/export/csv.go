package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/vigil/internal/store"
)

// ToCSV writes completions to path. names maps slot ids to display names.
func ToCSV(completions []store.Completion, names map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Slot", "Prayer", "Date", "Completed At", "Points"}); err != nil {
		return err
	}

	for _, c := range completions {
		row := []string{
			c.ID,
			c.SlotID,
			prayerName(names, c.SlotID),
			c.Date,
			c.CompletedAt.Local().Format(time.RFC3339),
			strconv.Itoa(c.Points),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// prayerName falls back to the slot id for slots that were since deleted.
func prayerName(names map[string]string, slotID string) string {
	if n, ok := names[slotID]; ok && n != "" {
		return n
	}
	return slotID
}

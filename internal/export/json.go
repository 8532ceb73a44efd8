package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/vigil/internal/store"
)

type jsonExport struct {
	ExportedAt  string           `json:"exported_at"`
	Count       int              `json:"count"`
	TotalPoints int              `json:"total_points"`
	Completions []jsonCompletion `json:"completions"`
}

type jsonCompletion struct {
	ID          string `json:"id"`
	Slot        string `json:"slot"`
	Prayer      string `json:"prayer"`
	Date        string `json:"date"`
	CompletedAt string `json:"completed_at"`
	Points      int    `json:"points"`
}

func ToJSON(completions []store.Completion, names map[string]string, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(completions),
	}

	for _, c := range completions {
		export.TotalPoints += c.Points
		export.Completions = append(export.Completions, jsonCompletion{
			ID:          c.ID,
			Slot:        c.SlotID,
			Prayer:      prayerName(names, c.SlotID),
			Date:        c.Date,
			CompletedAt: c.CompletedAt.Local().Format(time.RFC3339),
			Points:      c.Points,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

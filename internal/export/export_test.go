package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/vigil/internal/store"
)

func sampleData() ([]store.Completion, map[string]string) {
	at := time.Date(2026, 3, 10, 5, 40, 0, 0, time.UTC)

	completions := []store.Completion{
		{ID: "c1", SlotID: "pre_dawn", Date: "2026-03-10", CompletedAt: at, Points: 1000},
		{ID: "c2", SlotID: "midday", Date: "2026-03-10", CompletedAt: at.Add(6 * time.Hour), Points: 1000},
		{ID: "c3", SlotID: "removed", Date: "2026-03-09", CompletedAt: at.Add(-24 * time.Hour), Points: 500},
	}

	names := map[string]string{
		"pre_dawn": "Before Sunrise",
		"midday":   "Midday",
	}

	return completions, names
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return records
}

func readJSON(t *testing.T, path string) jsonExport {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return result
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	completions, names := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(completions, names, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	expectedHeader := []string{"ID", "Slot", "Prayer", "Date", "Completed At", "Points"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "c1" || row[1] != "pre_dawn" || row[2] != "Before Sunrise" || row[3] != "2026-03-10" || row[5] != "1000" {
		t.Fatalf("unexpected first row: %v", row)
	}
	if ts, err := time.Parse(time.RFC3339, row[4]); err != nil || !ts.Equal(completions[0].CompletedAt) {
		t.Fatalf("Completed At = %q, err=%v", row[4], err)
	}
}

func TestToCSVDeletedSlotUsesSlotID(t *testing.T) {
	completions, names := sampleData()
	path := filepath.Join(t.TempDir(), "deleted.csv")
	if err := ToCSV(completions, names, path); err != nil {
		t.Fatal(err)
	}
	if got := readCSV(t, path)[3][2]; got != "removed" {
		t.Fatalf("expected slot id for unknown prayer, got %q", got)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	completions := []store.Completion{
		{ID: "c1", SlotID: "x", Date: "2026-03-10", CompletedAt: time.Now(), Points: 1},
	}
	names := map[string]string{"x": `Prayer "Special", late`}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(completions, names, path); err != nil {
		t.Fatal(err)
	}
	if got := readCSV(t, path)[1][2]; got != `Prayer "Special", late` {
		t.Fatalf("prayer name mangled: %q", got)
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	completions, names := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(completions, names, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	result := readJSON(t, path)
	if result.Count != 3 || len(result.Completions) != 3 {
		t.Fatalf("count = %d, completions = %d, want 3", result.Count, len(result.Completions))
	}
	if result.TotalPoints != 2500 {
		t.Fatalf("total_points = %d, want 2500", result.TotalPoints)
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	c := result.Completions[0]
	if c.ID != "c1" || c.Slot != "pre_dawn" || c.Prayer != "Before Sunrise" || c.Points != 1000 {
		t.Fatalf("unexpected first completion: %+v", c)
	}
	if result.Completions[2].Prayer != "removed" {
		t.Fatalf("expected slot id fallback, got %q", result.Completions[2].Prayer)
	}
	for _, c := range result.Completions {
		if _, err := time.Parse(time.RFC3339, c.CompletedAt); err != nil {
			t.Fatalf("completed_at is not valid RFC3339: %q", c.CompletedAt)
		}
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	result := readJSON(t, path)
	if result.Count != 0 || result.TotalPoints != 0 {
		t.Fatalf("unexpected empty export: %+v", result)
	}
	if result.Completions != nil {
		t.Fatal("completions should be null for empty export")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, nil, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

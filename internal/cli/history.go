package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/vigil/internal/export"
	"github.com/sadopc/vigil/internal/prayer"
	"github.com/sadopc/vigil/internal/store"
)

type HistoryCmd struct {
	Date  string `short:"d" help:"Day to show (YYYY-MM-DD). Shows recent completions when empty."`
	Limit int    `short:"l" help:"Maximum rows when no date is given." default:"20"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	f := store.CompletionFilter{Limit: c.Limit}
	if c.Date != "" {
		day, err := parseDate(c.Date)
		if err != nil {
			return err
		}
		f = store.CompletionFilter{From: c.Date, To: day.AddDate(0, 0, 1).Format(prayer.DateFormat)}
	}

	completions, err := ctx.App.Store.ListCompletions(f)
	if err != nil {
		return err
	}
	if len(completions) == 0 {
		fmt.Fprintln(ctx.Out, "No completions.")
		return nil
	}

	names, err := ctx.App.Names()
	if err != nil {
		return err
	}
	for _, comp := range completions {
		name := names[comp.SlotID]
		if name == "" {
			name = comp.SlotID
		}
		fmt.Fprintf(ctx.Out, "%s  %s  %-16s +%d\n",
			comp.Date, comp.CompletedAt.Local().Format(prayer.TimeFormat), name, comp.Points)
	}
	return nil
}

type ExportCmd struct {
	Format string `short:"f" enum:"csv,json" default:"csv" help:"Output format (csv|json)."`
	Out    string `short:"o" required:"" type:"path" help:"Destination file."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	completions, err := ctx.App.Store.ListCompletions(store.CompletionFilter{})
	if err != nil {
		return err
	}
	names, err := ctx.App.Names()
	if err != nil {
		return err
	}

	switch strings.ToLower(c.Format) {
	case "json":
		err = export.ToJSON(completions, names, c.Out)
	default:
		err = export.ToCSV(completions, names, c.Out)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Exported %d completions to %s\n", len(completions), c.Out)
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(prayer.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

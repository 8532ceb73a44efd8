package cli

import (
	"fmt"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/prayer"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	rows, err := ctx.App.Today()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(ctx.Out, "No prayers configured. Add one with: vigil prayer add <slot> <HH:MM>")
		return nil
	}

	fmt.Fprintf(ctx.Out, "%s\n", primaryStyle.Render(ctx.App.Now().Format("Monday, 2006-01-02 15:04")))
	for _, r := range rows {
		label := toneStyle(prayer.ToneOf(r.Status.Kind)).Render(r.Label(ctx.App.Points))
		fmt.Fprintf(ctx.Out, "  %-5s  %-16s %-14s %s\n", timeOrDash(r.Prayer.Time), r.Prayer.Name, r.Prayer.SlotID, label)
	}

	total, err := ctx.App.Store.TotalPoints()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s\n", mutedStyle.Render(fmt.Sprintf("Total points: %d", total)))
	return nil
}

type NextCmd struct{}

func (c *NextCmd) Run(ctx *Context) error {
	row, ok, err := ctx.App.Next()
	if err != nil {
		return err
	}
	if row.Prayer.SlotID == "" {
		fmt.Fprintln(ctx.Out, "No scheduled prayers.")
		return nil
	}
	if !ok {
		fmt.Fprintf(ctx.Out, "Done for today. Next: %s at %s tomorrow\n", row.Prayer.Name, row.Prayer.Time)
		return nil
	}
	fmt.Fprintf(ctx.Out, "%s at %s: %s\n", row.Prayer.Name, row.Prayer.Time, describe(row))
	return nil
}

func describe(r app.Row) string {
	switch r.Status.Kind {
	case prayer.Available:
		return "open now, " + prayer.FormatMinutes(r.Status.TimeRemainingMinutes) + " left"
	case prayer.Upcoming:
		return "opens in " + prayer.FormatMinutes(r.Status.MinutesUntilAvailable)
	}
	return r.Status.Kind.String()
}

type CompleteCmd struct {
	Slot string `arg:"" help:"Prayer slot id."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	comp, err := ctx.App.Complete(c.Slot)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s %s completed at %s (+%d pts)\n",
		successStyle.Render("✓"), c.Slot, comp.CompletedAt.Format(prayer.TimeFormat), comp.Points)
	return nil
}

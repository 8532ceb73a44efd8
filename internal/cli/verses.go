package cli

import (
	"fmt"

	"github.com/sadopc/vigil/internal/verse"
)

type VersesCmd struct {
	Slot    string `arg:"" help:"Prayer slot id."`
	Refresh bool   `short:"r" help:"Drop the pinned verses and draw a new pair."`
}

func (c *VersesCmd) Run(ctx *Context) error {
	p, err := ctx.App.Store.GetPrayer(c.Slot)
	if err != nil {
		return err
	}

	var pair [2]verse.Verse
	if c.Refresh {
		pair, err = ctx.App.RefreshVerses(c.Slot)
	} else {
		pair, err = ctx.App.Verses(c.Slot)
	}
	if err != nil {
		return err
	}
	printPair(ctx, pair)

	if a, ok := ctx.App.Assignments.Peek(c.Slot); ok {
		exp := a.ExpiresAt(p.Time, ctx.App.Now().Location())
		fmt.Fprintf(ctx.Out, "%s\n", mutedStyle.Render("Pinned until "+exp.Format("2006-01-02 15:04")))
	}
	return nil
}

func printPair(ctx *Context, pair [2]verse.Verse) {
	for _, v := range pair {
		fmt.Fprintf(ctx.Out, "%q\n  %s\n", v.Text, primaryStyle.Render(v.Reference))
	}
}

type RotationDrawCmd struct{}

func (c *RotationDrawCmd) Run(ctx *Context) error {
	printPair(ctx, ctx.App.Rotation.Draw())
	return nil
}

type RotationStatsCmd struct{}

func (c *RotationStatsCmd) Run(ctx *Context) error {
	st := ctx.App.Rotation.Stats()
	fmt.Fprintf(ctx.Out, "Total:      %d\n", st.Total)
	fmt.Fprintf(ctx.Out, "Available:  %d\n", st.Available)
	fmt.Fprintf(ctx.Out, "Used:       %d (%d%%)\n", st.Used, st.PercentUsed)
	fmt.Fprintf(ctx.Out, "Last reset: %s\n", st.LastResetDate)
	return nil
}

type RotationResetCmd struct{}

func (c *RotationResetCmd) Run(ctx *Context) error {
	l := ctx.App.Rotation.Reset()
	fmt.Fprintf(ctx.Out, "Rotation reset: %d verses available\n", len(l.AvailableVerses))
	return nil
}

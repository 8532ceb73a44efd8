package cli

import (
	"fmt"
)

type PrayerAddCmd struct {
	Slot string `arg:"" help:"Slot id, e.g. pre_dawn."`
	Time string `arg:"" optional:"" help:"Scheduled time (HH:MM)."`
	Name string `short:"n" help:"Display name. Defaults to the slot id."`
}

func (c *PrayerAddCmd) Run(ctx *Context) error {
	p, err := ctx.App.AddPrayer(c.Slot, c.Name, c.Time)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Added %s (%s) at %s\n", p.Name, p.SlotID, timeOrDash(p.Time))
	return nil
}

type PrayerListCmd struct{}

func (c *PrayerListCmd) Run(ctx *Context) error {
	prayers, err := ctx.App.Store.ListPrayers()
	if err != nil {
		return err
	}
	if len(prayers) == 0 {
		fmt.Fprintln(ctx.Out, "No prayers configured.")
		return nil
	}
	for _, p := range prayers {
		fmt.Fprintf(ctx.Out, "%-5s  %-14s %s\n", timeOrDash(p.Time), p.SlotID, p.Name)
	}
	return nil
}

type PrayerEditCmd struct {
	Slot string `arg:"" help:"Slot id."`
	Time string `short:"t" help:"New scheduled time (HH:MM)."`
	Name string `short:"n" help:"New display name."`
}

func (c *PrayerEditCmd) Validate() error {
	if c.Time == "" && c.Name == "" {
		return fmt.Errorf("nothing to change: pass --time and/or --name")
	}
	return nil
}

func (c *PrayerEditCmd) Run(ctx *Context) error {
	if err := ctx.App.EditPrayer(c.Slot, c.Name, c.Time); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Updated %s\n", c.Slot)
	return nil
}

type PrayerRmCmd struct {
	Slot string `arg:"" help:"Slot id."`
}

func (c *PrayerRmCmd) Run(ctx *Context) error {
	if err := ctx.App.RemovePrayer(c.Slot); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Removed %s (completion history kept)\n", c.Slot)
	return nil
}

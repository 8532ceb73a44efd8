package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/prayer"
	"github.com/sadopc/vigil/internal/store"
	"github.com/sadopc/vigil/internal/verse"
)

type prayerForm int

const (
	formNew prayerForm = iota
	formEdit
	formDelete
)

type prayersModel struct {
	app    *app.App
	width  int
	height int

	prayers []store.Prayer
	cursor  int

	formActive bool
	form       *huh.Form
	formType   prayerForm
	editing    string // slot id of the edited prayer

	// Form field pointers (survive value copies)
	formSlot    *string
	formName    *string
	formTime    *string
	formConfirm *bool
}

func newPrayersModel(a *app.App) prayersModel {
	slot, name, t, confirm := "", "", "", false
	return prayersModel{
		app:         a,
		formSlot:    &slot,
		formName:    &name,
		formTime:    &t,
		formConfirm: &confirm,
	}
}

func (p *prayersModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type prayersDataMsg struct {
	prayers []store.Prayer
}

func (p prayersModel) refresh() tea.Cmd {
	return func() tea.Msg {
		prayers, err := p.app.Store.ListPrayers()
		if err != nil {
			return errStatus(err)
		}
		return prayersDataMsg{prayers: prayers}
	}
}

func (p prayersModel) update(msg tea.Msg) (prayersModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case prayersDataMsg:
		p.prayers = msg.prayers
		if p.cursor >= len(p.prayers) {
			p.cursor = max(0, len(p.prayers)-1)
		}
		return p, nil

	case prayersChangedMsg:
		return p, p.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.prayers)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showNewForm()
		case key.Matches(msg, keys.Enter):
			if len(p.prayers) > 0 {
				return p.showEditForm()
			}
		case key.Matches(msg, keys.Delete):
			if len(p.prayers) > 0 {
				return p.showDeleteForm()
			}
		}
	}
	return p, nil
}

func validateTime(s string) error {
	if s != "" && !prayer.ValidTime(s) {
		return app.ErrInvalidTime
	}
	return nil
}

func (p prayersModel) showNewForm() (prayersModel, tea.Cmd) {
	*p.formSlot = ""
	*p.formName = ""
	*p.formTime = ""
	p.formType = formNew

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Slot ID").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("slot id is required")
					}
					return nil
				}).Value(p.formSlot),
			huh.NewInput().Title("Name").Value(p.formName),
			huh.NewInput().Title("Time (HH:MM)").Validate(validateTime).Value(p.formTime),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p prayersModel) showEditForm() (prayersModel, tea.Cmd) {
	pr := p.prayers[p.cursor]
	*p.formName = pr.Name
	*p.formTime = pr.Time
	p.formType = formEdit
	p.editing = pr.SlotID

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(p.formName),
			huh.NewInput().Title("Time (HH:MM)").
				Description("Changing the time draws new verses").
				Validate(validateTime).Value(p.formTime),
		).Title(pr.SlotID),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p prayersModel) showDeleteForm() (prayersModel, tea.Cmd) {
	pr := p.prayers[p.cursor]
	*p.formConfirm = false
	p.formType = formDelete
	p.editing = pr.SlotID

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %s?", pr.Name)).
				Description("Completion history is kept").
				Value(p.formConfirm),
		),
	).WithShowHelp(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p prayersModel) updateForm(msg tea.Msg) (prayersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		return p, p.save()
	}

	return p, cmd
}

// save applies the completed form and reports the outcome.
func (p prayersModel) save() tea.Cmd {
	var (
		err  error
		text string
	)
	switch p.formType {
	case formNew:
		var pr *store.Prayer
		pr, err = p.app.AddPrayer(strings.TrimSpace(*p.formSlot), strings.TrimSpace(*p.formName), *p.formTime)
		if err == nil {
			text = "Added " + pr.Name
		}
	case formEdit:
		err = p.app.EditPrayer(p.editing, strings.TrimSpace(*p.formName), *p.formTime)
		text = "Updated " + p.editing
	case formDelete:
		if !*p.formConfirm {
			return nil
		}
		err = p.app.RemovePrayer(p.editing)
		text = "Removed " + p.editing
	}

	if err != nil {
		return func() tea.Msg { return errStatus(err) }
	}
	return tea.Batch(
		func() tea.Msg { return prayersChangedMsg{} },
		func() tea.Msg { return statusMsg{text: text} },
	)
}

func (p prayersModel) view() string {
	w := p.width - 4
	title := titleStyle.Render("Prayers")

	if p.formActive && p.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	var rows []string
	rows = append(rows, title, "")
	if len(p.prayers) == 0 {
		rows = append(rows, mutedStyle.Render("  No prayers yet. Press n to add one."))
	}
	for i, pr := range p.prayers {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		t := pr.Time
		category := string(verse.CategoryForTime(pr.Time))
		if t == "" {
			t = "--:--"
			category = "unscheduled"
		}
		rows = append(rows, fmt.Sprintf("%s  %s",
			style.Render(fmt.Sprintf("%s%5s  %-18s %-14s", cursor, t, pr.Name, pr.SlotID)),
			mutedStyle.Render(category),
		))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: edit  x: remove"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

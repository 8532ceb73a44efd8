package tui

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/prayer"
	"github.com/sadopc/vigil/internal/store"
	"github.com/sadopc/vigil/internal/verse"

	_ "modernc.org/sqlite"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestApp(t *testing.T, now time.Time) (*app.App, *clock) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if _, err := s.SeedPrayers([]prayer.Definition{
		{SlotID: "pre_dawn", Name: "Before Sunrise", Time: "05:30"},
		{SlotID: "midday", Name: "Midday", Time: "12:00"},
		{SlotID: "night", Name: "After Sunset", Time: "21:00"},
	}); err != nil {
		t.Fatal(err)
	}

	c := &clock{now: now}
	return app.New(s, 1000, app.WithClock(c.Now), app.WithSeed(7)), c
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.Local)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Minute, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestViewNames(t *testing.T) {
	expected := []string{"Today", "Verses", "Reports", "Prayers"}
	if len(viewNames) != len(expected) {
		t.Fatalf("expected %d view names, got %d", len(expected), len(viewNames))
	}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
	if viewToday != 0 || viewVerses != 1 || viewReports != 2 || viewPrayers != 3 {
		t.Fatal("view state constants out of order")
	}
}

func TestValidateTime(t *testing.T) {
	for _, ok := range []string{"", "05:30", "5:30", "23:59"} {
		if err := validateTime(ok); err != nil {
			t.Errorf("validateTime(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"24:00", "noon", "12"} {
		if err := validateTime(bad); err == nil {
			t.Errorf("validateTime(%q) should fail", bad)
		}
	}
}

// ============================================================
// Countdown
// ============================================================

func TestCountdownSet(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		state     countdownState
		slot      string
		remaining time.Duration
	}{
		{"waiting for window", at(11, 0), countdownWaiting, "midday", 30 * time.Minute},
		{"window open", at(12, 10), countdownOpen, "midday", 21 * time.Minute},
		{"done for today", at(22, 0), countdownDone, "pre_dawn", 7 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, tt.now)
			row, ok, err := a.Next()
			if err != nil {
				t.Fatal(err)
			}

			var c countdownModel
			c.set(row, ok, tt.now)
			if c.state != tt.state || c.slotID != tt.slot {
				t.Fatalf("got state=%d slot=%q, want state=%d slot=%q", c.state, c.slotID, tt.state, tt.slot)
			}
			if c.remaining != tt.remaining {
				t.Fatalf("remaining = %v, want %v", c.remaining, tt.remaining)
			}
		})
	}
}

func TestCountdownLastOpenMinute(t *testing.T) {
	now := at(12, 30).Add(30 * time.Second)
	a, _ := newTestApp(t, now)
	row, ok, err := a.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !ok || row.Prayer.SlotID != "midday" || !row.Status.CanComplete() {
		t.Fatalf("midday should still be completable at 12:30:30, got ok=%v row=%+v", ok, row)
	}

	var c countdownModel
	c.set(row, ok, now)
	if c.state != countdownOpen || c.remaining != 30*time.Second {
		t.Fatalf("got state=%d remaining=%v, want open with 30s left", c.state, c.remaining)
	}
	if c.tick(now.Add(29 * time.Second)) {
		t.Fatal("countdown must not go stale while the prayer is still completable")
	}
	if !c.tick(at(12, 31)) {
		t.Fatal("countdown should go stale once the prayer is missed")
	}
	if st := prayer.ComputeStatus("12:00", nil, "midday", at(12, 31)); st.Kind != prayer.Missed {
		t.Fatalf("12:31 should be missed, got %s", st.Kind)
	}
}

func TestCountdownIdleWithoutPrayers(t *testing.T) {
	var c countdownModel
	c.set(app.Row{}, false, at(9, 0))
	if c.state != countdownIdle {
		t.Fatalf("expected idle, got %d", c.state)
	}
	if c.tick(at(9, 1)) {
		t.Fatal("idle countdown never goes stale")
	}
	if c.caption() != "No scheduled prayers" {
		t.Fatalf("caption = %q", c.caption())
	}
}

func TestCountdownTickReportsStale(t *testing.T) {
	a, _ := newTestApp(t, at(11, 0))
	row, ok, _ := a.Next()

	var c countdownModel
	c.set(row, ok, at(11, 0))
	if c.tick(at(11, 29)) {
		t.Fatal("window has not opened yet")
	}
	if c.remaining != time.Minute {
		t.Fatalf("remaining = %v", c.remaining)
	}
	if !c.tick(at(11, 30)) {
		t.Fatal("tick at the target should report stale statuses")
	}
}

// ============================================================
// Today view
// ============================================================

func loadedToday(t *testing.T, a *app.App) todayModel {
	t.Helper()
	d := newTodayModel(a)
	d.setSize(100, 30)
	d, _ = d.update(d.loadData()())
	return d
}

func TestTodayLoad(t *testing.T) {
	a, _ := newTestApp(t, at(12, 10))
	d := loadedToday(t, a)

	if len(d.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(d.rows))
	}
	if d.countdown.state != countdownOpen || d.countdown.slotID != "midday" {
		t.Fatalf("unexpected countdown: %+v", d.countdown)
	}

	out := d.view()
	for _, want := range []string{"Midday", "10min after", "MISSED", "Too Early", "closes in"} {
		if !strings.Contains(out, want) {
			t.Errorf("today view missing %q", want)
		}
	}
}

func TestTodayLoadReportsPointsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vigil.db")
	s, err := store.New(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	s.SeedPrayers([]prayer.Definition{{SlotID: "midday", Name: "Midday", Time: "12:00"}})

	// Break only the points column; statuses still load.
	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Close()
	if _, err := raw.Exec(`ALTER TABLE completions RENAME COLUMN points TO score`); err != nil {
		t.Fatal(err)
	}

	a := app.New(s, 1000, app.WithClock(func() time.Time { return at(12, 0) }))
	if _, err := a.Today(); err != nil {
		t.Fatalf("statuses should still load: %v", err)
	}
	d := newTodayModel(a)
	msg, ok := d.loadData()().(statusMsg)
	if !ok || !msg.isError || !strings.Contains(msg.text, "total points") {
		t.Fatalf("expected a total points error, got %#v", msg)
	}
}

func TestTodayComplete(t *testing.T) {
	a, _ := newTestApp(t, at(12, 5))
	d := loadedToday(t, a)

	d, _ = d.update(tea.KeyMsg{Type: tea.KeyDown})
	if row, _ := d.selected(); row.Prayer.SlotID != "midday" {
		t.Fatalf("cursor on %q, want midday", row.Prayer.SlotID)
	}

	d, cmd := d.update(runes("c"))
	if cmd == nil {
		t.Fatal("complete should return a command")
	}
	if total, _ := a.Store.TotalPoints(); total != 1000 {
		t.Fatalf("expected 1000 points, got %d", total)
	}

	// Second attempt is rejected with an error status.
	_, cmd = d.update(runes("c"))
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError || !strings.Contains(msg.text, "not available") {
		t.Fatalf("expected not available status, got %#v", msg)
	}
}

func TestTodayCompleteTooEarly(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	d := loadedToday(t, a)
	d.cursor = 2

	_, cmd := d.update(runes("c"))
	if msg, ok := cmd().(statusMsg); !ok || !msg.isError {
		t.Fatalf("expected error status, got %#v", msg)
	}
	if list, _ := a.Store.ListCompletions(store.CompletionFilter{}); len(list) != 0 {
		t.Fatal("rejected completion must not be recorded")
	}
}

func TestTodayEnterShowsVerses(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	d := loadedToday(t, a)
	d.cursor = 2

	_, cmd := d.update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(showVersesMsg)
	if !ok || msg.slotID != "night" {
		t.Fatalf("expected verses for night, got %#v", msg)
	}
}

func TestTodayTickReloadsWhenStale(t *testing.T) {
	a, c := newTestApp(t, at(11, 29))
	d := loadedToday(t, a)

	if _, cmd := d.update(tickMsg(c.now)); cmd != nil {
		t.Fatal("no reload before the window opens")
	}
	c.now = at(11, 30)
	_, cmd := d.update(tickMsg(c.now))
	if cmd == nil {
		t.Fatal("tick past the target should reload statuses")
	}
	if _, ok := cmd().(todayDataMsg); !ok {
		t.Fatal("reload should produce today data")
	}
}

// ============================================================
// Verses view
// ============================================================

func TestVersesLoad(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	v := newVersesModel(a)
	v.setSize(100, 30)

	if v.pair != verse.Placeholder {
		t.Fatal("verses should start with the placeholder pair")
	}

	v, _ = v.update(v.refresh()())
	if v.slotID != "pre_dawn" {
		t.Fatalf("first slot should be selected, got %q", v.slotID)
	}
	v, _ = v.update(v.load(v.slotID, false)())
	if v.pair == verse.Placeholder || !v.ok {
		t.Fatal("loaded pair should replace the placeholder")
	}
	if !strings.Contains(v.view(), "Pinned until") {
		t.Fatal("view should show the pin expiry")
	}
}

func TestVersesStepAndRefresh(t *testing.T) {
	a, c := newTestApp(t, at(9, 0))
	v := newVersesModel(a)
	v, _ = v.update(v.refresh()())

	v, cmd := v.update(runes("l"))
	if v.slotID != "midday" {
		t.Fatalf("right should select midday, got %q", v.slotID)
	}
	v, _ = v.update(cmd())

	v, _ = v.update(runes("h"))
	v, _ = v.update(runes("h"))
	if v.slotID != "night" {
		t.Fatalf("left should wrap to night, got %q", v.slotID)
	}

	a.Verses("night")
	c.now = c.now.Add(time.Minute)
	_, cmd = v.update(runes("r"))
	msg, ok := cmd().(versesMsg)
	if !ok || !msg.pinned.CreatedAt.Equal(c.now) {
		t.Fatalf("refresh should pin a new pair, got %#v", msg)
	}
}

func TestVersesIgnoresStaleLoad(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	v := newVersesModel(a)
	v, _ = v.update(v.refresh()())

	stale := v.load("night", false)()
	v, _ = v.update(stale)
	if v.pair != verse.Placeholder {
		t.Fatal("verses for another slot must not replace the current pair")
	}
}

func TestVersesRotation(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	v := newVersesModel(a)
	v.setSize(100, 30)

	_, cmd := v.update(runes("d"))
	v, _ = v.update(cmd())
	if v.drawn == nil || v.rotation.Used != 2 {
		t.Fatalf("draw should hand out two verses, stats=%+v", v.rotation)
	}
	if !strings.Contains(v.view(), v.drawn[0].Reference) {
		t.Fatal("drawn verses should be rendered")
	}

	_, cmd = v.update(runes("R"))
	v, _ = v.update(cmd())
	if v.drawn != nil || v.rotation.Used != 0 {
		t.Fatalf("reset should clear the rotation, stats=%+v", v.rotation)
	}
}

// ============================================================
// Reports view
// ============================================================

func TestReportsDailyRange(t *testing.T) {
	a, _ := newTestApp(t, at(12, 5))
	r := newReportsModel(a)

	from, to := r.dateRange()
	if from.Format(prayer.DateFormat) != "2026-03-04" || to.Format(prayer.DateFormat) != "2026-03-11" {
		t.Fatalf("unexpected daily range %s..%s", from, to)
	}

	r.offset = 1
	from, _ = r.dateRange()
	if from.Format(prayer.DateFormat) != "2026-02-25" {
		t.Fatalf("unexpected previous range start %s", from)
	}
}

func TestReportsWeeklyRange(t *testing.T) {
	a, _ := newTestApp(t, at(12, 5))
	r := newReportsModel(a)

	r, _ = r.update(runes("m"))
	if r.mode != reportWeekly {
		t.Fatal("m should switch to weekly mode")
	}
	from, to := r.dateRange()
	if from.Weekday() != time.Monday || from.Format(prayer.DateFormat) != "2026-03-09" {
		t.Fatalf("week should start on Monday 03-09, got %s", from)
	}
	if to.Sub(from) != 7*24*time.Hour {
		t.Fatalf("week should span 7 days, got %v", to.Sub(from))
	}
}

func TestReportsData(t *testing.T) {
	a, _ := newTestApp(t, at(12, 5))
	if _, err := a.Complete("midday"); err != nil {
		t.Fatal(err)
	}

	r := newReportsModel(a)
	r.setSize(100, 30)
	r, _ = r.update(r.refresh()())

	if len(r.counts) != 1 || r.counts[0].SlotID != "midday" {
		t.Fatalf("unexpected counts: %+v", r.counts)
	}
	out := r.view()
	for _, want := range []string{"Reports", "Midday", "1/7", "1000"} {
		if !strings.Contains(out, want) {
			t.Errorf("reports view missing %q", want)
		}
	}
}

func TestReportsEmpty(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	r := newReportsModel(a)
	r.setSize(100, 30)
	r, _ = r.update(r.refresh()())

	if !strings.Contains(r.view(), "No completions in this period") {
		t.Fatal("empty period should be reported")
	}
}

// ============================================================
// Prayers view
// ============================================================

func TestPrayersFormOpensAndCancels(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	p := newPrayersModel(a)
	p, _ = p.update(p.refresh()())

	p, _ = p.update(runes("n"))
	if !p.formActive || p.formType != formNew {
		t.Fatal("n should open the new prayer form")
	}
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.formActive {
		t.Fatal("esc should close the form")
	}

	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !p.formActive || p.formType != formEdit || p.editing != "pre_dawn" {
		t.Fatal("enter should edit the selected prayer")
	}
	if *p.formTime != "05:30" {
		t.Fatalf("edit form should be filled, time=%q", *p.formTime)
	}
}

func TestPrayersSave(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	p := newPrayersModel(a)

	*p.formSlot = " tahajjud "
	*p.formName = "Night Vigil"
	*p.formTime = "03:15"
	p.formType = formNew
	if cmd := p.save(); cmd == nil {
		t.Fatal("save should report the change")
	}
	pr, err := a.Store.GetPrayer("tahajjud")
	if err != nil || pr.Name != "Night Vigil" {
		t.Fatalf("prayer not created: %+v %v", pr, err)
	}

	p.formType = formEdit
	p.editing = "tahajjud"
	*p.formName = ""
	*p.formTime = "03:45"
	p.save()
	if pr, _ = a.Store.GetPrayer("tahajjud"); pr.Time != "03:45" || pr.Name != "Night Vigil" {
		t.Fatalf("unexpected edit result: %+v", pr)
	}

	p.formType = formDelete
	*p.formConfirm = false
	if cmd := p.save(); cmd != nil {
		t.Fatal("declined delete should do nothing")
	}
	*p.formConfirm = true
	p.save()
	if _, err := a.Store.GetPrayer("tahajjud"); err == nil {
		t.Fatal("confirmed delete should remove the prayer")
	}
}

func TestPrayersSaveError(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	p := newPrayersModel(a)

	*p.formSlot = "midday"
	p.formType = formNew
	msg, ok := p.save()().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("duplicate slot should fail, got %#v", msg)
	}
}

func TestPrayersView(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	a.AddPrayer("custom", "Custom", "")
	p := newPrayersModel(a)
	p.setSize(100, 30)
	p, _ = p.update(p.refresh()())

	out := p.view()
	for _, want := range []string{"Before Sunrise", "morning", "--:--", "unscheduled"} {
		if !strings.Contains(out, want) {
			t.Errorf("prayers view missing %q", want)
		}
	}
}

// ============================================================
// App model
// ============================================================

func sizedApp(t *testing.T, now time.Time) (App, *app.App) {
	t.Helper()
	a, _ := newTestApp(t, now)
	m := NewApp(a)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(App), a
}

func TestNewApp(t *testing.T) {
	a, _ := newTestApp(t, at(9, 0))
	m := NewApp(a)

	if m.activeView != viewToday {
		t.Fatal("default view should be today")
	}
	if m.showHelp || m.exportPicking || m.prayers.formActive {
		t.Fatal("help, export picker and forms should be hidden by default")
	}
	if m.View() != "Loading..." {
		t.Fatalf("unsized app should be loading, got %q", m.View())
	}
}

func TestAppViewStates(t *testing.T) {
	m, _ := sizedApp(t, at(9, 0))

	for v := range viewNames {
		m.activeView = viewState(v)
		if out := m.View(); out == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}

	header := m.renderHeader()
	if !strings.Contains(header, "vigil") {
		t.Fatal("header should contain the title")
	}
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppTabKeys(t *testing.T) {
	m, _ := sizedApp(t, at(9, 0))

	model, _ := m.Update(runes("3"))
	m = model.(App)
	if m.activeView != viewReports {
		t.Fatalf("3 should open reports, got %d", m.activeView)
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(App)
	if m.activeView != viewPrayers {
		t.Fatalf("tab should move to prayers, got %d", m.activeView)
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(App).activeView != viewToday {
		t.Fatal("tab should wrap to today")
	}
}

func TestAppShowVerses(t *testing.T) {
	m, _ := sizedApp(t, at(9, 0))

	model, cmd := m.Update(showVersesMsg{slotID: "night"})
	m = model.(App)
	if m.activeView != viewVerses || m.verses.slotID != "night" {
		t.Fatal("showVersesMsg should switch to the verses view")
	}
	if cmd == nil {
		t.Fatal("switching should load the verses")
	}
}

func TestAppStatusMessages(t *testing.T) {
	m, _ := sizedApp(t, at(9, 0))

	model, _ := m.Update(completedMsg{slotID: "midday", points: 1000})
	m = model.(App)
	if !strings.Contains(m.renderFooter(), "midday completed (+1000 pts)") {
		t.Fatal("footer should announce the completion")
	}

	model, _ = m.Update(statusMsg{text: "boom", isError: true})
	m = model.(App)
	if !m.isError || !strings.Contains(m.renderFooter(), "boom") {
		t.Fatal("footer should show the error")
	}
}

func TestAppFormCapturesKeys(t *testing.T) {
	m, _ := sizedApp(t, at(9, 0))
	m.activeView = viewPrayers

	model, _ := m.Update(runes("n"))
	m = model.(App)
	if !m.prayers.formActive {
		t.Fatal("n should open the form")
	}
	model, _ = m.Update(runes("q"))
	if model.(App).activeView != viewPrayers {
		t.Fatal("keys typed into a form must not switch views")
	}
}

func TestAppExport(t *testing.T) {
	m, a := sizedApp(t, at(12, 5))
	m.exportDir = t.TempDir()
	a.Complete("midday")

	model, _ := m.Update(runes("e"))
	m = model.(App)
	if !m.exportPicking {
		t.Fatal("e should open the export picker")
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(App)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(App)
	if m.exportPicking || cmd == nil {
		t.Fatal("enter should close the picker and export")
	}

	done, ok := cmd().(exportDoneMsg)
	if !ok || done.count != 1 {
		t.Fatalf("unexpected export result: %#v", done)
	}
	want := filepath.Join(m.exportDir, "vigil-export-2026-03-10.json")
	if done.path != want {
		t.Fatalf("path = %q, want %q", done.path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Key bindings and styles
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

func TestToneStyle(t *testing.T) {
	tests := []struct {
		kind prayer.Kind
		want string
	}{
		{prayer.Completed, successStyle.Render("x")},
		{prayer.Available, highlightStyle.Render("x")},
		{prayer.Missed, errorStyle.Render("x")},
		{prayer.Upcoming, mutedStyle.Render("x")},
	}
	for _, tt := range tests {
		if got := toneStyle(prayer.ToneOf(tt.kind)).Render("x"); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.kind, got, tt.want)
		}
	}
}

package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planline/planline/internal/blockstate"
	"github.com/planline/planline/internal/calendar"
	"github.com/planline/planline/internal/chart"
	"github.com/planline/planline/internal/filter"
	"github.com/planline/planline/internal/layout"
	"github.com/planline/planline/internal/milestone"
	"github.com/planline/planline/internal/panzoom"
	"github.com/planline/planline/internal/source"
)

// Config wires the app to its external collaborators: the record
// loader, the identity provider, the persisted state and its save hook,
// and an optional records-file watcher.
type Config struct {
	Loader    *source.Loader
	Identity  blockstate.IdentityProvider
	State     blockstate.State
	SaveState func([]byte) error
	Watcher   *source.Watcher
	Styles    *Styles

	// Creator reports the chart owner from the record source, used when
	// the persisted state does not carry one.
	Creator func() string

	// Collation overrides the environment-detected sort order.
	Collation *filter.Collation
}

type recordsMsg struct {
	records []milestone.Record
	err     error
}

type fileChangedMsg struct{}

type pickerAxis int

const (
	pickProjects pickerAxis = iota
	pickPeople
)

// App is the interactive chart session.
type App struct {
	cfg    Config
	styles *Styles
	canvas *Canvas

	col *filter.Collation
	fb  filter.Fallbacks

	state   blockstate.State
	pz      *panzoom.State
	items   []milestone.Item
	options filter.Options

	loading bool
	spinner spinner.Model
	loadErr error
	status  string

	picker     *MultiPicker
	pickAxis   pickerAxis
	keys       keyMap
	width      int
	height     int
	hasFetched bool
}

// NewApp creates the chart session from its wiring.
func NewApp(cfg Config) *App {
	styles := cfg.Styles
	if styles == nil {
		styles = NewStylesWithTheme(ResolveTheme())
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme().Primary)

	col := cfg.Collation
	if col == nil {
		col = filter.DetectCollation()
	}

	return &App{
		cfg:     cfg,
		styles:  styles,
		canvas:  NewCanvas(styles),
		col:     col,
		fb:      filter.DefaultFallbacks(),
		state:   cfg.State,
		pz:      panzoom.NewState(),
		spinner: sp,
		loading: true,
		keys:    defaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, a.refreshCmd()}
	if a.cfg.Watcher != nil {
		cmds = append(cmds, a.watchCmd())
	}
	return tea.Batch(cmds...)
}

// refreshCmd runs one full pagination pass. A refresh superseded by a
// newer one reports nothing; the newer refresh delivers the data.
func (a *App) refreshCmd() tea.Cmd {
	loader := a.cfg.Loader
	return func() tea.Msg {
		records, err := loader.Refresh(context.Background())
		if errors.Is(err, source.ErrStale) {
			return nil
		}
		return recordsMsg{records: records, err: err}
	}
}

func (a *App) watchCmd() tea.Cmd {
	events := a.cfg.Watcher.Events
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case recordsMsg:
		a.loading = false
		a.hasFetched = true
		if msg.err != nil {
			a.loadErr = msg.err
			return a, nil
		}
		a.loadErr = nil
		a.items = milestone.NormalizeAll(msg.records)
		a.options = filter.Derive(a.items, a.fb, a.col)
		// Stale selections degrade to "all" rather than hiding rows.
		a.state.Projects = filter.Prune(a.state.Projects, a.options.Projects)
		a.state.People = filter.Prune(a.state.People, a.options.People)
		// Fresh data resets zoom and scroll.
		a.pz.Reset()
		return a, nil

	case fileChangedMsg:
		a.loading = true
		a.status = "records file changed, refreshing"
		return a, tea.Batch(a.spinner.Tick, a.refreshCmd(), a.watchCmd())

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case tea.MouseMsg:
		return a.updateMouse(msg)
	}
	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.picker != nil {
		switch a.picker.Update(msg) {
		case PickerApplied:
			sel := a.picker.Selection()
			if a.pickAxis == pickProjects {
				a.state.Projects = sel
			} else {
				a.state.People = sel
			}
			a.picker = nil
			a.persistState()
		case PickerCanceled:
			a.picker = nil
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Refresh):
		a.loading = true
		a.status = ""
		return a, tea.Batch(a.spinner.Tick, a.refreshCmd())

	case key.Matches(msg, a.keys.ViewMode):
		if a.state.ViewMode == layout.ViewProject {
			a.state.ViewMode = layout.ViewPerson
		} else {
			a.state.ViewMode = layout.ViewProject
		}
		a.persistState()

	case key.Matches(msg, a.keys.FilterProjects):
		a.openPicker(pickProjects)

	case key.Matches(msg, a.keys.FilterPeople):
		a.openPicker(pickPeople)

	case key.Matches(msg, a.keys.ZoomIn):
		a.zoomAtCenter(1)

	case key.Matches(msg, a.keys.ZoomOut):
		a.zoomAtCenter(-1)

	case key.Matches(msg, a.keys.ZoomReset):
		a.pz.DayWidth = panzoom.DefaultDayWidth
		a.pz.ScrollX = 0

	case key.Matches(msg, a.keys.Left):
		a.pz.ScrollX -= a.pz.DayWidth
		a.clampScroll()

	case key.Matches(msg, a.keys.Right):
		a.pz.ScrollX += a.pz.DayWidth
		a.clampScroll()

	case key.Matches(msg, a.keys.Up):
		a.pz.ScrollY -= layout.RowHeight
		a.clampScroll()

	case key.Matches(msg, a.keys.Down):
		a.pz.ScrollY += layout.RowHeight
		a.clampScroll()

	case key.Matches(msg, a.keys.Home):
		a.pz.ScrollX = 0
		a.pz.ScrollY = 0
	}
	return a, nil
}

func (a *App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.picker != nil {
		return a, nil
	}
	overPane := msg.X >= LabelCells
	cursorPx := (msg.X - LabelCells) * PxPerCell

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		// Zoom only applies over a rendered chart.
		if !overPane || len(a.visibleItems()) == 0 {
			return a, nil
		}
		delta := 1
		if msg.Button == tea.MouseButtonWheelDown {
			delta = -1
		}
		if a.pz.Wheel(cursorPx, delta) {
			a.clampScroll()
		}
		return a, nil

	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			if overPane {
				a.pz.StartDrag(msg.X * PxPerCell)
			}
		case tea.MouseActionMotion:
			if a.pz.Dragging() {
				a.pz.MoveDrag(msg.X * PxPerCell)
				a.clampScroll()
			}
		case tea.MouseActionRelease:
			a.pz.EndDrag()
		}

	case tea.MouseButtonNone:
		if msg.Action == tea.MouseActionMotion && a.pz.Dragging() {
			a.pz.MoveDrag(msg.X * PxPerCell)
			a.clampScroll()
		}
	}
	return a, nil
}

func (a *App) openPicker(axis pickerAxis) {
	if !a.state.CanEditFilters(a.identity()) {
		a.status = "filters are read-only: owned by " + a.state.Creator
		return
	}
	a.pickAxis = axis
	if axis == pickProjects {
		a.picker = NewMultiPicker("Filter by project", a.options.Projects, a.state.Projects, a.styles)
	} else {
		a.picker = NewMultiPicker("Filter by person", a.options.People, a.state.People, a.styles)
	}
}

func (a *App) identity() string {
	if a.cfg.Identity == nil {
		return ""
	}
	return a.cfg.Identity()
}

// zoomAtCenter anchors keyboard zoom at the middle of the timeline pane.
func (a *App) zoomAtCenter(delta int) {
	if len(a.visibleItems()) == 0 {
		return
	}
	center := max(0, (a.width-LabelCells)/2) * PxPerCell
	if a.pz.Wheel(center, delta) {
		a.clampScroll()
	}
}

func (a *App) clampScroll() {
	plan := a.plan()
	paneWidthPx := max(0, a.width-LabelCells) * PxPerCell
	viewRows := max(0, a.height-3)
	a.pz.ClampScroll(
		plan.TimelineWidth()-paneWidthPx,
		(len(plan.Rows)-viewRows)*layout.RowHeight,
	)
}

func (a *App) persistState() {
	if a.cfg.SaveState == nil {
		return
	}
	data, err := a.state.Save()
	if err == nil {
		err = a.cfg.SaveState(data)
	}
	if err != nil {
		a.status = "could not save chart state: " + err.Error()
	}
}

func (a *App) visibleItems() []milestone.Item {
	return filter.Apply(a.items, a.state.Projects, a.state.People, a.fb)
}

func (a *App) plan() layout.Plan {
	return layout.Build(a.visibleItems(), a.state.ViewMode, a.pz.DayWidth, a.fb, a.col)
}

func (a *App) creator() string {
	if a.state.Creator != "" {
		return a.state.Creator
	}
	if a.cfg.Creator != nil {
		return a.cfg.Creator()
	}
	return ""
}

func (a *App) scene() chart.Scene {
	meta := chart.Meta{Creator: a.creator(), Fallbacks: a.fb}
	if a.loadErr != nil {
		if errors.Is(a.loadErr, source.ErrNoSource) {
			return chart.EmptyScene(chart.NoSource(), a.state.ViewMode, meta)
		}
		if errors.Is(a.loadErr, source.ErrNoGrant) {
			return chart.EmptyScene(chart.NoGrant(), a.state.ViewMode, meta)
		}
		return chart.EmptyScene(&chart.EmptyMessage{
			Title: "Could not load records",
			Body:  a.loadErr.Error(),
		}, a.state.ViewMode, meta)
	}
	return chart.Build(a.plan(), calendar.Today(), len(a.items), meta)
}

func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.loading && !a.hasFetched {
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height).
			Padding(1, 2).
			Render(a.spinner.View() + " Loading records...")
	}

	if a.picker != nil {
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height).
			Padding(1, 2).
			Render(a.picker.View())
	}

	scene := a.scene()
	body := a.canvas.Render(scene, a.pz, a.width, max(0, a.height-2))

	status := a.canvas.FooterLine(scene) +
		a.styles.Muted.Render(fmt.Sprintf(" · %s view · day %dpx", scene.Mode, a.pz.DayWidth))
	if a.loading {
		status += " " + a.spinner.View()
	}
	if a.status != "" {
		status += " · " + a.styles.Muted.Render(a.status)
	}

	help := a.styles.Help.Render(
		"v view · p/s filter · r refresh · wheel/±: zoom · drag/arrows: pan · q quit")

	return body + "\n" + status + "\n" + help
}

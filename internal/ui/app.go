package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fleetdeck/fleetdeck/internal/api"
	"github.com/fleetdeck/fleetdeck/internal/auth"
	"github.com/fleetdeck/fleetdeck/internal/nav"
	"github.com/fleetdeck/fleetdeck/internal/notify"
	"github.com/fleetdeck/fleetdeck/internal/prefs"
	"github.com/fleetdeck/fleetdeck/internal/query"
)

const defaultTick = time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Center    *notify.Center
	Session   *auth.Session
	Nav       *nav.State
	ThemeName string
	PrefsPath string
	PageSize  int
	LastView  string
	Tick      time.Duration
}

// Model is the root application state for Bubble Tea. It is the single
// writer of the shared navigation state: list descriptors mirror themselves
// into it, dialogs open and close through it, and back navigation restores
// from it.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *api.Client
	center    *notify.Center
	session   *auth.Session
	nav       *nav.State
	prefsPath string
	tick      time.Duration

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Tabs: one list view per entity family.
	active   int // index into api.Kinds()
	queries  map[api.Kind]*query.Descriptor
	pages    map[api.Kind]*api.ListPage
	selected map[api.Kind]int
	loading  map[api.Kind]bool

	// fetchGen stamps list fetches per kind so a slow response from a
	// superseded query can never overwrite a newer page.
	fetchGen map[api.Kind]uint64

	// Search input mode
	searchMode  bool
	searchInput textinput.Model

	// Modal dialog, nil when the list has focus.
	modal Modal

	spin spinner.Model
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	navState := opts.Nav
	if navState == nil {
		navState = nav.NewState()
	}
	center := opts.Center
	if center == nil {
		center = notify.NewCenter()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = defaultTick
	}
	pageSize := opts.PageSize
	if !query.ValidPageSize(pageSize) {
		pageSize = query.DefaultPageSize
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	queries := make(map[api.Kind]*query.Descriptor)
	for _, kind := range api.Kinds() {
		d := query.New(kind.SearchFields(), kind.FilterKeys())
		d.SetPageSize(pageSize)
		queries[kind] = &d
	}

	// The view persisted at quit comes back on startup, like a browser
	// restoring its URL. Dialogs do not survive the restart.
	if opts.LastView != "" {
		if err := navState.Restore(opts.LastView); err == nil {
			navState.Close()
			queries[api.Kinds()[0]].Load(navState.Query())
		}
	}

	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		center:      center,
		session:     opts.Session,
		nav:         navState,
		prefsPath:   prefsPath,
		tick:        tick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		queries:     queries,
		pages:       make(map[api.Kind]*api.ListPage),
		selected:    make(map[api.Kind]int),
		loading:     make(map[api.Kind]bool),
		fetchGen:    make(map[api.Kind]uint64),
		searchInput: input,
		spin:        sp,
	}
}

// Kind returns the entity family whose tab is active.
func (m Model) Kind() api.Kind {
	return api.Kinds()[m.active]
}

func (m *Model) descriptor() *query.Descriptor {
	return m.queries[m.Kind()]
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spin.Tick,
		tickCmd(m.tick),
		m.refreshList(m.Kind()),
	)
}

// refreshList issues a list fetch for the kind's current descriptor and
// bumps the fetch generation so older in-flight responses get dropped.
func (m *Model) refreshList(kind api.Kind) tea.Cmd {
	d := m.queries[kind]
	m.fetchGen[kind]++
	m.loading[kind] = true
	q := api.ListQuery{
		Page:        d.Page,
		PageSize:    d.PageSize,
		SearchField: d.SearchField,
		SearchText:  d.SearchText,
		Filters:     d.Filters,
	}
	return fetchListCmd(m.ctx, m.client, kind, m.fetchGen[kind], q)
}

// syncNav mirrors the active descriptor into the navigation state and
// pushes the previous state onto the history stack.
func (m *Model) syncNav() {
	d := m.descriptor()
	m.nav.Push()
	m.nav.Rewrite(d.Values(), d.OwnedKeys()...)
}

// persistPrefs writes the durable bits of the session: theme, page size,
// and the current view so the next start resumes where this one left off.
func (m *Model) persistPrefs() {
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:    m.theme.Name,
		PageSize: m.descriptor().PageSize,
		LastView: m.nav.Encode(),
	})
}

// restoreNav reloads the active descriptor and dialog from the navigation
// state after back navigation.
func (m *Model) restoreNav() tea.Cmd {
	d := m.descriptor()
	d.Load(m.nav.Query())
	cmds := []tea.Cmd{m.refreshList(m.Kind())}
	if cmd := m.mountDialog(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// mountDialog builds the modal the navigation state says is open, if any.
func (m *Model) mountDialog() tea.Cmd {
	kind := m.Kind()
	switch m.nav.Action() {
	case nav.ActionCreate:
		m.modal = newFormModal(m.ctx, m.client, kind, "", nil)
		return nil
	case nav.ActionEdit:
		id := m.nav.Target()
		form := newFormModal(m.ctx, m.client, kind, id, nil)
		m.modal = form
		return fetchSnapshotCmd(m.ctx, m.client, kind, id)
	case nav.ActionDelete:
		m.modal = newDeleteModal(m.ctx, m.client, kind, m.nav.Target(), m.summaryFor(m.nav.Target()))
		return nil
	case nav.ActionMore:
		id := m.nav.Target()
		m.modal = newDetailModal(kind, id)
		return fetchSnapshotCmd(m.ctx, m.client, kind, id)
	default:
		m.modal = nil
		return nil
	}
}

func (m *Model) summaryFor(id string) *api.Summary {
	page := m.pages[m.Kind()]
	if page == nil {
		return nil
	}
	for i := range page.Items {
		if page.Items[i].ID == id {
			return &page.Items[i]
		}
	}
	return nil
}

func (m *Model) selectedItem() *api.Summary {
	page := m.pages[m.Kind()]
	if page == nil || len(page.Items) == 0 {
		return nil
	}
	idx := m.selected[m.Kind()]
	if idx >= len(page.Items) {
		idx = len(page.Items) - 1
	}
	return &page.Items[idx]
}

// openDialog records the dialog in the navigation state and mounts it.
// Opening a dialog while another is up replaces it; dialogs never stack.
func (m *Model) openDialog(action nav.Action, id string) tea.Cmd {
	m.nav.Push()
	m.nav.Open(action, id)
	return m.mountDialog()
}

func (m *Model) closeDialog() {
	m.nav.Close()
	m.modal = nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tickCmd(m.tick)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case listMsg:
		if msg.gen != m.fetchGen[msg.kind] {
			return m, nil // superseded fetch
		}
		m.loading[msg.kind] = false
		m.pages[msg.kind] = msg.page
		d := m.queries[msg.kind]
		d.Reconcile(msg.page.Paginator.CurrentPage, msg.page.Paginator.LastPage, msg.page.Paginator.Total)
		if m.selected[msg.kind] >= len(msg.page.Items) {
			m.selected[msg.kind] = 0
		}
		if msg.kind == m.Kind() {
			m.nav.Rewrite(d.Values(), d.OwnedKeys()...)
		}
		return m, nil

	case listFailedMsg:
		if msg.gen == m.fetchGen[msg.kind] {
			m.loading[msg.kind] = false
		}
		return m, nil

	case mutatedMsg:
		verb := msg.verb
		if msg.alreadyGone {
			m.center.Info(msg.kind.Label() + " was already deleted.")
		} else {
			m.center.Success(msg.kind.Label() + " " + verb + ".")
		}
		m.closeDialog()
		return m, m.refreshList(msg.kind)

	case snapshotFailedMsg:
		// The target vanished under us; drop the dialog and resync.
		m.closeDialog()
		return m, m.refreshList(msg.kind)
	}

	// Everything else (snapshot seeds, mutation failures, input events)
	// belongs to the open dialog.
	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	m.modal = modal
	if closed {
		m.closeDialog()
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A modal owns the keyboard while open. Ctrl+C still quits.
	if m.modal != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateModal(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.persistPrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.persistPrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchTab(1)

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab(-1)

	case key.Matches(msg, m.keys.Back):
		if m.nav.Back() {
			return m, m.restoreNav()
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.descriptor().SearchText)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.CycleField):
		d := m.descriptor()
		d.SetSearchField(nextInCycle(d.SearchFields(), d.SearchField))
		if d.SearchText == "" {
			return m, nil // nothing searched yet, no refetch needed
		}
		m.syncNav()
		return m, m.refreshList(m.Kind())

	case key.Matches(msg, m.keys.CycleFilter):
		m.cycleStatusFilter()
		m.syncNav()
		return m, m.refreshList(m.Kind())

	case key.Matches(msg, m.keys.PageSize):
		d := m.descriptor()
		d.SetPageSize(nextPageSize(d.PageSize))
		m.persistPrefs()
		m.syncNav()
		return m, m.refreshList(m.Kind())

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshList(m.Kind())

	case key.Matches(msg, m.keys.Up):
		if m.selected[m.Kind()] > 0 {
			m.selected[m.Kind()]--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if page := m.pages[m.Kind()]; page != nil && m.selected[m.Kind()] < len(page.Items)-1 {
			m.selected[m.Kind()]++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selected[m.Kind()] = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if page := m.pages[m.Kind()]; page != nil && len(page.Items) > 0 {
			m.selected[m.Kind()] = len(page.Items) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		d := m.descriptor()
		if query.NextEnabled(d.Page, d.LastPage) {
			d.SetPage(d.Page + 1)
			m.syncNav()
			return m, m.refreshList(m.Kind())
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		d := m.descriptor()
		if query.PrevEnabled(d.Page) {
			d.SetPage(d.Page - 1)
			m.syncNav()
			return m, m.refreshList(m.Kind())
		}
		return m, nil

	case key.Matches(msg, m.keys.Create):
		return m, m.openDialog(nav.ActionCreate, "")

	case key.Matches(msg, m.keys.Edit):
		if item := m.selectedItem(); item != nil {
			return m, m.openDialog(nav.ActionEdit, item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if item := m.selectedItem(); item != nil {
			return m, m.openDialog(nav.ActionDelete, item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.More):
		if item := m.selectedItem(); item != nil {
			return m, m.openDialog(nav.ActionMore, item.ID)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	}
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		d := m.descriptor()
		d.SetSearchText(m.searchInput.Value())
		m.syncNav()
		return m, m.refreshList(m.Kind())
	case "ctrl+c":
		m.persistPrefs()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) switchTab(delta int) (tea.Model, tea.Cmd) {
	count := len(api.Kinds())
	m.active = (m.active + delta + count) % count
	kind := m.Kind()
	m.nav.Push()
	m.nav.Rewrite(m.queries[kind].Values(), m.queries[kind].OwnedKeys()...)
	if m.pages[kind] == nil {
		return m, m.refreshList(kind)
	}
	return m, nil
}

// cycleStatusFilter walks All -> ACTIVE -> INACTIVE -> All.
func (m *Model) cycleStatusFilter() {
	d := m.descriptor()
	current := ""
	if selected := d.Filters["status"]; len(selected) == 1 {
		current = selected[0]
	}
	switch current {
	case "":
		d.SetFilter("status", []string{api.StatusValues()[0]})
	case api.StatusValues()[0]:
		d.SetFilter("status", []string{api.StatusValues()[1]})
	default:
		d.SetFilter("status", nil)
	}
}

func (m *Model) statusFilterLabel() string {
	if selected := m.descriptor().Filters["status"]; len(selected) == 1 {
		return selected[0]
	}
	return "All"
}

func nextInCycle(options []string, current string) string {
	for i, option := range options {
		if option == current {
			return options[(i+1)%len(options)]
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}

func nextPageSize(current int) int {
	for i, size := range query.PageSizes {
		if size == current {
			return query.PageSizes[(i+1)%len(query.PageSizes)]
		}
	}
	return query.DefaultPageSize
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	if opts.Client == nil {
		return fmt.Errorf("ui requires an api client")
	}
	opts.Context = ctx
	program := tea.NewProgram(New(opts), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/internal/core/services"
	"github.com/superbmd/bmd-cli/pkg/notify"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse assets interactively",
	Long: `Launch a full-screen interactive asset browser.

The browser provides:
- Paginated list view backed by the server
- Debounced live search (one request per pause in typing)
- Condition filter cycling
- Delete with confirmation (admin and penanggung_jawab only)

Keyboard Shortcuts:
  Navigation:
    ↑/k         Move up
    ↓/j         Move down
    ←/→         Previous / next page

  Actions:
    d           Delete asset (with confirmation)
    r           Refresh

  Views:
    /           Search mode
    c           Cycle condition filter
    Esc         Clear search / Exit mode
    ?           Show help

  General:
    q           Quit
    Ctrl+C      Force quit`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&assetSearch, "search", "", "Start with a search query")
	browseCmd.Flags().IntVar(&assetLocationID, "location", 0, "Start filtered to a location id")
	browseCmd.Flags().StringVar(&assetCondition, "condition", "", "Start filtered to a condition")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	filter, err := buildAssetFilter()
	if err != nil {
		return err
	}

	m := newBrowseModel(filter)
	defer m.teardown()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}

// Browse view modes
type browseMode int

const (
	browseModeList browseMode = iota
	browseModeSearch
	browseModeHelp
	browseModeConfirmDelete
)

// Browse model
type browseModel struct {
	store     *services.ListStore[domain.Asset, domain.AssetFilter]
	debouncer *services.Debouncer[string]
	deletion  *services.Mutation[struct{}]

	storeCh       chan struct{}
	notifyCh      <-chan notify.Message
	unsub         func()
	initialFilter domain.AssetFilter

	cursor       int
	mode         browseMode
	searchInput  textinput.Model
	help         help.Model
	keys         browseKeyMap
	width        int
	height       int
	ready        bool
	banner       string
	bannerStyle  lipgloss.Style
	bannerExpiry time.Time
	deleteTarget *domain.Asset
}

// Key bindings
type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Delete   key.Binding
	Refresh  key.Binding
	Search   key.Binding
	Cycle    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Search, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Delete, k.Refresh, k.Search, k.Cycle},
		{k.Help, k.Escape, k.Quit},
	}
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next page"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "condition filter"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

func newBrowseModel(filter domain.AssetFilter) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "Search assets..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(filter.Search)

	m := &browseModel{
		mode:          browseModeList,
		searchInput:   ti,
		help:          help.New(),
		keys:          browseKeys,
		deletion:      &services.Mutation[struct{}]{},
		storeCh:       make(chan struct{}, 1),
		initialFilter: filter,
	}

	m.store = services.NewListStore(apiClient.Assets().List, appConfig.PageSize, func() {
		select {
		case m.storeCh <- struct{}{}:
		default:
		}
	})

	debounce := time.Duration(appConfig.SearchDebounceMS) * time.Millisecond
	m.debouncer = services.NewDebouncer(debounce, func(query string) {
		filter := m.store.Filter()
		filter.Search = strings.TrimSpace(query)
		m.store.SetFilter(getContext(), filter)
	})

	m.notifyCh, m.unsub = notify.Default.Subscribe(16)
	return m
}

func (m *browseModel) teardown() {
	m.debouncer.Stop()
	m.unsub()
}

// Messages

type storeChangedMsg struct{}

type bannerMsg struct {
	text  string
	style lipgloss.Style
}

type clearBannerMsg struct{}

func (m *browseModel) waitForStore() tea.Cmd {
	return func() tea.Msg {
		<-m.storeCh
		return storeChangedMsg{}
	}
}

func (m *browseModel) waitForNotification() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.notifyCh
		if !ok {
			return nil
		}
		style := ui.StyleInfo
		switch msg.Kind {
		case notify.KindSuccess:
			style = ui.StyleSuccess
		case notify.KindError:
			style = ui.StyleError
		case notify.KindWarning:
			style = ui.StyleWarning
		}
		return bannerMsg{text: msg.Text, style: style}
	}
}

func (m *browseModel) Init() tea.Cmd {
	go primeAssetStore(getContext(), m.store, m.initialFilter)
	return tea.Batch(m.waitForStore(), m.waitForNotification())
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case storeChangedMsg:
		m.clampCursor()
		return m, m.waitForStore()

	case bannerMsg:
		m.banner = msg.text
		m.bannerStyle = msg.style
		m.bannerExpiry = time.Now().Add(4 * time.Second)
		return m, tea.Batch(
			m.waitForNotification(),
			tea.Tick(4*time.Second, func(time.Time) tea.Msg { return clearBannerMsg{} }),
		)

	case clearBannerMsg:
		if time.Now().After(m.bannerExpiry) {
			m.banner = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case browseModeSearch:
			return m.updateSearch(msg)
		case browseModeHelp:
			return m.updateHelp(msg)
		case browseModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m *browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.store.Items()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.PrevPage):
		page := m.store.Page()
		if page > 1 {
			m.cursor = 0
			go m.store.SetPage(getContext(), page-1)
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.store.Page() < m.store.Pagination().TotalPages {
			m.cursor = 0
			go m.store.SetPage(getContext(), m.store.Page()+1)
		}

	case key.Matches(msg, m.keys.Refresh):
		go m.store.Refetch(getContext())

	case key.Matches(msg, m.keys.Delete):
		if len(items) > 0 && m.cursor < len(items) {
			if !sessionStore.Current().User.Role.CanMutateAssets() {
				m.banner = "Viewers cannot delete assets"
				m.bannerStyle = ui.StyleError
				m.bannerExpiry = time.Now().Add(4 * time.Second)
				return m, nil
			}
			target := items[m.cursor]
			m.deleteTarget = &target
			m.mode = browseModeConfirmDelete
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = browseModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Cycle):
		m.cycleCondition()

	case key.Matches(msg, m.keys.Help):
		m.mode = browseModeHelp
	}

	return m, nil
}

// cycleCondition rotates the condition filter through
// all -> Baik -> Rusak Ringan -> Rusak Berat -> all.
func (m *browseModel) cycleCondition() {
	filter := m.store.Filter()
	conditions := domain.Conditions()
	next := domain.Condition("")
	for i, c := range conditions {
		if filter.Condition == c {
			if i+1 < len(conditions) {
				next = conditions[i+1]
			}
			break
		}
		if filter.Condition == "" {
			next = conditions[0]
			break
		}
	}
	filter.Condition = next
	m.cursor = 0
	go m.store.SetFilter(getContext(), filter)
}

func (m *browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = browseModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.debouncer.Set("")
		m.cursor = 0
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = browseModeList
		m.searchInput.Blur()
		return m, nil

	case msg.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case msg.Type == tea.KeyDown:
		if m.cursor < len(m.store.Items())-1 {
			m.cursor++
		}
		return m, nil

	default:
		var cmd tea.Cmd
		before := m.searchInput.Value()
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.searchInput.Value() != before {
			// One request per pause in typing, not one per keystroke.
			m.debouncer.Set(m.searchInput.Value())
			m.cursor = 0
		}
		return m, cmd
	}
}

func (m *browseModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = browseModeList
	}
	return m, nil
}

func (m *browseModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		target := m.deleteTarget
		m.deleteTarget = nil
		m.mode = browseModeList
		return m, m.deleteAsset(target)

	case key.Matches(msg, m.keys.Cancel):
		m.deleteTarget = nil
		m.mode = browseModeList
	}
	return m, nil
}

func (m *browseModel) deleteAsset(a *domain.Asset) tea.Cmd {
	return func() tea.Msg {
		if a == nil {
			return nil
		}
		m.deletion.Reset()
		ok := m.deletion.Do(getContext(), func(ctx context.Context) (struct{}, error) {
			return struct{}{}, apiClient.Assets().Delete(ctx, a.ID)
		})
		if ok {
			notify.Success(fmt.Sprintf("Deleted asset %q", a.Name))
			m.store.Refetch(getContext())
			return nil
		}
		if err := m.deletion.Err(); err != nil {
			return bannerMsg{text: err.Error(), style: ui.StyleError}
		}
		return nil
	}
}

func (m *browseModel) View() string {
	if !m.ready {
		return "\n  Loading assets..."
	}

	switch m.mode {
	case browseModeHelp:
		return m.viewHelp()
	case browseModeConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewList()
	}
}

func (m *browseModel) viewList() string {
	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderSearchBar())
	s.WriteString("\n\n")
	s.WriteString(m.renderAssetList())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *browseModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Align(lipgloss.Right)

	title := titleStyle.Render("SUPER BMD - Assets")

	pg := m.store.Pagination()
	status := fmt.Sprintf("%d assets", pg.TotalItems)
	if m.store.Loading() {
		status += "  refreshing..."
	}
	if cond := m.store.Filter().Condition; cond != "" {
		status = fmt.Sprintf("condition: %s  %s", cond, status)
	}
	stats := statsStyle.Render(status)

	spacer := m.width - lipgloss.Width(title) - lipgloss.Width(stats)
	if spacer < 0 {
		spacer = 0
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", spacer), stats)
}

func (m *browseModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == browseModeSearch {
		borderColor = ui.ColorPrimary
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 4)

	content := m.searchInput.View()
	if m.mode != browseModeSearch && m.searchInput.Value() == "" {
		content = ui.StyleMuted.Render("Press / to search...")
	}

	return searchStyle.Render(content)
}

func (m *browseModel) renderAssetList() string {
	var s strings.Builder

	items := m.store.Items()

	if err := m.store.Err(); err != nil {
		// The previous page stays visible under the error.
		s.WriteString(ui.FormatError(err.Error()))
		s.WriteString("\n\n")
	}

	if len(items) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Padding(2, 4)

		if m.store.Loading() {
			s.WriteString(emptyStyle.Render("Loading..."))
		} else if m.searchInput.Value() != "" {
			s.WriteString(emptyStyle.Render("No assets match your search."))
		} else {
			s.WriteString(emptyStyle.Render("No assets found."))
		}
		return s.String()
	}

	nameWidth := m.width - 62
	if nameWidth < 20 {
		nameWidth = 20
	}

	headerStyle := ui.StyleHeader
	s.WriteString("  ")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-*s %-14s %-13s %-18s", "ID", nameWidth, "NAME", "CODE", "CONDITION", "LOCATION")))
	s.WriteString("\n")

	for i, a := range items {
		cursor := "  "
		rowStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)
		if i == m.cursor {
			cursor = ui.StylePrimary.Render("▶ ")
			rowStyle = ui.StylePrimary.Bold(true)
		}

		line := fmt.Sprintf("%-5s %-*s %-14s %-13s %-18s",
			strconv.Itoa(a.ID),
			nameWidth, truncate(a.Name, nameWidth),
			truncate(a.Code, 14),
			string(a.Condition),
			truncate(a.LocationName(), 18),
		)
		s.WriteString(cursor)
		s.WriteString(rowStyle.Render(line))
		s.WriteString("\n")
	}

	return s.String()
}

func (m *browseModel) renderFooter() string {
	var statusLine string
	if m.banner != "" && time.Now().Before(m.bannerExpiry) {
		statusLine = m.bannerStyle.Render(m.banner)
	} else {
		pg := m.store.Pagination()
		first, last := pg.Showing()
		statusLine = ui.StyleMuted.Render(fmt.Sprintf("Showing %d-%d of %d  page %d/%d",
			first, last, pg.TotalItems, pg.CurrentPage, pg.TotalPages))
	}

	helpHint := ui.StyleMuted.Render("[↑↓/jk] Navigate  [←→/hl] Page  [/] Search  [c] Condition  [d] Delete  [?] Help  [q] Quit")

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)

	return footerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, statusLine, helpHint))
}

func (m *browseModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorAccent).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ui.ColorSuccess).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault)

	s.WriteString(titleStyle.Render("Asset Browser - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "Navigation",
			keys: []struct{ key, desc string }{
				{"↑ / k", "Move cursor up"},
				{"↓ / j", "Move cursor down"},
				{"← / h", "Previous page"},
				{"→ / l", "Next page"},
			},
		},
		{
			title: "Actions",
			keys: []struct{ key, desc string }{
				{"d", "Delete asset (with confirmation)"},
				{"r", "Refresh the current page"},
			},
		},
		{
			title: "Filters & Search",
			keys: []struct{ key, desc string }{
				{"/", "Start search (debounced as you type)"},
				{"c", "Cycle the condition filter"},
				{"Esc", "Exit search / Cancel"},
			},
		},
		{
			title: "General",
			keys: []struct{ key, desc string }{
				{"?", "Show this help"},
				{"q", "Quit"},
				{"Ctrl+C", "Force quit"},
			},
		},
	}

	for _, section := range sections {
		s.WriteString(sectionStyle.Render(section.title))
		s.WriteString("\n")
		for _, binding := range section.keys {
			s.WriteString("  ")
			s.WriteString(keyStyle.Render(binding.key))
			s.WriteString(descStyle.Render(binding.desc))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return"))
	s.WriteString("\n")

	return s.String()
}

func (m *browseModel) viewConfirmDelete() string {
	if m.deleteTarget == nil {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(60).
		Align(lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorWarning).
		Bold(true)

	assetStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true)

	promptStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault).
		MarginTop(1)

	content := fmt.Sprintf("%s\n\n%s\n%s\n\n%s",
		titleStyle.Render("Delete Asset?"),
		assetStyle.Render(m.deleteTarget.Name),
		ui.StyleMuted.Render(m.deleteTarget.Code),
		promptStyle.Render("Press 'y' to confirm, 'n' or ESC to cancel"),
	)

	box := boxStyle.Render(content)

	var s strings.Builder
	verticalPadding := (m.height - lipgloss.Height(box)) / 2
	if verticalPadding < 0 {
		verticalPadding = 0
	}
	for i := 0; i < verticalPadding; i++ {
		s.WriteString("\n")
	}
	s.WriteString(lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, box))

	return s.String()
}

func (m *browseModel) clampCursor() {
	items := m.store.Items()
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

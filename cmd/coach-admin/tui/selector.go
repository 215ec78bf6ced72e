package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/debounce"
	"github.com/ruminaider/coach-admin/internal/query"
	"github.com/ruminaider/coach-admin/internal/selection"
)

// DefaultPageSize is the number of rows fetched per page.
const DefaultPageSize = 10

var lastSelectorID atomic.Int64

// SelectorConfig describes one selectable resource.
type SelectorConfig[E any] struct {
	Resource string
	Label    string
	// IDOf returns the entity id. Resources disagree on the wire field
	// ("id" or "_id"), so the accessor is per resource.
	IDOf   func(E) string
	Title  func(E) string
	Detail func(E) string // optional, rendered dim after the title
	// FetchOnEmptyQuery lists the first unfiltered page before anything is
	// typed. When false a blank query shows a hint and fetches nothing.
	FetchOnEmptyQuery bool
	// ExceptMode marks the selection as "all except these".
	ExceptMode bool
	PageSize   int
	Delay      time.Duration
	// Cache is shared by every selector of the process; Fetch reaches the API
	// on a miss.
	Cache   *query.Cache
	Fetch   query.Fetcher[E]
	Context context.Context
	Logger  *zap.Logger
}

// Selector is a searchable, paginated multi-select over a remote resource.
// The parent owns the selection: toggles are proposed with
// SelectionChangedMsg and take effect once the parent calls SetSelected.
type Selector[E any] struct {
	cfg    SelectorConfig[E]
	id     int64
	keys   KeyMap
	log    *zap.Logger
	loader *query.Loader[E]

	input    textinput.Model
	spinner  spinner.Model
	pager    paginator.Model
	status   StatusBar
	debounce debounce.Debouncer[string]

	selected selection.Set
	state    State
	focus    FocusZone
	query    string    // committed query
	page     int       // 1-based committed page
	key      query.Key // most recently requested tuple
	fetched  bool      // key has been requested at least once

	results    []E
	totalPages int
	loading    bool
	err        error
	toast      string

	cursor int
	offset int // first visible row
	width  int
	height int // visible rows
	done   bool
}

// NewSelector creates a selector. Call Init to issue the first fetch.
func NewSelector[E any](cfg SelectorConfig[E]) Selector[E] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Label == "" {
		cfg.Label = cfg.Resource
	}
	if cfg.Cache == nil {
		cfg.Cache = query.NewCache(query.DefaultTTL)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search " + cfg.Resource
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle))

	pg := paginator.New(paginator.WithPerPage(cfg.PageSize), paginator.WithTotalPages(1))
	pg.Type = paginator.Arabic
	pg.ArabicFormat = "page %d/%d"

	return Selector[E]{
		cfg:  cfg,
		id:   lastSelectorID.Add(1),
		keys: DefaultKeyMap,
		log:  log.Named("selector").With(zap.String("resource", cfg.Resource)),
		loader: query.NewLoader(cfg.Cache, cfg.Fetch, query.LoaderConfig{
			FetchOnEmptyQuery: cfg.FetchOnEmptyQuery,
			Logger:            log,
		}),
		input:      ti,
		spinner:    sp,
		pager:      pg,
		status:     NewStatusBar(DefaultKeyMap),
		debounce:   debounce.New[string](cfg.Delay),
		state:      StateIdle,
		page:       1,
		totalPages: 1,
		height:     DefaultPageSize,
	}
}

// Init starts the cursor blink and, for resources that list on an empty
// query, fetches the first page.
func (s *Selector[E]) Init() tea.Cmd {
	if !s.cfg.FetchOnEmptyQuery {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, s.commit(""))
}

// SetSelected replaces the selection shown by the selector.
func (s *Selector[E]) SetSelected(ids []string) {
	s.selected = selection.New(ids...)
}

// Selected returns the ids the selector currently shows as selected.
func (s Selector[E]) Selected() []string {
	return s.selected.IDs()
}

// Mode returns the selection mode of the selector.
func (s Selector[E]) Mode() selection.Mode {
	if s.cfg.ExceptMode {
		return selection.Except
	}
	return selection.Include
}

// Resource returns the resource name.
func (s Selector[E]) Resource() string { return s.cfg.Resource }

// State returns the composite search state.
func (s Selector[E]) State() State { return s.state }

// Query returns the committed query.
func (s Selector[E]) Query() string { return s.query }

// Page returns the committed 1-based page.
func (s Selector[E]) Page() int { return s.page }

// TotalPages returns the page count of the last applied response.
func (s Selector[E]) TotalPages() int { return s.totalPages }

// Results returns the rows of the current page.
func (s Selector[E]) Results() []E { return s.results }

// Loading reports whether the most recent request is outstanding.
func (s Selector[E]) Loading() bool { return s.loading }

// Err returns the error of the most recent request, if it failed.
func (s Selector[E]) Err() error { return s.err }

// Done reports whether the user left the selector.
func (s Selector[E]) Done() bool { return s.done }

// SetSize sets the available width and the number of visible rows.
func (s *Selector[E]) SetSize(width, height int) {
	s.width = width
	if height > 0 {
		s.height = height
		s.clampScroll()
	}
	s.status.SetWidth(width)
	if width > 8 {
		s.input.Width = width - 8
	}
}

// Dispose stops the debounce timer for good.
func (s *Selector[E]) Dispose() {
	s.debounce.Dispose()
}

// Update handles keys, debounce timers, spinner ticks and page loads.
func (s Selector[E]) Update(msg tea.Msg) (Selector[E], tea.Cmd) {
	switch msg := msg.(type) {
	case ResizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case debounce.SettledMsg:
		v, ok := s.debounce.Settle(msg)
		if !ok {
			if s.debounce.Owns(msg) {
				s.log.Debug("keystroke timer superseded", zap.Int("tag", msg.Tag))
			}
			return s, nil
		}
		return s, s.commit(v)

	case fetchDoneMsg[E]:
		return s, s.applyFetch(msg)

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.done {
			return s, nil
		}
		return s.updateKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s Selector[E]) updateKey(msg tea.KeyMsg) (Selector[E], tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Abort):
		return s.finish(true)
	case key.Matches(msg, s.keys.Done):
		return s.finish(false)
	case key.Matches(msg, s.keys.Clear):
		if s.selected.Len() == 0 {
			return s, nil
		}
		return s, s.propose(nil)
	case key.Matches(msg, s.keys.PageDown):
		return s, s.goToPage(s.page + 1)
	case key.Matches(msg, s.keys.PageUp):
		return s, s.goToPage(s.page - 1)
	case key.Matches(msg, s.keys.Focus):
		s.setFocus(1 - s.focus)
		return s, nil
	}

	if s.focus == FocusList {
		switch {
		case key.Matches(msg, s.keys.Up):
			if s.cursor == 0 {
				s.setFocus(FocusSearch)
			} else {
				s.cursor--
			}
			s.clampScroll()
			return s, nil
		case key.Matches(msg, s.keys.Down):
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
			s.clampScroll()
			return s, nil
		case key.Matches(msg, s.keys.Toggle):
			return s, s.toggleCurrent()
		}
		// Anything else edits the query.
		s.setFocus(FocusSearch)
	}

	switch msg.String() {
	case "down":
		if len(s.results) > 0 {
			s.setFocus(FocusList)
		}
		return s, nil
	case "up":
		return s, nil
	case "enter":
		return s, s.toggleCurrent()
	case "backspace":
		if s.input.Value() == "" {
			ids := s.selected.IDs()
			if len(ids) == 0 {
				return s, nil
			}
			return s, s.propose(ids[:len(ids)-1])
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == before {
		return s, cmd
	}
	s.state = StateDebouncing
	return s, tea.Batch(cmd, s.debounce.Trigger(s.input.Value()))
}

func (s *Selector[E]) setFocus(z FocusZone) {
	s.focus = z
	if z == FocusSearch {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
}

func (s Selector[E]) finish(aborted bool) (Selector[E], tea.Cmd) {
	s.done = true
	s.debounce.Dispose()
	resource := s.cfg.Resource
	return s, func() tea.Msg {
		return SelectorDoneMsg{Resource: resource, Aborted: aborted}
	}
}

// commit applies a settled query. The query and the page reset change in the
// same transition so no fetch for the old page of the new query is issued.
func (s *Selector[E]) commit(q string) tea.Cmd {
	q = strings.TrimSpace(q)
	s.state = StateCommitted
	next := query.NewKey(s.cfg.Resource, 1, s.cfg.PageSize, q)
	if s.fetched && next == s.key && s.err == nil {
		s.log.Debug("query unchanged", zap.String("key", next.String()))
		return nil
	}
	s.query = q
	s.page = 1
	s.cursor = 0
	s.offset = 0
	// Paging waits for the new query's own page count.
	s.totalPages = 1
	s.syncPager()
	return s.fetch(next)
}

func (s *Selector[E]) goToPage(page int) tea.Cmd {
	if page < 1 || page > s.totalPages || page == s.page {
		return nil
	}
	if s.state == StateIdle {
		s.state = StateCommitted
	}
	s.page = page
	s.cursor = 0
	s.offset = 0
	return s.fetch(query.NewKey(s.cfg.Resource, page, s.cfg.PageSize, s.query))
}

// fetch records key as the most recent request. Responses for any other key
// are discarded when they arrive.
func (s *Selector[E]) fetch(k query.Key) tea.Cmd {
	s.key = k
	s.fetched = true
	s.err = nil

	if s.cfg.Fetch == nil || !s.loader.Enabled(k) {
		s.loading = false
		s.results = nil
		s.totalPages = 1
		s.syncPager()
		return nil
	}

	s.loading = true
	loader, ctx, owner := s.loader, s.cfg.Context, s.id
	load := func() tea.Msg {
		res, err := loader.Load(ctx, k)
		return fetchDoneMsg[E]{owner: owner, key: k, result: res, err: err}
	}
	return tea.Batch(load, s.spinner.Tick)
}

// applyFetch applies the response for the latest key. A page past the end
// of a shrunken result set moves to the last page.
func (s *Selector[E]) applyFetch(msg fetchDoneMsg[E]) tea.Cmd {
	if msg.owner != s.id {
		return nil
	}
	if msg.key != s.key {
		s.log.Debug("discarding stale response",
			zap.String("key", msg.key.String()),
			zap.String("latest", s.key.String()))
		return nil
	}
	s.loading = false
	if msg.err != nil {
		s.err = msg.err
		s.results = nil
		s.toast = fmt.Sprintf("Could not load %s: %s", s.cfg.Resource, api.MessageOf(msg.err))
		s.log.Warn("load failed", zap.String("key", msg.key.String()), zap.Error(msg.err))
		return nil
	}
	s.err = nil
	s.toast = ""
	s.results = msg.result.Page.Results
	s.totalPages = max(msg.result.Page.TotalPages, 1)
	if s.page > s.totalPages {
		return s.goToPage(s.totalPages)
	}
	if s.cursor >= len(s.results) {
		s.cursor = max(len(s.results)-1, 0)
	}
	s.clampScroll()
	if len(s.results) == 0 && s.focus == FocusList {
		s.setFocus(FocusSearch)
	}
	s.syncPager()
	return nil
}

func (s *Selector[E]) clampScroll() {
	s.offset, _ = scrollWindow(s.offset, s.cursor, len(s.results), s.height)
}

func (s *Selector[E]) syncPager() {
	s.pager.TotalPages = s.totalPages
	s.pager.Page = s.page - 1
}

func (s Selector[E]) toggleCurrent() tea.Cmd {
	if s.loading || s.cursor < 0 || s.cursor >= len(s.results) {
		return nil
	}
	next := selection.New(s.selected.IDs()...)
	next.Toggle(s.cfg.IDOf(s.results[s.cursor]))
	return s.propose(next.IDs())
}

func (s Selector[E]) propose(ids []string) tea.Cmd {
	resource := s.cfg.Resource
	return func() tea.Msg {
		return SelectionChangedMsg{Resource: resource, IDs: ids}
	}
}

// View renders the selector.
func (s Selector[E]) View() string {
	var b strings.Builder

	label := LabelStyle.Render(s.cfg.Label)
	if s.cfg.ExceptMode {
		label += " " + ExceptTagStyle.Render("(all except)")
	}
	b.WriteString(label + "\n")

	if chips := s.chipsView(); chips != "" {
		b.WriteString(chips + "\n")
	}
	b.WriteString(s.input.View() + "\n\n")
	b.WriteString(s.bodyView() + "\n")

	if s.totalPages > 1 {
		b.WriteString(DimStyle.Render(s.pager.View()) + "\n")
	}
	if s.toast != "" {
		b.WriteString(ToastStyle.Render(s.toast) + "\n")
	}

	status := s.status
	status.Update(s.selected.Describe(s.Mode()))
	b.WriteString(status.View())

	return ContentPaneStyle.Render(b.String())
}

func (s Selector[E]) bodyView() string {
	switch {
	case s.loading:
		return s.spinner.View() + " " + DimStyle.Render("Loading "+s.cfg.Resource+"…")
	case s.err != nil:
		return ErrorStyle.Render("Could not load " + s.cfg.Resource)
	case !s.fetched || !s.loader.Enabled(s.key):
		return DimStyle.Render("Type to search " + s.cfg.Resource)
	case len(s.results) == 0:
		return DimStyle.Render("Nothing found")
	}

	var b strings.Builder
	offset, end := scrollWindow(s.offset, s.cursor, len(s.results), s.height)
	if offset > 0 {
		b.WriteString(DimStyle.Render("  ↑ more") + "\n")
	}
	for i := offset; i < end; i++ {
		e := s.results[i]
		cursor := "  "
		if i == s.cursor {
			if s.focus == FocusList {
				cursor = "> "
			} else {
				cursor = DimStyle.Render("›") + " "
			}
		}

		checkbox := UnselectedStyle.Render("[ ]")
		if s.selected.Contains(s.cfg.IDOf(e)) {
			checkbox = SelectedStyle.Render("[x]")
		}

		title := s.cfg.Title(e)
		if i == s.cursor && s.focus == FocusList {
			title = CursorRowStyle.Render(title)
		}
		line := cursor + checkbox + " " + title
		if s.cfg.Detail != nil {
			if d := s.cfg.Detail(e); d != "" {
				line += "  " + DimStyle.Render(d)
			}
		}
		b.WriteString(line + "\n")
	}
	if end < len(s.results) {
		b.WriteString(DimStyle.Render("  ↓ more") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// chipsView renders one chip per selected id. Titles are resolved against
// the current page only; ids selected on other pages show as bare ids.
func (s Selector[E]) chipsView() string {
	ids := s.selected.IDs()
	if len(ids) == 0 {
		return ""
	}
	chips := make([]string, 0, len(ids))
	for _, id := range ids {
		if title, ok := s.titleOnPage(id); ok {
			chips = append(chips, ChipStyle.Render(title+" ×"))
		} else {
			chips = append(chips, BareChipStyle.Render(id+" ×"))
		}
	}
	row := strings.Join(chips, " ")
	if s.width > 0 {
		return lipgloss.NewStyle().Width(s.width - 2).Render(row)
	}
	return row
}

func (s Selector[E]) titleOnPage(id string) (string, bool) {
	for _, e := range s.results {
		if s.cfg.IDOf(e) == id {
			return s.cfg.Title(e), true
		}
	}
	return "", false
}

// ChipLabels returns the plain chip text for every selected id, resolved
// against the current page.
func (s Selector[E]) ChipLabels() []string {
	ids := s.selected.IDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if title, ok := s.titleOnPage(id); ok {
			out = append(out, title)
		} else {
			out = append(out, id)
		}
	}
	return out
}

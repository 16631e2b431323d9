package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/jask/shopgrid/internal/catalog"
	"github.com/jask/shopgrid/internal/config"
	"github.com/jask/shopgrid/internal/grid"
	"github.com/jask/shopgrid/internal/prefs"
	"github.com/jask/shopgrid/internal/reveal"
	"github.com/jask/shopgrid/internal/service"
)

var (
	minPriceSteps = []float64{5, 10, 25, 50}
	maxPriceSteps = []float64{10, 25, 50, 100}
)

// App is the product grid screen.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	log      *zap.Logger
	keys     keyMap
	help     help.Model

	ctrl      *reveal.Controller
	marker    *markerWatcher
	grid      *grid.Grid
	callbacks grid.Callbacks
	locale    language.Tag
	currency  string

	snapshot    service.Snapshot
	loaded      bool
	selection   catalog.Selection
	criteria    catalog.Criteria
	preferences *catalog.Preferences
	minStep     int // index+1 into minPriceSteps, 0 = unset
	maxStep     int

	cursor int
	top    int
	width  int
	height int

	cart   map[string]int
	detail *catalog.Item
	typing bool
	input  string
	status string
}

// Services are the collaborators the screen talks to. Either may be nil.
type Services struct {
	Catalog *service.CatalogService
	Prefs   *prefs.Watcher
}

// Options tune the screen.
type Options struct {
	// DisableAmbient drops the proximity signal; reveal is manual only.
	DisableAmbient bool
}

func New(ctx context.Context, cfg config.Config, services Services, log *zap.Logger, opts Options) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:       ctx,
		cfg:       cfg,
		services:  services,
		log:       log,
		keys:      newKeyMap(),
		help:      help.New(),
		locale:    language.Make(cfg.UI.Locale),
		currency:  cfg.UI.CurrencySymbol,
		selection: catalog.AllCategories,
		cart:      make(map[string]int),
	}
	var source reveal.ProximitySource
	if !opts.DisableAmbient {
		a.marker = newMarkerWatcher()
		source = a.marker
	}
	a.ctrl = reveal.New(cfg.Grid.Reveal(), source, log)
	a.grid = grid.New(a.pipeline(nil), a.ctrl, log)
	a.callbacks = grid.Callbacks{OnAddToCart: a.addToCart, OnItemClick: a.openDetail}
	return a
}

func (a *App) pipeline(classify catalog.Classifier) catalog.Pipeline {
	return catalog.Pipeline{
		Classify: classify,
		Prefer:   prefs.NewFilter(classify),
		Locale:   a.locale,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadCatalog(), a.loadPrefs()}
	if a.services.Prefs != nil {
		cmds = append(cmds, waitForPrefs(a.services.Prefs.Updates()))
	}
	return tea.Batch(cmds...)
}

// Close releases the reveal observation.
func (a *App) Close() { a.grid.Close() }

// messages
type catalogMsg service.Snapshot

type prefsMsg struct{ prefs *catalog.Preferences }

type prefsUpdatedMsg prefs.Update

type statusMsg string

type errMsg struct{ error }

func (a *App) loadCatalog() tea.Cmd {
	if a.services.Catalog == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := a.services.Catalog.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return catalogMsg(snap)
	}
}

func (a *App) loadPrefs() tea.Cmd {
	path := a.cfg.Prefs.Path
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		p, err := prefs.Load(path)
		if err != nil {
			return errMsg{err}
		}
		return prefsMsg{prefs: p}
	}
}

func waitForPrefs(ch <-chan prefs.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return prefsUpdatedMsg(u)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.scroll()
		return a, a.checkMarker()
	case tea.KeyMsg:
		return a.handleKey(m)
	case catalogMsg:
		a.snapshot = service.Snapshot(m)
		a.loaded = true
		a.grid = grid.New(a.pipeline(a.snapshot.Classify), a.ctrl, a.log)
		return a, a.apply()
	case prefsMsg:
		a.preferences = m.prefs
		return a, a.apply()
	case prefsUpdatedMsg:
		next := waitForPrefs(a.services.Prefs.Updates())
		if m.Err != nil {
			a.status = "preferences: " + m.Err.Error()
			return a, next
		}
		a.preferences = m.Prefs
		a.status = "preferences reloaded"
		return a, tea.Batch(a.apply(), next)
	case markerMsg:
		if a.marker != nil && a.marker.fire(m.gen) {
			a.log.Debug("ambient reveal", zap.Int("visible", a.ctrl.Visible()))
		}
		return a, a.checkMarker()
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
		a.log.Error("tui", zap.Error(m.error))
	}
	return a, nil
}

// apply pushes the current inputs through the grid. A reset moves the
// selection back to the first card.
func (a *App) apply() tea.Cmd {
	if !a.loaded {
		return nil
	}
	in := grid.Inputs{
		Items:       a.snapshot.Items,
		Selection:   a.selection,
		Criteria:    a.criteria,
		Preferences: a.preferences,
	}
	if a.grid.Apply(in) {
		a.cursor, a.top = 0, 0
	}
	return a.checkMarker()
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.typing {
		return a.handleInputKey(m)
	}
	if a.detail != nil {
		return a.handleDetailKey(m)
	}
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.grid.Visible())-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Top):
		a.cursor = 0
	case key.Matches(m, a.keys.More):
		if !a.grid.RevealMore() {
			a.status = "everything is shown"
		}
	case key.Matches(m, a.keys.Category):
		a.selection = a.nextCategory()
		a.status = ""
		return a, a.apply()
	case key.Matches(m, a.keys.Find):
		a.typing = true
		a.input = ""
		return a, nil
	case key.Matches(m, a.keys.Sort):
		a.criteria.SortBy = nextSort(a.criteria.SortBy)
		return a, a.apply()
	case key.Matches(m, a.keys.Prefs):
		a.criteria.PreferencesEnabled = !a.criteria.PreferencesEnabled
		if a.criteria.PreferencesEnabled && a.preferences == nil {
			a.status = "no preferences file at " + a.cfg.Prefs.Path
		}
		return a, a.apply()
	case key.Matches(m, a.keys.MinPrice):
		a.minStep = (a.minStep + 1) % (len(minPriceSteps) + 1)
		a.criteria.MinPrice = step(minPriceSteps, a.minStep)
		return a, a.apply()
	case key.Matches(m, a.keys.MaxPrice):
		a.maxStep = (a.maxStep + 1) % (len(maxPriceSteps) + 1)
		a.criteria.MaxPrice = step(maxPriceSteps, a.maxStep)
		return a, a.apply()
	case key.Matches(m, a.keys.Add):
		if it, ok := a.selected(); ok && a.callbacks.OnAddToCart != nil {
			a.callbacks.OnAddToCart(it)
		}
	case key.Matches(m, a.keys.Open):
		if it, ok := a.selected(); ok && a.callbacks.OnItemClick != nil {
			a.callbacks.OnItemClick(it)
		}
		return a, nil
	case key.Matches(m, a.keys.Reload):
		a.status = "reloading..."
		return a, tea.Batch(a.loadCatalog(), a.loadPrefs())
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	a.scroll()
	return a, a.checkMarker()
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Close), key.Matches(m, a.keys.Open):
		a.detail = nil
		return a, a.checkMarker()
	case key.Matches(m, a.keys.Add):
		if a.callbacks.OnAddToCart != nil {
			a.callbacks.OnAddToCart(*a.detail)
		}
	}
	return a, nil
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.typing = false
		a.input = ""
	case tea.KeyEnter:
		a.typing = false
		text := strings.TrimSpace(a.input)
		a.input = ""
		if text == "" {
			a.selection = catalog.AllCategories
		} else {
			a.selection = catalog.Selection(text)
		}
		return a, a.apply()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.input) > 0 {
			r := []rune(a.input)
			a.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.input += " "
	case tea.KeyRunes:
		a.input += string(m.Runes)
	}
	return a, nil
}

func (a *App) selected() (catalog.Item, bool) {
	visible := a.grid.Visible()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return catalog.Item{}, false
	}
	return visible[a.cursor], true
}

func (a *App) addToCart(it catalog.Item) {
	a.cart[it.ID]++
	a.status = fmt.Sprintf("added %s to cart (%d items)", it.Name, a.cartCount())
	a.log.Info("add to cart", zap.String("id", it.ID), zap.Int("qty", a.cart[it.ID]))
}

func (a *App) openDetail(it catalog.Item) {
	a.detail = &it
}

func (a *App) cartCount() int {
	n := 0
	for _, qty := range a.cart {
		n += qty
	}
	return n
}

func (a *App) categoryOptions() []catalog.Selection {
	labels := a.snapshot.Labels()
	out := make([]catalog.Selection, 0, len(labels)+1)
	out = append(out, catalog.AllCategories)
	for _, l := range labels {
		out = append(out, catalog.Selection(l))
	}
	return out
}

func (a *App) nextCategory() catalog.Selection {
	opts := a.categoryOptions()
	for i, o := range opts {
		if o == a.selection {
			return opts[(i+1)%len(opts)]
		}
	}
	return catalog.AllCategories
}

func nextSort(k catalog.SortKey) catalog.SortKey {
	for i, s := range catalog.SortKeys {
		if s == k {
			if i == len(catalog.SortKeys)-1 {
				return catalog.SortNone
			}
			return catalog.SortKeys[i+1]
		}
	}
	return catalog.SortKeys[0]
}

func step(steps []float64, idx int) *float64 {
	if idx <= 0 || idx > len(steps) {
		return nil
	}
	return catalog.Float(steps[idx-1])
}

// layout

const (
	cardHeight  = 3
	headerLines = 4
	footerLines = 3
)

func (a *App) cardsPerScreen() int {
	body := a.height - headerLines - footerLines
	return max(1, body/cardHeight)
}

// scroll keeps the cursor card inside the viewport.
func (a *App) scroll() {
	per := a.cardsPerScreen()
	if a.cursor < a.top {
		a.top = a.cursor
	}
	if a.cursor >= a.top+per {
		a.top = a.cursor - per + 1
	}
	if a.top < 0 {
		a.top = 0
	}
}

// checkMarker measures how far the end-of-list marker sits below the
// viewport and lets the watcher decide whether to signal.
func (a *App) checkMarker() tea.Cmd {
	if a.marker == nil || a.height == 0 || a.detail != nil {
		return nil
	}
	markerLine := len(a.grid.Visible()) * cardHeight
	bottom := (a.top + a.cardsPerScreen()) * cardHeight
	return a.marker.check(markerLine - bottom)
}

// Package grid joins the derivation pipeline and the reveal controller into
// the read model consumed by renderers.
package grid

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/shopgrid/internal/catalog"
	"github.com/jask/shopgrid/internal/reveal"
)

// Inputs are everything the derived list depends on.
type Inputs struct {
	Items       []catalog.Item
	Selection   catalog.Selection
	Criteria    catalog.Criteria
	Preferences *catalog.Preferences
}

// Callbacks are supplied by the caller and handed to the card renderer as is.
type Callbacks struct {
	OnAddToCart func(catalog.Item)
	OnItemClick func(catalog.Item)
}

// View is what a renderer needs for one frame.
type View struct {
	Heading string
	Items   []catalog.Item
	Total   int
	HasMore bool
}

// Empty reports the "no products found" state.
func (v View) Empty() bool { return v.Total == 0 }

// Summary is the "N products available" readout.
func (v View) Summary() string {
	if v.Total == 1 {
		return "1 product available"
	}
	return fmt.Sprintf("%d products available", v.Total)
}

// Grid holds the current derived list and its reveal cursor.
type Grid struct {
	pipeline catalog.Pipeline
	ctrl     *reveal.Controller
	log      *zap.Logger

	inputs  Inputs
	derived []catalog.Item
	key     uuid.UUID
	applied bool
}

func New(p catalog.Pipeline, ctrl *reveal.Controller, log *zap.Logger) *Grid {
	if log == nil {
		log = zap.NewNop()
	}
	if ctrl == nil {
		ctrl = reveal.New(reveal.DefaultConfig(), nil, log)
	}
	return &Grid{pipeline: p, ctrl: ctrl, log: log}
}

// Apply recomputes the derived list when in differs by value from the last
// applied inputs, and then resets the reveal cursor. It reports whether that
// happened. A reset happens even when the new list has the old length.
func (g *Grid) Apply(in Inputs) bool {
	key := catalog.Fingerprint(in.Items, in.Selection, in.Criteria, in.Preferences, g.pipeline.Classify)
	if g.applied && key == g.key {
		return false
	}
	g.inputs = in
	g.key = key
	g.applied = true
	g.derived = g.pipeline.Derive(in.Items, in.Selection, in.Criteria, in.Preferences)
	g.ctrl.Reset(len(g.derived))
	g.log.Debug("grid derived",
		zap.String("selection", string(in.Selection)),
		zap.String("sort", string(in.Criteria.SortBy)),
		zap.Bool("preferences", in.Criteria.PreferencesEnabled && in.Preferences != nil),
		zap.Int("items", len(in.Items)),
		zap.Int("derived", len(g.derived)),
	)
	return true
}

func (g *Grid) Inputs() Inputs { return g.inputs }

// Derived returns the full derived list. Callers must not modify it.
func (g *Grid) Derived() []catalog.Item { return g.derived }

func (g *Grid) Controller() *reveal.Controller { return g.ctrl }

func (g *Grid) RevealMore() bool { return g.ctrl.RevealMore() }

func (g *Grid) AmbientReveal() bool { return g.ctrl.AmbientReveal() }

func (g *Grid) HasMore() bool { return g.ctrl.HasMore() }

// Visible is the revealed prefix of the derived list.
func (g *Grid) Visible() []catalog.Item { return reveal.Window(g.derived, g.ctrl.Visible()) }

func (g *Grid) View() View {
	return View{
		Heading: Heading(g.inputs.Selection),
		Items:   g.Visible(),
		Total:   len(g.derived),
		HasMore: g.ctrl.HasMore(),
	}
}

// Close releases the controller's observation.
func (g *Grid) Close() { g.ctrl.Close() }

// Heading titles the grid for a selection.
func Heading(sel catalog.Selection) string {
	if sel == catalog.AllCategories || sel == "" {
		return "All Products"
	}
	return string(sel)
}

// Render calls card once per visible item, in order.
func Render[R any](g *Grid, cb Callbacks, card func(catalog.Item, Callbacks) R) []R {
	visible := g.Visible()
	out := make([]R, 0, len(visible))
	for _, it := range visible {
		out = append(out, card(it, cb))
	}
	return out
}

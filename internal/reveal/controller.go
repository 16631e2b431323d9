// Package reveal grows a visible prefix over a derived list, either on demand
// or when the renderer reports that the end-of-list marker is near.
package reveal

import "go.uber.org/zap"

const (
	DefaultInitialCount    = 12
	DefaultBatchSize       = 12
	DefaultProximityMargin = "300px"
)

// Config controls how much is revealed and when the ambient trigger arms.
type Config struct {
	InitialCount    int
	BatchSize       int
	ProximityMargin string
}

func DefaultConfig() Config {
	return Config{
		InitialCount:    DefaultInitialCount,
		BatchSize:       DefaultBatchSize,
		ProximityMargin: DefaultProximityMargin,
	}
}

// Normalize replaces unusable values with defaults.
func (c Config) Normalize() Config {
	out := DefaultConfig()
	if c.InitialCount > 0 {
		out.InitialCount = c.InitialCount
	}
	if c.BatchSize > 0 {
		out.BatchSize = c.BatchSize
	}
	if c.ProximityMargin != "" {
		out.ProximityMargin = c.ProximityMargin
	}
	return out
}

// ProximitySource is the renderer's "end-of-list marker is near" signal.
// Observe starts watching with the given margin and calls notify each time the
// marker comes into range. The returned stop releases the observation; it may
// be called from inside notify and must be safe to call more than once.
type ProximitySource interface {
	Observe(margin string, notify func()) (stop func())
}

// State is the controller's position within one derivation cycle.
type State int

const (
	Revealing State = iota
	FullyRevealed
)

func (s State) String() string {
	if s == FullyRevealed {
		return "fully-revealed"
	}
	return "revealing"
}

type observation struct {
	visible int
	total   int
	margin  string
}

// Controller owns the reveal cursor. It is not safe for concurrent use: all
// calls, including ambient notifications, must come from one event loop.
type Controller struct {
	cfg     Config
	source  ProximitySource
	log     *zap.Logger
	total   int
	visible int
	closed  bool

	stop     func()
	observed observation
}

// New returns a controller over an empty list. A nil source means the runtime
// has no proximity signal; only RevealMore will grow the cursor.
func New(cfg Config, source ProximitySource, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{cfg: cfg.Normalize(), source: source, log: log}
	if source == nil {
		log.Debug("proximity signal unavailable, manual reveal only")
	}
	return c
}

// Reset starts a new derivation cycle over a list of total items.
// Any observation tied to the previous list is released first.
func (c *Controller) Reset(total int) {
	if total < 0 {
		total = 0
	}
	c.release()
	c.total = total
	c.visible = min(c.cfg.InitialCount, total)
	c.log.Debug("reveal reset", zap.Int("total", total), zap.Int("visible", c.visible))
	c.sync()
}

// RevealMore exposes the next batch. It reports whether the cursor moved.
func (c *Controller) RevealMore() bool {
	if !c.HasMore() {
		return false
	}
	c.visible = min(c.visible+c.cfg.BatchSize, c.total)
	c.log.Debug("reveal more", zap.Int("visible", c.visible), zap.Int("total", c.total))
	c.sync()
	return true
}

// AmbientReveal handles the proximity signal. Once everything is visible it
// does nothing but make sure no observation remains.
func (c *Controller) AmbientReveal() bool {
	if !c.HasMore() {
		c.release()
		return false
	}
	return c.RevealMore()
}

func (c *Controller) Visible() int { return c.visible }

func (c *Controller) Total() int { return c.total }

func (c *Controller) HasMore() bool { return c.visible < c.total }

func (c *Controller) State() State {
	if c.HasMore() {
		return Revealing
	}
	return FullyRevealed
}

// Observing reports whether an ambient observation is currently held.
func (c *Controller) Observing() bool { return c.stop != nil }

func (c *Controller) Config() Config { return c.cfg }

// SetMargin changes the proximity margin and re-registers the observation.
func (c *Controller) SetMargin(margin string) {
	if margin == "" {
		margin = DefaultProximityMargin
	}
	c.cfg.ProximityMargin = margin
	c.sync()
}

// Close releases the observation for good.
func (c *Controller) Close() {
	c.closed = true
	c.release()
}

// sync keeps the observation aligned with the current visible count, total
// and margin.
func (c *Controller) sync() {
	if c.closed || c.source == nil || !c.HasMore() {
		c.release()
		return
	}
	want := observation{visible: c.visible, total: c.total, margin: c.cfg.ProximityMargin}
	if c.stop != nil && c.observed == want {
		return
	}
	c.release()
	c.stop = c.source.Observe(want.margin, func() { c.AmbientReveal() })
	c.observed = want
}

func (c *Controller) release() {
	if c.stop == nil {
		return
	}
	stop := c.stop
	c.stop = nil
	c.observed = observation{}
	stop()
}

// Window returns the first visible items of list as a view sharing its
// backing array. Capacity is capped so appends never write into list.
func Window[T any](list []T, visible int) []T {
	visible = max(0, min(visible, len(list)))
	return list[:visible:visible]
}

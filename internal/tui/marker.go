package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// pxPerRow converts pixel margins into terminal rows.
const pxPerRow = 20

// markerMsg reports that the end-of-list marker came within the margin of
// the viewport while registration gen was active.
type markerMsg struct{ gen int }

// markerWatcher is the terminal's proximity signal for the reveal controller.
// check is called after anything that moves the viewport; when the marker is
// in range it emits one markerMsg per registration. fire delivers it on the
// Update loop, dropping messages from registrations that were since replaced.
type markerWatcher struct {
	gen    int
	rows   int
	armed  bool
	notify func()
}

func newMarkerWatcher() *markerWatcher { return &markerWatcher{} }

func (w *markerWatcher) Observe(margin string, notify func()) func() {
	w.gen++
	gen := w.gen
	w.rows = marginRows(margin)
	w.notify = notify
	w.armed = true
	return func() {
		if w.gen != gen {
			return
		}
		w.notify = nil
		w.armed = false
	}
}

// check takes the distance in rows from the bottom of the viewport to the
// marker; zero or less means the marker is on screen.
func (w *markerWatcher) check(distance int) tea.Cmd {
	if !w.armed || w.notify == nil || distance > w.rows {
		return nil
	}
	w.armed = false
	gen := w.gen
	return func() tea.Msg { return markerMsg{gen: gen} }
}

func (w *markerWatcher) fire(gen int) bool {
	if gen != w.gen || w.notify == nil {
		return false
	}
	w.notify()
	return true
}

func (w *markerWatcher) observing() bool { return w.notify != nil }

// marginRows accepts "300px", "5rows" or a bare row count. Anything else is 0,
// which only triggers once the marker is on screen.
func marginRows(margin string) int {
	s := strings.ToLower(strings.TrimSpace(margin))
	var (
		n   float64
		err error
	)
	switch {
	case strings.HasSuffix(s, "px"):
		n, err = strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "px")), 64)
		n /= pxPerRow
	case strings.HasSuffix(s, "rows"):
		n, err = strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "rows")), 64)
	default:
		n, err = strconv.ParseFloat(s, 64)
	}
	if err != nil || n < 0 {
		return 0
	}
	return int(n)
}

package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"quakemap/internal/geom"
	"quakemap/internal/quake"
	"quakemap/internal/scene"
	"quakemap/internal/source"
)

const resourceSurface = "surface"

type boundariesMsg struct {
	cycle    int
	polygons []geom.Polygon
}

type earthquakesMsg struct {
	cycle  int
	events []quake.Event
}

type cycleErrMsg struct {
	cycle    int
	resource string
	err      error
}

type frameMsg struct {
	cycle int
}

// startCycle abandons any in-flight cycle and begins a new one: measure the
// surface, then fetch boundaries. Earthquakes follow once boundaries are drawn.
func (m *Model) startCycle(reason string) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		if m.phase != phaseIdle {
			m.metrics.CyclesSuperseded.Inc()
		}
	}
	m.cycle++
	m.metrics.CyclesStarted.Inc()
	entry := m.log.WithFields(log.Fields{"cycle": m.cycle, "reason": reason})

	rc, err := m.render()
	if err != nil {
		m.phase = phaseIdle
		m.fail(resourceSurface, err)
		return nil
	}
	m.rc = rc
	m.cycleCtx, m.cancel = context.WithCancel(m.ctx)
	m.phase = phaseBoundaries
	m.status = m.phase.String()

	entry.WithFields(log.Fields{"width": rc.Width, "height": rc.Height}).Info("Render cycle started")

	return tea.Batch(m.loadBoundaries(), m.spin.Tick)
}

// render measures the map area and derives this cycle's projection.
func (m Model) render() (scene.Context, error) {
	w, h := m.mapSize()
	return scene.NewContext(w*2, h*4)
}

func (m Model) loadBoundaries() tea.Cmd {
	ctx, cycle, src := m.cycleCtx, m.cycle, m.src
	location, object := m.cfg.BoundariesURL, m.cfg.BoundariesObject
	return func() tea.Msg {
		polygons, err := src.Boundaries(ctx, location, object)
		if err != nil {
			return cycleErrMsg{cycle: cycle, resource: source.ResourceBoundaries, err: err}
		}
		return boundariesMsg{cycle: cycle, polygons: polygons}
	}
}

func (m Model) loadEarthquakes() tea.Cmd {
	ctx, cycle, src := m.cycleCtx, m.cycle, m.src
	location := m.cfg.FeedURL
	return func() tea.Msg {
		events, err := src.Earthquakes(ctx, location)
		if err != nil {
			return cycleErrMsg{cycle: cycle, resource: source.ResourceEarthquakes, err: err}
		}
		return earthquakesMsg{cycle: cycle, events: events}
	}
}

func (m *Model) stale(cycle int, kind string) bool {
	if cycle == m.cycle {
		return false
	}
	m.log.WithFields(log.Fields{"cycle": cycle, "current": m.cycle, "msg": kind}).Debug("Discarding superseded result")
	return true
}

func (m *Model) onBoundaries(msg boundariesMsg) tea.Cmd {
	if m.stale(msg.cycle, "boundaries") {
		return nil
	}
	m.surface.ReplaceCountries(scene.Countries(m.rc, msg.polygons))
	m.phase = phaseEarthquakes
	m.status = m.phase.String()
	return m.loadEarthquakes()
}

func (m *Model) onEarthquakes(msg earthquakesMsg) tea.Cmd {
	if m.stale(msg.cycle, "earthquakes") {
		return nil
	}
	events := quake.Prepare(msg.events)
	skipped := len(msg.events) - len(events)

	m.surface.ReplaceEarthquakes(scene.Earthquakes(m.rc, events))
	m.drawLegend()
	m.animStart = m.clock.Now()
	m.finish()
	m.refreshEvents()
	m.hoverQuake = -1

	m.metrics.CyclesCompleted.Inc()
	m.metrics.EarthquakesPlotted.Set(float64(len(events)))
	m.metrics.EarthquakesSkipped.Add(float64(skipped))
	m.log.WithFields(log.Fields{
		"cycle":   m.cycle,
		"plotted": len(events),
		"skipped": skipped,
	}).Info("Render cycle complete")

	m.status = fmt.Sprintf("%d earthquakes", len(events))
	if skipped > 0 {
		m.status += fmt.Sprintf(" (%d without location)", skipped)
	}
	return m.nextFrame()
}

func (m *Model) drawLegend() {
	m.surface.SetLegend(scene.NewLegend(m.rc))
}

func (m *Model) onCycleErr(msg cycleErrMsg) {
	if m.stale(msg.cycle, "error") {
		return
	}
	m.finish()
	m.fail(msg.resource, msg.err)
}

func (m *Model) fail(resource string, err error) {
	m.metrics.CyclesFailed.WithLabelValues(resource).Inc()
	m.log.WithError(err).WithFields(log.Fields{"cycle": m.cycle, "resource": resource}).Error("Render cycle failed")
	m.status = "error: " + err.Error()
}

func (m *Model) finish() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.phase = phaseIdle
}

func (m Model) elapsed() time.Duration {
	return m.clock.Since(m.animStart)
}

func (m Model) nextFrame() tea.Cmd {
	if m.surface.Settled(m.elapsed()) {
		return nil
	}
	cycle := m.cycle
	return tea.Tick(m.cfg.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{cycle: cycle}
	})
}

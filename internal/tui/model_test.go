package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quakemap/internal/config"
	"quakemap/internal/geom"
	"quakemap/internal/observability"
	"quakemap/internal/quake"
	"quakemap/internal/source"
)

type fakeSource struct {
	polygons []geom.Polygon
	events   []quake.Event
	boundErr error
	quakeErr error

	boundCalls int
	quakeCalls int
}

func (f *fakeSource) Boundaries(ctx context.Context, _, _ string) ([]geom.Polygon, error) {
	f.boundCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.polygons, f.boundErr
}

func (f *fakeSource) Earthquakes(ctx context.Context, _ string) ([]quake.Event, error) {
	f.quakeCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.events, f.quakeErr
}

func testPolygons() []geom.Polygon {
	return []geom.Polygon{
		{{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}, {-10, -10}}},
		{{{100, 20}, {120, 20}, {120, 40}, {100, 20}}},
	}
}

func testEvents() []quake.Event {
	// feed order: newest first
	return []quake.Event{
		{ID: "b", Magnitude: 4.5, Place: "far east", Coordinates: &quake.Coordinates{Lon: 100, Lat: 40, Depth: 10}},
		{ID: "x", Magnitude: 2},
		{ID: "a", Magnitude: 1.2, Place: "null island", Coordinates: &quake.Coordinates{Lon: 0, Lat: 0, Depth: 5}},
	}
}

type harness struct {
	src     *fakeSource
	metrics *observability.Metrics
	clock   *clockwork.FakeClock
}

func newTestModel(t *testing.T, src *fakeSource) (Model, *harness) {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)
	h := &harness{
		src:     src,
		metrics: observability.NewMetricsForTesting(),
		clock:   clockwork.NewFakeClock(),
	}
	m := New(context.Background(), Options{
		Config: &config.Config{
			BoundariesURL:    "boundaries.json",
			BoundariesObject: "countries",
			FeedURL:          "feed.geojson",
			FrameInterval:    time.Millisecond,
		},
		Source:  src,
		Logger:  logger,
		Metrics: h.metrics,
		Clock:   h.clock,
	})
	return m, h
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// collect runs cmd and returns the messages it yields, expanding batches and
// dropping spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	case nil:
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds every message produced by cmd back into the model until no
// cycle messages remain. Frame ticks are not followed.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(frameMsg); ok {
			continue
		}
		var next tea.Cmd
		m, next = update(t, m, msg)
		queue = append(queue, collect(next)...)
	}
	return m
}

func TestFullCycle(t *testing.T) {
	m, h := newTestModel(t, &fakeSource{polygons: testPolygons(), events: testEvents()})

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, phaseBoundaries, m.phase)
	assert.Equal(t, 160, m.rc.Width)
	assert.Equal(t, 88, m.rc.Height)

	m = settle(t, m, cmd)
	assert.Equal(t, phaseIdle, m.phase)
	assert.Equal(t, 1, h.src.boundCalls)
	assert.Equal(t, 1, h.src.quakeCalls)

	counts := m.surface.Counts()
	assert.Equal(t, 2, counts.Countries)
	assert.Equal(t, 2, counts.Earthquakes)
	assert.Equal(t, 9, counts.Legend)

	// oldest first in draw order
	qs := m.surface.Earthquakes()
	assert.Equal(t, "a", qs[0].Event.ID)
	assert.Equal(t, "b", qs[1].Event.ID)

	assert.Equal(t, "2 earthquakes (1 without location)", m.status)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CyclesStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CyclesCompleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.EarthquakesPlotted))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.EarthquakesSkipped))

	// table lists newest first
	rows := m.tbl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "far east", rows[0][3])
	assert.Equal(t, "null island", rows[1][3])
}

func TestSupersededCycleIsDiscarded(t *testing.T) {
	m, h := newTestModel(t, &fakeSource{polygons: testPolygons(), events: testEvents()})

	m, first := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	firstCycle := m.cycle
	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotEqual(t, firstCycle, m.cycle)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CyclesSuperseded))

	// the first cycle's fetch sees its context cancelled and its result is
	// ignored
	msgs := collect(first)
	require.Len(t, msgs, 1)
	errMsg, ok := msgs[0].(cycleErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.err, context.Canceled)

	m, cmd := update(t, m, errMsg)
	assert.Nil(t, cmd)
	assert.Equal(t, phaseBoundaries, m.phase)
	assert.Equal(t, 0.0, testutil.ToFloat64(h.metrics.CyclesFailed.WithLabelValues(source.ResourceBoundaries)))

	// a late success from the old cycle is dropped too
	m, cmd = update(t, m, boundariesMsg{cycle: firstCycle, polygons: testPolygons()})
	assert.Nil(t, cmd)
	assert.Zero(t, m.surface.Counts().Countries)

	m = settle(t, m, second)
	assert.Equal(t, 2, m.surface.Counts().Earthquakes)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CyclesCompleted))
}

func TestBoundariesFailureAbortsCycle(t *testing.T) {
	src := &fakeSource{boundErr: errors.New("boom")}
	m, h := newTestModel(t, src)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = settle(t, m, cmd)

	assert.Equal(t, 0, src.quakeCalls)
	assert.Equal(t, phaseIdle, m.phase)
	assert.Equal(t, "error: boom", m.status)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CyclesFailed.WithLabelValues(source.ResourceBoundaries)))
	assert.Zero(t, testutil.ToFloat64(h.metrics.CyclesCompleted))
	assert.Equal(t, 0, m.surface.Counts().Earthquakes)
}

func TestEarthquakeFailureKeepsCountries(t *testing.T) {
	src := &fakeSource{polygons: testPolygons(), quakeErr: errors.New("feed down")}
	m, h := newTestModel(t, src)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = settle(t, m, cmd)

	assert.Equal(t, 2, m.surface.Counts().Countries)
	assert.Zero(t, m.surface.Counts().Legend)
	assert.Contains(t, m.status, "feed down")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CyclesFailed.WithLabelValues(source.ResourceEarthquakes)))
}

func TestNoSurface(t *testing.T) {
	src := &fakeSource{polygons: testPolygons()}
	m, h := newTestModel(t, src)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 2})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, src.boundCalls)
	assert.Equal(t, phaseIdle, m.phase)
	assert.True(t, strings.HasPrefix(m.status, "error:"))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CyclesFailed.WithLabelValues(resourceSurface)))
}

func TestReloadReplacesEarthquakes(t *testing.T) {
	src := &fakeSource{polygons: testPolygons(), events: testEvents()}
	m, _ := newTestModel(t, src)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = settle(t, m, cmd)
	require.Equal(t, 2, m.surface.Counts().Earthquakes)

	src.events = testEvents()[:1]
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = settle(t, m, cmd)

	assert.Equal(t, 1, m.surface.Counts().Earthquakes)
	assert.Equal(t, "b", m.surface.Earthquakes()[0].Event.ID)
	assert.Len(t, m.tbl.Rows(), 1)
}

func TestFramesStopWhenSettled(t *testing.T) {
	m, h := newTestModel(t, &fakeSource{polygons: testPolygons(), events: testEvents()})

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = settle(t, m, cmd)

	_, cmd = update(t, m, frameMsg{cycle: m.cycle})
	assert.NotNil(t, cmd, "circles still animating")

	_, cmd = update(t, m, frameMsg{cycle: m.cycle - 1})
	assert.Nil(t, cmd, "frame from an old cycle")

	h.clock.Advance(5 * time.Second)
	_, cmd = update(t, m, frameMsg{cycle: m.cycle})
	assert.Nil(t, cmd)
}

func TestViewShowsMapAndLegend(t *testing.T) {
	m, h := newTestModel(t, &fakeSource{polygons: testPolygons(), events: testEvents()})

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = settle(t, m, cmd)
	h.clock.Advance(5 * time.Second)

	out := m.View()
	assert.Contains(t, out, "quakemap")
	assert.Contains(t, out, "M-1")
	assert.Contains(t, out, "M9")
	assert.Contains(t, out, "2 earthquakes")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.True(t, m.showEvents)
	assert.Contains(t, m.View(), "null island")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showEvents)
}

func TestHoverFindsEarthquake(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{polygons: testPolygons(), events: testEvents()})

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = settle(t, m, cmd)

	q := m.surface.Earthquakes()[0]
	m, _ = update(t, m, tea.MouseMsg{X: int(q.X) / 2, Y: int(q.Y)/4 + headerHeight})

	assert.True(t, m.hoverHasGeo)
	assert.InDelta(t, 0, m.hoverLon, 5)
	assert.InDelta(t, 0, m.hoverLat, 5)
	assert.Equal(t, 0, m.hoverQuake)
	assert.Contains(t, m.renderHover(), "null island")

	// header row has no map under it
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 0})
	assert.False(t, m.hoverHasGeo)
	assert.Equal(t, -1, m.hoverQuake)
}

func TestQuitCancelsCycle(t *testing.T) {
	m, _ := newTestModel(t, &fakeSource{polygons: testPolygons()})

	m, first := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	msgs := collect(first)
	require.Len(t, msgs, 1)
	errMsg, ok := msgs[0].(cycleErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.err, context.Canceled)
}

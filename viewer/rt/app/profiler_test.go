package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestProfiler() (*Profiler, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := NewProfiler()
	p.now = clock.Now
	return p, clock
}

func TestProfiler_Scopes(t *testing.T) {
	p, clock := newTestProfiler()

	p.BeginScope("update")
	clock.Advance(2 * time.Millisecond)
	p.EndScope("update")

	p.BeginScope("render")
	clock.Advance(5 * time.Millisecond)
	p.EndScope("render")

	p.BeginScope("update")
	p.EndScope("update")

	assert.Equal(t, []string{"update", "render"}, p.Order)
	assert.Equal(t, time.Duration(0), p.Scopes["update"])
	assert.Equal(t, 5*time.Millisecond, p.Scopes["render"])

	p.EndScope("never-started")
	_, ok := p.Scopes["never-started"]
	assert.False(t, ok)

	p.Reset()
	assert.Zero(t, p.Scopes["render"])
	assert.Len(t, p.Order, 2)
}

func TestProfiler_Frame(t *testing.T) {
	p, clock := newTestProfiler()

	require.False(t, p.Frame(), "first frame only starts the window")
	for i := 0; i < 99; i++ {
		clock.Advance(10 * time.Millisecond)
		assert.False(t, p.Frame())
	}
	clock.Advance(10 * time.Millisecond)
	require.True(t, p.Frame())
	assert.InDelta(t, 100.0, p.FPS, 0.01)

	clock.Advance(time.Second / 2)
	assert.False(t, p.Frame())
}

func TestProfiler_StatsString(t *testing.T) {
	p, clock := newTestProfiler()
	p.BeginScope("render")
	clock.Advance(1500 * time.Microsecond)
	p.EndScope("render")
	p.SetCount("instances", 1000000)
	p.SetCount("indices", 36)

	s := p.GetStatsString()
	assert.Contains(t, s, "render         : 1.50 ms")
	assert.Contains(t, s, "instances      : 1000000")
	assert.Less(t, strings.Index(s, "indices"), strings.Index(s, "instances"))
}

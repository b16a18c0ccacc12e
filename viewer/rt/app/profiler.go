package app

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Profiler records the last CPU duration of named scopes and averages the
// frame rate over one-second windows.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string

	FPS        float64
	frameCount int
	windowTime time.Duration
	lastFrame  time.Time

	now func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
		Order:      make([]string, 0),
		now:        time.Now,
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = p.now()
	if !slices.Contains(p.Order, name) {
		p.Order = append(p.Order, name)
	}
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = p.now().Sub(start)
	}
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

// Frame marks the end of a presented frame. It returns true once per second,
// when FPS has been refreshed.
func (p *Profiler) Frame() bool {
	now := p.now()
	if p.lastFrame.IsZero() {
		p.lastFrame = now
		return false
	}
	p.frameCount++
	p.windowTime += now.Sub(p.lastFrame)
	p.lastFrame = now
	if p.windowTime < time.Second {
		return false
	}
	p.FPS = float64(p.frameCount) / p.windowTime.Seconds()
	p.frameCount = 0
	p.windowTime = 0
	return true
}

func (p *Profiler) Reset() {
	// Keep Order, reset times
	for k := range p.Scopes {
		p.Scopes[k] = 0
	}
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "FPS: %.1f\n", p.FPS)
	sb.WriteString("Timings (CPU):\n")
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		fmt.Fprintf(&sb, "  %-15s: %.2f ms\n", name, ms)
	}

	if len(p.Counts) > 0 {
		sb.WriteString("Stats:\n")
		keys := make([]string, 0, len(p.Counts))
		for k := range p.Counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %-15s: %d\n", k, p.Counts[k])
		}
	}

	return sb.String()
}

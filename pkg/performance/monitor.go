package performance

import (
	"fmt"
	"time"
)

// FrameMonitor tracks how long the UI spends per frame in update and draw.
type FrameMonitor struct {
	update *RollingAverage
	draw   *RollingAverage
	budget time.Duration

	frames     int
	overBudget int
	startTime  time.Time
}

// Report is a point-in-time summary of a FrameMonitor.
type Report struct {
	AvgUpdateMs float64
	AvgDrawMs   float64
	MaxFrameMs  float64
	Frames      int
	OverBudget  int
	Uptime      time.Duration
}

// NewFrameMonitor averages over windowSize frames. A frame whose update
// plus draw exceeds budget counts as over budget.
func NewFrameMonitor(windowSize int, budget time.Duration) *FrameMonitor {
	return &FrameMonitor{
		update:    NewRollingAverage(windowSize),
		draw:      NewRollingAverage(windowSize),
		budget:    budget,
		startTime: time.Now(),
	}
}

// RecordFrame adds one frame's timings.
func (m *FrameMonitor) RecordFrame(update, draw time.Duration) {
	m.update.Add(update)
	m.draw.Add(draw)
	m.frames++
	if update+draw > m.budget {
		m.overBudget++
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// Report summarizes the current window.
func (m *FrameMonitor) Report() Report {
	return Report{
		AvgUpdateMs: ms(m.update.Average()),
		AvgDrawMs:   ms(m.draw.Average()),
		MaxFrameMs:  ms(m.update.Max() + m.draw.Max()),
		Frames:      m.frames,
		OverBudget:  m.overBudget,
		Uptime:      time.Since(m.startTime),
	}
}

// Healthy is true while fewer than 1% of frames ran over budget.
func (r Report) Healthy() bool {
	if r.Frames == 0 {
		return true
	}
	return float64(r.OverBudget)/float64(r.Frames) < 0.01
}

func (r Report) String() string {
	return fmt.Sprintf("frames=%d update=%.2fms draw=%.2fms max=%.2fms over=%d healthy=%t",
		r.Frames, r.AvgUpdateMs, r.AvgDrawMs, r.MaxFrameMs, r.OverBudget, r.Healthy())
}

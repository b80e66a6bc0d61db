package pipeline

import (
	"slices"
	"sync"
	"time"
)

type renderSample struct {
	at       time.Time
	duration time.Duration
	bytes    int
	failed   bool
}

// StatsSnapshot aggregates the renders inside the stats window.
type StatsSnapshot struct {
	Window    string  `json:"window"`
	Completed int     `json:"completed"`
	Failed    int     `json:"failed"`
	MinMs     float64 `json:"min_ms"`
	MaxMs     float64 `json:"max_ms"`
	AvgMs     float64 `json:"avg_ms"`
	P50Ms     float64 `json:"p50_ms"`
	P95Ms     float64 `json:"p95_ms"`
	AvgBytes  float64 `json:"avg_bytes"`
}

// Stats keeps render outcomes for a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []renderSample
	window  time.Duration
}

func NewStats(window time.Duration) *Stats {
	if window <= 0 {
		window = time.Hour
	}
	return &Stats{window: window}
}

// Record adds one finished render. Failed renders count toward Failed only.
func (s *Stats) Record(d time.Duration, bytes int, failed bool) {
	if s == nil {
		return
	}
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	s.samples = append(s.samples, renderSample{at: now, duration: max(d, 0), bytes: bytes, failed: failed})
}

func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)

	snap := StatsSnapshot{Window: s.window.String()}
	var ms []float64
	var totalMs float64
	var totalBytes int
	for _, sm := range s.samples {
		if sm.failed {
			snap.Failed++
			continue
		}
		v := float64(sm.duration) / float64(time.Millisecond)
		ms = append(ms, v)
		totalMs += v
		totalBytes += sm.bytes
	}
	if len(ms) == 0 {
		return snap
	}
	slices.Sort(ms)

	snap.Completed = len(ms)
	snap.MinMs = ms[0]
	snap.MaxMs = ms[len(ms)-1]
	snap.AvgMs = totalMs / float64(len(ms))
	snap.P50Ms = percentile(ms, 50)
	snap.P95Ms = percentile(ms, 95)
	snap.AvgBytes = float64(totalBytes) / float64(len(ms))
	return snap
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.samples = slices.DeleteFunc(s.samples, func(sm renderSample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return sorted[0]
	case pct >= 100:
		return sorted[len(sorted)-1]
	}
	rank := float64(len(sorted)-1) * pct / 100
	lo := int(rank)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

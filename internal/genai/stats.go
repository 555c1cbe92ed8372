package genai

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of call latency samples for
// one call kind.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
}

// CallStats tracks recent hosted-model call latencies within a rolling
// window, keyed by call kind ("transcribe", "extract").
type CallStats struct {
	mu     sync.Mutex
	byKind map[string][]sample
	maxAge time.Duration
}

func NewCallStats(maxAge time.Duration) *CallStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &CallStats{
		byKind: make(map[string][]sample),
		maxAge: maxAge,
	}
}

func (s *CallStats) Record(kind string, d time.Duration) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKind[kind] = append(pruneSamples(s.byKind[kind], now, s.maxAge), sample{
		timestamp:  now,
		durationMs: ms,
	})
}

// Snapshot aggregates samples per kind, dropping expired ones.
func (s *CallStats) Snapshot() map[string]StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]StatsSnapshot, len(s.byKind))
	for kind, samples := range s.byKind {
		samples = pruneSamples(samples, now, s.maxAge)
		s.byKind[kind] = samples
		if len(samples) == 0 {
			continue
		}

		values := make([]int64, 0, len(samples))
		var sum int64
		for _, sm := range samples {
			values = append(values, sm.durationMs)
			sum += sm.durationMs
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		out[kind] = StatsSnapshot{
			Count: len(values),
			MinMs: values[0],
			MaxMs: values[len(values)-1],
			AvgMs: float64(sum) / float64(len(values)),
			P50Ms: percentile(values, 50),
			P95Ms: percentile(values, 95),
		}
	}
	return out
}

func pruneSamples(samples []sample, now time.Time, maxAge time.Duration) []sample {
	cutoff := now.Add(-maxAge)
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	return samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}

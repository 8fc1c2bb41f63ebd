package router

import (
	"sync"
	"time"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
)

type modelPerformance struct {
	totalTime float64
	count     int
	avgTime   float64
}

// PerformanceTracker keeps a running mean latency per model for the process
// lifetime. Only completed successful calls feed the average; writes are
// serialized and reads may be slightly stale.
type PerformanceTracker struct {
	mu   sync.RWMutex
	perf map[string]*modelPerformance
}

func NewPerformanceTracker() *PerformanceTracker {
	return &PerformanceTracker{
		perf: make(map[string]*modelPerformance),
	}
}

// Update records one completed call's latency for the given model.
func (t *PerformanceTracker) Update(modelID string, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.perf[modelID]
	if !ok {
		p = &modelPerformance{}
		t.perf[modelID] = p
	}
	p.totalTime += elapsed.Seconds()
	p.count++
	p.avgTime = p.totalTime / float64(p.count)
}

// AverageLatency reports the running mean for a model, zero if never seen.
func (t *PerformanceTracker) AverageLatency(modelID string) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if p, ok := t.perf[modelID]; ok {
		return p.avgTime
	}
	return 0
}

// Factors normalizes each tier's average latency against the best observed
// average (currentAvg / bestAvg). Tiers with no completed calls report 1.0.
func (t *PerformanceTracker) Factors(tiers config.TierModels) map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	best := 0.0
	for _, p := range t.perf {
		if p.count == 0 {
			continue
		}
		if best == 0 || p.avgTime < best {
			best = p.avgTime
		}
	}

	factors := map[string]float64{
		TierLow:      1.0,
		TierMid:      1.0,
		TierHigh:     1.0,
		TierSuperior: 1.0,
	}
	if best == 0 {
		return factors
	}

	for tier, model := range map[string]string{
		TierLow:      tiers.Low,
		TierMid:      tiers.Mid,
		TierHigh:     tiers.High,
		TierSuperior: tiers.Superior,
	} {
		if p, ok := t.perf[model]; ok && p.count > 0 {
			factors[tier] = p.avgTime / best
		}
	}

	return factors
}

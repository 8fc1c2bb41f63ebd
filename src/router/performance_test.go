package router

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
)

func TestPerformanceTracker_RunningAverage(t *testing.T) {
	tracker := NewPerformanceTracker()

	tracker.Update("model-a", 2*time.Second)
	tracker.Update("model-a", 4*time.Second)

	assert.InDelta(t, 3.0, tracker.AverageLatency("model-a"), 0.001)
	assert.Equal(t, 0.0, tracker.AverageLatency("never-called"))
}

func TestPerformanceTracker_FactorsDefaultToOne(t *testing.T) {
	tracker := NewPerformanceTracker()
	tiers := testRouterConfig().Tiers

	factors := tracker.Factors(tiers)

	assert.InDelta(t, 1.0, factors[TierLow], 0.001)
	assert.InDelta(t, 1.0, factors[TierMid], 0.001)
	assert.InDelta(t, 1.0, factors[TierHigh], 0.001)
}

func TestPerformanceTracker_FactorsNormalizedAgainstBest(t *testing.T) {
	tracker := NewPerformanceTracker()
	tiers := config.TierModels{
		Low:      "fast-model",
		Mid:      "slow-model",
		High:     "untracked-model",
		Superior: "untracked-model",
	}

	tracker.Update("fast-model", 1*time.Second)
	tracker.Update("slow-model", 2*time.Second)

	factors := tracker.Factors(tiers)

	assert.InDelta(t, 1.0, factors[TierLow], 0.001)
	assert.InDelta(t, 2.0, factors[TierMid], 0.001)
	assert.InDelta(t, 1.0, factors[TierHigh], 0.001)
}

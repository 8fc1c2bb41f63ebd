package router

import (
	"strings"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
	"www.github.com/Wanderer0074348/AgentRouter/src/models"
)

// Model tiers, cheapest to most capable.
const (
	TierLow      = "low"
	TierMid      = "mid"
	TierHigh     = "high"
	TierSuperior = "superior"
)

const maxTokenCeiling = 8192

// TierSelector maps routing signals to a model tier and base generation
// parameters. Thresholds are configuration defaults, not invariants.
type TierSelector struct {
	cfg *config.RouterConfig
}

func NewTierSelector(cfg *config.RouterConfig) *TierSelector {
	return &TierSelector{cfg: cfg}
}

// Select applies the tier policy: complexity at or above the threshold, a
// long context, or a regressed high-tier latency factor escalates to the
// high tier; an unremarkable query with healthy mid-tier latency lands mid;
// everything else falls back to low. A casual task always takes the greeting
// fast path regardless of the other signals.
func (s *TierSelector) Select(complexity float64, contextLength int, taskType string, factors map[string]float64) *models.RouteDecision {
	if taskType == TaskCasual {
		return s.casualConfig()
	}

	// Nothing to weigh: an empty query with no context never escalates.
	if complexity == 0 && contextLength == 0 {
		return s.lowTierConfig(taskType)
	}

	highFactor := factorOrDefault(factors, TierHigh)
	midFactor := factorOrDefault(factors, TierMid)

	if complexity >= s.cfg.Threshold ||
		contextLength >= s.cfg.ContextLimit ||
		highFactor <= 0.8 {
		return s.highTierConfig(taskType)
	}
	if complexity < s.cfg.Threshold &&
		contextLength < s.cfg.ContextLimit &&
		midFactor <= 1.2 {
		return s.midTierConfig(taskType)
	}
	return s.lowTierConfig(taskType)
}

func factorOrDefault(factors map[string]float64, tier string) float64 {
	if f, ok := factors[tier]; ok {
		return f
	}
	return 1.0
}

func (s *TierSelector) casualConfig() *models.RouteDecision {
	return &models.RouteDecision{
		Model:              s.cfg.Tiers.Low,
		MaxTokens:          50,
		Temperature:        0.7,
		ResponseStrategy:   "casual_conversation",
		RoutingExplanation: "Simple greeting detected, using low-tier model for quick response.",
	}
}

func (s *TierSelector) lowTierConfig(taskType string) *models.RouteDecision {
	d := &models.RouteDecision{
		Model:       s.cfg.Tiers.Low,
		MaxTokens:   256,
		Temperature: 0.5,
	}
	if taskType == TaskCasual {
		d.Temperature = 0.7
	}
	return d
}

func (s *TierSelector) midTierConfig(taskType string) *models.RouteDecision {
	d := &models.RouteDecision{
		Model:       s.cfg.Tiers.Mid,
		MaxTokens:   512,
		Temperature: 0.7,
	}
	if taskType == TaskAnalysis || taskType == TaskCreative {
		d.MaxTokens = 768
	}
	return d
}

func (s *TierSelector) highTierConfig(taskType string) *models.RouteDecision {
	d := &models.RouteDecision{
		Model:       s.cfg.Tiers.High,
		MaxTokens:   1024,
		Temperature: 0.9,
	}
	if taskType == TaskCoding || taskType == TaskAnalysis {
		d.Temperature = 0.7
	}
	return d
}

// SuperiorTierConfig is the escalation hatch for callers that explicitly
// demand the strongest model, e.g. an operator override.
func (s *TierSelector) SuperiorTierConfig(taskType string) *models.RouteDecision {
	d := &models.RouteDecision{
		Model:       s.cfg.Tiers.Superior,
		MaxTokens:   maxTokenCeiling,
		Temperature: 0.7,
	}
	if taskType == TaskCoding || taskType == TaskAnalysis {
		d.Temperature = 0.5
	}
	return d
}

// AdjustForHistory tunes generation parameters from recent conversation
// shape. It runs exactly once per Route call, so the multipliers never
// compound across requests.
func AdjustForHistory(decision *models.RouteDecision, history []models.ConversationTurn) {
	if len(history) > 5 {
		decision.Temperature *= 1.1
		if decision.Temperature > 1.0 {
			decision.Temperature = 1.0
		}
	}

	recent := history
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	for _, turn := range recent {
		if strings.HasPrefix(strings.ToLower(turn.Content), "please explain") {
			decision.MaxTokens = int(float64(decision.MaxTokens) * 1.2)
			if decision.MaxTokens > maxTokenCeiling {
				decision.MaxTokens = maxTokenCeiling
			}
			break
		}
	}

	if len(history) >= 4 {
		allShort := true
		for _, turn := range history[len(history)-4:] {
			if len(strings.Fields(turn.Content)) >= 10 {
				allShort = false
				break
			}
		}
		if allShort {
			decision.MaxTokens = int(float64(decision.MaxTokens) * 0.8)
			if decision.MaxTokens < 128 {
				decision.MaxTokens = 128
			}
		}
	}
}

// ContextLength sums prior message sizes in characters.
func ContextLength(history []models.ConversationTurn) int {
	total := 0
	for _, turn := range history {
		total += len(turn.Content)
	}
	return total
}

package router

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
	"www.github.com/Wanderer0074348/AgentRouter/src/models"
	"www.github.com/Wanderer0074348/AgentRouter/src/ratelimit"
	"www.github.com/Wanderer0074348/AgentRouter/src/retrieval"
	"www.github.com/Wanderer0074348/AgentRouter/src/tools"
	"www.github.com/Wanderer0074348/AgentRouter/src/utils"
)

const throttledMessage = "I'm handling a lot of requests right now. Please try again in a moment."

// Router ties classification, tier selection, rate limiting and dispatch
// together. Route is pure; Process is the only method with side effects.
type Router struct {
	cfg      *config.RouterConfig
	selector *TierSelector
	perf     *PerformanceTracker
	limiter  *ratelimit.Limiter
	chat     models.ChatModel
	blender  *retrieval.Blender
	registry *tools.Registry
}

func New(
	cfg *config.RouterConfig,
	limiter *ratelimit.Limiter,
	chat models.ChatModel,
	blender *retrieval.Blender,
	registry *tools.Registry,
) *Router {
	return &Router{
		cfg:      cfg,
		selector: NewTierSelector(cfg),
		perf:     NewPerformanceTracker(),
		limiter:  limiter,
		chat:     chat,
		blender:  blender,
		registry: registry,
	}
}

// Performance exposes the tracker for wiring and tests.
func (r *Router) Performance() *PerformanceTracker {
	return r.perf
}

// Route computes the full routing decision for a query. No I/O, no side
// effects; identical inputs always produce identical decisions given the
// same performance snapshot.
func (r *Router) Route(query string, history []models.ConversationTurn) *models.RouteDecision {
	complexity := AssessComplexity(query)
	contextLength := ContextLength(history)
	taskType := IdentifyTaskType(query)
	questionType := ClassifyQuestion(query)
	factors := r.perf.Factors(r.cfg.Tiers)

	decision := r.selector.Select(complexity, contextLength, taskType, factors)
	decision.TaskType = taskType
	decision.QuestionType = questionType
	decision.TaskComplexity = complexity

	if decision.ResponseStrategy == "" {
		decision.ResponseStrategy = ResponseStrategy(questionType, taskType)
	}
	if decision.RoutingExplanation == "" {
		decision.RoutingExplanation = fmt.Sprintf(
			"Selected %s based on complexity (%.2f), context length (%d chars), and task type (%s). Threshold: %.2f",
			decision.Model, complexity, contextLength, taskType, r.cfg.Threshold,
		)
	}

	AdjustForHistory(decision, history)

	log.Printf("Routed query (task=%s question=%s complexity=%.2f): %s",
		taskType, questionType, complexity, decision.RoutingExplanation)

	return decision
}

// Process dispatches one query under a rate-limit permit. The permit is
// released on every exit path; downstream failures come back as structured
// results and never propagate.
func (r *Router) Process(ctx context.Context, query string, history []models.ConversationTurn) *models.ProcessResult {
	decision := r.Route(query, history)

	estimatedInput := utils.EstimateTokenCount(query) + ContextLength(history)/4
	estimatedOutput := decision.MaxTokens

	verdict := r.limiter.Acquire(estimatedInput, estimatedOutput)
	if !verdict.Allowed {
		log.Printf("Rate limited: %s", verdict.Reason)
		return &models.ProcessResult{
			Content:        throttledMessage,
			ModelUsed:      "rate_limiter",
			TaskType:       decision.TaskType,
			TaskComplexity: decision.TaskComplexity,
			Throttled:      true,
		}
	}

	// Actuals stay zero unless the call completes, so failures hand their
	// whole token budget back to the window.
	actualInput, actualOutput := 0, 0
	defer func() {
		r.limiter.Release(estimatedInput, estimatedOutput, actualInput, actualOutput)
	}()

	queryLower := strings.ToLower(query)
	if strings.Contains(queryLower, "use tool") || strings.Contains(queryLower, "access your tools") {
		content := "I understand you want to use tools. Here's what's available:\n\n" + r.registry.Describe()
		actualInput = estimatedInput
		actualOutput = utils.EstimateTokenCount(content)
		return &models.ProcessResult{
			Content:        content,
			ModelUsed:      decision.Model,
			TaskType:       "tool_use",
			TaskComplexity: decision.TaskComplexity,
		}
	}

	if decision.TaskType == TaskCurrentInfo && r.blender != nil {
		callCtx, cancel := context.WithTimeout(ctx, r.cfg.ResponseTimeout)
		defer cancel()

		start := time.Now()
		content := r.blender.HybridQuery(callCtx, query, decision.TaskComplexity)
		actualInput = estimatedInput
		actualOutput = utils.EstimateTokenCount(content)
		return &models.ProcessResult{
			Content:        content,
			ModelUsed:      "hybrid_retrieval",
			TaskType:       decision.TaskType,
			TaskComplexity: decision.TaskComplexity,
			ProcessingTime: time.Since(start),
		}
	}

	messages := make([]models.ConversationTurn, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, models.ConversationTurn{Role: models.RoleUser, Content: query})

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.ResponseTimeout)
	defer cancel()

	start := time.Now()
	content, err := r.chat.Invoke(callCtx, messages, decision.Model, decision.MaxTokens, decision.Temperature)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("Chat model %s failed after %s (task=%s): %v",
			decision.Model, elapsed, decision.TaskType, err)
		return &models.ProcessResult{
			ModelUsed:      decision.Model,
			TaskType:       decision.TaskType,
			TaskComplexity: decision.TaskComplexity,
			ProcessingTime: elapsed,
			Err:            err.Error(),
		}
	}

	// Failed calls stay out of the latency averages.
	r.perf.Update(decision.Model, elapsed)
	actualInput = estimatedInput
	actualOutput = utils.EstimateTokenCount(content)

	return &models.ProcessResult{
		Content:        content,
		ModelUsed:      decision.Model,
		TaskType:       decision.TaskType,
		TaskComplexity: decision.TaskComplexity,
		ProcessingTime: elapsed,
	}
}

package retrieval

import (
	"context"
	"log"
	"strings"
	"time"

	"www.github.com/Wanderer0074348/AgentRouter/src/models"
)

// minUsefulAnswer is the usefulness floor for the memory path; anything
// shorter escalates to live search as well.
const minUsefulAnswer = 50

// Blender answers knowledge-seeking queries by combining a vector-memory
// lookup with a live web-search fallback. Each leg is individually
// fault-tolerant: one failing never discards what the other produced.
type Blender struct {
	memory models.MemoryStore
	search models.SearchClient
	cache  models.AnswerCache
}

// NewBlender builds a blender. Any collaborator may be nil, in which case
// that path is simply skipped.
func NewBlender(memory models.MemoryStore, search models.SearchClient, cache models.AnswerCache) *Blender {
	return &Blender{
		memory: memory,
		search: search,
		cache:  cache,
	}
}

// HybridQuery tries the memory path first and settles for it alone when the
// answer looks substantial. Short or missing memory answers also trigger the
// live search, and both results are returned labeled by source. A total
// failure yields a labeled error string, never an error.
func (b *Blender) HybridQuery(ctx context.Context, question string, complexity float64) string {
	if b.cache != nil {
		if cached, err := b.cache.Get(ctx, question); err == nil && cached != nil {
			return cached.Answer
		}
	}

	var memoryResult string
	var memoryOK bool
	if b.memory != nil {
		result, err := b.memory.Query(ctx, question)
		if err != nil {
			log.Printf("Memory query failed for %q: %v", question, err)
		} else {
			memoryResult = strings.TrimSpace(result)
			memoryOK = memoryResult != ""
		}
	}

	if memoryOK && len(memoryResult) >= minUsefulAnswer {
		answer := "Memory: " + memoryResult
		b.store(ctx, question, answer, "memory")
		return answer
	}

	var onlineResult string
	var onlineOK bool
	if b.search != nil {
		result, err := b.search.Search(ctx, question, complexity)
		if err != nil {
			log.Printf("Online search failed for %q: %v", question, err)
		} else {
			onlineResult = strings.TrimSpace(result)
			onlineOK = onlineResult != ""
		}
	}

	parts := make([]string, 0, 2)
	if memoryOK {
		parts = append(parts, "Memory: "+memoryResult)
	}
	if onlineOK {
		parts = append(parts, "Online: "+onlineResult)
	}

	if len(parts) == 0 {
		return "Error: no answer available from memory or online search."
	}

	answer := strings.Join(parts, "\n\n")
	b.store(ctx, question, answer, "hybrid")
	return answer
}

// store caches best-effort; the cache is an optimization, never a gate.
func (b *Blender) store(ctx context.Context, question, answer, source string) {
	if b.cache == nil {
		return
	}
	entry := &models.CachedAnswer{
		Answer:   answer,
		Source:   source,
		CachedAt: time.Now(),
	}
	if err := b.cache.Set(ctx, question, entry); err != nil {
		log.Printf("Failed to cache answer for %q: %v", question, err)
	}
}

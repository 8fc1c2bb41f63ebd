package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"www.github.com/Wanderer0074348/AgentRouter/src/history"
	"www.github.com/Wanderer0074348/AgentRouter/src/models"
	"www.github.com/Wanderer0074348/AgentRouter/src/router"
)

type QueryHandler struct {
	router  *router.Router
	history models.HistoryStore
	memory  models.MemoryStore
}

func NewQueryHandler(r *router.Router, historyStore models.HistoryStore, memory models.MemoryStore) *QueryHandler {
	return &QueryHandler{
		router:  r,
		history: historyStore,
		memory:  memory,
	}
}

// HandleQuery runs one query through the routing pipeline: load history,
// route and process, persist the exchange, return the answer with routing
// metadata.
func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query field is missing or empty"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "request body is not valid JSON",
			"details": err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query field is missing or empty"})
		return
	}

	ctx := c.Request.Context()

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = history.NewConversationID()
	}

	turns, err := h.history.Get(ctx, conversationID)
	if err != nil {
		log.Printf("Failed to load history for %s, continuing without it: %v", conversationID, err)
		turns = []models.ConversationTurn{}
	}

	result := h.router.Process(ctx, req.Query, turns)

	if result.Err != "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Sorry, something went wrong while answering your query. Please try again.",
			"details": result.Err,
		})
		return
	}

	// Only completed exchanges go into history; throttled requests never
	// reached a model.
	if !result.Throttled {
		turns = append(turns,
			models.ConversationTurn{Role: models.RoleUser, Content: req.Query},
			models.ConversationTurn{Role: models.RoleAssistant, Content: result.Content},
		)
		if err := h.history.Set(ctx, conversationID, turns); err != nil {
			log.Printf("Failed to save history for %s: %v", conversationID, err)
		}
	}

	c.JSON(http.StatusOK, models.QueryResponse{
		Response: result.Content,
		Metadata: models.QueryMetadata{
			ModelUsed:        result.ModelUsed,
			TaskType:         result.TaskType,
			TaskComplexity:   result.TaskComplexity,
			ProcessingTimeMs: result.ProcessingTime.Milliseconds(),
			ConversationID:   conversationID,
		},
	})
}

// HandleAddMemory stores a document in the long-term vector memory.
func (h *QueryHandler) HandleAddMemory(c *gin.Context) {
	if h.memory == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "memory store is not configured"})
		return
	}

	var req models.AddMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text field is missing or empty"})
		return
	}

	if err := h.memory.AddDocument(c.Request.Context(), req.Text, req.Metadata); err != nil {
		log.Printf("Failed to add memory document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to store the document.",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "stored"})
}

func (h *QueryHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

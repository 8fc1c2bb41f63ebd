package tools

import (
	"context"
	"fmt"
	"strings"

	"www.github.com/Wanderer0074348/AgentRouter/src/models"
	"www.github.com/Wanderer0074348/AgentRouter/src/retrieval"
)

// Tool is one named capability the assistant can invoke on request.
type Tool struct {
	Name        string
	Description string
	Execute     func(ctx context.Context, args map[string]string) (string, error)
}

// Registry holds the tools registered at startup. Registration is explicit,
// one call per tool, in place of any runtime discovery.
type Registry struct {
	order []string
	tools map[string]*Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Tool),
	}
}

func (r *Registry) Register(t *Tool) {
	if _, exists := r.tools[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) Len() int {
	return len(r.tools)
}

// Describe lists every registered tool in registration order, formatted for
// the tool-listing fast path.
func (r *Registry) Describe() string {
	var sb strings.Builder
	sb.WriteString("Available tools:\n\n")
	for _, name := range r.order {
		fmt.Fprintf(&sb, "- %s: %s\n", name, r.tools[name].Description)
	}
	sb.WriteString("\nTo use a tool, format your request as: [TOOL_NAME] Your request here")
	return sb.String()
}

// NewKnowledgeTool wraps the retrieval blender as an invocable tool.
func NewKnowledgeTool(blender *retrieval.Blender) *Tool {
	return &Tool{
		Name:        "knowledge_tool",
		Description: "Answers questions by combining stored memory with live online search.",
		Execute: func(ctx context.Context, args map[string]string) (string, error) {
			question := args["question"]
			if question == "" {
				return "", fmt.Errorf("no question provided")
			}
			return blender.HybridQuery(ctx, question, 0.5), nil
		},
	}
}

// NewMemoryTool exposes the vector store directly for lookups and saves.
func NewMemoryTool(memory models.MemoryStore) *Tool {
	return &Tool{
		Name:        "memory_tool",
		Description: "Searches and stores documents in the long-term vector memory.",
		Execute: func(ctx context.Context, args map[string]string) (string, error) {
			if text, ok := args["save"]; ok {
				if err := memory.AddDocument(ctx, text, nil); err != nil {
					return "", fmt.Errorf("failed to save memory: %w", err)
				}
				return "Saved to memory.", nil
			}
			question := args["question"]
			if question == "" {
				return "", fmt.Errorf("no question provided")
			}
			return memory.Query(ctx, question)
		},
	}
}

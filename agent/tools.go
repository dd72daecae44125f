package agent

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// ToolHandler executes one tool call. args is the raw JSON argument payload
// from the service; the returned string is submitted back as the tool output.
type ToolHandler func(ctx context.Context, args string) (string, error)

type Tool struct {
	Definition openai.FunctionDefinition
	Handler    ToolHandler
}

// ToolRegistry maps function names to their definitions and handlers.
// Callers build it once per session; it is not mutated during a run.
type ToolRegistry struct {
	tools map[string]Tool
	names []string
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

func (r *ToolRegistry) Register(definition openai.FunctionDefinition, handler ToolHandler) {
	if _, exists := r.tools[definition.Name]; !exists {
		r.names = append(r.names, definition.Name)
	}
	r.tools[definition.Name] = Tool{Definition: definition, Handler: handler}
}

func (r *ToolRegistry) Lookup(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

func (r *ToolRegistry) Len() int {
	return len(r.tools)
}

// AssistantTools returns the definitions in registration order for
// assistant creation requests
func (r *ToolRegistry) AssistantTools() []openai.AssistantTool {
	var tools []openai.AssistantTool
	for _, name := range r.names {
		tool := r.tools[name]
		definition := tool.Definition
		tools = append(tools, openai.AssistantTool{
			Type:     openai.AssistantToolTypeFunction,
			Function: &definition,
		})
	}
	return tools
}

// ChatTools returns the definitions in registration order for chat
// completion requests
func (r *ToolRegistry) ChatTools() []openai.Tool {
	var tools []openai.Tool
	for _, name := range r.names {
		tool := r.tools[name]
		definition := tool.Definition
		tools = append(tools, openai.Tool{
			Type:     openai.ToolTypeFunction,
			Function: &definition,
		})
	}
	return tools
}

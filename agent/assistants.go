package agent

import (
	"context"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// CreateAssistant creates a server-side assistant exposing the registry's
// function tools. withCodeInterpreter additionally enables the hosted code
// interpreter tool.
func CreateAssistant(
	ctx context.Context,
	name string,
	registry *ToolRegistry,
	withCodeInterpreter bool,
	a *Agent,
) (openai.Assistant, error) {
	tools := registry.AssistantTools()
	if withCodeInterpreter {
		tools = append(tools, openai.AssistantTool{
			Type: openai.AssistantToolTypeCodeInterpreter,
		})
	}

	instructions := a.Config.BaseInstructions
	assistant, err := a.AIClient.CreateAssistant(ctx, openai.AssistantRequest{
		Model:        a.Config.DefaultModel,
		Name:         &name,
		Instructions: &instructions,
		Tools:        tools,
	})
	if err != nil {
		return openai.Assistant{}, err
	}

	log.Println("Created assistant: ", assistant.ID)
	return assistant, nil
}

func DeleteAssistant(ctx context.Context, assistantID string, a *Agent) error {
	_, err := a.AIClient.DeleteAssistant(ctx, assistantID)
	if err != nil {
		log.Println("unable to delete assistant: ", err)
		return err
	}
	log.Println("Deleted assistant: ", assistantID)
	return nil
}

package agent

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// openai.Client interface wrapping for modularity and testing
// implements methods used in this project
type AgentClient interface {
	// see openai.Client.CreateThread
	CreateThread(
		ctx context.Context,
		request openai.ThreadRequest,
	) (openai.Thread, error)

	// see openai.Client.CreateMessage
	CreateMessage(
		ctx context.Context,
		threadID string,
		request openai.MessageRequest,
	) (openai.Message, error)
	ListMessage(
		ctx context.Context,
		threadID string,
		limit *int,
		order *string,
		after *string,
		before *string,
	) (openai.MessagesList, error)

	// run lifecycle, see openai.Client.CreateRun
	CreateRun(
		ctx context.Context,
		threadID string,
		request openai.RunRequest,
	) (openai.Run, error)
	RetrieveRun(
		ctx context.Context,
		threadID string,
		runID string,
	) (openai.Run, error)
	SubmitToolOutputs(
		ctx context.Context,
		threadID string,
		runID string,
		request openai.SubmitToolOutputsRequest,
	) (openai.Run, error)
	CancelRun(
		ctx context.Context,
		threadID string,
		runID string,
	) (openai.Run, error)

	CreateAssistant(
		ctx context.Context,
		request openai.AssistantRequest,
	) (openai.Assistant, error)
	DeleteAssistant(
		ctx context.Context,
		assistantID string,
	) (openai.AssistantDeleteResponse, error)

	CreateChatCompletion(
		ctx context.Context,
		request openai.ChatCompletionRequest,
	) (openai.ChatCompletionResponse, error)

	CreateImage(
		ctx context.Context,
		request openai.ImageRequest,
	) (openai.ImageResponse, error)
}

package agent

import (
	"context"
	"fmt"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// FOR TESTING
// scripted AgentClient. run results are consumed in order; an exhausted
// script returns an error so a misbehaving caller shows up as a transport
// failure in the test output.
type mockAgentClient struct {
	createResults []runResult
	pollResults   []runResult
	submitResults []runResult

	createCalls      int
	pollCalls        int
	cancelCalls      int
	submittedOutputs [][]openai.ToolOutput

	createdMessages []openai.MessageRequest
	messageList     openai.MessagesList

	chatResponses []openai.ChatCompletionResponse
	chatRequests  []openai.ChatCompletionRequest
}

type runResult struct {
	run openai.Run
	err error
}

func (m *mockAgentClient) CreateThread(
	ctx context.Context,
	request openai.ThreadRequest,
) (openai.Thread, error) {
	return openai.Thread{ID: "thread_1"}, nil
}

func (m *mockAgentClient) CreateMessage(
	ctx context.Context,
	threadID string,
	request openai.MessageRequest,
) (openai.Message, error) {
	m.createdMessages = append(m.createdMessages, request)
	return openai.Message{ID: fmt.Sprintf("msg_%d", len(m.createdMessages))}, nil
}

func (m *mockAgentClient) ListMessage(
	ctx context.Context,
	threadID string,
	limit *int,
	order *string,
	after *string,
	before *string,
) (openai.MessagesList, error) {
	return m.messageList, nil
}

func (m *mockAgentClient) CreateRun(
	ctx context.Context,
	threadID string,
	request openai.RunRequest,
) (openai.Run, error) {
	m.createCalls++
	if len(m.createResults) == 0 {
		return openai.Run{}, fmt.Errorf("unexpected CreateRun call %d", m.createCalls)
	}
	result := m.createResults[0]
	m.createResults = m.createResults[1:]
	return result.run, result.err
}

func (m *mockAgentClient) RetrieveRun(
	ctx context.Context,
	threadID string,
	runID string,
) (openai.Run, error) {
	m.pollCalls++
	if len(m.pollResults) == 0 {
		return openai.Run{}, fmt.Errorf("unexpected RetrieveRun call %d", m.pollCalls)
	}
	result := m.pollResults[0]
	m.pollResults = m.pollResults[1:]
	return result.run, result.err
}

func (m *mockAgentClient) SubmitToolOutputs(
	ctx context.Context,
	threadID string,
	runID string,
	request openai.SubmitToolOutputsRequest,
) (openai.Run, error) {
	m.submittedOutputs = append(m.submittedOutputs, request.ToolOutputs)
	if len(m.submitResults) == 0 {
		return openai.Run{}, fmt.Errorf(
			"unexpected SubmitToolOutputs call %d",
			len(m.submittedOutputs),
		)
	}
	result := m.submitResults[0]
	m.submitResults = m.submitResults[1:]
	return result.run, result.err
}

func (m *mockAgentClient) CancelRun(
	ctx context.Context,
	threadID string,
	runID string,
) (openai.Run, error) {
	m.cancelCalls++
	return openai.Run{ID: runID, Status: openai.RunStatusCancelling}, nil
}

func (m *mockAgentClient) CreateAssistant(
	ctx context.Context,
	request openai.AssistantRequest,
) (openai.Assistant, error) {
	return openai.Assistant{ID: "asst_1"}, nil
}

func (m *mockAgentClient) DeleteAssistant(
	ctx context.Context,
	assistantID string,
) (openai.AssistantDeleteResponse, error) {
	return openai.AssistantDeleteResponse{ID: assistantID, Deleted: true}, nil
}

func (m *mockAgentClient) CreateChatCompletion(
	ctx context.Context,
	request openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	m.chatRequests = append(m.chatRequests, request)
	if len(m.chatResponses) == 0 {
		return openai.ChatCompletionResponse{}, fmt.Errorf(
			"unexpected CreateChatCompletion call %d",
			len(m.chatRequests),
		)
	}
	resp := m.chatResponses[0]
	m.chatResponses = m.chatResponses[1:]
	return resp, nil
}

func (m *mockAgentClient) CreateImage(
	ctx context.Context,
	request openai.ImageRequest,
) (openai.ImageResponse, error) {
	return openai.ImageResponse{
		Data: []openai.ImageResponseDataInner{{URL: "https://example.com/img.png"}},
	}, nil
}

func chatReply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: content,
				},
			},
		},
	}
}

func runWithStatus(id string, status openai.RunStatus) openai.Run {
	return openai.Run{ID: id, Status: status}
}

func rateLimitedRun(id string, message string) openai.Run {
	return openai.Run{
		ID:     id,
		Status: openai.RunStatusFailed,
		LastError: &openai.RunLastError{
			Code:    openai.RunErrorRateLimitExceeded,
			Message: message,
		},
	}
}

func requiresActionRun(id string, toolCalls ...openai.ToolCall) openai.Run {
	return openai.Run{
		ID:     id,
		Status: openai.RunStatusRequiresAction,
		RequiredAction: &openai.RunRequiredAction{
			Type: openai.RequiredActionTypeSubmitToolOutputs,
			SubmitToolOutputs: &openai.SubmitToolOutputs{
				ToolCalls: toolCalls,
			},
		},
	}
}

func functionCall(id string, name string, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:   id,
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

// newTestDriver returns a driver with real sleeps replaced by a recorder
func newTestDriver(client *mockAgentClient) (*RunDriver, *[]time.Duration) {
	config := &Config{
		DefaultModel: openai.GPT4o,
		PollInterval: RUN_POLL_INTERVAL,
	}
	driver := NewRunDriver(client, config)

	var sleeps []time.Duration
	driver.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
	}
	return driver, &sleeps
}

func newTestAgent(t *testing.T, client *mockAgentClient) *Agent {
	t.Helper()

	db, err := NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatal("unable to open test db: ", err)
	}

	scheduler, err := NewScheduler()
	if err != nil {
		t.Fatal("unable to create scheduler: ", err)
	}
	scheduler.Start()

	config := &Config{
		DefaultModel:       openai.GPT4o,
		BaseInstructions:   AGENT_INSTRUCTIONS,
		PollInterval:       RUN_POLL_INTERVAL,
		MaxRetries:         DEFAULT_MAX_RETRIES,
		InitialRetryDelay:  DEFAULT_INITIAL_RETRY_DELAY,
		MaxChatIterations:  10,
		HistoryTargetCount: 5,
	}

	a := &Agent{
		AIClient:  client,
		Config:    config,
		State:     NewState(),
		DB:        db,
		Scheduler: scheduler,
		Driver:    NewRunDriver(client, config),
	}
	a.Driver.sleep = func(time.Duration) {}
	a.Tools = DefaultToolRegistry(a)

	t.Cleanup(a.Close)
	return a
}

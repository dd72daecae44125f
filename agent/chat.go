package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

const ERROR_RESPONSE = "Oh no! Something went wrong."

type ResponseReq struct {
	SessionID string
	// overrides Config.AssistantID when set
	AssistantID string
	Message     string
	// overrides the agent's default registry when set
	Tools                  *ToolRegistry
	AdditionalInstructions string
}

// Gets a response from the agent service.
//
// Sends the message to the session's thread, drives a run to completion,
// and returns the newest assistant message. The run outcome is recorded in
// the database either way.
func GetResponse(ctx context.Context, req ResponseReq, a *Agent) (string, error) {
	assistantID := req.AssistantID
	if assistantID == "" {
		assistantID = a.Config.AssistantID
	}

	thread, err := a.State.GetOrCreateThread(req.SessionID, a.AIClient)
	if err != nil {
		return "", err
	}

	// lock the thread because we can't queue additional messages during a run
	a.State.LockThread(req.SessionID)
	defer a.State.UnLockThread(req.SessionID)

	threadID := thread.openAIThread.ID
	_, err = a.AIClient.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})
	if err != nil {
		log.Println("Unable to create message", err)
		return "", err
	}

	tools := req.Tools
	if tools == nil {
		tools = a.Tools
	}

	startTime := time.Now()
	outcome, err := a.Driver.Drive(ctx, DriveRequest{
		ThreadID:               threadID,
		AssistantID:            assistantID,
		Tools:                  tools,
		MaxRetries:             a.Config.MaxRetries,
		InitialDelay:           a.Config.InitialRetryDelay,
		AdditionalInstructions: req.AdditionalInstructions,
	})
	if err != nil {
		return "", err
	}

	a.recordRun(outcome, threadID, assistantID, startTime)

	switch outcome.Kind {
	case OutcomeCompleted:
		log.Println("Usage: ", outcome.Run.Usage.TotalTokens)
	case OutcomeFailed:
		if outcome.LastError != nil {
			return "", fmt.Errorf(
				"run failed with code (%s): %s",
				outcome.LastError.Code,
				outcome.LastError.Message,
			)
		}
		return "", fmt.Errorf("run ended with status %s", outcome.Run.Status)
	case OutcomeCancelled:
		return "", errors.New("run cancelled after an unusable tool request")
	case OutcomeExhausted:
		return "", fmt.Errorf(
			"gave up after %d submission attempts",
			outcome.Attempts,
		)
	}

	messageList, err := a.AIClient.ListMessage(ctx, threadID, nil, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("unable to get messages: %s", err)
	}

	message, err := getFirstMessage(messageList)
	if err != nil {
		return "", fmt.Errorf("unable to get first message: %s", err)
	}
	log.Println("Received response from thread: ", threadID)
	return message, nil
}

// GetChatResponse answers through plain chat completions, keeping the
// conversation as a local ordered message list instead of a server thread.
func GetChatResponse(
	ctx context.Context,
	sessionID string,
	message string,
	a *Agent,
) (string, error) {
	var messages []openai.ChatCompletionMessage

	thread, exists := a.State.GetThread(sessionID)
	if exists {
		messages = thread.messages
	} else {
		a.State.NewThread(sessionID)
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: a.Config.BaseInstructions,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	req := openai.ChatCompletionRequest{
		Model:    a.Config.DefaultModel,
		Messages: messages,
	}

	startTime := time.Now()
	resp, err := a.AIClient.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Println("error getting chat completion: ", err)
		return "", err
	}
	log.Println("Request took: ", time.Since(startTime))

	respMessage := resp.Choices[0].Message
	messages = append(messages, respMessage)

	a.State.SetThreadMessages(sessionID, messages)

	return respMessage.Content, nil
}

func (a *Agent) recordRun(
	outcome *RunOutcome,
	threadID string,
	assistantID string,
	startTime time.Time,
) {
	if a.DB == nil {
		return
	}

	record := &RunRecord{
		RequestID:   uuid.NewString(),
		ThreadID:    threadID,
		AssistantID: assistantID,
		Status:      outcome.Kind.String(),
		Attempts:    outcome.Attempts,
		StartedAt:   startTime,
		Duration:    time.Since(startTime),
	}
	if outcome.Run != nil {
		record.RunID = outcome.Run.ID
		record.PromptTokens = outcome.Run.Usage.PromptTokens
		record.CompletionTokens = outcome.Run.Usage.CompletionTokens
		record.TotalTokens = outcome.Run.Usage.TotalTokens
	}

	if err := a.DB.CreateRunRecord(record); err != nil {
		log.Println("unable to record run: ", err)
	}
}

func getFirstMessage(messageList openai.MessagesList) (string, error) {
	if len(messageList.Messages) <= 0 || messageList.FirstID == nil {
		return "", errors.New("received zero length message list")
	}
	firstID := messageList.FirstID
	for _, message := range messageList.Messages {
		if message.ID == *firstID {
			return message.Content[0].Text.Value, nil
		}
	}
	return "", fmt.Errorf("could not find message with id: %s", *firstID)
}

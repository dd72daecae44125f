package agent

import (
	"context"
	"log"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// State tracks the server-side thread and local chat history for each
// session key. Session keys are caller-defined (one per sample query or
// conversation).
type State struct {
	threadMap map[string]*ChatThread
	mu        sync.RWMutex
}

type ChatThread struct {
	openAIThread openai.Thread
	// local ordered history for the chat completion client
	messages []openai.ChatCompletionMessage
	mu       sync.Mutex
}

func NewState() *State {
	return &State{
		threadMap: make(map[string]*ChatThread),
	}
}

func (s *State) GetThread(sessionID string) (*ChatThread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	thread, exists := s.threadMap[sessionID]
	return thread, exists
}

func (s *State) NewThread(sessionID string) *ChatThread {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threadMap[sessionID] = &ChatThread{}
	return s.threadMap[sessionID]
}

// GetOrCreateThread returns the session's thread, creating the server-side
// thread on first use
func (s *State) GetOrCreateThread(
	sessionID string,
	client AgentClient,
) (*ChatThread, error) {
	if thread, exists := s.GetThread(sessionID); exists && thread.openAIThread.ID != "" {
		return thread, nil
	}
	return s.ResetThread(sessionID, client)
}

// ResetThread starts a fresh server-side thread for the session
func (s *State) ResetThread(sessionID string, client AgentClient) (*ChatThread, error) {
	log.Println("Resetting thread for session: ", sessionID)
	openAIThread, err := client.CreateThread(context.Background(), openai.ThreadRequest{})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	thread, exists := s.threadMap[sessionID]
	if !exists {
		thread = &ChatThread{}
		s.threadMap[sessionID] = thread
	}
	thread.openAIThread = openAIThread
	return thread, nil
}

// LockThread blocks until no run is active on the session's thread. The
// service rejects new messages while a run is unresolved, so every drive
// holds this lock for its full duration.
func (s *State) LockThread(sessionID string) {
	s.thread(sessionID).mu.Lock()
}

func (s *State) UnLockThread(sessionID string) {
	s.thread(sessionID).mu.Unlock()
}

// thread returns the session's entry, inserting an empty one for unseen
// session keys so lock calls never hit a nil thread
func (s *State) thread(sessionID string) *ChatThread {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread, exists := s.threadMap[sessionID]
	if !exists {
		thread = &ChatThread{}
		s.threadMap[sessionID] = thread
	}
	return thread
}

func (s *State) GetThreadMessages(sessionID string) []openai.ChatCompletionMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	thread, exists := s.threadMap[sessionID]
	if !exists {
		return nil
	}
	return thread.messages
}

func (s *State) SetThreadMessages(sessionID string, messages []openai.ChatCompletionMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threadMap[sessionID].messages = messages
}

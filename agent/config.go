package agent

import (
	"time"
)

type Config struct {
	DefaultModel string
	// assistant used when the caller does not create one per session
	AssistantID      string
	BaseInstructions string
	// fixed cadence between status polls, distinct from the retry backoff
	PollInterval time.Duration
	// retry budget for rate limits and transport errors
	MaxRetries        int
	InitialRetryDelay time.Duration
	// group chat bounds
	MaxChatIterations  int
	HistoryTargetCount int
}

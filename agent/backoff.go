package agent

import (
	"regexp"
	"strconv"
	"time"
)

// matches the server hint embedded in rate limit error messages,
// e.g. "Rate limit is exceeded. Try again in 26 seconds."
var suggestedWaitPattern = regexp.MustCompile(`Try again in (\d+) seconds`)

// parseSuggestedWait extracts the server-suggested wait duration from a rate
// limit error message. Returns false when the message carries no hint.
func parseSuggestedWait(message string) (time.Duration, bool) {
	match := suggestedWaitPattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// retryState tracks the retry budget and backoff delay for one Drive call.
// It is owned by a single Drive invocation and never shared.
type retryState struct {
	attempts    int
	maxRetries  int
	delay       time.Duration
	submissions int
}

func newRetryState(maxRetries int, initialDelay time.Duration) *retryState {
	return &retryState{
		maxRetries: maxRetries,
		delay:      initialDelay,
	}
}

// retry consumes one attempt and reports whether budget remains
func (r *retryState) retry() bool {
	r.attempts++
	return r.attempts <= r.maxRetries
}

// nextDelay returns the current backoff delay and doubles it for the next
// failure. The growth is uncapped and unjittered, so sustained throttling
// produces unbounded sleep times.
func (r *retryState) nextDelay() time.Duration {
	delay := r.delay
	r.delay *= 2
	return delay
}

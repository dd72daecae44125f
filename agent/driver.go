package agent

import (
	"context"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DEFAULT_MAX_RETRIES         = 3
	DEFAULT_INITIAL_RETRY_DELAY = 1 * time.Second
	RUN_POLL_INTERVAL           = 1 * time.Second
)

type OutcomeKind int

const (
	// run reached completed
	OutcomeCompleted OutcomeKind = iota
	// run reached a terminal non-success status for a non-rate-limit reason
	OutcomeFailed
	// driver cancelled the run after an unusable requires_action payload
	OutcomeCancelled
	// retry budget spent on rate limits or transport errors
	OutcomeExhausted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeExhausted:
		return "retries_exhausted"
	default:
		return "unknown"
	}
}

// RunOutcome is the terminal result of one Drive call.
// Run is the last snapshot seen; nil when the initial submission never
// succeeded. LastError is copied from the run for terminal failures.
type RunOutcome struct {
	Kind      OutcomeKind
	Run       *openai.Run
	LastError *openai.RunLastError
	// submission attempts made (create-run calls)
	Attempts int
}

type DriveRequest struct {
	ThreadID    string
	AssistantID string
	Tools       *ToolRegistry
	// MaxRetries < 0 selects the default. 0 is valid and disables retries.
	MaxRetries int
	// InitialDelay <= 0 selects the default
	InitialDelay           time.Duration
	AdditionalInstructions string
}

// RunDriver drives a server-side run from submission to a terminal outcome,
// absorbing rate limiting and transient transport errors and dispatching
// mid-run tool calls through the request's ToolRegistry.
type RunDriver struct {
	client AgentClient
	config *Config
	sleep  func(time.Duration)
}

func NewRunDriver(client AgentClient, config *Config) *RunDriver {
	return &RunDriver{
		client: client,
		config: config,
		sleep:  time.Sleep,
	}
}

func (d *RunDriver) pollInterval() time.Duration {
	if d.config != nil && d.config.PollInterval > 0 {
		return d.config.PollInterval
	}
	return RUN_POLL_INTERVAL
}

// Drive submits a run on req.ThreadID and polls it to a terminal state.
// Every failure path yields a typed outcome; the error return is reserved
// for context cancellation.
func (d *RunDriver) Drive(ctx context.Context, req DriveRequest) (*RunOutcome, error) {
	if req.Tools == nil {
		req.Tools = NewToolRegistry()
	}
	maxRetries := req.MaxRetries
	if maxRetries < 0 {
		maxRetries = DEFAULT_MAX_RETRIES
	}
	initialDelay := req.InitialDelay
	if initialDelay <= 0 {
		initialDelay = DEFAULT_INITIAL_RETRY_DELAY
	}

	retry := newRetryState(maxRetries, initialDelay)

	runReq := openai.RunRequest{
		AssistantID:            req.AssistantID,
		AdditionalInstructions: req.AdditionalInstructions,
	}

	run, err := d.client.CreateRun(ctx, req.ThreadID, runReq)
	retry.submissions++
	if err == nil {
		log.Println("Initial Run id: ", run.ID)
	}

	// last known run id, empty until the first create succeeds
	runID := run.ID
	prevStatus := run.Status

	for {
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Println("transport error driving run: ", err)
			if !retry.retry() {
				return d.exhausted(retry, runID, run), nil
			}
			d.sleep(retry.nextDelay())
			if runID == "" {
				// the run was never created, resubmit
				run, err = d.client.CreateRun(ctx, req.ThreadID, runReq)
				retry.submissions++
			} else {
				// the run still exists server-side, re-poll it
				run, err = d.client.RetrieveRun(ctx, req.ThreadID, runID)
			}
			continue
		}

		runID = run.ID
		if prevStatus != run.Status {
			log.Printf("Run status: %s\n", run.Status)
			prevStatus = run.Status
		}

		switch run.Status {
		case openai.RunStatusQueued, openai.RunStatusInProgress:
			d.sleep(d.pollInterval())
			run, err = d.client.RetrieveRun(ctx, req.ThreadID, runID)

		case openai.RunStatusRequiresAction:
			var toolCalls []openai.ToolCall
			if run.RequiredAction != nil && run.RequiredAction.SubmitToolOutputs != nil {
				toolCalls = run.RequiredAction.SubmitToolOutputs.ToolCalls
			}
			if len(toolCalls) == 0 {
				log.Println("no tool calls provided, cancelling run: ", runID)
				return d.cancel(ctx, req.ThreadID, runID, retry, run), nil
			}

			toolOutputs := dispatchToolCalls(ctx, req.Tools, toolCalls)
			if len(toolOutputs) == 0 {
				log.Println("no tool outputs produced, cancelling run: ", runID)
				return d.cancel(ctx, req.ThreadID, runID, retry, run), nil
			}

			run, err = d.client.SubmitToolOutputs(
				ctx,
				req.ThreadID,
				runID,
				openai.SubmitToolOutputsRequest{ToolOutputs: toolOutputs},
			)

		case openai.RunStatusCompleted:
			outcome := &RunOutcome{
				Kind:     OutcomeCompleted,
				Run:      &run,
				Attempts: retry.submissions,
			}
			return outcome, nil

		case openai.RunStatusFailed:
			if run.LastError != nil &&
				run.LastError.Code == openai.RunErrorRateLimitExceeded {
				wait, found := parseSuggestedWait(run.LastError.Message)
				if !found {
					wait = retry.nextDelay()
				}
				if !retry.retry() {
					log.Printf(
						"rate limit exceeded, maximum retries (%d) reached\n",
						maxRetries,
					)
					return d.exhausted(retry, runID, run), nil
				}
				log.Printf(
					"rate limit exceeded, waiting %s before retry (%d/%d)\n",
					wait,
					retry.attempts,
					maxRetries,
				)
				d.sleep(wait)
				// the failed run is dead, submit a brand new one on the
				// same thread. runID is cleared so a transport error here
				// resubmits instead of re-polling the dead run.
				runID = ""
				run, err = d.client.CreateRun(ctx, req.ThreadID, runReq)
				retry.submissions++
				continue
			}
			return d.terminal(retry, run), nil

		case openai.RunStatusCancelled, openai.RunStatusExpired:
			return d.terminal(retry, run), nil

		default:
			log.Println("received unknown run status: ", run.Status)
			return d.terminal(retry, run), nil
		}
	}
}

func (d *RunDriver) exhausted(retry *retryState, runID string, run openai.Run) *RunOutcome {
	outcome := &RunOutcome{
		Kind:     OutcomeExhausted,
		Attempts: retry.submissions,
	}
	if runID != "" {
		outcome.Run = &run
		outcome.LastError = run.LastError
	}
	return outcome
}

// terminal service failure, surfaced to the caller without retrying
func (d *RunDriver) terminal(retry *retryState, run openai.Run) *RunOutcome {
	return &RunOutcome{
		Kind:      OutcomeFailed,
		Run:       &run,
		LastError: run.LastError,
		Attempts:  retry.submissions,
	}
}

func (d *RunDriver) cancel(
	ctx context.Context,
	threadID string,
	runID string,
	retry *retryState,
	run openai.Run,
) *RunOutcome {
	_, err := d.client.CancelRun(ctx, threadID, runID)
	if err != nil {
		log.Println("unable to cancel run: ", err)
	}
	return &RunOutcome{
		Kind:     OutcomeCancelled,
		Run:      &run,
		Attempts: retry.submissions,
	}
}

// dispatchToolCalls executes the run's tool calls in the order the service
// returned them and collects the outputs into a single batch. Calls with an
// unsupported kind, an unregistered name, or a failing handler are logged
// and omitted from the batch.
func dispatchToolCalls(
	ctx context.Context,
	registry *ToolRegistry,
	toolCalls []openai.ToolCall,
) []openai.ToolOutput {
	var toolOutputs []openai.ToolOutput
	for _, toolCall := range toolCalls {
		switch toolCall.Type {
		case openai.ToolTypeFunction:
		default:
			log.Printf(
				"skipping tool call %s with unsupported type %s\n",
				toolCall.ID,
				toolCall.Type,
			)
			continue
		}

		tool, ok := registry.Lookup(toolCall.Function.Name)
		if !ok {
			log.Println("no registered tool named: ", toolCall.Function.Name)
			continue
		}

		log.Printf("%s(%s)\n", toolCall.Function.Name, toolCall.Function.Arguments)
		output, err := tool.Handler(ctx, toolCall.Function.Arguments)
		if err != nil {
			log.Printf(
				"error executing tool call %s: %s\n",
				toolCall.ID,
				err,
			)
			continue
		}

		toolOutputs = append(
			toolOutputs,
			openai.ToolOutput{ToolCallID: toolCall.ID, Output: output},
		)
	}
	return toolOutputs
}

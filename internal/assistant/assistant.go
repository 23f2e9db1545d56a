// Package assistant talks to conversational LLM services through a
// thread / message / run model: a thread holds the conversation, a run asks
// the assistant to answer it and is polled until it reaches a terminal status.
package assistant

import "context"

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	StatusQueued         RunStatus = "queued"
	StatusInProgress     RunStatus = "in_progress"
	StatusRequiresAction RunStatus = "requires_action"
	StatusCancelling     RunStatus = "cancelling"
	StatusCompleted      RunStatus = "completed"
	StatusFailed         RunStatus = "failed"
	StatusCancelled      RunStatus = "cancelled"
	StatusExpired        RunStatus = "expired"
	StatusIncomplete     RunStatus = "incomplete"
)

// Failed reports whether the status is terminal without a usable answer.
func (s RunStatus) Failed() bool {
	switch s {
	case StatusFailed, StatusCancelled, StatusExpired, StatusIncomplete:
		return true
	}
	return false
}

// Run is a snapshot of one assistant run.
type Run struct {
	ID        string
	ThreadID  string
	Status    RunStatus
	LastError string
}

// RunOptions bound a single run.
type RunOptions struct {
	MaxCompletionTokens int
}

// Client is the set of operations the generator needs from an assistant service.
type Client interface {
	// Provider names the backing service, for logs.
	Provider() string
	CreateThread(ctx context.Context) (string, error)
	AddUserMessage(ctx context.Context, threadID, content string) error
	CreateRun(ctx context.Context, threadID string, opts RunOptions) (*Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error)
	// ListAssistantMessages returns the text of every assistant message in
	// the thread, oldest first.
	ListAssistantMessages(ctx context.Context, threadID string) ([]string, error)
	DeleteThread(ctx context.Context, threadID string) error
}

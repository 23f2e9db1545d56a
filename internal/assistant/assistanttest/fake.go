// Package assistanttest provides a scriptable in-memory assistant.Client.
package assistanttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/BerylCAtieno/ad-copy-agent/internal/assistant"
)

// Fake replays a scripted run. RetrieveRun walks Statuses and then keeps
// returning the last one; an empty script completes immediately.
type Fake struct {
	Statuses []assistant.RunStatus
	Replies  []string

	CreateThreadErr error
	AddMessageErr   error
	CreateRunErr    error
	RetrieveErr     error
	ListErr         error

	mu         sync.Mutex
	threads    int
	prompts    []string
	runOpts    []assistant.RunOptions
	retrievals int
	deleted    []string
}

// New returns a fake that completes on the first poll with the given replies.
func New(replies ...string) *Fake {
	return &Fake{Replies: replies}
}

func (f *Fake) Provider() string { return "fake" }

func (f *Fake) CreateThread(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateThreadErr != nil {
		return "", f.CreateThreadErr
	}
	f.threads++
	return fmt.Sprintf("thread_%d", f.threads), nil
}

func (f *Fake) AddUserMessage(ctx context.Context, threadID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AddMessageErr != nil {
		return f.AddMessageErr
	}
	f.prompts = append(f.prompts, content)
	return nil
}

func (f *Fake) CreateRun(ctx context.Context, threadID string, opts assistant.RunOptions) (*assistant.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateRunErr != nil {
		return nil, f.CreateRunErr
	}
	f.runOpts = append(f.runOpts, opts)
	return &assistant.Run{ID: "run_" + threadID, ThreadID: threadID, Status: assistant.StatusQueued}, nil
}

func (f *Fake) RetrieveRun(ctx context.Context, threadID, runID string) (*assistant.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RetrieveErr != nil {
		return nil, f.RetrieveErr
	}

	status := assistant.StatusCompleted
	if len(f.Statuses) > 0 {
		i := f.retrievals
		if i >= len(f.Statuses) {
			i = len(f.Statuses) - 1
		}
		status = f.Statuses[i]
	}
	f.retrievals++

	run := &assistant.Run{ID: runID, ThreadID: threadID, Status: status}
	if status.Failed() {
		run.LastError = "scripted " + string(status)
	}
	return run, nil
}

func (f *Fake) ListAssistantMessages(ctx context.Context, threadID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]string, len(f.Replies))
	copy(out, f.Replies)
	return out, nil
}

func (f *Fake) DeleteThread(ctx context.Context, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, threadID)
	return nil
}

// Prompts returns every user message sent so far.
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}

// LastPrompt returns the most recent user message, or "".
func (f *Fake) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// RunOptions returns the options of every run created so far.
func (f *Fake) RunOptions() []assistant.RunOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]assistant.RunOptions, len(f.runOpts))
	copy(out, f.runOpts)
	return out
}

// Retrievals counts RetrieveRun calls.
func (f *Fake) Retrievals() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.retrievals
}

// Deleted lists the threads passed to DeleteThread.
func (f *Fake) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deleted))
	copy(out, f.deleted)
	return out
}

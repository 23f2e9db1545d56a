package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRegistryOnlyClient has no genai client; it only serves the thread registry.
func newRegistryOnlyClient() *GeminiClient {
	return &GeminiClient{
		runTimeout: time.Minute,
		threads:    make(map[string]*geminiThread),
	}
}

// addRun registers a run the way CreateRun does, without starting generation.
func addRun(t *testing.T, g *GeminiClient, threadID string, status RunStatus) (string, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	g.mu.Lock()
	defer g.mu.Unlock()
	thread, ok := g.threads[threadID]
	require.True(t, ok)
	runID := "run_test"
	thread.runs[runID] = &Run{ID: runID, ThreadID: threadID, Status: status}
	thread.cancels[runID] = cancel
	return runID, ctx
}

func TestGeminiClient_UnknownThread(t *testing.T) {
	g := newRegistryOnlyClient()
	ctx := context.Background()

	assert.Error(t, g.AddUserMessage(ctx, "thread_missing", "hi"))

	_, err := g.CreateRun(ctx, "thread_missing", RunOptions{})
	assert.Error(t, err)

	_, err = g.RetrieveRun(ctx, "thread_missing", "run_1")
	assert.Error(t, err)

	_, err = g.ListAssistantMessages(ctx, "thread_missing")
	assert.Error(t, err)

	assert.NoError(t, g.DeleteThread(ctx, "thread_missing"))
}

func TestGeminiClient_CreateRunNeedsPendingUserMessage(t *testing.T) {
	g := newRegistryOnlyClient()
	ctx := context.Background()

	threadID, err := g.CreateThread(ctx)
	require.NoError(t, err)

	_, err = g.CreateRun(ctx, threadID, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pending user message")

	g.mu.Lock()
	g.threads[threadID].history = append(g.threads[threadID].history,
		&genai.Content{Role: roleUser, Parts: []genai.Part{genai.Text("hi")}},
		&genai.Content{Role: roleModel, Parts: []genai.Part{genai.Text("hello")}},
	)
	g.mu.Unlock()

	_, err = g.CreateRun(ctx, threadID, RunOptions{})
	assert.Error(t, err)
}

func TestGeminiClient_RetrieveRunSnapshot(t *testing.T) {
	g := newRegistryOnlyClient()
	ctx := context.Background()

	threadID, err := g.CreateThread(ctx)
	require.NoError(t, err)
	runID, _ := addRun(t, g, threadID, StatusInProgress)

	run, err := g.RetrieveRun(ctx, threadID, runID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, run.Status)

	run.Status = StatusCompleted
	again, err := g.RetrieveRun(ctx, threadID, runID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, again.Status)

	_, err = g.RetrieveRun(ctx, threadID, "run_other")
	assert.Error(t, err)
}

func TestGeminiClient_DeleteThreadCancelsRuns(t *testing.T) {
	g := newRegistryOnlyClient()
	ctx := context.Background()

	threadID, err := g.CreateThread(ctx)
	require.NoError(t, err)
	runID, runCtx := addRun(t, g, threadID, StatusInProgress)

	require.NoError(t, g.DeleteThread(ctx, threadID))

	assert.ErrorIs(t, runCtx.Err(), context.Canceled)
	_, err = g.RetrieveRun(ctx, threadID, runID)
	assert.Error(t, err)

	// A late result for a deleted thread is dropped.
	g.setRun(threadID, runID, StatusCompleted, "")
	g.finishRun(threadID, runID)
	_, err = g.RetrieveRun(ctx, threadID, runID)
	assert.Error(t, err)
}

func TestGeminiClient_FinishRunReleasesContext(t *testing.T) {
	g := newRegistryOnlyClient()
	ctx := context.Background()

	threadID, err := g.CreateThread(ctx)
	require.NoError(t, err)
	runID, runCtx := addRun(t, g, threadID, StatusInProgress)

	g.finishRun(threadID, runID)

	assert.ErrorIs(t, runCtx.Err(), context.Canceled)
	g.mu.Lock()
	assert.Empty(t, g.threads[threadID].cancels)
	g.mu.Unlock()

	run, err := g.RetrieveRun(ctx, threadID, runID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, run.Status)
}

func TestGeminiClient_ListAssistantMessages(t *testing.T) {
	g := newRegistryOnlyClient()
	ctx := context.Background()

	threadID, err := g.CreateThread(ctx)
	require.NoError(t, err)
	require.NoError(t, g.AddUserMessage(ctx, threadID, "first"))

	g.mu.Lock()
	g.threads[threadID].history = append(g.threads[threadID].history,
		&genai.Content{Role: roleModel, Parts: []genai.Part{genai.Text(`{"headline":`), genai.Text(`"h"}`)}},
		&genai.Content{Role: roleUser, Parts: []genai.Part{genai.Text("second")}},
		&genai.Content{Role: roleModel, Parts: []genai.Part{genai.Text("again")}},
	)
	g.mu.Unlock()

	texts, err := g.ListAssistantMessages(ctx, threadID)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"headline":"h"}`, "again"}, texts)
}

func TestResponseText(t *testing.T) {
	text, finish := responseText(nil)
	assert.Empty(t, text)
	assert.Equal(t, genai.FinishReasonUnspecified, finish)

	text, finish = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: roleModel, Parts: []genai.Part{genai.Text("ad "), genai.Text("copy")}},
			FinishReason: genai.FinishReasonMaxTokens,
		}},
	})
	assert.Equal(t, "ad copy", text)
	assert.Equal(t, genai.FinishReasonMaxTokens, finish)
}

package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BerylCAtieno/ad-copy-agent/internal/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

// GeminiClient emulates assistant threads and runs on top of Gemini chat
// sessions. Threads live in memory until deleted; each run generates in the
// background so callers poll it exactly like a hosted assistant.
type GeminiClient struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	runTimeout time.Duration

	mu      sync.Mutex
	threads map[string]*geminiThread
}

type geminiThread struct {
	history []*genai.Content
	runs    map[string]*Run
	cancels map[string]context.CancelFunc
}

func newGeminiThread() *geminiThread {
	return &geminiThread{
		runs:    make(map[string]*Run),
		cancels: make(map[string]context.CancelFunc),
	}
}

func NewGeminiClient(cfg *config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)

	return &GeminiClient{
		client:     client,
		model:      model,
		runTimeout: cfg.RunTimeout,
		threads:    make(map[string]*geminiThread),
	}, nil
}

func (g *GeminiClient) Close() {
	g.mu.Lock()
	for _, thread := range g.threads {
		for _, cancel := range thread.cancels {
			cancel()
		}
	}
	g.mu.Unlock()

	g.client.Close()
}

func (g *GeminiClient) Provider() string { return "gemini" }

func (g *GeminiClient) CreateThread(ctx context.Context) (string, error) {
	id := "thread_" + uuid.NewString()

	g.mu.Lock()
	g.threads[id] = newGeminiThread()
	g.mu.Unlock()

	return id, nil
}

func (g *GeminiClient) AddUserMessage(ctx context.Context, threadID, content string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	thread, ok := g.threads[threadID]
	if !ok {
		return fmt.Errorf("thread %s not found", threadID)
	}
	thread.history = append(thread.history, &genai.Content{
		Role:  roleUser,
		Parts: []genai.Part{genai.Text(content)},
	})
	return nil
}

// CreateRun snapshots the thread and answers its last user turn in the background.
func (g *GeminiClient) CreateRun(ctx context.Context, threadID string, opts RunOptions) (*Run, error) {
	g.mu.Lock()
	thread, ok := g.threads[threadID]
	if !ok {
		g.mu.Unlock()
		return nil, fmt.Errorf("thread %s not found", threadID)
	}
	if len(thread.history) == 0 || thread.history[len(thread.history)-1].Role != roleUser {
		g.mu.Unlock()
		return nil, fmt.Errorf("thread %s has no pending user message", threadID)
	}

	run := &Run{
		ID:       "run_" + uuid.NewString(),
		ThreadID: threadID,
		Status:   StatusQueued,
	}
	// The run outlives the request that created it; DeleteThread cancels it.
	runCtx, cancel := context.WithTimeout(context.Background(), g.runTimeout)
	thread.runs[run.ID] = run
	thread.cancels[run.ID] = cancel
	history := make([]*genai.Content, len(thread.history))
	copy(history, thread.history)
	snapshot := *run
	g.mu.Unlock()

	go g.execute(runCtx, threadID, run.ID, history, opts)

	return &snapshot, nil
}

func (g *GeminiClient) execute(ctx context.Context, threadID, runID string, history []*genai.Content, opts RunOptions) {
	defer g.finishRun(threadID, runID)

	g.setRun(threadID, runID, StatusInProgress, "")

	// Copy so per-run settings never touch the shared model.
	model := *g.model
	if opts.MaxCompletionTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxCompletionTokens))
	}

	session := model.StartChat()
	session.History = history[:len(history)-1]
	last := history[len(history)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		status := StatusFailed
		if errors.Is(err, context.DeadlineExceeded) {
			status = StatusExpired
		}
		g.setRun(threadID, runID, status, err.Error())
		return
	}

	text, finish := responseText(resp)
	if text == "" {
		g.setRun(threadID, runID, StatusFailed, "no content generated")
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	thread, ok := g.threads[threadID]
	if !ok {
		return
	}
	thread.history = append(thread.history, &genai.Content{
		Role:  roleModel,
		Parts: []genai.Part{genai.Text(text)},
	})
	if run, ok := thread.runs[runID]; ok {
		run.Status = StatusCompleted
		if finish == genai.FinishReasonMaxTokens {
			run.Status = StatusIncomplete
			run.LastError = "max output tokens reached"
		}
	}
}

// finishRun releases the run's context once it has stopped.
func (g *GeminiClient) finishRun(threadID, runID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	thread, ok := g.threads[threadID]
	if !ok {
		return
	}
	if cancel, ok := thread.cancels[runID]; ok {
		cancel()
		delete(thread.cancels, runID)
	}
}

func (g *GeminiClient) setRun(threadID, runID string, status RunStatus, lastError string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	thread, ok := g.threads[threadID]
	if !ok {
		return
	}
	if run, ok := thread.runs[runID]; ok {
		run.Status = status
		run.LastError = lastError
	}
}

func (g *GeminiClient) RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	thread, ok := g.threads[threadID]
	if !ok {
		return nil, fmt.Errorf("thread %s not found", threadID)
	}
	run, ok := thread.runs[runID]
	if !ok {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	snapshot := *run
	return &snapshot, nil
}

func (g *GeminiClient) ListAssistantMessages(ctx context.Context, threadID string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	thread, ok := g.threads[threadID]
	if !ok {
		return nil, fmt.Errorf("thread %s not found", threadID)
	}

	var texts []string
	for _, content := range thread.history {
		if content.Role != roleModel {
			continue
		}
		texts = append(texts, partsText(content.Parts))
	}
	return texts, nil
}

// DeleteThread drops the thread and cancels any run still generating on it.
func (g *GeminiClient) DeleteThread(ctx context.Context, threadID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	thread, ok := g.threads[threadID]
	if !ok {
		return nil
	}
	for _, cancel := range thread.cancels {
		cancel()
	}
	delete(g.threads, threadID)
	return nil
}

func responseText(resp *genai.GenerateContentResponse) (string, genai.FinishReason) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", genai.FinishReasonUnspecified
	}
	candidate := resp.Candidates[0]
	return partsText(candidate.Content.Parts), candidate.FinishReason
}

func partsText(parts []genai.Part) string {
	var b strings.Builder
	for _, part := range parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

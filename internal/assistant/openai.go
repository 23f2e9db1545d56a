package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/ad-copy-agent/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

const messagePageSize = 100

// OpenAIClient drives an OpenAI Assistants API assistant.
type OpenAIClient struct {
	client      *openai.Client
	assistantID string
}

// NewOpenAIClient creates a client bound to the configured assistant.
func NewOpenAIClient(cfg *config.OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if cfg.AssistantID == "" {
		return nil, fmt.Errorf("openai assistant id is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientCfg),
		assistantID: cfg.AssistantID,
	}, nil
}

func (c *OpenAIClient) Provider() string { return "openai" }

// CreateThread opens an empty thread.
func (c *OpenAIClient) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	return thread.ID, nil
}

// AddUserMessage appends a user turn to the thread.
func (c *OpenAIClient) AddUserMessage(ctx context.Context, threadID, content string) error {
	_, err := c.client.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    string(openai.ThreadMessageRoleUser),
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("failed to add message to thread %s: %w", threadID, err)
	}
	return nil
}

// CreateRun starts the assistant on the thread.
func (c *OpenAIClient) CreateRun(ctx context.Context, threadID string, opts RunOptions) (*Run, error) {
	run, err := c.client.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID:         c.assistantID,
		MaxCompletionTokens: opts.MaxCompletionTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create run on thread %s: %w", threadID, err)
	}
	return convertRun(run), nil
}

// RetrieveRun fetches the current state of a run.
func (c *OpenAIClient) RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error) {
	run, err := c.client.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve run %s: %w", runID, err)
	}
	return convertRun(run), nil
}

// ListAssistantMessages pages through the thread in ascending order and
// keeps the text content of assistant messages.
func (c *OpenAIClient) ListAssistantMessages(ctx context.Context, threadID string) ([]string, error) {
	limit := messagePageSize
	order := "asc"
	var after *string
	var texts []string

	for {
		page, err := c.client.ListMessage(ctx, threadID, &limit, &order, after, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages of thread %s: %w", threadID, err)
		}

		for _, msg := range page.Messages {
			if msg.Role != string(openai.ThreadMessageRoleAssistant) {
				continue
			}
			texts = append(texts, messageText(msg))
		}

		if !page.HasMore || page.LastID == nil {
			break
		}
		after = page.LastID
	}

	return texts, nil
}

// DeleteThread removes the thread from the service.
func (c *OpenAIClient) DeleteThread(ctx context.Context, threadID string) error {
	if _, err := c.client.DeleteThread(ctx, threadID); err != nil {
		return fmt.Errorf("failed to delete thread %s: %w", threadID, err)
	}
	return nil
}

func messageText(msg openai.Message) string {
	var b strings.Builder
	for _, content := range msg.Content {
		if content.Text != nil {
			b.WriteString(content.Text.Value)
		}
	}
	return b.String()
}

func convertRun(run openai.Run) *Run {
	out := &Run{
		ID:       run.ID,
		ThreadID: run.ThreadID,
		Status:   RunStatus(run.Status),
	}
	if run.LastError != nil {
		out.LastError = fmt.Sprintf("%s: %s", run.LastError.Code, run.LastError.Message)
	}
	return out
}

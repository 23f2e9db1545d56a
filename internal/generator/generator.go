// Package generator turns a product description into ad copy by driving an
// assistant run to completion and parsing its reply.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/ad-copy-agent/internal/assistant"
	"github.com/BerylCAtieno/ad-copy-agent/internal/models"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval        = 2 * time.Second
	DefaultMaxAttempts         = 30
	DefaultMaxCompletionTokens = 350

	cleanupTimeout = 10 * time.Second
)

var (
	// Upstream failures. Generate returns these.
	ErrRunFailed = errors.New("run ended with failure status")
	ErrTimedOut  = errors.New("generation timed out")

	// Reply failures. Generate absorbs these into a fallback result.
	ErrNotJSON       = errors.New("response not in expected JSON format")
	ErrInvalidJSON   = errors.New("response is not valid JSON")
	ErrMissingFields = errors.New("missing required fields")
)

// Options bound the polling of a single run.
type Options struct {
	PollInterval        time.Duration
	MaxAttempts         int
	MaxCompletionTokens int
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.MaxCompletionTokens <= 0 {
		o.MaxCompletionTokens = DefaultMaxCompletionTokens
	}
	return o
}

// Result is the outcome of a generation that reached the assistant's reply.
// Fallback is set when the reply was unusable and canned copy was substituted.
type Result struct {
	AdContent models.AdContent
	Fallback  bool
	Reason    string
}

// Generator produces ad copy through an assistant.Client. It holds no
// per-request state and is safe for concurrent use.
type Generator struct {
	client assistant.Client
	logger *zap.Logger
	opts   Options
}

func New(client assistant.Client, logger *zap.Logger, opts Options) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client: client,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}

// Generate runs one generation. An error means the assistant could not be
// driven to a completed run; an unusable reply is not an error and yields the
// audience fallback instead.
func (g *Generator) Generate(ctx context.Context, req models.GenerationRequest) (*Result, error) {
	tone := models.ResolveTone(req.Tone)
	audience := models.ResolveAudience(req.Audience)
	prompt := BuildPrompt(req.UserInput, tone, audience)

	reply, err := g.converse(ctx, prompt)
	if err != nil {
		return nil, err
	}

	ad, err := ExtractAdContent(reply)
	if err != nil {
		g.logger.Warn("unusable assistant reply, using fallback ad",
			zap.Error(err),
			zap.String("audience", req.Audience),
			zap.String("reply", reply),
		)
		return &Result{
			AdContent: Fallback(req.Audience),
			Fallback:  true,
			Reason:    err.Error(),
		}, nil
	}

	return &Result{AdContent: *ad}, nil
}

// converse opens a fresh thread, runs the assistant on the prompt and returns
// the joined assistant replies.
func (g *Generator) converse(ctx context.Context, prompt string) (string, error) {
	threadID, err := g.client.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	defer g.deleteThread(ctx, threadID)

	if err := g.client.AddUserMessage(ctx, threadID, prompt); err != nil {
		return "", err
	}

	run, err := g.client.CreateRun(ctx, threadID, assistant.RunOptions{
		MaxCompletionTokens: g.opts.MaxCompletionTokens,
	})
	if err != nil {
		return "", err
	}

	g.logger.Debug("run created",
		zap.String("provider", g.client.Provider()),
		zap.String("thread_id", threadID),
		zap.String("run_id", run.ID),
	)

	if err := g.waitForRun(ctx, threadID, run.ID); err != nil {
		return "", err
	}

	texts, err := g.client.ListAssistantMessages(ctx, threadID)
	if err != nil {
		return "", err
	}
	return strings.Join(texts, "\n"), nil
}

// waitForRun polls at a fixed interval until the run completes, fails, or
// the attempt budget runs out.
func (g *Generator) waitForRun(ctx context.Context, threadID, runID string) error {
	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		run, err := g.client.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return err
		}

		g.logger.Debug("poll run",
			zap.Int("attempt", attempt),
			zap.String("run_id", runID),
			zap.String("status", string(run.Status)),
		)

		if run.Status == assistant.StatusCompleted {
			return nil
		}
		if run.Status.Failed() {
			if run.LastError != "" {
				return fmt.Errorf("%w: %s (%s)", ErrRunFailed, run.Status, run.LastError)
			}
			return fmt.Errorf("%w: %s", ErrRunFailed, run.Status)
		}
		if attempt == g.opts.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.opts.PollInterval):
		}
	}

	return fmt.Errorf("%w after %d attempts", ErrTimedOut, g.opts.MaxAttempts)
}

func (g *Generator) deleteThread(ctx context.Context, threadID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := g.client.DeleteThread(ctx, threadID); err != nil {
		g.logger.Warn("failed to delete thread", zap.String("thread_id", threadID), zap.Error(err))
	}
}

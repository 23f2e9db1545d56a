package a2a

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/ad-copy-agent/internal/assistant"
	"github.com/BerylCAtieno/ad-copy-agent/internal/assistant/assistanttest"
	"github.com/BerylCAtieno/ad-copy-agent/internal/generator"
	"github.com/BerylCAtieno/ad-copy-agent/internal/models"
)

const validReply = `{"headline":"Sip Smarter","tagline":"Hydration, tracked","description":"A bottle that counts every sip.","callToAction":"Shop Now"}`

type rpcResult struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Result  *TaskResult   `json:"result"`
	Error   *JSONRPCError `json:"error"`
}

func newTestRouter(fake *assistanttest.Fake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gen := generator.New(fake, zap.NewNop(), generator.Options{PollInterval: 1})
	h := NewA2AHandler(gen, zap.NewNop())

	r := gin.New()
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	r.POST("/a2a/adcopy", h.HandleAdCopy)
	return r
}

func post(t *testing.T, r *gin.Engine, body string) rpcResult {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/a2a/adcopy", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out rpcResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandleAdCopy_MessageSend(t *testing.T) {
	fake := assistanttest.New(validReply)
	r := newTestRouter(fake)

	out := post(t, r, `{
		"jsonrpc": "2.0",
		"id": "req-1",
		"method": "message/send",
		"params": {
			"message": {
				"kind": "message",
				"role": "user",
				"messageId": "msg-1",
				"contextId": "ctx-42",
				"parts": [
					{"kind": "text", "text": "<p>A smart water bottle</p>"},
					{"kind": "data", "data": {"tone": "casual", "audience": "gen-z"}}
				]
			}
		}
	}`)

	require.Nil(t, out.Error)
	require.NotNil(t, out.Result)
	assert.Equal(t, "req-1", out.ID)
	assert.Equal(t, StateCompleted, out.Result.Status.State)
	assert.Contains(t, out.Result.Status.Message.Parts[0].Text, "# Sip Smarter")
	assert.Contains(t, out.Result.Status.Message.Parts[0].Text, "Feel: Chill and relatable")

	require.Len(t, out.Result.Artifacts, 1)
	require.Len(t, out.Result.Artifacts[0].Parts, 2)
	assert.Equal(t, "data", out.Result.Artifacts[0].Parts[1].Kind)

	assert.Equal(t, "ctx-42", out.Result.ContextID)
	assert.Equal(t, "ctx-42", out.Result.Status.Message.ContextID)
	require.Len(t, out.Result.History, 1)
	assert.Equal(t, RoleUser, out.Result.History[0].Role)
	assert.Equal(t, "msg-1", out.Result.History[0].MessageID)
	require.NotNil(t, out.Result.History[0].TaskID)
	assert.Equal(t, "req-1", *out.Result.History[0].TaskID)

	prompt := fake.LastPrompt()
	assert.Contains(t, prompt, `"A smart water bottle"`)
	assert.Contains(t, prompt, models.ToneCasual.Descriptor())
	assert.Contains(t, prompt, models.AudienceGenZ.Descriptor())
}

func TestHandleAdCopy_DirectMessage(t *testing.T) {
	r := newTestRouter(assistanttest.New(validReply))

	out := post(t, r, `{"message": {"kind": "message", "role": "user", "parts": [{"kind": "text", "text": "A smart water bottle"}]}}`)

	require.NotNil(t, out.Result)
	assert.Equal(t, directMessageID, out.ID)
	assert.Equal(t, StateCompleted, out.Result.Status.State)
	assert.NotEmpty(t, out.Result.ContextID)
	assert.Equal(t, out.Result.ContextID, out.Result.Status.Message.ContextID)
	require.Len(t, out.Result.History, 1)
	assert.Equal(t, out.Result.ContextID, out.Result.History[0].ContextID)
}

func TestHandleAdCopy_EmptyMessageNeedsInput(t *testing.T) {
	fake := assistanttest.New(validReply)
	r := newTestRouter(fake)

	out := post(t, r, `{"jsonrpc": "2.0", "id": "req-2", "method": "message/send", "params": {"message": {"parts": [{"kind": "text", "text": "  "}]}}}`)

	require.NotNil(t, out.Result)
	assert.Equal(t, StateInputRequired, out.Result.Status.State)
	assert.Empty(t, out.Result.Artifacts)
	require.Len(t, out.Result.History, 1)
	assert.Equal(t, RoleUser, out.Result.History[0].Role)
	assert.Equal(t, "message", out.Result.History[0].Kind)
	assert.Empty(t, fake.Prompts())
}

func TestHandleAdCopy_UpstreamFailure(t *testing.T) {
	fake := assistanttest.New(validReply)
	fake.Statuses = []assistant.RunStatus{assistant.StatusFailed}
	r := newTestRouter(fake)

	out := post(t, r, `{"jsonrpc": "2.0", "id": "req-3", "method": "agent/task", "params": {"message": {"parts": [{"kind": "text", "text": "bottle"}]}}}`)

	require.NotNil(t, out.Result)
	assert.Equal(t, StateFailed, out.Result.Status.State)
	assert.Contains(t, out.Result.Status.Message.Parts[0].Text, "Failed to generate ad content")
	require.Len(t, out.Result.Artifacts, 1)
}

func TestHandleAdCopy_RPCErrors(t *testing.T) {
	r := newTestRouter(assistanttest.New(validReply))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"jsonrpc": `, CodeParseError},
		{"bad version", `{"jsonrpc": "1.0", "id": "x", "method": "message/send"}`, CodeInvalidRequest},
		{"unknown method", `{"jsonrpc": "2.0", "id": "x", "method": "tasks/cancel"}`, CodeMethodNotFound},
		{"bad params", `{"jsonrpc": "2.0", "id": "x", "method": "message/send", "params": {"message": {"parts": "nope"}}}`, CodeInvalidParams},
		{"empty direct message", `{}`, CodeParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := post(t, r, tt.body)
			require.NotNil(t, out.Error)
			assert.Equal(t, tt.code, out.Error.Code)
			assert.Nil(t, out.Result)
		})
	}
}

func TestServeAgentCard(t *testing.T) {
	r := newTestRouter(assistanttest.New())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var card map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
		assert.Contains(t, card, field)
	}
}

func TestExtractGenerationRequest(t *testing.T) {
	req := extractGenerationRequest(A2AMessage{Parts: []MessagePart{
		TextPart("Organic dog treats"),
		TextPart("made locally"),
		DataPart(map[string]interface{}{"tone": "humorous", "audience": "boomers", "ignored": 3}),
	}})

	assert.Equal(t, "Organic dog treats made locally", req.UserInput)
	assert.Equal(t, "humorous", req.Tone)
	assert.Equal(t, "boomers", req.Audience)
}

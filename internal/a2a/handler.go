package a2a

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/ad-copy-agent/internal/agent"
	"github.com/BerylCAtieno/ad-copy-agent/internal/generator"
	"github.com/BerylCAtieno/ad-copy-agent/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const directMessageID = "direct-message"

// AdGenerator produces ad copy for a request.
type AdGenerator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*generator.Result, error)
}

type A2AHandler struct {
	generator AdGenerator
	logger    *zap.Logger
}

func NewA2AHandler(gen AdGenerator, logger *zap.Logger) *A2AHandler {
	return &A2AHandler{
		generator: gen,
		logger:    logger,
	}
}

// HandleAdCopy processes A2A messages. JSON-RPC 2.0 envelopes are preferred;
// a bare MessageParams body is accepted as well.
func (h *A2AHandler) HandleAdCopy(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("failed to read a2a request body", zap.Error(err))
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil {
		h.logger.Warn("invalid a2a request", zap.Error(err))
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	if rpcReq.JSONRPC == "" && rpcReq.Method == "" {
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage handles a message without the JSON-RPC wrapper.
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	result := h.runTask(c.Request.Context(), directMessageID, msgParams.Message)
	h.sendSuccessResponse(c, directMessageID, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	paramsJSON, err := json.Marshal(rpcReq.Params)
	if err != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Failed to parse parameters", CodeInvalidParams)
		return
	}

	var msgParams MessageParams
	if err := json.Unmarshal(paramsJSON, &msgParams); err != nil {
		h.logger.Warn("invalid a2a params", zap.String("rpc_id", rpcReq.ID), zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.runTask(c.Request.Context(), rpcReq.ID, msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

func (h *A2AHandler) runTask(ctx context.Context, taskID string, msg A2AMessage) TaskResult {
	req := extractGenerationRequest(msg)
	if req.UserInput == "" {
		return newTaskResult(taskID, msg, StateInputRequired,
			"Please describe the product or service you want ad copy for.", nil)
	}

	h.logger.Info("a2a ad generation",
		zap.String("task_id", taskID),
		zap.String("tone", req.Tone),
		zap.String("audience", req.Audience),
	)

	result, err := h.generator.Generate(ctx, req)
	if err != nil {
		h.logger.Error("a2a ad generation failed", zap.String("task_id", taskID), zap.Error(err))
		ad := generator.TryAgain()
		return newTaskResult(taskID, msg, StateFailed,
			fmt.Sprintf("Failed to generate ad content: %v", err), &ad)
	}

	return newTaskResult(taskID, msg, StateCompleted, formatAdResponse(req, result.AdContent), &result.AdContent)
}

// ServeAgentCard serves the agent card.
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.logger.Error("agent card unavailable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}

	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

// extractGenerationRequest joins the text parts into the product description
// and reads tone and audience from any data part.
func extractGenerationRequest(msg A2AMessage) models.GenerationRequest {
	var req models.GenerationRequest
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if text := cleanText(part.Text); text != "" {
				texts = append(texts, text)
			}
		case "data":
			data, ok := part.Data.(map[string]interface{})
			if !ok {
				continue
			}
			if v, ok := data["tone"].(string); ok {
				req.Tone = v
			}
			if v, ok := data["audience"].(string); ok {
				req.Audience = v
			}
			if v, ok := data["userInput"].(string); ok {
				if text := cleanText(v); text != "" {
					texts = append(texts, text)
				}
			}
		}
	}

	req.UserInput = strings.TrimSpace(strings.Join(texts, " "))
	return req
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "<p>", "")
	text = strings.ReplaceAll(text, "</p>", "")
	return strings.TrimSpace(text)
}

// newTaskResult answers the incoming message. The task keeps the caller's
// context ID, or starts a new one, and records the message in its history.
func newTaskResult(taskID string, incoming A2AMessage, state, text string, ad *models.AdContent) TaskResult {
	contextID := incoming.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}

	request := incoming
	if request.Kind == "" {
		request.Kind = "message"
	}
	if request.Role == "" {
		request.Role = RoleUser
	}
	request.ContextID = contextID
	request.TaskID = &taskID

	result := TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				ContextID: contextID,
				TaskID:    &taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
		History: []A2AMessage{request},
	}

	if ad != nil {
		result.Artifacts = []Artifact{
			{
				ArtifactID: uuid.NewString(),
				Name:       "Ad Copy",
				Parts:      []MessagePart{TextPart(text), DataPart(*ad)},
			},
		}
	}
	return result
}

func formatAdResponse(req models.GenerationRequest, ad models.AdContent) string {
	tone := models.ResolveTone(req.Tone)
	audience := models.ResolveAudience(req.Audience)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# %s\n", ad.Headline))
	builder.WriteString(fmt.Sprintf("_%s_\n\n", ad.Tagline))
	builder.WriteString(ad.Description)
	builder.WriteString("\n\n")
	builder.WriteString(fmt.Sprintf("**%s**\n\n", ad.CallToAction))
	builder.WriteString(fmt.Sprintf("Tone: %s | Audience: %s | Feel: %s\n",
		tone, audience, models.AdFeel(string(tone), string(audience))))
	return builder.String()
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result interface{}) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// sendErrorResponse writes a JSON-RPC error. JSON-RPC errors are sent with 200 OK.
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	h.logger.Info("a2a rpc error", zap.String("rpc_id", id), zap.Int("code", code), zap.String("message", message))

	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}

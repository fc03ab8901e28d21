package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/agent"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/campaign"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAudience is used when a message names no audience.
const DefaultAudience = "a general audience"

// Generator runs a brief through the campaign pipeline.
type Generator interface {
	Generate(ctx context.Context, brief models.Brief) (*models.Campaign, error)
}

type A2AHandler struct {
	generator Generator
	logger    *zap.Logger
}

func NewA2AHandler(generator Generator, logger *zap.Logger) *A2AHandler {
	return &A2AHandler{
		generator: generator,
		logger:    logger.Named("a2a"),
	}
}

// HandleCampaign processes A2A messages
func (h *A2AHandler) HandleCampaign(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}
	h.logger.Debug("incoming request", zap.ByteString("body", bodyBytes))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || (rpcReq.JSONRPC == "" && rpcReq.Method == "") {
		h.logger.Debug("request is not JSON-RPC, trying direct message parsing", zap.Error(err))
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid JSON-RPC version", zap.String("jsonrpc", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage handles a message sent without the JSON-RPC wrapper.
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil {
		h.logger.Warn("failed to parse direct message", zap.Error(err))
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	result := h.run(c, msgParams.Message)
	h.sendSuccessResponse(c, nil, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if len(rpcReq.Params) == 0 || json.Unmarshal(rpcReq.Params, &msgParams) != nil {
		h.logger.Warn("invalid params", zap.ByteString("params", rpcReq.Params))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.run(c, msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

func (h *A2AHandler) run(c *gin.Context, msg A2AMessage) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}

	text := MessageText(msg)
	if text == "" {
		return h.createErrorTaskResult(taskID, msg.ContextID,
			"Please describe the product and its target audience to generate a campaign.")
	}

	brief := ParseBrief(text)
	h.logger.Info("generating campaign", zap.String("task_id", taskID), zap.String("product", brief.Product))

	cmp, err := h.generator.Generate(c.Request.Context(), brief)
	if err != nil {
		h.logger.Error("campaign generation failed", zap.String("task_id", taskID), zap.Error(err))
		reason := fmt.Sprintf("Failed to generate campaign: %v", err)
		if errors.Is(err, campaign.ErrInvalidBrief) {
			reason = fmt.Sprintf("The brief could not be used: %v", err)
		}
		return h.createErrorTaskResult(taskID, msg.ContextID, reason)
	}

	return h.createSuccessTaskResult(taskID, msg.ContextID, cmp, requestBaseURL(c))
}

// ServeAgentCard serves the agent card with its URL pointed at this host.
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	card, err := agent.Card(requestBaseURL(c))
	if err != nil {
		h.logger.Error("failed to load agent card", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", card)
}

// MessageText joins the text parts of msg. Data parts carrying a
// conversation history contribute their most recent text entry.
func MessageText(msg A2AMessage) string {
	var texts []string
	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if t := strings.TrimSpace(part.Text); t != "" {
				texts = append(texts, t)
			}
		case "data":
			if t := latestHistoryText(part.Data); t != "" {
				texts = append(texts, t)
			}
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

func latestHistoryText(data interface{}) string {
	if data == nil {
		return ""
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	var history []MessagePart
	if err := json.Unmarshal(raw, &history); err != nil {
		return ""
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind != "text" {
			continue
		}
		t := strings.TrimSpace(history[i].Text)
		t = strings.TrimSpace(strings.NewReplacer("<p>", "", "</p>", "").Replace(t))
		if t != "" {
			return t
		}
	}
	return ""
}

// ParseBrief reads "Product:" and "Audience:" lines from text, with or
// without bold or italic markers. Without a product line the whole text is
// the product.
func ParseBrief(text string) models.Brief {
	var brief models.Brief
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.Trim(strings.TrimSpace(key), "*_-# "))
		value = strings.Trim(strings.TrimSpace(value), "*_ \t")
		switch key {
		case "product", "product details":
			if brief.Product == "" {
				brief.Product = value
			}
		case "audience", "target audience":
			if brief.Audience == "" {
				brief.Audience = value
			}
		}
	}
	if brief.Product == "" {
		brief.Product = strings.TrimSpace(text)
	}
	if brief.Audience == "" {
		brief.Audience = DefaultAudience
	}
	return brief
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID string, cmp *models.Campaign, baseURL string) TaskResult {
	responseText := FormatCampaign(cmp, baseURL)

	artifacts := []Artifact{
		{
			ArtifactID: uuid.New().String(),
			Name:       "Campaign Copy",
			Parts:      []MessagePart{TextPart(responseText)},
		},
		{
			ArtifactID: uuid.New().String(),
			Name:       "Campaign Record",
			Parts:      []MessagePart{DataPart(cmp)},
		},
	}
	if cmp.ImageURL != "" && !cmp.ImagePlaceholder {
		artifacts = append(artifacts, Artifact{
			ArtifactID: uuid.New().String(),
			Name:       "Ad Creative",
			Parts:      []MessagePart{TextPart(absoluteURL(baseURL, cmp.ImageURL))},
		})
	}
	if cmp.AudioURL != "" {
		artifacts = append(artifacts, Artifact{
			ArtifactID: uuid.New().String(),
			Name:       "Audio Ad",
			Parts:      []MessagePart{TextPart(absoluteURL(baseURL, cmp.AudioURL))},
		})
	}

	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				ContextID: contextID,
				Parts:     []MessagePart{TextPart(responseText)},
			},
		},
		Artifacts: artifacts,
	}
}

func (h *A2AHandler) createErrorTaskResult(taskID, contextID, errorMsg string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				ContextID: contextID,
				Parts:     []MessagePart{TextPart(errorMsg)},
			},
		},
	}
}

// FormatCampaign renders a campaign as markdown. Missing sections show the
// extractor fallback text.
func FormatCampaign(cmp *models.Campaign, baseURL string) string {
	section := func(b *strings.Builder, title, body string) {
		if body = strings.TrimSpace(body); body == "" {
			body = extractor.Fallback
		}
		b.WriteString(fmt.Sprintf("## %s\n\n%s\n\n", title, body))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Campaign for: %s\n\n", cmp.Product))
	b.WriteString(fmt.Sprintf("**Target audience:** %s\n\n", cmp.Audience))

	section(&b, extractor.AdCopy, cmp.AdCopy)
	section(&b, extractor.EmailCopy, cmp.Email)
	section(&b, extractor.SocialPosts, cmp.Social)
	section(&b, extractor.RadioScript, cmp.RadioScript)

	if cmp.ImageURL != "" {
		b.WriteString(fmt.Sprintf("**Ad creative:** %s\n", absoluteURL(baseURL, cmp.ImageURL)))
	}
	if cmp.AudioURL != "" {
		b.WriteString(fmt.Sprintf("**Audio ad:** %s\n", absoluteURL(baseURL, cmp.AudioURL)))
	}
	for _, n := range cmp.Notices {
		b.WriteString(fmt.Sprintf("\n> %s", n.Message))
	}

	return strings.TrimSpace(b.String())
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + c.Request.Host
}

func absoluteURL(baseURL, u string) string {
	if baseURL == "" || !strings.HasPrefix(u, "/") {
		return u
	}
	return strings.TrimRight(baseURL, "/") + u
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id json.RawMessage, result TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      rawID(id),
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id json.RawMessage, message string, code int) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      rawID(id),
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
	})
}

// rawID echoes the request id, or null when there was none.
func rawID(id json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(id)) == 0 {
		return json.RawMessage("null")
	}
	return id
}

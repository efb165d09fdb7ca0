package webhook

import (
	"context"
	"net/http"

	"leadverify/internal/vapi"
	"leadverify/platform/httpkit"
	"leadverify/platform/logger"

	"github.com/gin-gonic/gin"
)

// Message types delivered by the calling provider.
const (
	messageEndOfCallReport = "end-of-call-report"
	messageStatusUpdate    = "status-update"
)

const statusEnded = "ended"

// Reconciler is the verification service surface the webhook depends on.
type Reconciler interface {
	CompleteCall(ctx context.Context, jobID, callID, endedReason, summary string) error
	CacheInterimResult(callID, endedReason, summary string)
}

// Handler handles inbound call lifecycle webhooks.
type Handler struct {
	rec Reconciler
	log *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(rec Reconciler, log *logger.Logger) *Handler {
	return &Handler{rec: rec, log: log}
}

type vapiEnvelope struct {
	Message vapiMessage `json:"message"`
}

type vapiMessage struct {
	Type        string        `json:"type"`
	Status      string        `json:"status"`
	EndedReason string        `json:"endedReason"`
	Analysis    *vapiAnalysis `json:"analysis"`
	Call        vapiCall      `json:"call"`
}

type vapiAnalysis struct {
	Summary string `json:"summary"`
}

type vapiCall struct {
	ID       string             `json:"id"`
	Metadata *vapi.CallMetadata `json:"metadata"`
}

func (m vapiMessage) summary() string {
	if m.Analysis == nil {
		return ""
	}
	return m.Analysis.Summary
}

// HandleCallEvent processes a call lifecycle message. End-of-call reports
// resolve the call; terminal status updates are cached as a fallback
// outcome; everything else is acknowledged and dropped.
// POST /api/v1/webhook/vapi-end-call
func (h *Handler) HandleCallEvent(c *gin.Context) {
	var envelope vapiEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "malformed webhook payload", err.Error())
		return
	}

	msg := envelope.Message
	h.log.WebhookEvent(msg.Type, msg.Call.ID, msg.EndedReason)

	switch msg.Type {
	case messageEndOfCallReport:
		h.handleEndOfCall(c, msg)
	case messageStatusUpdate:
		h.handleStatusUpdate(c, msg)
	default:
		httpkit.OK(c, gin.H{"received": true})
	}
}

func (h *Handler) handleEndOfCall(c *gin.Context, msg vapiMessage) {
	if msg.Call.ID == "" {
		httpkit.Error(c, http.StatusBadRequest, "missing call ID", nil)
		return
	}
	meta := msg.Call.Metadata
	if meta == nil || meta.JobID == "" || meta.Lead.PhoneNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, "missing job metadata", nil)
		return
	}

	err := h.rec.CompleteCall(c.Request.Context(), meta.JobID, msg.Call.ID, msg.EndedReason, msg.summary())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"received": true})
}

func (h *Handler) handleStatusUpdate(c *gin.Context, msg vapiMessage) {
	if msg.Call.ID != "" && msg.Status == statusEnded && msg.EndedReason != "" {
		h.rec.CacheInterimResult(msg.Call.ID, msg.EndedReason, msg.summary())
	}
	httpkit.OK(c, gin.H{"received": true})
}

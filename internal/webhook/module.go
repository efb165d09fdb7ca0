// Package webhook provides the inbound call event bounded context module.
package webhook

import (
	apphttp "leadverify/internal/http"
	"leadverify/platform/logger"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the webhook module.
func NewModule(rec Reconciler, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(rec, log)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts webhook routes on the provided router context.
// The provider calls this endpoint directly, so it carries no auth beyond
// the unguessable call IDs and job IDs in the payload.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/webhook/vapi-end-call", m.handler.HandleCallEvent)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

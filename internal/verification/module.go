// Package verification provides the lead verification bounded context:
// batch submission, call scheduling against the phone number pool and
// reconciliation of call outcomes.
package verification

import (
	"context"
	"time"

	apphttp "leadverify/internal/http"
	"leadverify/internal/vapi"
	"leadverify/internal/verification/domain"
	"leadverify/internal/verification/handler"
	"leadverify/internal/verification/service"
	"leadverify/platform/config"
	"leadverify/platform/events"
	"leadverify/platform/logger"
	"leadverify/platform/validator"
)

// Config combines the configuration interfaces the module needs.
type Config interface {
	config.VapiConfig
	config.VerificationConfig
	GetJobRetention() time.Duration
}

// VapiCaller is the slice of the Vapi client the module depends on.
type VapiCaller interface {
	ListPhoneNumbers(ctx context.Context) ([]vapi.PhoneNumber, error)
	CreateCall(ctx context.Context, req vapi.CreateCallRequest) (*vapi.Call, error)
}

// Module is the verification bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule creates and initializes the verification module.
func NewModule(
	client VapiCaller,
	sink service.ResultSink,
	cleanup service.CleanupScheduler,
	store service.JobStore,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
	cfg Config,
) *Module {
	svc := service.NewService(service.Options{
		Store:              store,
		Numbers:            &vapiNumberSource{client: client},
		Placer:             &vapiCallPlacer{client: client, cfg: cfg},
		Sink:               sink,
		Cleanup:            cleanup,
		Bus:                bus,
		Log:                log,
		Statuses:           domain.DefaultStatusTable().WithOverrides(cfg.GetStatusOverrides()),
		MaxConcurrentCalls: cfg.GetMaxConcurrentCalls(),
		CallTimeout:        cfg.GetCallTimeout(),
		JobRetention:       cfg.GetJobRetention(),
	})

	return &Module{
		handler: handler.NewHandler(svc, val),
		svc:     svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "verification"
}

// Service exposes the scheduler for wiring into the webhook module and the
// cleanup worker.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts verification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/verify-leads")
	group.POST("", ctx.SubmitRateLimiter.RateLimit(), m.handler.HandleSubmit)
	group.GET("/:jobId/status", m.handler.HandleStatus)
	group.GET("/:jobId/result", m.handler.HandleResult)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// vapiNumberSource adapts the Vapi client to the scheduler's NumberSource.
type vapiNumberSource struct {
	client VapiCaller
}

func (s *vapiNumberSource) ListNumbers(ctx context.Context) ([]domain.PhoneResource, error) {
	numbers, err := s.client.ListPhoneNumbers(ctx)
	if err != nil {
		return nil, err
	}
	resources := make([]domain.PhoneResource, len(numbers))
	for i, n := range numbers {
		resources[i] = domain.PhoneResource{ID: n.ID, Number: n.Number}
	}
	return resources, nil
}

// vapiCallPlacer adapts the Vapi client to the scheduler's CallPlacer,
// building the transient assistant from configuration and the per-lead
// prompts supplied by the scheduler.
type vapiCallPlacer struct {
	client VapiCaller
	cfg    Config
}

func (p *vapiCallPlacer) PlaceCall(ctx context.Context, req service.CallRequest) (string, error) {
	call, err := p.client.CreateCall(ctx, buildCallRequest(p.cfg, req))
	if err != nil {
		return "", err
	}
	return call.ID, nil
}

func buildCallRequest(cfg Config, req service.CallRequest) vapi.CreateCallRequest {
	assistant := vapi.Assistant{
		FirstMessageMode: "assistant-waits-for-user",
		Model: vapi.Model{
			Provider: cfg.GetModelProvider(),
			Model:    cfg.GetModelName(),
			Messages: []vapi.Message{{Role: "system", Content: req.AssistantPrompt}},
			Tools:    []vapi.Tool{{Type: "endCall"}},
		},
		Transcriber: &vapi.Transcriber{
			Provider: cfg.GetTranscriberProvider(),
			Model:    cfg.GetTranscriberModel(),
		},
		Voice: &vapi.Voice{
			Provider: cfg.GetVoiceProvider(),
			VoiceID:  cfg.GetVoiceID(),
		},
		EndCallMessage:     cfg.GetEndCallMessage(),
		MaxDurationSeconds: int(cfg.GetMaxCallDuration().Seconds()),
		AnalysisPlan: &vapi.AnalysisPlan{
			SummaryPlan: &vapi.SummaryPlan{
				Enabled:  true,
				Messages: []vapi.Message{{Role: "system", Content: req.SummaryPrompt}},
			},
		},
		Server: &vapi.Server{URL: cfg.GetWebhookURL()},
	}

	return vapi.CreateCallRequest{
		PhoneNumberID: req.PhoneNumberID,
		Customer:      vapi.Customer{Number: req.Destination},
		Assistant:     assistant,
		Metadata: &vapi.CallMetadata{
			JobID: req.JobID,
			Lead: vapi.LeadMetadata{
				PhoneNumber: req.Lead.PhoneNumber,
				FirstName:   req.Lead.FirstName,
				LastName:    req.Lead.LastName,
				Company:     req.Lead.Company,
			},
		},
	}
}

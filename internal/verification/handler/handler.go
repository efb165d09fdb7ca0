// Package handler exposes the verification HTTP endpoints.
package handler

import (
	"context"
	"net/http"

	"leadverify/internal/verification/domain"
	"leadverify/internal/verification/transport"
	"leadverify/platform/httpkit"
	"leadverify/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidRequest = "invalid request body"
	errValidation     = "validation error"
	errMissingFile    = "multipart submissions require a 'file' field"
)

// Scheduler is the verification service surface the handler depends on.
type Scheduler interface {
	Submit(ctx context.Context, leads []domain.Lead) (string, error)
	Status(jobID string) (domain.Snapshot, error)
	ResultsLocation(jobID string) (string, error)
}

// Handler handles verification HTTP requests.
type Handler struct {
	svc Scheduler
	val *validator.Validator
}

// NewHandler creates a new verification handler.
func NewHandler(svc Scheduler, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// HandleSubmit accepts a batch of leads for verification, either as a JSON
// body or as a multipart CSV upload, and returns the job ID.
// POST /api/v1/verify-leads
func (h *Handler) HandleSubmit(c *gin.Context) {
	var leads []domain.Lead

	if isMultipart(c) {
		parsed, ok := h.parseUpload(c)
		if !ok {
			return
		}
		leads = parsed
	} else {
		var req transport.SubmitLeadsRequest
		if !h.bindAndValidate(c, &req) {
			return
		}
		leads = req.ToDomain()
	}

	jobID, err := h.svc.Submit(c.Request.Context(), leads)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Accepted(c, transport.SubmitLeadsResponse{JobID: jobID, Total: len(leads)})
}

// HandleStatus reports a job's progress.
// GET /api/v1/verify-leads/:jobId/status
func (h *Handler) HandleStatus(c *gin.Context) {
	jobID := c.Param("jobId")

	snap, err := h.svc.Status(jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromSnapshot(jobID, snap))
}

// HandleResult serves the completed job's result file as a CSV download.
// GET /api/v1/verify-leads/:jobId/result
func (h *Handler) HandleResult(c *gin.Context) {
	jobID := c.Param("jobId")

	path, err := h.svc.ResultsLocation(jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	c.FileAttachment(path, "results-"+jobID+".csv")
}

func (h *Handler) parseUpload(c *gin.Context) ([]domain.Lead, bool) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, errMissingFile, err.Error())
		return nil, false
	}
	defer file.Close()

	leads, err := parseLeadsCSV(file)
	if httpkit.HandleError(c, err) {
		return nil, false
	}
	return leads, true
}

func (h *Handler) bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errValidation, err.Error())
		return false
	}
	return true
}

func isMultipart(c *gin.Context) bool {
	contentType := c.ContentType()
	return contentType == "multipart/form-data"
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aries-go/vcprover/internal/logger"
	"github.com/aries-go/vcprover/internal/telemetry"
	"github.com/aries-go/vcprover/pkg/prover"
	"github.com/aries-go/vcprover/pkg/vcerrors"
	"github.com/aries-go/vcprover/pkg/walletstore"
)

// ProofHandler exposes the handle-keyed prover operations over REST.
type ProofHandler struct {
	Service     *prover.Service
	Connections *ConnectionRegistry

	// History records presentation lifecycle events for audit/inspection.
	// Optional: a nil History is a silent no-op, the same convention
	// prover.Recorder and revocation.Recorder follow.
	History walletstore.Store
}

// NewProofHandler constructs a ProofHandler wired to svc and a connection
// registry for resolving the connHandle field request bodies carry. history
// may be nil to disable presentation-history recording.
func NewProofHandler(svc *prover.Service, conns *ConnectionRegistry, history walletstore.Store) *ProofHandler {
	return &ProofHandler{Service: svc, Connections: conns, History: history}
}

// recordHistory upserts a presentation-history row, logging but not failing
// the request if the store errors.
func (h *ProofHandler) recordHistory(ctx context.Context, handle, sourceID string, state int) {
	if h.History == nil {
		return
	}
	err := h.History.Put(ctx, walletstore.PresentationRecord{
		Handle:   handle,
		SourceID: sourceID,
		State:    prover.Kind(state).String(),
	})
	if err != nil {
		logger.WarnCtx(ctx, "failed to record presentation history", "handle", handle, "error", err)
	}
}

type createProofRequest struct {
	SourceID string          `json:"source_id"`
	Request  json.RawMessage `json:"presentation_request"`
}

// Create handles POST /v1/proofs.
func (h *ProofHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse(err.Error()))
		return
	}

	ctx, span := telemetry.StartProverSpan(r.Context(), telemetry.SpanCreateProof, req.SourceID)
	defer span.End()

	handle, err := h.Service.CreateProof(req.SourceID, req.Request)
	if err != nil {
		telemetry.RecordError(ctx, err)
		writeError(w, err)
		return
	}

	if state, stateErr := h.Service.GetState(handle); stateErr == nil {
		h.recordHistory(ctx, handle, req.SourceID, state)
	}

	JSON(w, http.StatusCreated, OKResponse(map[string]string{"handle": handle}))
}

type generateProofRequest struct {
	SelectedCredentials json.RawMessage `json:"selected_credentials"`
	SelfAttestedAttrs   json.RawMessage `json:"self_attested_attrs"`
}

// Generate handles POST /v1/proofs/{handle}/generate.
func (h *ProofHandler) Generate(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	var req generateProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse(err.Error()))
		return
	}

	ctx, span := telemetry.StartProverSpan(r.Context(), telemetry.SpanGenerateProof, handle)
	defer span.End()

	if err := h.Service.GenerateProof(ctx, handle, req.SelectedCredentials, req.SelfAttestedAttrs); err != nil {
		telemetry.RecordError(ctx, err)
		writeError(w, err)
		return
	}

	JSON(w, http.StatusOK, OKResponse(nil))
}

type connHandleRequest struct {
	ConnectionHandle string `json:"connection_handle"`
}

// Send handles POST /v1/proofs/{handle}/send.
func (h *ProofHandler) Send(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	var req connHandleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse(err.Error()))
		return
	}

	conn, ok := h.Connections.Get(req.ConnectionHandle)
	if !ok {
		JSON(w, http.StatusNotFound, ErrorResponse("unknown connection handle"))
		return
	}

	ctx, span := telemetry.StartProverSpan(r.Context(), telemetry.SpanSendProof, handle, telemetry.ConnectionID(req.ConnectionHandle))
	defer span.End()

	if err := h.Service.SendProof(ctx, handle, conn, req.ConnectionHandle); err != nil {
		telemetry.RecordError(ctx, err)
		writeError(w, err)
		return
	}

	JSON(w, http.StatusOK, OKResponse(nil))
}

// Reject handles POST /v1/proofs/{handle}/reject.
func (h *ProofHandler) Reject(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	var req connHandleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse(err.Error()))
		return
	}

	conn, ok := h.Connections.Get(req.ConnectionHandle)
	if !ok {
		JSON(w, http.StatusNotFound, ErrorResponse("unknown connection handle"))
		return
	}

	if err := h.Service.RejectProof(r.Context(), handle, conn, req.ConnectionHandle); err != nil {
		writeError(w, err)
		return
	}

	JSON(w, http.StatusOK, OKResponse(nil))
}

type declineRequest struct {
	Reason   *string         `json:"reason,omitempty"`
	Proposal json.RawMessage `json:"proposal,omitempty"`
}

// Decline handles POST /v1/proofs/{handle}/decline.
func (h *ProofHandler) Decline(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	var req declineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse(err.Error()))
		return
	}

	if err := h.Service.DeclinePresentationRequest(handle, req.Reason, req.Proposal); err != nil {
		writeError(w, err)
		return
	}

	JSON(w, http.StatusOK, OKResponse(nil))
}

type updateStateRequest struct {
	Message          json.RawMessage `json:"message,omitempty"`
	ConnectionHandle string          `json:"connection_handle,omitempty"`
}

// UpdateState handles POST /v1/proofs/{handle}/update-state.
func (h *ProofHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	var req updateStateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JSON(w, http.StatusBadRequest, ErrorResponse(err.Error()))
			return
		}
	}

	ctx, span := telemetry.StartProverSpan(r.Context(), telemetry.SpanUpdateState, handle)
	defer span.End()

	state, err := h.Service.UpdateState(ctx, handle, req.Message, req.ConnectionHandle)
	if err != nil {
		telemetry.RecordError(ctx, err)
		writeError(w, err)
		return
	}

	if sourceID, sourceErr := h.Service.GetSourceID(handle); sourceErr == nil {
		h.recordHistory(ctx, handle, sourceID, state)
	}

	JSON(w, http.StatusOK, OKResponse(map[string]int{"state": state}))
}

// Get handles GET /v1/proofs/{handle}.
func (h *ProofHandler) Get(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	state, err := h.Service.GetState(handle)
	if err != nil {
		writeError(w, err)
		return
	}

	status, err := h.Service.GetPresentationStatus(handle)
	if err != nil {
		writeError(w, err)
		return
	}

	sourceID, err := h.Service.GetSourceID(handle)
	if err != nil {
		writeError(w, err)
		return
	}

	JSON(w, http.StatusOK, OKResponse(map[string]interface{}{
		"state":     state,
		"status":    status,
		"source_id": sourceID,
	}))
}

// Credentials handles GET /v1/proofs/{handle}/credentials.
func (h *ProofHandler) Credentials(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	creds, err := h.Service.RetrieveCredentials(handle)
	if err != nil {
		writeError(w, err)
		return
	}

	JSON(w, http.StatusOK, OKResponse(creds))
}

// Export handles GET /v1/proofs/{handle}/export.
func (h *ProofHandler) Export(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	raw, err := h.Service.ToString(handle)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// Import handles POST /v1/proofs/import.
func (h *ProofHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse(err.Error()))
		return
	}

	handle, err := h.Service.FromString(raw)
	if err != nil {
		writeError(w, err)
		return
	}

	JSON(w, http.StatusCreated, OKResponse(map[string]string{"handle": handle}))
}

// writeError maps a vcerrors.Error's Kind to an HTTP status and writes an
// error Response; any other error is reported as 500.
func writeError(w http.ResponseWriter, err error) {
	var vcErr *vcerrors.Error
	if !errors.As(err, &vcErr) {
		JSON(w, http.StatusInternalServerError, ErrorResponse(err.Error()))
		return
	}

	switch vcErr.Kind {
	case vcerrors.InvalidJSON, vcerrors.InvalidProofCredentialData, vcerrors.InvalidOption:
		JSON(w, http.StatusBadRequest, ErrorResponse(err.Error()))
	case vcerrors.InvalidConnectionHandle, vcerrors.InvalidDisclosedProofHandle, vcerrors.InvalidSchema:
		JSON(w, http.StatusNotFound, ErrorResponse(err.Error()))
	case vcerrors.InvalidState, vcerrors.ActionNotSupported:
		JSON(w, http.StatusConflict, ErrorResponse(err.Error()))
	default:
		JSON(w, http.StatusInternalServerError, ErrorResponse(err.Error()))
	}
}

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aries-go/vcprover/internal/api/auth"
	apimiddleware "github.com/aries-go/vcprover/internal/api/middleware"
	"github.com/aries-go/vcprover/internal/logger"
	"github.com/aries-go/vcprover/pkg/prover"
	"github.com/aries-go/vcprover/pkg/walletstore"
)

// NewRouter builds the control-plane chi router: a JWT-guarded REST surface
// over svc's handle-keyed operations, with an unauthenticated /healthz for
// liveness probes.
//
// Routes:
//   - GET  /healthz                          - liveness probe, unauthenticated
//   - POST /v1/proofs                        - create_proof
//   - POST /v1/proofs/{handle}/generate      - generate_proof
//   - POST /v1/proofs/{handle}/send          - send_proof
//   - POST /v1/proofs/{handle}/reject        - reject_proof
//   - POST /v1/proofs/{handle}/decline       - decline_presentation_request
//   - POST /v1/proofs/{handle}/update-state  - update_state
//   - GET  /v1/proofs/{handle}                - get_state/get_presentation_status/get_source_id
//   - GET  /v1/proofs/{handle}/credentials    - retrieve_credentials
//   - GET  /v1/proofs/{handle}/export         - to_string
//   - POST /v1/proofs/import                  - from_string
func NewRouter(svc *prover.Service, conns *ConnectionRegistry, jwtService *auth.JWTService, history walletstore.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, HealthyResponse(nil))
	})

	h := NewProofHandler(svc, conns, history)

	r.Route("/v1/proofs", func(r chi.Router) {
		r.Use(apimiddleware.JWTAuth(jwtService))

		r.Post("/", h.Create)
		r.Post("/import", h.Import)

		r.Route("/{handle}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/generate", h.Generate)
			r.Post("/send", h.Send)
			r.Post("/reject", h.Reject)
			r.Post("/decline", h.Decline)
			r.Post("/update-state", h.UpdateState)
			r.Get("/credentials", h.Credentials)
			r.Get("/export", h.Export)
		})
	})

	return r
}

// requestLogger logs request start (DEBUG) and completion (INFO) through
// the package logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.Info("API request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}

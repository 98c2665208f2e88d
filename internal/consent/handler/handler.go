package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	clientmodels "credo-consent/internal/client/models"
	"credo-consent/internal/consent/service"
	"credo-consent/internal/interaction/models"
	id "credo-consent/pkg/domain"
	dErrors "credo-consent/pkg/domain-errors"
	"credo-consent/pkg/platform/httputil"
	request "credo-consent/pkg/platform/middleware/request"
)

// Service defines the consent flow operations used by the HTTP layer.
type Service interface {
	Submit(ctx context.Context, sub service.Submission) (string, error)
	GetInteractionDetails(ctx context.Context, uid string) (*models.Interaction, error)
	GetClientMetadata(ctx context.Context, clientID id.ClientID) (clientmodels.Metadata, error)
	Abort(ctx context.Context, uid string) (string, error)
}

// Finalizer turns a provider redirect instruction into an external URL.
type Finalizer interface {
	Finalize(instruction string, r *http.Request) (*url.URL, error)
}

// Handler handles the interaction endpoints used by the consent UI.
type Handler struct {
	logger    *slog.Logger
	consent   Service
	finalizer Finalizer
	timeout   time.Duration
}

// New creates a new consent Handler.
func New(consent Service, finalizer Finalizer, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		consent:   consent,
		finalizer: finalizer,
		timeout:   30 * time.Second,
	}
}

// Register registers the interaction routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	interactionRouter := chi.NewRouter()
	interactionRouter.Use(request.Recovery(h.logger))
	interactionRouter.Use(request.Logger(h.logger))
	interactionRouter.Use(request.Timeout(h.timeout))
	interactionRouter.Post("/interaction/consent", h.handleSubmit)
	interactionRouter.Get("/interaction/{uid}", h.handleGetInteraction)
	interactionRouter.Get("/interaction/{uid}/abort", h.handleAbort)

	r.Mount("/", interactionRouter)
}

// submitRequest is the consent form. The UI may post it urlencoded or as JSON.
// The decision is matched exactly, so it is never trimmed.
type submitRequest struct {
	Consent string `json:"consent" sanitize:"-"`
	UID     string `json:"uid"`
}

// interactionResponse is what the UI needs to render a prompt.
type interactionResponse struct {
	UID       id.InteractionUID      `json:"uid"`
	Prompt    models.Prompt          `json:"prompt"`
	Params    map[string]string      `json:"params"`
	Client    *clientmodels.Metadata `json:"client,omitempty"`
	AccountID id.AccountID           `json:"account_id,omitempty"`
}

// handleSubmit resolves a consent or login decision and redirects the
// browser back into the authorization flow.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, err := decodeSubmit(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid consent submission",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	instruction, err := h.consent.Submit(ctx, service.Submission{UID: req.UID, Decision: req.Consent})
	if err != nil {
		h.writeServiceError(ctx, w, err, "consent submission failed")
		return
	}
	h.redirect(w, r, instruction)
}

func (h *Handler) handleGetInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	interaction, err := h.consent.GetInteractionDetails(ctx, uid)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to load interaction")
		return
	}

	resp := interactionResponse{
		UID:       interaction.UID,
		Prompt:    interaction.Prompt,
		Params:    interaction.Params,
		AccountID: interaction.SessionAccountID(),
	}
	if clientID := interaction.ClientID(); !clientID.IsNil() {
		meta, err := h.consent.GetClientMetadata(ctx, clientID)
		switch {
		case err == nil:
			resp.Client = &meta
		case dErrors.HasCode(err, dErrors.CodeNotFound):
			h.logger.WarnContext(ctx, "interaction references an unknown client",
				"request_id", request.GetRequestID(ctx),
				"client_id", clientID.String(),
			)
		default:
			h.writeServiceError(ctx, w, err, "failed to load client metadata")
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAbort(w http.ResponseWriter, r *http.Request) {
	instruction, err := h.consent.Abort(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(r.Context(), w, err, "failed to abort interaction")
		return
	}
	h.redirect(w, r, instruction)
}

// redirect finalizes instruction and answers with a 303 so the browser
// follows with a GET.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, instruction string) {
	target, err := h.finalizer.Finalize(instruction, r)
	if err != nil {
		h.writeServiceError(r.Context(), w, err, "failed to finalize redirect")
		return
	}
	forwardHeaders(w.Header(), r.Header)
	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	if dErrors.CodeOf(err) == dErrors.CodeServerError {
		h.logger.ErrorContext(ctx, msg,
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

func decodeSubmit(r *http.Request) (submitRequest, error) {
	var req submitRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Consent = r.PostForm.Get("consent")
		req.UID = r.PostForm.Get("uid")
	}
	sanitize(&req)
	return req, nil
}

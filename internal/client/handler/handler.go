// Package handler exposes the client REST surface under /clients.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clientele/internal/client/models"
	"clientele/internal/client/service"
	id "clientele/pkg/domain"
	dErrors "clientele/pkg/domain-errors"
	"clientele/pkg/platform/httputil"
	"clientele/pkg/requestcontext"
)

// Service defines the client operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, input service.CreateInput) (*models.Client, error)
	Get(ctx context.Context, clientID id.ClientID) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	ListByCountry(ctx context.Context, country string) ([]*models.Client, error)
	Update(ctx context.Context, clientID id.ClientID, input service.UpdateInput) (*models.Client, error)
	Delete(ctx context.Context, clientID id.ClientID) error
}

// Handler wires the /clients endpoints to the client service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the client routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/country/{code}", h.handleListByCountry)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreateClientRequest](w, r, h.logger)
	if !ok {
		return
	}

	client, err := h.service.Create(ctx, req.Input())
	if err != nil {
		h.logFailure(ctx, "create client failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "client created",
		"request_id", requestID,
		"client_id", client.ID,
		"country", client.Country,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromClient(client))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := h.service.List(ctx)
	if err != nil {
		h.logFailure(ctx, "list clients failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClients(clients))
}

func (h *Handler) handleListByCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := h.service.ListByCountry(ctx, chi.URLParam(r, "code"))
	if err != nil {
		h.logFailure(ctx, "list clients by country failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClients(clients))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	client, err := h.service.Get(ctx, clientID)
	if err != nil {
		h.logFailure(ctx, "get client failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClient(client))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateClientRequest](w, r, h.logger)
	if !ok {
		return
	}

	client, err := h.service.Update(ctx, clientID, req.Input())
	if err != nil {
		h.logFailure(ctx, "update client failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "client updated",
		"request_id", requestID,
		"client_id", client.ID,
		"country", client.Country,
	)
	httputil.WriteJSON(w, http.StatusOK, FromClient(client))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, clientID); err != nil {
		h.logFailure(ctx, "delete client failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "client deleted",
		"request_id", requestID,
		"client_id", clientID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// clientID parses the {id} path parameter. A malformed ID cannot match any
// record, so it surfaces as 404 rather than 400.
func (h *Handler) clientID(w http.ResponseWriter, r *http.Request) (id.ClientID, bool) {
	clientID, err := id.ParseClientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "client not found"))
		return id.ClientID{}, false
	}
	return clientID, true
}

// logFailure logs expected rejections at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err.Error())
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err.Error())
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/domain"
	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/provider"
)

// MessageHandler serves the message dispatch endpoint.
type MessageHandler struct {
	provider provider.Provider
	logger   *slog.Logger
}

// NewMessageHandler builds the handler around any Provider.
func NewMessageHandler(p provider.Provider, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		provider: p,
		logger:   logger.With("handler", "message"),
	}
}

// RegisterRoutes registers the dispatch routes with the given router.
func (h *MessageHandler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/messages", h.handleSendMessage)
}

func (h *MessageHandler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	var msg domain.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		logger.WarnContext(ctx, "failed to decode message request", "error", err)
		h.writeResponse(ctx, w, logger,
			domain.NewFailureResponse("Invalid request payload: "+err.Error()),
			http.StatusUnprocessableEntity)
		return
	}

	if validationErrs := msg.Validate(); len(validationErrs) > 0 {
		formatted := domain.FormatErrors(validationErrs)
		logger.InfoContext(ctx, "message rejected by validation", "error_message", formatted)
		h.writeResponse(ctx, w, logger,
			domain.NewFailureResponse(formatted),
			http.StatusUnprocessableEntity)
		return
	}

	response, err := h.provider.Send(ctx, &msg)
	if err != nil {
		if errors.Is(err, domain.ErrConnectionTimeout) {
			h.writeResponse(ctx, w, logger,
				domain.NewFailureResponse(domain.ErrConnectionTimeout.Error()),
				http.StatusGatewayTimeout)
			return
		}

		logger.ErrorContext(ctx, "provider call failed", "error", err)
		h.writeResponse(ctx, w, logger,
			domain.NewFailureResponse("Internal error while dispatching the message"),
			http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if !response.Success {
		status = http.StatusUnprocessableEntity
	}
	h.writeResponse(ctx, w, logger, response, status)
}

func (h *MessageHandler) writeResponse(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, response *domain.Response, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
		return
	}

	logger.InfoContext(ctx, "final response from dispatcher",
		"status_code", status,
		"success", response.Success,
		"error_message", response.ErrorMessage,
		"id", response.ID)
}

package handler

import (
	"log/slog"
	"net/http"

	chatSvc "arbor/internal/domain/services/chat"
	"arbor/internal/httputil"
)

// ChatHandler handles conversation HTTP requests.
// Handlers only communicate with services, never with the store directly.
type ChatHandler struct {
	conversation chatSvc.ConversationService
	logger       *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversation chatSvc.ConversationService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		conversation: conversation,
		logger:       logger,
	}
}

// PostMessage posts a user message and runs the full exchange
// POST /api/messages
// Returns 201 with the pruned forest snapshot
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req chatSvc.PostMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	forest, err := h.conversation.PostMessage(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, forest)
}

// DeleteMessage removes a non-root message and all its descendants
// DELETE /api/messages/{id}
func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := PathParam(w, r, "id", "Message ID")
	if !ok {
		return
	}

	forest, err := h.conversation.DeleteMessage(r.Context(), nodeID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, forest)
}

// GetForest returns the serialized forest with no pruning side effect
// GET /api/forest
func (h *ChatHandler) GetForest(w http.ResponseWriter, r *http.Request) {
	forest, err := h.conversation.ListForest(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, forest)
}

// GetMessagePath retrieves the ancestor chain for a message, root first
// GET /api/messages/{id}/path
func (h *ChatHandler) GetMessagePath(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := PathParam(w, r, "id", "Message ID")
	if !ok {
		return
	}

	path, err := h.conversation.Path(r.Context(), nodeID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, path)
}

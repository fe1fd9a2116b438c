package conversations

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/good-yellow-bee/chatriver/internal/api/events"
	"github.com/good-yellow-bee/chatriver/internal/metrics"
	"github.com/good-yellow-bee/chatriver/internal/models"
	"github.com/good-yellow-bee/chatriver/internal/naming"
	"github.com/good-yellow-bee/chatriver/internal/store"
)

// Response helpers (same pattern across resources)
type errorResponse struct {
	Error errorBody `json:"error"`
}
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
type dataResponse struct {
	Data any `json:"data"`
}

const (
	errCodeBadRequest       = "BAD_REQUEST"
	errCodeValidationFailed = "VALIDATION_FAILED"
	errCodeNotFound         = "NOT_FOUND"
	errCodeInternalError    = "INTERNAL_ERROR"
)

func jsonError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Code: code, Message: message}})
}

func jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dataResponse{Data: data})
}

func jsonCreated(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dataResponse{Data: data})
}

func jsonNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Response types
type ConversationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type ConversationDetailResponse struct {
	ConversationResponse
	Messages []*MessageResponse `json:"messages"`
}

type Handler struct {
	store  store.Store
	namer  *naming.Engine
	broker *events.Broker
}

func NewHandler(st store.Store, namer *naming.Engine, broker *events.Broker) *Handler {
	return &Handler{store: st, namer: namer, broker: broker}
}

// Request types
type CreateRequest struct {
	UserID       string `json:"user_id"`
	FirstMessage string `json:"first_message"`
}

type RenameRequest struct {
	Name string `json:"name"`
}

type AppendMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Create creates a conversation, deriving its name from the first message.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid request body")
		return
	}

	if err := ValidateUserID(req.UserID); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}

	ctx := r.Context()
	now := time.Now()
	conv := &models.Conversation{
		ID:        uuid.New().String(),
		UserID:    strings.TrimSpace(req.UserID),
		Name:      h.namer.GenerateTitle(req.FirstMessage),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.Conversations().Create(ctx, conv); err != nil {
		log.Printf("create conversation error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	if strings.TrimSpace(req.FirstMessage) != "" {
		msg := &models.Message{
			ID:             uuid.New().String(),
			ConversationID: conv.ID,
			Role:           models.RoleUser,
			Content:        req.FirstMessage,
			CreatedAt:      now,
		}
		if err := h.store.Messages().Append(ctx, msg); err != nil {
			log.Printf("create conversation error: append first message: %v", err)
			jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
			return
		}
		metrics.MessagesAppended.Inc()
	}

	metrics.ConversationsCreated.Inc()
	h.broker.Publish(events.Event{
		Type:           events.TypeCreated,
		ConversationID: conv.ID,
		UserID:         conv.UserID,
		Name:           conv.Name,
		At:             now,
	})

	log.Printf("conversation created: %q (%s)", conv.Name, conv.ID)
	jsonCreated(w, conversationToResponse(conv))
}

// List returns conversations for a user, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if err := ValidateUserID(userID); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}

	convs, err := h.store.Conversations().ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("list conversations error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	resp := make([]*ConversationResponse, len(convs))
	for i, c := range convs {
		resp[i] = conversationToResponse(c)
	}
	jsonOK(w, resp)
}

// GetByID returns a conversation with its messages.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "conversation id required")
		return
	}

	ctx := r.Context()
	conv, err := h.store.Conversations().GetByID(ctx, id)
	if err != nil {
		log.Printf("get conversation error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if conv == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "conversation not found")
		return
	}

	msgs, err := h.store.Messages().ListByConversation(ctx, id)
	if err != nil {
		log.Printf("get conversation error: list messages: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	detail := &ConversationDetailResponse{
		ConversationResponse: *conversationToResponse(conv),
		Messages:             make([]*MessageResponse, len(msgs)),
	}
	for i, m := range msgs {
		detail.Messages[i] = messageToResponse(m)
	}
	jsonOK(w, detail)
}

// Rename updates a conversation's display name after validation.
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "conversation id required")
		return
	}

	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid request body")
		return
	}

	if err := ValidateRename(req.Name); err != nil {
		metrics.RenamesRejected.WithLabelValues(rejectionReason(err)).Inc()
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}

	ctx := r.Context()
	conv, err := h.store.Conversations().GetByID(ctx, id)
	if err != nil {
		log.Printf("rename conversation error: get: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if conv == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "conversation not found")
		return
	}

	conv.Name = naming.CleanName(req.Name)
	conv.UpdatedAt = time.Now()

	if err := h.store.Conversations().Update(ctx, conv); err != nil {
		log.Printf("rename conversation error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	h.broker.Publish(events.Event{
		Type:           events.TypeRenamed,
		ConversationID: conv.ID,
		UserID:         conv.UserID,
		Name:           conv.Name,
		At:             conv.UpdatedAt,
	})

	log.Printf("conversation renamed: %q (%s)", conv.Name, conv.ID)
	jsonOK(w, conversationToResponse(conv))
}

// AppendMessage appends a message to a conversation.
func (h *Handler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "conversation id required")
		return
	}

	var req AppendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid request body")
		return
	}
	if err := ValidateMessage(req.Role, req.Content); err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}

	ctx := r.Context()
	conv, err := h.store.Conversations().GetByID(ctx, id)
	if err != nil {
		log.Printf("append message error: get conversation: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if conv == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "conversation not found")
		return
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: id,
		Role:           models.ParseRole(req.Role),
		Content:        req.Content,
		CreatedAt:      time.Now(),
	}
	if err := h.store.Messages().Append(ctx, msg); err != nil {
		log.Printf("append message error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	conv.UpdatedAt = msg.CreatedAt
	if err := h.store.Conversations().Update(ctx, conv); err != nil {
		log.Printf("append message error: touch conversation: %v", err)
	}

	metrics.MessagesAppended.Inc()
	jsonCreated(w, messageToResponse(msg))
}

// ListMessages returns all messages in a conversation.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "conversation id required")
		return
	}

	ctx := r.Context()
	conv, err := h.store.Conversations().GetByID(ctx, id)
	if err != nil {
		log.Printf("list messages error: get conversation: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if conv == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "conversation not found")
		return
	}

	msgs, err := h.store.Messages().ListByConversation(ctx, id)
	if err != nil {
		log.Printf("list messages error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	resp := make([]*MessageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = messageToResponse(m)
	}
	jsonOK(w, resp)
}

// Delete removes a conversation and its messages.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "conversation id required")
		return
	}

	ctx := r.Context()
	conv, err := h.store.Conversations().GetByID(ctx, id)
	if err != nil {
		log.Printf("delete conversation error: get: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if conv == nil {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "conversation not found")
		return
	}

	if err := h.store.Messages().DeleteByConversation(ctx, id); err != nil {
		log.Printf("delete conversation error: messages: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}
	if err := h.store.Conversations().Delete(ctx, id); err != nil {
		log.Printf("delete conversation error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "internal server error")
		return
	}

	h.broker.Publish(events.Event{
		Type:           events.TypeDeleted,
		ConversationID: conv.ID,
		UserID:         conv.UserID,
		At:             time.Now(),
	})

	log.Printf("conversation deleted: %q (%s)", conv.Name, conv.ID)
	jsonNoContent(w)
}

// rejectionReason maps validation failures to metric labels.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, naming.ErrEmptyName):
		return "empty"
	case errors.Is(err, naming.ErrNameTooLong):
		return "too_long"
	case errors.Is(err, naming.ErrInvalidCharacters):
		return "invalid_characters"
	default:
		return "other"
	}
}

func conversationToResponse(c *models.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func messageToResponse(m *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

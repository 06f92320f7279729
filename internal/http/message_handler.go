package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type MessageHandler struct {
	messages usecase.MessageRepository
	users    usecase.UserRepository
}

func NewMessageHandler(messages usecase.MessageRepository, users usecase.UserRepository) *MessageHandler {
	return &MessageHandler{messages: messages, users: users}
}

func (h *MessageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path)
	if len(segments) == 0 || segments[0] != "messages" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(segments) == 3 && segments[1] == "user" && r.Method == http.MethodGet:
		if id, ok := parseID(segments[2]); ok {
			h.listByUser(w, r, id)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 2 && segments[1] == "send" && r.Method == http.MethodPost:
		h.send(w, r)
	case len(segments) == 3 && segments[1] == "read" && r.Method == http.MethodPost:
		if id, ok := parseID(segments[2]); ok {
			h.markRead(w, r, id)
			return
		}
		http.NotFound(w, r)
	case len(segments) == 4 && segments[1] == "unread" && segments[2] == "count" && r.Method == http.MethodGet:
		if id, ok := parseID(segments[3]); ok {
			h.unreadCount(w, r, id)
			return
		}
		http.NotFound(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// @Summary List a user's messages
// @Description Messages sent or received by the user, newest first
// @Tags messages
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} entity.Message
// @Router /messages/user/{id} [get]
func (h *MessageHandler) listByUser(w http.ResponseWriter, r *http.Request, userID int64) {
	messages, err := h.messages.ListByUser(r.Context(), userID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if messages == nil {
		messages = []entity.Message{}
	}
	JSONRaw(w, http.StatusOK, messages)
}

type sendMessageRequest struct {
	SenderID   int64  `json:"senderId" validate:"required,gt=0"`
	ReceiverID int64  `json:"receiverId" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,max=5000"`
}

// @Summary Send message
// @Tags messages
// @Accept json
// @Produce json
// @Param message body sendMessageRequest true "Message data"
// @Success 201 {object} entity.Message
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /messages/send [post]
func (h *MessageHandler) send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", toErrorDetails(validationErrors))
		return
	}

	for _, id := range []int64{req.SenderID, req.ReceiverID} {
		if _, err := h.users.GetByID(r.Context(), id); err != nil {
			if errors.Is(err, usecase.ErrNotFound) {
				JSONError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
				return
			}
			JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			return
		}
	}

	message := entity.Message{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := h.messages.Create(r.Context(), &message); err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONRaw(w, http.StatusCreated, message)
}

// @Summary Mark message read
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} entity.Message
// @Failure 404 {object} ErrorResponse
// @Router /messages/read/{id} [post]
func (h *MessageHandler) markRead(w http.ResponseWriter, r *http.Request, id int64) {
	message, err := h.messages.MarkRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Message not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONRaw(w, http.StatusOK, message)
}

// @Summary Unread message count
// @Tags messages
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]int
// @Router /messages/unread/count/{id} [get]
func (h *MessageHandler) unreadCount(w http.ResponseWriter, r *http.Request, userID int64) {
	count, err := h.messages.UnreadCount(r.Context(), userID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	JSONRaw(w, http.StatusOK, map[string]int{"unreadCount": count})
}

package handler

import (
	"net/http"

	"github.com/AdventureDe/DuoChat/auth"
	"github.com/AdventureDe/DuoChat/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *service.MessageService
}

func NewMessageHandler(s *service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// List returns the thread's messages, newest first.
func (h *MessageHandler) List(c *gin.Context) {
	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	messages, err := h.service.List(c.Request.Context(), threadID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Create posts a message to the thread; the sender is the caller.
func (h *MessageHandler) Create(c *gin.Context) {
	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.service.Create(c.Request.Context(), threadID, auth.CallerID(c), input.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Read returns a single message. A GET by a non-sender also marks the
// message read; callers should expect this side effect.
func (h *MessageHandler) Read(c *gin.Context) {
	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathID(c, "mid")
	if !ok {
		return
	}
	msg, err := h.service.Read(c.Request.Context(), threadID, messageID, auth.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathID(c, "mid")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), threadID, messageID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUnread returns unread messages for the user id in the path.
func (h *MessageHandler) ListUnread(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	messages, err := h.service.ListUnread(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

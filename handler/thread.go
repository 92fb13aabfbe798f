package handler

import (
	"net/http"

	"github.com/AdventureDe/DuoChat/auth"
	"github.com/AdventureDe/DuoChat/service"

	"github.com/gin-gonic/gin"
)

type ThreadHandler struct {
	service *service.ThreadService
}

func NewThreadHandler(s *service.ThreadService) *ThreadHandler {
	return &ThreadHandler{service: s}
}

// requireParticipant gates thread-by-id access to the thread's own
// participants. Outsiders get a plain 404 so thread ids don't leak.
func (h *ThreadHandler) requireParticipant(c *gin.Context, threadID int64) bool {
	ok, err := h.service.IsParticipant(c.Request.Context(), threadID, auth.CallerID(c))
	if err != nil {
		writeError(c, err)
		return false
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return false
	}
	return true
}

// List returns the caller's threads, most recently updated first.
func (h *ThreadHandler) List(c *gin.Context) {
	threads, err := h.service.ListForUser(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

func (h *ThreadHandler) Create(c *gin.Context) {
	var input struct {
		Participants []int64 `json:"participants" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	thread, err := h.service.Create(c.Request.Context(), input.Participants)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

func (h *ThreadHandler) Get(c *gin.Context) {
	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.requireParticipant(c, threadID) {
		return
	}
	thread, err := h.service.Get(c.Request.Context(), threadID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *ThreadHandler) Update(c *gin.Context) {
	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Participants []int64 `json:"participants" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.requireParticipant(c, threadID) {
		return
	}
	thread, err := h.service.UpdateParticipants(c.Request.Context(), threadID, input.Participants)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *ThreadHandler) Delete(c *gin.Context) {
	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.requireParticipant(c, threadID) {
		return
	}
	if err := h.service.Delete(c.Request.Context(), threadID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByUser lists threads for an arbitrary user id. An unknown user yields
// an empty list.
func (h *ThreadHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	threads, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

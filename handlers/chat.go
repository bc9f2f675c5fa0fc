package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopdesk/services/receptionist"
	"shopdesk/utils"
)

// sessionCookie identifies a caller's conversation across turns.
const sessionCookie = "shopdesk_session"

// cookieMaxAge matches the session store TTL upper bound.
const cookieMaxAge = 24 * 60 * 60

// ChatHandler exposes the conversational surface.
type ChatHandler struct {
	Svc receptionist.Service
}

// NewChatHandler wires the receptionist service into HTTP handlers.
func NewChatHandler(svc receptionist.Service) *ChatHandler {
	return &ChatHandler{Svc: svc}
}

// ChatRequest is the inbound message payload.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// sessionID reads the caller's session cookie, minting one when absent.
func (h *ChatHandler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetCookie(sessionCookie, id, cookieMaxAge, "/", "", false, true)
	return id
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sessionID := h.sessionID(c)
	reply, err := h.Svc.HandleMessage(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		utils.GetLogger().Error("chat turn failed", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to process message",
			"An unexpected error occurred. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

// Reset handles GET /reset: it clears the caller's stored conversation.
func (h *ChatHandler) Reset(c *gin.Context) {
	sessionID := h.sessionID(c)
	if err := h.Svc.ResetSession(c.Request.Context(), sessionID); err != nil {
		utils.GetLogger().Error("session reset failed", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to reset session", err.Error())
		return
	}
	c.String(http.StatusOK, "Session cleared.")
}

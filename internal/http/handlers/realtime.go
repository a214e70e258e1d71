package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillgraph-backend/internal/http/response"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/realtime"
)

type RealtimeHandler struct {
	Log *logger.Logger
	Hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{Log: log.With("handler", "RealtimeHandler"), Hub: hub}
}

// SSEStream delivers the caller's own notifications as server-sent events.
// Every open stream of a user listens on the same per-user channel.
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	userID := callerID(c)
	if userID == "" {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}

	client := h.Hub.NewSSEClient(userID)
	h.Hub.AddChannel(client, realtime.UserChannel(userID))
	h.Log.Info("SSEStream open", "user_id", userID, "client_id", client.ID)

	h.Hub.ServeHTTP(c.Writer, c.Request, client)

	h.Hub.CloseClient(client)
	h.Log.Info("SSEStream closed", "user_id", userID, "client_id", client.ID)
}

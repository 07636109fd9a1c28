package tutor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ROHANDEV-web/school-assistant/internal/credits"
	"github.com/ROHANDEV-web/school-assistant/internal/stats"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Type    string `json:"type"` // "ask"
	Content string `json:"content"`
	Subject string `json:"subject"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type          string `json:"type"` // "response" or "error"
	Content       string `json:"content"`
	QuestionsLeft *int   `json:"questions_left,omitempty"`
	LimitReached  bool   `json:"limit_reached,omitempty"`
}

// handleChatSocket serves a streaming chat session over one socket.
// Each "ask" message runs the same flow as POST /api/ask.
func handleChatSocket(svc *Service, creditStore *credits.Store, statStore *stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logrus.WithError(err).Warn("websocket read failed")
				}
				return
			}

			var req chatRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendChatError(conn, "invalid message format", false)
				continue
			}
			if req.Type != "ask" {
				sendChatError(conn, "unknown message type: "+req.Type, false)
				continue
			}
			if strings.TrimSpace(req.Content) == "" {
				sendChatError(conn, "content is required", false)
				continue
			}

			resp, err := answerQuestion(r, svc, creditStore, statStore, req.Content, req.Subject)
			if err != nil {
				if errors.Is(err, credits.ErrLimitReached) {
					sendChatError(conn, "Daily limit reached", true)
					continue
				}
				sendChatError(conn, err.Error(), false)
				continue
			}

			sendChat(conn, chatResponse{
				Type:          "response",
				Content:       resp.Answer,
				QuestionsLeft: resp.QuestionsLeft,
			})
		}
	}
}

func sendChat(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		logrus.WithError(err).Warn("websocket write failed")
	}
}

func sendChatError(conn *websocket.Conn, message string, limitReached bool) {
	sendChat(conn, chatResponse{Type: "error", Content: message, LimitReached: limitReached})
}

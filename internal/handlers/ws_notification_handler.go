package handlers

import (
	"net/http"
	"sync"

	"github.com/skillforge-app/backend/internal/models"
	jwtutil "github.com/skillforge-app/backend/pkg/jwt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotificationHub delivers notifications to connected clients over
// websockets. It implements services.NotificationPublisher; delivery is
// best effort and a user with no open connection simply gets nothing
// pushed, the stored notification remains the source of truth.
type NotificationHub struct {
	JWTSecret string

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewNotificationHub creates a new instance of NotificationHub.
func NewNotificationHub(jwtSecret string) *NotificationHub {
	return &NotificationHub{
		JWTSecret: jwtSecret,
		clients:   make(map[string]*websocket.Conn),
	}
}

// Publish pushes a notification to the user's live connection, if any.
func (h *NotificationHub) Publish(userID string, notification *models.Notification) {
	h.mu.Lock()
	conn, ok := h.clients[userID]
	h.mu.Unlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(notification); err != nil {
		logrus.WithError(err).WithField("userID", userID).Warn("WebSocket push failed, dropping connection")
		h.drop(userID, conn)
	}
}

// StreamHandler upgrades the request and keeps the connection registered
// until the client goes away. Auth is a token query parameter because
// browsers cannot set headers on websocket requests.
func (h *NotificationHub) StreamHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	// A reconnect replaces the previous connection.
	if old, ok := h.clients[userID]; ok {
		old.Close()
	}
	h.clients[userID] = conn
	h.mu.Unlock()

	logrus.WithField("userID", userID).Info("WebSocket connected")

	defer func() {
		h.drop(userID, conn)
		logrus.WithField("userID", userID).Info("WebSocket disconnected")
	}()

	// The stream is one-way; reads only detect the client closing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *NotificationHub) drop(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	if current, ok := h.clients[userID]; ok && current == conn {
		delete(h.clients, userID)
	}
	h.mu.Unlock()
	conn.Close()
}

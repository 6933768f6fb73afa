package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/events"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/id"
)

const (
	// DefaultPingInterval is how often the server pings an idle client.
	DefaultPingInterval = 30 * time.Second
	writeTimeout        = 10 * time.Second
	maxMessageSize      = 4096
)

// Message types sent besides events.
const (
	TypeSystem        = "system"
	TypePing          = "ping"
	TypePong          = "pong"
	TypeError         = "error"
	TypeSessionClosed = "session_closed"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware guards the API
	},
}

// Message is a control message exchanged with the client.
type Message struct {
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	Session   string `json:"session,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Handler manages WebSocket connections
type Handler struct {
	sessions     *session.Manager
	metrics      *monitoring.Metrics
	logger       *logging.Logger
	pingInterval time.Duration
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *session.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	return &Handler{
		sessions:     sessions,
		metrics:      metrics,
		logger:       logger.OrNop().Named("ws"),
		pingInterval: DefaultPingInterval,
	}
}

// HandleConnection upgrades the request and forwards the session's events
// until either side hangs up.
func (h *Handler) HandleConnection(c *gin.Context) {
	s, err := h.sessions.Get(id.SessionID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	sub := s.Bus.Subscribe()
	defer s.Bus.Unsubscribe(sub)

	log := h.logger.With(zap.String("session", s.ID.String()))
	log.Debug("Stream opened")

	if err := h.send(conn, Message{Type: TypeSystem, Session: s.ID.String(), Message: "connected"}); err != nil {
		return
	}

	// The reader hands pings over so that only this goroutine writes.
	incoming := make(chan Message, 8)
	done := make(chan struct{})
	defer close(done)
	go h.read(conn, incoming, done)

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub:
			if !ok {
				_ = h.send(conn, Message{Type: TypeSessionClosed})
				log.Debug("Stream closed with session")
				return
			}
			if err := h.sendEvent(conn, event); err != nil {
				log.Debug("Stream write failed", zap.Error(err))
				return
			}

		case msg, ok := <-incoming:
			if !ok {
				log.Debug("Stream closed by client")
				return
			}
			reply := Message{Type: TypePong}
			if msg.Type != TypePing {
				reply = Message{Type: TypeError, Message: "unknown message type"}
			}
			if err := h.send(conn, reply); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// read decodes client messages into out and closes it when the connection
// fails. It gives up once done is closed.
func (h *Handler) read(conn *websocket.Conn, out chan<- Message, done <-chan struct{}) {
	defer close(out)
	conn.SetReadLimit(maxMessageSize)
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		h.metrics.RecordWSMessage("in", msg.Type)
		select {
		case out <- msg:
		case <-done:
			return
		}
	}
}

func (h *Handler) sendEvent(conn *websocket.Conn, event events.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(event); err != nil {
		return err
	}
	h.metrics.RecordWSMessage("out", string(event.Type))
	return nil
}

func (h *Handler) send(conn *websocket.Conn, msg Message) error {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}
	h.metrics.RecordWSMessage("out", msg.Type)
	return nil
}

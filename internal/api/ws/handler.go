package ws

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/framewidget/internal/host"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/logging"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/framewidget/internal/shared/id"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	readLimit  = 512
)

// Message types sent to clients.
const (
	TypeRender    = "render"
	TypeDestroyed = "destroyed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // embedding pages live on arbitrary origins
	},
}

// Message is one server-to-client stream message.
type Message struct {
	Type      string `json:"type"`
	WidgetID  string `json:"widget_id"`
	Revision  uint64 `json:"revision,omitempty"`
	HTML      string `json:"html,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Handler streams rendered widget documents over WebSocket
type Handler struct {
	manager *host.Manager
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(manager *host.Manager, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{manager: manager, logger: logger}
}

// WithMetrics adds stream connection tracking
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection subscribes to an instance and upgrades the request. The
// client receives the current document immediately, then one message per
// change, then a destroyed message when the instance goes away.
func (h *Handler) HandleConnection(c *gin.Context) {
	wid, err := id.ParseWidgetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": host.ErrNotFound.Error()})
		return
	}

	frames, cancel, err := h.manager.Subscribe(wid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.String("widget_id", wid.String()), zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.StreamOpened()
		defer h.metrics.StreamClosed()
	}
	h.logger.Debug("Render stream opened", zap.String("widget_id", wid.String()))

	done := make(chan struct{})
	go h.readPump(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-frames:
			if !ok {
				_ = h.send(conn, Message{Type: TypeDestroyed, WidgetID: wid.String(), Timestamp: time.Now().Unix()})
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "widget destroyed"),
					time.Now().Add(writeWait))
				return
			}
			msg := Message{
				Type:      TypeRender,
				WidgetID:  wid.String(),
				Revision:  frame.Revision,
				HTML:      frame.HTML,
				Timestamp: time.Now().Unix(),
			}
			if err := h.send(conn, msg); err != nil {
				h.logger.Debug("Render stream write failed", zap.String("widget_id", wid.String()), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			h.logger.Debug("Render stream closed by client", zap.String("widget_id", wid.String()))
			return
		}
	}
}

// readPump drains client messages so control frames are processed. The
// stream is one-way; anything the client sends is discarded.
func (h *Handler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, msg Message) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/pkg/logger"
)

const (
	// Ping/Pong settings
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	// sendBuffer is the per-subscriber queue; a subscriber that falls this far behind is dropped
	sendBuffer = 16
)

// Message types pushed to subscribers
const (
	TypeListUpdate = "stockListUpdate"
	TypeNotice     = "notice"
)

// ListUpdateMessage carries one published list update
type ListUpdateMessage struct {
	Type     string           `json:"type"`
	New      []quote.Snapshot `json:"new"`
	Old      []quote.Snapshot `json:"old"`
	Counters quote.Counters   `json:"counters"`
}

// NoticeMessage carries one user notification
type NoticeMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Hub pushes list updates and notices to websocket subscribers
// ⭐ SSOT: 웹소켓 구독자 관리는 이 허브에서만
type Hub struct {
	upgrader websocket.Upgrader
	logger   *logger.Logger

	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// NewHub creates a hub with no subscribers
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:      log,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the subscriber
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.WithFields(map[string]interface{}{
		"remote":      r.RemoteAddr,
		"subscribers": count,
	}).Info("Websocket subscriber connected")

	go h.writeLoop(sub)
	go h.readLoop(sub)
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// OnListUpdate broadcasts a published list; it is a quote.Listener
func (h *Hub) OnListUpdate(u quote.ListUpdate) {
	h.broadcast(ListUpdateMessage{
		Type:     TypeListUpdate,
		New:      u.New,
		Old:      u.Old,
		Counters: u.Counters,
	})
}

// Notify broadcasts a notice; it implements notify.Notifier
func (h *Hub) Notify(_ context.Context, message string) {
	h.broadcast(NoticeMessage{Type: TypeNotice, Message: message})
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		sub.close()
		delete(h.subscribers, sub)
	}
}

func (h *Hub) broadcast(msg interface{}) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal websocket message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.send <- payload:
		default:
			h.logger.Warn("Dropping slow websocket subscriber")
			sub.close()
			delete(h.subscribers, sub)
		}
	}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; ok {
		sub.close()
		delete(h.subscribers, sub)
	}
}

// readLoop only tracks liveness; subscribers send nothing we act on
func (h *Hub) readLoop(sub *subscriber) {
	defer h.remove(sub)

	sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Debug("Websocket subscriber read failed")
			}
			return
		}
	}
}

// writeLoop drains the send queue and keeps the connection alive with pings
func (h *Hub) writeLoop(sub *subscriber) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.WithError(err).Debug("Websocket write failed")
				h.remove(sub)
				return
			}
		case <-ticker.C:
			if err := sub.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				h.remove(sub)
				return
			}
		}
	}
}

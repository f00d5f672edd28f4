package studio

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// CursorUpdate is the single message kind the viewer protocol carries:
// the presenter's slide position within an attached deck.
type CursorUpdate struct {
	PostID     string `json:"postId"`
	Slide      int    `json:"slide"`
	SlideCount int    `json:"slideCount"`
}

// Hub relays a presenter's slide cursor to everyone watching the same
// published presentation full-screen. One goroutine owns the client set;
// register, unregister and broadcast all go through channels.
type Hub struct {
	postID     string
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan CursorUpdate
	done       chan struct{}
	logger     *zap.SugaredLogger
}

func NewHub(postID string, logger *zap.SugaredLogger) *Hub {
	return &Hub{
		postID:     postID,
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan CursorUpdate, 8),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			h.logger.Infof("viewer joined presentation %s (%d watching)", h.postID, len(h.clients))
		case conn := <-h.unregister:
			if h.clients[conn] {
				delete(h.clients, conn)
				conn.Close()
			}
		case update := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteJSON(update); err != nil {
					// dead viewer, drop it
					delete(h.clients, conn)
					conn.Close()
				}
			}
		case <-h.done:
			for conn := range h.clients {
				conn.Close()
			}
			return
		}
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// Broadcast pushes the presenter's current slide to all viewers.
func (h *Hub) Broadcast(update CursorUpdate) {
	update.PostID = h.postID
	h.broadcast <- update
}

func (h *Hub) Stop() {
	close(h.done)
}

// HubRegistry hands out one hub per published presentation, starting its
// run loop on first use.
type HubRegistry struct {
	mu     sync.Mutex
	hubs   map[string]*Hub
	logger *zap.SugaredLogger
}

func NewHubRegistry(logger *zap.SugaredLogger) *HubRegistry {
	return &HubRegistry{hubs: make(map[string]*Hub), logger: logger}
}

func (r *HubRegistry) ForPost(postID string) *Hub {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.hubs[postID]; ok {
		return h
	}

	h := NewHub(postID, r.logger)
	r.hubs[postID] = h
	go h.Run()
	return h
}

func (r *HubRegistry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, h := range r.hubs {
		h.Stop()
		delete(r.hubs, id)
	}
}

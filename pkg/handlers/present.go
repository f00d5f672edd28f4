package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"researchfeed/pkg/studio"
)

// PresentHandler runs the full-screen viewer for decks already published
// to the feed. The presenter drives the slide cursor over a websocket;
// the hub fans the position out to every viewer of the same post.
type PresentHandler struct {
	Hubs     *studio.HubRegistry
	FeedRepo FeedRepo
	Logger   *zap.SugaredLogger
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// local app, no cross-origin concerns
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Connect upgrades to a websocket. role=presenter reads cursor updates
// from the socket and broadcasts them; anything else is a viewer that
// only receives.
func (h *PresentHandler) Connect(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	post, err := h.FeedRepo.GetByID(postID)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if post == nil || post.Presentation == nil {
		WriteResponse(w, "no presentation on this post", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	hub := h.Hubs.ForPost(postID)
	slideCount := len(post.Presentation.Slides)

	if r.URL.Query().Get("role") == "presenter" {
		go h.runPresenter(hub, conn, slideCount)
		return
	}

	hub.Register(conn)
	go h.runViewer(hub, conn)
}

// runPresenter pumps cursor updates from the presenter socket into the
// hub until the socket drops. Positions are clamped to the deck.
func (h *PresentHandler) runPresenter(hub *studio.Hub, conn *websocket.Conn, slideCount int) {
	defer conn.Close()

	for {
		var update studio.CursorUpdate
		if err := conn.ReadJSON(&update); err != nil {
			return
		}

		if update.Slide < 0 {
			update.Slide = 0
		}
		if update.Slide >= slideCount {
			update.Slide = slideCount - 1
		}
		update.SlideCount = slideCount

		hub.Broadcast(update)
	}
}

// runViewer blocks on reads to detect the viewer going away, then
// unregisters it. Viewers never send meaningful data.
func (h *PresentHandler) runViewer(hub *studio.Hub, conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(conn)
			return
		}
	}
}

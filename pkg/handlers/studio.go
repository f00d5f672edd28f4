package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"researchfeed/pkg/decks"
	"researchfeed/pkg/render"
	"researchfeed/pkg/studio"
	"researchfeed/pkg/templates"
	"researchfeed/pkg/users"
)

// StudioHandler exposes the slide editor over HTTP. Every route resolves
// a session by id and forwards to the state machine; the machine decides
// what is legal in the current mode.
type StudioHandler struct {
	Manager   *studio.Manager
	Drafts    DraftStore
	FeedRepo  FeedRepo
	LocalUser *users.User
	Logger    *zap.SugaredLogger
}

type StudioStateResponse struct {
	ID           string      `json:"id"`
	Mode         studio.Mode `json:"mode"`
	Saved        bool        `json:"saved"`
	CanPublish   bool        `json:"canPublish"`
	Current      int         `json:"current"`
	Deck         *decks.Deck `json:"deck,omitempty"`
	EditingField string      `json:"editingField,omitempty"`
	Thumbnails   []string    `json:"thumbnails,omitempty"`
	Preview      string      `json:"preview,omitempty"`
}

func (h *StudioHandler) state(s *studio.Session) *StudioStateResponse {
	resp := &StudioStateResponse{
		ID:         s.ID(),
		Mode:       s.Mode(),
		Saved:      s.Saved(),
		CanPublish: s.CanPublish(),
		Current:    s.CurrentIndex(),
		Deck:       s.Deck(),
	}

	if field, ok := s.InlineEditing(); ok {
		resp.EditingField = field
	}

	if resp.Deck != nil {
		resp.Thumbnails = make([]string, 0, len(resp.Deck.Slides))
		for _, sl := range resp.Deck.Slides {
			resp.Thumbnails = append(resp.Thumbnails, render.Thumbnail(sl))
		}
		if resp.Current >= 0 && resp.Current < len(resp.Deck.Slides) {
			resp.Preview = render.Large(resp.Deck.Slides[resp.Current])
		}
	}

	return resp
}

// Open starts a new editing session in template selection.
func (h *StudioHandler) Open(w http.ResponseWriter, r *http.Request) {
	s := h.Manager.Open()
	WriteJSON(w, h.state(s), http.StatusCreated)
}

func (h *StudioHandler) session(w http.ResponseWriter, r *http.Request) (*studio.Session, bool) {
	s, ok := h.Manager.Get(mux.Vars(r)["id"])
	if !ok {
		WriteResponse(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func (h *StudioHandler) GetState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	WriteJSON(w, h.state(s), http.StatusOK)
}

// CloseSession discards the deck and any uncommitted edits. With unsaved
// changes the first request answers 409 and parks the session in
// confirming-discard; repeating the request closes it for real.
func (h *StudioHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if s, ok := h.Manager.Get(id); ok && s.RequestClose() {
		WriteResponse(w, "deck has unsaved changes", http.StatusConflict)
		return
	}

	h.Manager.Close(id)
	WriteResponse(w, "success", http.StatusOK)
}

// CancelClose abandons a parked close and returns to editing.
func (h *StudioHandler) CancelClose(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.CancelDiscard()
	WriteJSON(w, h.state(s), http.StatusOK)
}

type chooseTemplateReq struct {
	PostTypeID string `json:"postTypeId"`
	Blank      bool   `json:"blank"`
}

// ChooseTemplate seeds the deck from the catalog, or from a blank slide
// when Blank is set or the post type has no entry.
func (h *StudioHandler) ChooseTemplate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req chooseTemplateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	var err error
	if req.Blank {
		err = s.StartBlank(req.PostTypeID)
	} else {
		entry, found := templates.Get(req.PostTypeID)
		if !found {
			// no recommendation for this type; fall back to a blank deck
			err = s.StartBlank(req.PostTypeID)
		} else {
			err = s.ChooseTemplate(entry)
		}
	}

	if err != nil {
		h.writeStudioError(w, err)
		return
	}

	WriteJSON(w, h.state(s), http.StatusOK)
}

type titleReq struct {
	Title string `json:"title"`
}

func (h *StudioHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, body []byte) error {
		var req titleReq
		if err := json.Unmarshal(body, &req); err != nil {
			return errBadRequest
		}
		return s.SetTitle(req.Title)
	})
}

func (h *StudioHandler) AddSlide(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, _ []byte) error { return s.AddSlide() })
}

func (h *StudioHandler) DuplicateSlide(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, _ []byte) error { return s.DuplicateSlide() })
}

func (h *StudioHandler) RemoveSlide(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, _ []byte) error { return s.RemoveSlide() })
}

type moveReq struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (h *StudioHandler) MoveSlide(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, body []byte) error {
		var req moveReq
		if err := json.Unmarshal(body, &req); err != nil {
			return errBadRequest
		}
		return s.MoveSlide(req.From, req.To)
	})
}

type fieldReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *StudioHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, body []byte) error {
		var req fieldReq
		if err := json.Unmarshal(body, &req); err != nil {
			return errBadRequest
		}
		return s.UpdateField(req.Field, req.Value)
	})
}

type layoutReq struct {
	Layout string `json:"layout"`
}

func (h *StudioHandler) SetLayout(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, body []byte) error {
		var req layoutReq
		if err := json.Unmarshal(body, &req); err != nil {
			return errBadRequest
		}
		return s.SetLayout(req.Layout)
	})
}

type themeReq struct {
	Theme string `json:"theme"`
	All   bool   `json:"all"`
}

func (h *StudioHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, body []byte) error {
		var req themeReq
		if err := json.Unmarshal(body, &req); err != nil {
			return errBadRequest
		}
		if req.All {
			return s.ApplyThemeToAll(req.Theme)
		}
		return s.SetTheme(req.Theme)
	})
}

func (h *StudioHandler) InsertStarterContent(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, _ []byte) error { return s.InsertStarterContent() })
}

type selectReq struct {
	Index int `json:"index"`
}

func (h *StudioHandler) SelectSlide(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, body []byte) error {
		var req selectReq
		if err := json.Unmarshal(body, &req); err != nil {
			return errBadRequest
		}
		return s.Select(req.Index)
	})
}

type inlineEditReq struct {
	Op    string `json:"op"` // start | type | commit | discard
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

func (h *StudioHandler) InlineEdit(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, body []byte) error {
		var req inlineEditReq
		if err := json.Unmarshal(body, &req); err != nil {
			return errBadRequest
		}

		switch req.Op {
		case "start":
			return s.StartInlineEdit(req.Field)
		case "type":
			return s.TypeInlineEdit(req.Value)
		case "commit":
			return s.CommitInlineEdit()
		case "discard":
			return s.DiscardInlineEdit()
		}
		return errBadRequest
	})
}

type modeReq struct {
	Mode string `json:"mode"` // preview | editing | full-screen
}

func (h *StudioHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(s *studio.Session, body []byte) error {
		var req modeReq
		if err := json.Unmarshal(body, &req); err != nil {
			return errBadRequest
		}

		switch req.Mode {
		case "preview":
			return s.Preview()
		case "full-screen":
			return s.Present()
		case "editing":
			if s.Mode() == studio.ModePreviewing {
				return s.ClosePreview()
			}
			if s.Mode() == studio.ModeFullScreen {
				return s.StopPresenting()
			}
			return nil
		}
		return errBadRequest
	})
}

// HandleKey dispatches an editor keyboard shortcut. Export is answered
// with the file itself, everything else with the updated state.
func (h *StudioHandler) HandleKey(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var ev studio.KeyEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	action, err := s.HandleKey(ev)
	if err != nil {
		h.writeStudioError(w, err)
		return
	}

	if action == studio.ActionExport {
		h.writeExport(w, s)
		return
	}

	WriteJSON(w, h.state(s), http.StatusOK)
}

// Export serves the deck as a pretty-printed JSON download.
func (h *StudioHandler) Export(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeExport(w, s)
}

func (h *StudioHandler) writeExport(w http.ResponseWriter, s *studio.Session) {
	filename, data, err := s.Export()
	if err != nil {
		h.writeStudioError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type publishResp struct {
	NeedsConfirm bool          `json:"needsConfirm,omitempty"`
	Post         *PostResponse `json:"post,omitempty"`
}

// Publish posts the deck straight to the feed. A deck of all-blank
// slides answers 409 with needsConfirm; repeating the request while the
// session sits in confirming-publish goes through.
func (h *StudioHandler) Publish(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	post, needsConfirm, err := s.PublishToFeed(h.LocalUser.ID, h.FeedRepo.Add)
	if err != nil {
		h.writeStudioError(w, err)
		return
	}

	if needsConfirm {
		WriteJSON(w, &publishResp{NeedsConfirm: true}, http.StatusConflict)
		return
	}

	h.Logger.Infof("deck published to feed as post %s", post.ID)
	WriteJSON(w, &publishResp{Post: MapToPostResponse(post, h.LocalUser, nil, h.LocalUser.ID)}, http.StatusCreated)
}

func (h *StudioHandler) CancelPublish(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.CancelPublish()
	WriteJSON(w, h.state(s), http.StatusOK)
}

type attachReq struct {
	DraftID string `json:"draftId"`
}

// Attach hands the deck snapshot to a composer draft instead of posting
// it. The draft embeds the copy; the session stays open for more edits.
func (h *StudioHandler) Attach(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req attachReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	draft, found := h.Drafts.Get(req.DraftID)
	if !found {
		WriteResponse(w, "draft not found", http.StatusNotFound)
		return
	}

	snap, dirty, err := s.AttachSnapshot()
	if err != nil {
		h.writeStudioError(w, err)
		return
	}

	draft.Attach(snap, dirty)
	WriteJSON(w, h.state(s), http.StatusOK)
}

var errBadRequest = errors.New("bad request")

// sessionOp runs one state-machine operation and answers with the
// updated session state.
func (h *StudioHandler) sessionOp(w http.ResponseWriter, r *http.Request,
	op func(s *studio.Session, body []byte) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var body []byte
	if r.Body != nil {
		body, _ = readBody(r)
	}

	if err := op(s, body); err != nil {
		h.writeStudioError(w, err)
		return
	}

	WriteJSON(w, h.state(s), http.StatusOK)
}

func (h *StudioHandler) writeStudioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadRequest):
		WriteResponse(w, "bad request", http.StatusBadRequest)
	case errors.Is(err, studio.ErrClosed):
		WriteResponse(w, "session is closed", http.StatusGone)
	case errors.Is(err, studio.ErrNoDeck):
		WriteResponse(w, "choose a template first", http.StatusConflict)
	case errors.Is(err, studio.ErrNotReady):
		WriteResponse(w, "deck needs a title and at least one slide", http.StatusUnprocessableEntity)
	case errors.Is(err, studio.ErrWrongMode):
		WriteResponse(w, "not allowed in current mode", http.StatusConflict)
	case errors.Is(err, studio.ErrBadIndex):
		WriteResponse(w, "slide index out of range", http.StatusBadRequest)
	default:
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"researchfeed/pkg/composer"
	"researchfeed/pkg/decks"
	"researchfeed/pkg/posts"
	"researchfeed/pkg/users"
)

// DraftStore is what the composer handler and the studio attach path
// need from the draft manager.
type DraftStore interface {
	Create() (string, *composer.Draft)
	Get(id string) (*composer.Draft, bool)
	Close(id string)
}

// ComposerHandler drives a post draft: free text, tags, post type,
// attachments and the final submit into the feed.
type ComposerHandler struct {
	Drafts    DraftStore
	FeedRepo  FeedRepo
	LocalUser *users.User
	Logger    *zap.SugaredLogger
}

type DraftResponse struct {
	ID           string          `json:"id"`
	Content      string          `json:"content"`
	Tags         []string        `json:"tags"`
	PostType     string          `json:"postType"`
	AttachedDeck *decks.Snapshot `json:"attachedDeck,omitempty"`
	SoftMaxLen   int             `json:"softMaxLen"`
}

func draftResponse(id string, d *composer.Draft) *DraftResponse {
	resp := &DraftResponse{
		ID:           id,
		Content:      d.Content(),
		Tags:         d.Tags(),
		PostType:     d.PostType(),
		AttachedDeck: d.AttachedDeck(),
		SoftMaxLen:   composer.SoftMaxContentLen,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

func (h *ComposerHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, d := h.Drafts.Create()
	WriteJSON(w, draftResponse(id, d), http.StatusCreated)
}

func (h *ComposerHandler) draft(w http.ResponseWriter, r *http.Request) (string, *composer.Draft, bool) {
	id := mux.Vars(r)["id"]
	d, ok := h.Drafts.Get(id)
	if !ok {
		WriteResponse(w, "draft not found", http.StatusNotFound)
		return "", nil, false
	}
	return id, d, true
}

func (h *ComposerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	id, d, ok := h.draft(w, r)
	if !ok {
		return
	}
	WriteJSON(w, draftResponse(id, d), http.StatusOK)
}

func (h *ComposerHandler) Discard(w http.ResponseWriter, r *http.Request) {
	h.Drafts.Close(mux.Vars(r)["id"])
	WriteResponse(w, "success", http.StatusOK)
}

type contentReq struct {
	Content string `json:"content"`
}

func (h *ComposerHandler) SetContent(w http.ResponseWriter, r *http.Request) {
	id, d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var req contentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	d.SetContent(req.Content)
	WriteJSON(w, draftResponse(id, d), http.StatusOK)
}

type tagReq struct {
	Tag string `json:"tag"`
}

// ToggleTag adds the tag or, when already selected, removes it.
func (h *ComposerHandler) ToggleTag(w http.ResponseWriter, r *http.Request) {
	id, d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var req tagReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	d.ToggleTag(req.Tag)
	WriteJSON(w, draftResponse(id, d), http.StatusOK)
}

type postTypeReq struct {
	PostType string `json:"postType"`
	Confirm  bool   `json:"confirm"`
	Cancel   bool   `json:"cancel"`
}

// SetPostType switches the selected post type. When the switch would
// discard unsaved deck changes the handler answers 409 and waits for a
// confirm or cancel call.
func (h *ComposerHandler) SetPostType(w http.ResponseWriter, r *http.Request) {
	id, d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var req postTypeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	switch {
	case req.Confirm:
		d.ConfirmPostType()
	case req.Cancel:
		d.CancelPostType()
	default:
		if d.SetPostType(req.PostType) {
			WriteResponse(w, "attached deck has unsaved changes", http.StatusConflict)
			return
		}
	}

	WriteJSON(w, draftResponse(id, d), http.StatusOK)
}

// UseQuickTemplate inserts the post type's markdown template into the
// free-text field. 404 when the type has no template.
func (h *ComposerHandler) UseQuickTemplate(w http.ResponseWriter, r *http.Request) {
	id, d, ok := h.draft(w, r)
	if !ok {
		return
	}

	if !d.UseQuickTemplate() {
		WriteResponse(w, "no template for this post type", http.StatusNotFound)
		return
	}

	WriteJSON(w, draftResponse(id, d), http.StatusOK)
}

type attachmentReq struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (h *ComposerHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	id, d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var req attachmentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	d.AddAttachment(posts.AttachmentKind(req.Kind), req.Name, req.URL)
	WriteJSON(w, draftResponse(id, d), http.StatusOK)
}

// Submit assembles the post and appends it to the feed. Whitespace-only
// content is answered 200 with no post: the draft is untouched.
func (h *ComposerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, d, ok := h.draft(w, r)
	if !ok {
		return
	}

	post, err := d.Submit(h.LocalUser.ID, h.FeedRepo.Add)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if post == nil {
		WriteJSON(w, draftResponse(id, d), http.StatusOK)
		return
	}

	h.Logger.Infof("draft %s submitted as post %s", id, post.ID)
	WriteJSON(w, MapToPostResponse(post, h.LocalUser, nil, h.LocalUser.ID), http.StatusCreated)
}

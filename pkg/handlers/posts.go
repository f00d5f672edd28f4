package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"researchfeed/pkg/comments"
	"researchfeed/pkg/posts"
	"researchfeed/pkg/users"
)

// FeedHandler serves the feed pages: listing, single posts, and the
// like/bookmark toggles. LocalUser is the synthesized signed-in user;
// there is no authentication.
type FeedHandler struct {
	FeedRepo     FeedRepo
	UsersRepo    UsersRepo
	CommentsRepo CommentsRepo
	LocalUser    *users.User
	Logger       *zap.SugaredLogger
}

type FeedRepo interface {
	GetAll() ([]*posts.Post, error)
	GetByID(id string) (*posts.Post, error)
	GetByTag(tag string) ([]*posts.Post, error)
	GetByAuthorID(authorID int64) ([]*posts.Post, error)
	Add(post *posts.Post) (string, error)
	Delete(id string) (bool, error)
	ToggleLike(postID string, userID int64) (*posts.Post, error)
	ToggleBookmark(postID string, userID int64) (*posts.Post, error)
}

type UsersRepo interface {
	GetByID(id int64) (*users.User, error)
	GetByUsername(username string) (*users.User, error)
}

type CommentsRepo interface {
	GetByPostID(postID string) ([]*comments.Comment, error)
	Add(comment *comments.Comment) (string, error)
	Delete(postID, commentID string) (bool, error)
}

func (h *FeedHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	feed, err := h.FeedRepo.GetAll()
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp, err := h.mapPosts(feed)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	WriteJSON(w, resp, http.StatusOK)
}

func (h *FeedHandler) GetByTag(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["tag"]

	feed, err := h.FeedRepo.GetByTag(tag)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp, err := h.mapPosts(feed)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	WriteJSON(w, resp, http.StatusOK)
}

func (h *FeedHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.FeedRepo.GetByID(mux.Vars(r)["id"])
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if post == nil {
		WriteResponse(w, "post not found", http.StatusNotFound)
		return
	}

	resp, err := h.mapPost(post)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	WriteJSON(w, resp, http.StatusOK)
}

func (h *FeedHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	u, err := h.UsersRepo.GetByUsername(username)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if u == nil {
		WriteResponse(w, "user not found", http.StatusNotFound)
		return
	}

	feed, err := h.FeedRepo.GetByAuthorID(u.ID)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp, err := h.mapPosts(feed)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	WriteJSON(w, resp, http.StatusOK)
}

func (h *FeedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.FeedRepo.Delete(mux.Vars(r)["id"])
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if ok {
		WriteResponse(w, "success", http.StatusOK)
		return
	}

	WriteResponse(w, "post not found", http.StatusNotFound)
}

func (h *FeedHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.FeedRepo.ToggleLike)
}

func (h *FeedHandler) Bookmark(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.FeedRepo.ToggleBookmark)
}

func (h *FeedHandler) toggle(w http.ResponseWriter, r *http.Request,
	toggleRepo func(string, int64) (*posts.Post, error)) {
	post, err := toggleRepo(mux.Vars(r)["post_id"], h.LocalUser.ID)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if post == nil {
		WriteResponse(w, "post not found", http.StatusNotFound)
		return
	}

	resp, err := h.mapPost(post)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	WriteJSON(w, resp, http.StatusOK)
}

func (h *FeedHandler) mapPosts(feed []*posts.Post) ([]*PostResponse, error) {
	result := make([]*PostResponse, 0, len(feed))
	for _, p := range feed {
		resp, err := h.mapPost(p)
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}

	return result, nil
}

func (h *FeedHandler) mapPost(p *posts.Post) (*PostResponse, error) {
	author, err := h.UsersRepo.GetByID(p.AuthorID)
	if err != nil {
		return nil, err
	}

	cs, err := h.CommentsRepo.GetByPostID(p.ID)
	if err != nil {
		return nil, err
	}

	csResp, err := mapToCommentsResponse(cs, h.UsersRepo)
	if err != nil {
		return nil, err
	}

	return MapToPostResponse(p, author, csResp, h.LocalUser.ID), nil
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"researchfeed/pkg/comments"
	"researchfeed/pkg/users"
)

type CommentHandler struct {
	CommentsRepo CommentsRepo
	FeedRepo     FeedRepo
	UsersRepo    UsersRepo
	LocalUser    *users.User
	Logger       *zap.SugaredLogger
}

type AddCommentReq struct {
	Comment *string `json:"comment"`
}

func (req *AddCommentReq) validate() []*CustomError {
	body := &Validator{value: req.Comment, location: "body", field: "comment"}
	err := body.Required()
	if err == nil {
		err = body.Blank()
	}
	return mergeErrors(err)
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	var req AddCommentReq
	if err := json.Unmarshal(body, &req); err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	if validationErrors := req.validate(); len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	postID := mux.Vars(r)["post_id"]
	post, err := h.FeedRepo.GetByID(postID)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if post == nil {
		WriteResponse(w, "post not found", http.StatusNotFound)
		return
	}

	c := &comments.Comment{
		PostID:   postID,
		AuthorID: h.LocalUser.ID,
		Body:     *req.Comment,
		Created:  time.Now(),
	}

	if _, err := h.CommentsRepo.Add(c); err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	cs, err := h.CommentsRepo.GetByPostID(postID)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	csResp, err := mapToCommentsResponse(cs, h.UsersRepo)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	author, err := h.UsersRepo.GetByID(post.AuthorID)
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	WriteJSON(w, MapToPostResponse(post, author, csResp, h.LocalUser.ID), http.StatusCreated)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ok, err := h.CommentsRepo.Delete(vars["post_id"], vars["comment_id"])
	if err != nil {
		h.Logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !ok {
		WriteResponse(w, "comment not found", http.StatusNotFound)
		return
	}

	WriteResponse(w, "success", http.StatusOK)
}

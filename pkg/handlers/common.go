package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"researchfeed/pkg/comments"
	"researchfeed/pkg/decks"
	"researchfeed/pkg/posts"
	"researchfeed/pkg/users"
)

type Response struct {
	Message string `json:"message"`
}

type CustomError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

type ErrorsResponse struct {
	Errors []*CustomError `json:"errors"`
}

func WriteResponse(w http.ResponseWriter, msg string, status int) {
	resp := &Response{Message: msg}
	res, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(status)
		return
	}

	w.WriteHeader(status)
	w.Write(res)
}

func WriteJSON(w http.ResponseWriter, v interface{}, status int) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func writeErrorsResponse(w http.ResponseWriter, errors []*CustomError, status int) {
	errorsJSON, err := json.Marshal(&ErrorsResponse{Errors: errors})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}

	w.WriteHeader(status)
	w.Write(errorsJSON)
}

type Author struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Institution string `json:"institution"`
	AvatarURL   string `json:"avatarUrl"`
}

type CommentResponse struct {
	ID      string    `json:"id"`
	Author  *Author   `json:"author"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
}

type PostResponse struct {
	ID           string              `json:"id"`
	Author       *Author             `json:"author"`
	Content      string              `json:"content"`
	ContentHTML  string              `json:"contentHtml,omitempty"`
	PostType     string              `json:"postType"`
	Tags         []string            `json:"tags"`
	Attachments  []*posts.Attachment `json:"attachments,omitempty"`
	Presentation *decks.Snapshot     `json:"presentation,omitempty"`
	Metrics      posts.Metrics       `json:"metrics"`
	IsLiked      bool                `json:"isLiked"`
	IsBookmarked bool                `json:"isBookmarked"`
	Comments     []*CommentResponse  `json:"comments"`
	Created      time.Time           `json:"created"`
}

func mapAuthor(u *users.User) *Author {
	if u == nil {
		return nil
	}
	return &Author{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Institution: u.Institution,
		AvatarURL:   u.AvatarURL,
	}
}

func mapToCommentsResponse(cs []*comments.Comment, usersRepo UsersRepo) ([]*CommentResponse, error) {
	result := make([]*CommentResponse, 0, len(cs))
	for _, c := range cs {
		author, err := usersRepo.GetByID(c.AuthorID)
		if err != nil {
			return nil, err
		}
		result = append(result, &CommentResponse{ID: c.ID, Author: mapAuthor(author), Body: c.Body, Created: c.Created})
	}

	return result, nil
}

// MapToPostResponse flattens a post for the feed, deriving the per-viewer
// like and bookmark flags.
func MapToPostResponse(p *posts.Post, author *users.User, cs []*CommentResponse, viewerID int64) *PostResponse {
	resp := &PostResponse{
		ID:           p.ID,
		Author:       mapAuthor(author),
		Content:      p.Content,
		ContentHTML:  p.ContentHTML,
		PostType:     p.PostType,
		Tags:         p.Tags,
		Attachments:  p.Attachments,
		Presentation: p.Presentation,
		Metrics:      p.Metrics,
		IsLiked:      p.LikedByUser(viewerID),
		IsBookmarked: p.BookmarkedByUser(viewerID),
		Comments:     cs,
		Created:      p.Created,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.Comments == nil {
		resp.Comments = []*CommentResponse{}
	}
	resp.Metrics.Comments = len(resp.Comments)
	return resp
}

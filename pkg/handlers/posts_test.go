package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"researchfeed/pkg/comments"
	"researchfeed/pkg/posts"
	"researchfeed/pkg/users"
)

var errInternal = errors.New("repo failure")

func testFeedHandler(t *testing.T) (*FeedHandler, *MockFeedRepo, *MockUsersRepo, *MockCommentsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	feedRepo := NewMockFeedRepo(ctrl)
	usersRepo := NewMockUsersRepo(ctrl)
	commentsRepo := NewMockCommentsRepo(ctrl)

	h := &FeedHandler{
		FeedRepo:     feedRepo,
		UsersRepo:    usersRepo,
		CommentsRepo: commentsRepo,
		LocalUser:    &users.User{ID: 1, Username: "you", DisplayName: "Dr. You"},
		Logger:       zap.NewNop().Sugar(),
	}
	return h, feedRepo, usersRepo, commentsRepo
}

func samplePost(id string, authorID int64) *posts.Post {
	return &posts.Post{
		ID:       id,
		AuthorID: authorID,
		Content:  "content of " + id,
		PostType: "research",
		Tags:     []string{"genomics"},
		Created:  time.Now(),
		LikedBy:  map[int64]bool{1: true},
	}
}

func TestGetAll(t *testing.T) {
	h, feedRepo, usersRepo, commentsRepo := testFeedHandler(t)

	author := &users.User{ID: 2, Username: "schen", DisplayName: "Dr. Sarah Chen"}
	feed := []*posts.Post{samplePost("p1", 2), samplePost("p2", 2)}

	feedRepo.EXPECT().GetAll().Return(feed, nil)
	usersRepo.EXPECT().GetByID(int64(2)).Return(author, nil).Times(2)
	commentsRepo.EXPECT().GetByPostID("p1").Return([]*comments.Comment{
		{ID: "c1", PostID: "p1", AuthorID: 2, Body: "nice"},
	}, nil)
	commentsRepo.EXPECT().GetByPostID("p2").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/", nil)
	w := httptest.NewRecorder()
	h.GetAll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp []*PostResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("got %d posts, want 2", len(resp))
	}
	if resp[0].Author == nil || resp[0].Author.Username != "schen" {
		t.Errorf("author = %+v", resp[0].Author)
	}
	if !resp[0].IsLiked {
		t.Error("local user liked p1, isLiked should be true")
	}
	if resp[0].Metrics.Comments != 1 {
		t.Errorf("p1 comment count = %d, want 1", resp[0].Metrics.Comments)
	}
	if resp[1].Comments == nil || resp[1].Tags == nil {
		t.Error("empty collections must serialize as [], not null")
	}
}

func TestGetAllRepoError(t *testing.T) {
	h, feedRepo, _, _ := testFeedHandler(t)

	feedRepo.EXPECT().GetAll().Return(nil, errInternal)

	w := httptest.NewRecorder()
	h.GetAll(w, httptest.NewRequest(http.MethodGet, "/api/posts/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestGetByTag(t *testing.T) {
	h, feedRepo, usersRepo, commentsRepo := testFeedHandler(t)

	author := &users.User{ID: 2, Username: "schen"}
	feedRepo.EXPECT().GetByTag("genomics").Return([]*posts.Post{samplePost("p1", 2)}, nil)
	usersRepo.EXPECT().GetByID(int64(2)).Return(author, nil)
	commentsRepo.EXPECT().GetByPostID("p1").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/genomics", nil)
	req = mux.SetURLVars(req, map[string]string{"tag": "genomics"})
	w := httptest.NewRecorder()
	h.GetByTag(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp []*PostResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp) != 1 || resp[0].ID != "p1" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	h, feedRepo, _, _ := testFeedHandler(t)

	feedRepo.EXPECT().GetByID("missing").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/post/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	w := httptest.NewRecorder()
	h.GetByID(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetByUser(t *testing.T) {
	h, feedRepo, usersRepo, commentsRepo := testFeedHandler(t)

	author := &users.User{ID: 3, Username: "epetrova"}
	usersRepo.EXPECT().GetByUsername("epetrova").Return(author, nil)
	feedRepo.EXPECT().GetByAuthorID(int64(3)).Return([]*posts.Post{samplePost("p9", 3)}, nil)
	usersRepo.EXPECT().GetByID(int64(3)).Return(author, nil)
	commentsRepo.EXPECT().GetByPostID("p9").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/epetrova", nil)
	req = mux.SetURLVars(req, map[string]string{"username": "epetrova"})
	w := httptest.NewRecorder()
	h.GetByUser(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetByUserNotFound(t *testing.T) {
	h, _, usersRepo, _ := testFeedHandler(t)

	usersRepo.EXPECT().GetByUsername("ghost").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/ghost", nil)
	req = mux.SetURLVars(req, map[string]string{"username": "ghost"})
	w := httptest.NewRecorder()
	h.GetByUser(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDelete(t *testing.T) {
	cases := []struct {
		name       string
		found      bool
		wantStatus int
	}{
		{"existing post", true, http.StatusOK},
		{"missing post", false, http.StatusNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, feedRepo, _, _ := testFeedHandler(t)
			feedRepo.EXPECT().Delete("p1").Return(c.found, nil)

			req := httptest.NewRequest(http.MethodDelete, "/api/post/p1", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "p1"})
			w := httptest.NewRecorder()
			h.Delete(w, req)

			if w.Code != c.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, c.wantStatus)
			}
		})
	}
}

func TestLikeToggle(t *testing.T) {
	h, feedRepo, usersRepo, commentsRepo := testFeedHandler(t)

	author := &users.User{ID: 2, Username: "schen"}
	liked := samplePost("p1", 2)

	feedRepo.EXPECT().ToggleLike("p1", int64(1)).Return(liked, nil)
	usersRepo.EXPECT().GetByID(int64(2)).Return(author, nil)
	commentsRepo.EXPECT().GetByPostID("p1").Return(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/post/p1/like", nil)
	req = mux.SetURLVars(req, map[string]string{"post_id": "p1"})
	w := httptest.NewRecorder()
	h.Like(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp PostResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.IsLiked {
		t.Error("isLiked = false after toggle for the local user")
	}
}

func TestBookmarkNotFound(t *testing.T) {
	h, feedRepo, _, _ := testFeedHandler(t)

	feedRepo.EXPECT().ToggleBookmark("missing", int64(1)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/post/missing/bookmark", nil)
	req = mux.SetURLVars(req, map[string]string{"post_id": "missing"})
	w := httptest.NewRecorder()
	h.Bookmark(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMapPostAuthorLookupError(t *testing.T) {
	h, feedRepo, usersRepo, _ := testFeedHandler(t)

	feedRepo.EXPECT().GetAll().Return([]*posts.Post{samplePost("p1", 2)}, nil)
	usersRepo.EXPECT().GetByID(int64(2)).Return(nil, fmt.Errorf("lookup: %w", errInternal))

	w := httptest.NewRecorder()
	h.GetAll(w, httptest.NewRequest(http.MethodGet, "/api/posts/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

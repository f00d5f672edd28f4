package posts

import (
	"sync"

	"github.com/google/uuid"
)

// MemoryFeedRepo owns the ordered in-memory feed list. Newest posts sit
// at the front, matching display order.
type MemoryFeedRepo struct {
	mu   sync.Mutex
	data []*Post
}

func NewMemoryFeedRepo() *MemoryFeedRepo {
	return &MemoryFeedRepo{data: make([]*Post, 0, 16)}
}

func (repo *MemoryFeedRepo) GetAll() ([]*Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return append([]*Post(nil), repo.data...), nil
}

func (repo *MemoryFeedRepo) GetByTag(tag string) ([]*Post, error) {
	return repo.getPosts(func(p *Post) bool {
		for _, t := range p.Tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}

func (repo *MemoryFeedRepo) GetByAuthorID(authorID int64) ([]*Post, error) {
	return repo.getPosts(func(p *Post) bool { return p.AuthorID == authorID })
}

// GetByID also counts a view, mirroring how opening a post in the feed
// bumps its view counter.
func (repo *MemoryFeedRepo) GetByID(id string) (*Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, p := range repo.data {
		if p.ID == id {
			p.Metrics.Views++
			return p, nil
		}
	}

	return nil, nil
}

// Add prepends the post to the feed and assigns an id when missing.
func (repo *MemoryFeedRepo) Add(post *Post) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.LikedBy == nil {
		post.LikedBy = make(map[int64]bool)
	}
	if post.BookmarkedBy == nil {
		post.BookmarkedBy = make(map[int64]bool)
	}

	repo.data = append([]*Post{post}, repo.data...)
	return post.ID, nil
}

func (repo *MemoryFeedRepo) Delete(id string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, p := range repo.data {
		if p.ID == id {
			repo.data = append(repo.data[:i], repo.data[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

// ToggleLike flips the like state of the post for one user and keeps the
// aggregate counter in sync. Returns the updated post, nil if not found.
func (repo *MemoryFeedRepo) ToggleLike(postID string, userID int64) (*Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, p := range repo.data {
		if p.ID == postID {
			if p.LikedBy[userID] {
				delete(p.LikedBy, userID)
				p.Metrics.Likes--
			} else {
				p.LikedBy[userID] = true
				p.Metrics.Likes++
			}
			return p, nil
		}
	}

	return nil, nil
}

// ToggleBookmark flips the bookmark state for one user. Bookmarks are
// per-user only; there is no aggregate counter to maintain.
func (repo *MemoryFeedRepo) ToggleBookmark(postID string, userID int64) (*Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, p := range repo.data {
		if p.ID == postID {
			if p.BookmarkedBy[userID] {
				delete(p.BookmarkedBy, userID)
			} else {
				p.BookmarkedBy[userID] = true
			}
			return p, nil
		}
	}

	return nil, nil
}

func (repo *MemoryFeedRepo) getPosts(filter func(*Post) bool) ([]*Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	res := make([]*Post, 0, 10)
	for _, p := range repo.data {
		if filter(p) {
			res = append(res, p)
		}
	}

	return res, nil
}

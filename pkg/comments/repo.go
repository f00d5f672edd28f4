package comments

import (
	"sync"

	"github.com/google/uuid"
)

type MemoryCommentsRepo struct {
	mu   sync.Mutex
	data []*Comment
}

func NewRepo() *MemoryCommentsRepo {
	return &MemoryCommentsRepo{data: make([]*Comment, 0, 10)}
}

func (repo *MemoryCommentsRepo) GetByPostID(postID string) ([]*Comment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	res := make([]*Comment, 0)
	for _, c := range repo.data {
		if c.PostID == postID {
			res = append(res, c)
		}
	}

	return res, nil
}

func (repo *MemoryCommentsRepo) Add(comment *Comment) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	repo.data = append(repo.data, comment)
	return comment.ID, nil
}

func (repo *MemoryCommentsRepo) Delete(postID, commentID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, c := range repo.data {
		if c.PostID == postID && c.ID == commentID {
			repo.data = append(repo.data[:i], repo.data[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

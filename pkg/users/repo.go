package users

import "sync"

type MemoryUsersRepo struct {
	mu     sync.Mutex
	lastID int64
	data   []*User
}

func NewRepo() *MemoryUsersRepo {
	return &MemoryUsersRepo{data: make([]*User, 0, 10)}
}

func (repo *MemoryUsersRepo) GetAll() ([]*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return append([]*User(nil), repo.data...), nil
}

func (repo *MemoryUsersRepo) GetByID(id int64) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, u := range repo.data {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, nil
}

func (repo *MemoryUsersRepo) GetByUsername(username string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, u := range repo.data {
		if u.Username == username {
			return u, nil
		}
	}

	return nil, nil
}

func (repo *MemoryUsersRepo) Add(user *User) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.lastID++
	user.ID = repo.lastID
	repo.data = append(repo.data, user)
	return repo.lastID, nil
}

package comments

import "time"

type Comment struct {
	ID       string    `json:"id"`
	PostID   string    `json:"postId"`
	AuthorID int64     `json:"authorId"`
	Body     string    `json:"body"`
	Created  time.Time `json:"created"`
}

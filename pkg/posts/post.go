package posts

import (
	"time"

	"researchfeed/pkg/decks"
)

type AttachmentKind string

const (
	AttachmentFile  AttachmentKind = "file"
	AttachmentImage AttachmentKind = "image"
	AttachmentLink  AttachmentKind = "link"
)

type Attachment struct {
	Kind AttachmentKind `json:"kind"`
	Name string         `json:"name"`
	URL  string         `json:"url"`
}

type Metrics struct {
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Shares   int    `json:"shares"`
	Views    uint64 `json:"views"`
}

// Post is one feed entry. Presentation, when set, is a by-value snapshot
// of a deck taken at publish time; the live deck is never referenced, so
// later edits in the studio cannot rewrite published history.
type Post struct {
	ID           string
	AuthorID     int64
	Content      string
	ContentHTML  string
	PostType     string
	Tags         []string
	Attachments  []*Attachment
	Presentation *decks.Snapshot
	Metrics      Metrics
	Created      time.Time
	LikedBy      map[int64]bool
	BookmarkedBy map[int64]bool
}

// LikedByUser reports the like state for one viewer.
func (p *Post) LikedByUser(userID int64) bool {
	return p.LikedBy[userID]
}

// BookmarkedByUser reports the bookmark state for one viewer.
func (p *Post) BookmarkedByUser(userID int64) bool {
	return p.BookmarkedBy[userID]
}

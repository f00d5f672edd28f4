package composer

import (
	"strings"
	"sync"
	"time"

	"researchfeed/pkg/common"
	"researchfeed/pkg/decks"
	"researchfeed/pkg/posts"
	"researchfeed/pkg/templates"
)

// SoftMaxContentLen is advisory only: the UI shows a counter past this
// point but nothing rejects longer content.
const SoftMaxContentLen = 2000

// Draft is one post being composed. All mutation goes through methods so
// the destructive-change guard around the attached deck always applies.
type Draft struct {
	mu sync.Mutex

	content      string
	tags         []string
	postType     string
	attachments  []*posts.Attachment
	attachedDeck *decks.Snapshot
	deckDirty    bool

	// set while a post-type switch waits for the user to confirm
	// discarding unsaved deck changes
	pendingPostType string
}

func NewDraft() *Draft {
	return &Draft{postType: "research"}
}

func (d *Draft) SetContent(content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = content
}

func (d *Draft) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// ToggleTag adds the tag, or removes it when already selected. Display
// order is insertion order and stays stable across toggles of other tags.
func (d *Draft) ToggleTag(tag string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, t := range d.tags {
		if t == tag {
			d.tags = append(d.tags[:i], d.tags[i+1:]...)
			return
		}
	}
	d.tags = append(d.tags, tag)
}

func (d *Draft) Tags() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.tags...)
}

func (d *Draft) PostType() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.postType
}

// SetPostType switches the selected post type. When unsaved deck changes
// would be discarded by the switch it does nothing and returns true: the
// switch is parked until ConfirmPostType or CancelPostType.
func (d *Draft) SetPostType(postType string) (needsConfirm bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if postType == d.postType {
		return false
	}

	if d.attachedDeck != nil && d.deckDirty {
		d.pendingPostType = postType
		return true
	}

	d.postType = postType
	return false
}

// ConfirmPostType completes a parked post-type switch, discarding the
// attached deck.
func (d *Draft) ConfirmPostType() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pendingPostType == "" {
		return
	}

	d.postType = d.pendingPostType
	d.pendingPostType = ""
	d.attachedDeck = nil
	d.deckDirty = false
}

func (d *Draft) CancelPostType() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pendingPostType = ""
}

// UseQuickTemplate inserts the post type's markdown template verbatim
// into the free-text field. Returns false when the type has no template;
// the UI shows a "no recommendation" state in that case.
func (d *Draft) UseQuickTemplate() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	text := templates.QuickText(d.postType)
	if text == "" {
		return false
	}

	d.content = text
	return true
}

// Attach stores a deck snapshot on the draft. dirty records whether the
// studio session still had unsaved changes, which arms the post-type
// switch guard.
func (d *Draft) Attach(snap *decks.Snapshot, dirty bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attachedDeck = snap
	d.deckDirty = dirty
}

func (d *Draft) AttachedDeck() *decks.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attachedDeck
}

// AddAttachment records a file, image or link reference on the draft.
func (d *Draft) AddAttachment(kind posts.AttachmentKind, name, url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attachments = append(d.attachments, &posts.Attachment{Kind: kind, Name: name, URL: url})
}

func (d *Draft) Attachments() []*posts.Attachment {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*posts.Attachment(nil), d.attachments...)
}

// Submit assembles the post and hands it to the feed collaborator.
// Whitespace-only content is a silent no-op: nothing is appended and the
// draft keeps its state. On success every field resets, the attached
// deck included.
func (d *Draft) Submit(authorID int64, appendToFeed func(*posts.Post) (string, error)) (*posts.Post, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if strings.TrimSpace(d.content) == "" {
		return nil, nil
	}

	post := &posts.Post{
		AuthorID:     authorID,
		Content:      d.content,
		ContentHTML:  common.RenderMarkdown(d.content),
		PostType:     d.postType,
		Tags:         append([]string(nil), d.tags...),
		Attachments:  append([]*posts.Attachment(nil), d.attachments...),
		Presentation: d.attachedDeck,
		Created:      time.Now(),
		LikedBy:      make(map[int64]bool),
		BookmarkedBy: make(map[int64]bool),
	}

	id, err := appendToFeed(post)
	if err != nil {
		return nil, err
	}
	post.ID = id

	d.content = ""
	d.tags = nil
	d.attachments = nil
	d.attachedDeck = nil
	d.deckDirty = false
	d.pendingPostType = ""

	return post, nil
}

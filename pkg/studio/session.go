package studio

import (
	"errors"
	"sync"
	"time"

	"researchfeed/pkg/decks"
	"researchfeed/pkg/posts"
	"researchfeed/pkg/templates"
)

// Mode is the editor's top-level state. Modes are mutually exclusive by
// construction: the session holds exactly one, so impossible flag
// combinations (template picker open inside the full-screen viewer, say)
// cannot be represented.
type Mode string

const (
	// ModeTemplateSelection is the initial state whenever the editor
	// opens without a deck.
	ModeTemplateSelection Mode = "template-selection"
	ModeEditing           Mode = "editing"
	ModePreviewing        Mode = "previewing"
	ModeFullScreen        Mode = "full-screen"
	// ModeConfirmingPublish parks a publish of an all-blank deck until
	// the author confirms or cancels. The old composer used a browser
	// confirm() here; the decision is now a real state.
	ModeConfirmingPublish Mode = "confirming-publish"
	// ModeConfirmingDiscard parks a close with unsaved changes the same
	// way.
	ModeConfirmingDiscard Mode = "confirming-discard"
)

// DefaultQuietPeriod is how long the editor must sit idle before the
// auto-save indicator flips to saved.
const DefaultQuietPeriod = 2 * time.Second

var (
	ErrClosed    = errors.New("studio: session is closed")
	ErrNoDeck    = errors.New("studio: no deck selected yet")
	ErrNotReady  = errors.New("studio: deck needs a title and at least one slide")
	ErrWrongMode = errors.New("studio: operation not allowed in current mode")
	ErrBadIndex  = errors.New("studio: slide index out of range")
)

type pendingEdit struct {
	slide int
	field string
	value string
	live  bool
}

// Session is one live editing session. All state transitions happen
// synchronously under the session mutex; the only asynchronous actor is
// the auto-save timer, which is reset on every edit and cancelled on
// Close so it can never fire into a dead session.
type Session struct {
	mu sync.Mutex

	id      string
	deck    *decks.Deck
	current int
	mode    Mode
	pending pendingEdit
	saved   bool
	closed  bool

	quiet time.Duration
	timer *time.Timer
}

func newSession(id string, quiet time.Duration) *Session {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Session{id: id, mode: ModeTemplateSelection, saved: true, quiet: quiet}
}

func (s *Session) ID() string { return s.id }

// ChooseTemplate seeds the deck from a catalog entry and moves to
// Editing. A nil entry (unknown post type) falls back to a single blank
// slide rather than failing.
func (s *Session) ChooseTemplate(e *templates.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.mode != ModeTemplateSelection {
		return ErrWrongMode
	}

	if e == nil {
		s.deck = templates.Blank("")
	} else {
		s.deck = templates.FromEntry(e)
	}
	s.current = 0
	s.mode = ModeEditing
	s.saved = true
	return nil
}

// StartBlank starts from a single blank slide themed for the post type.
func (s *Session) StartBlank(postType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.mode != ModeTemplateSelection {
		return ErrWrongMode
	}

	s.deck = templates.Blank(postType)
	s.current = 0
	s.mode = ModeEditing
	s.saved = true
	return nil
}

// Resume opens the editor on an existing snapshot, for re-editing a deck
// already attached to a draft. The snapshot is cloned in; the attached
// copy stays untouched.
func (s *Session) Resume(snap *decks.Snapshot, postType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.mode != ModeTemplateSelection {
		return ErrWrongMode
	}

	d := decks.New(postType, snap.Slides[0].Copy())
	for _, sl := range snap.Slides[1:] {
		d.Slides = append(d.Slides, sl.Copy())
	}
	d.Title = snap.Title

	s.deck = d
	s.current = 0
	s.mode = ModeEditing
	s.saved = true
	return nil
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) Deck() *decks.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Saved reports whether the auto-save indicator shows saved. Advisory
// only: nothing persists anywhere durable.
func (s *Session) Saved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

func (s *Session) SetTitle(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	s.deck.Title = title
	s.markDirty()
	return nil
}

// AddSlide inserts a blank slide after the current one and selects it.
func (s *Session) AddSlide() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	s.commitPending()
	s.current = s.deck.AddSlide(s.current)
	s.markDirty()
	return nil
}

// DuplicateSlide deep-copies the current slide and selects the copy.
func (s *Session) DuplicateSlide() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	s.commitPending()
	s.current = s.deck.DuplicateSlide(s.current)
	s.markDirty()
	return nil
}

// RemoveSlide deletes the current slide. Deleting the only slide is a
// deliberate no-op, not an error.
func (s *Session) RemoveSlide() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	s.commitPending()
	before := s.deck.SlideCount()
	s.current = s.deck.RemoveSlide(s.current, s.current)
	if s.deck.SlideCount() != before {
		s.markDirty()
	}
	return nil
}

// MoveSlide reorders the slide at from to position to; the moved slide
// stays current.
func (s *Session) MoveSlide(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}
	if from < 0 || from >= s.deck.SlideCount() || to < 0 || to >= s.deck.SlideCount() {
		return ErrBadIndex
	}

	s.commitPending()
	s.current = s.deck.MoveSlide(from, to)
	s.markDirty()
	return nil
}

// UpdateField sets a content field on the current slide directly,
// bypassing inline-edit staging. Unknown fields are ignored.
func (s *Session) UpdateField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	if s.deck.UpdateField(s.current, field, value) {
		s.markDirty()
	}
	return nil
}

// SetLayout switches the current slide's layout. Unknown layouts fail
// closed in the slide model; the deck is only marked dirty on change.
func (s *Session) SetLayout(layout string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	if s.deck.SetLayout(s.current, layout) {
		s.markDirty()
	}
	return nil
}

func (s *Session) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	if s.deck.SetTheme(s.current, theme) {
		s.markDirty()
	}
	return nil
}

// ApplyThemeToAll broadcasts the given theme to every slide.
func (s *Session) ApplyThemeToAll(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	if s.deck.ApplyThemeToAll(theme) {
		s.markDirty()
	}
	return nil
}

// InsertStarterContent fills the current slide's empty fields with
// starter text for its layout, on explicit request.
func (s *Session) InsertStarterContent() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	s.deck.InsertStarterContent(s.current)
	s.markDirty()
	return nil
}

func (s *Session) editable() error {
	if s.closed {
		return ErrClosed
	}
	if s.deck == nil {
		return ErrNoDeck
	}
	if s.mode != ModeEditing {
		return ErrWrongMode
	}
	return nil
}

// markDirty flags unsaved changes and restarts the auto-save debounce.
// Caller holds the mutex.
func (s *Session) markDirty() {
	s.saved = false
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.closed {
			s.saved = true
		}
	})
}

// RequestClose asks to end the session. With unsaved changes on a deck
// it parks in ModeConfirmingDiscard and returns true; a repeated request
// (or Manager.Close directly) proceeds, CancelDiscard returns to editing.
func (s *Session) RequestClose() (needsConfirm bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.deck == nil || s.saved || s.mode == ModeConfirmingDiscard {
		return false
	}

	s.mode = ModeConfirmingDiscard
	return true
}

// CancelDiscard abandons a parked close and returns to editing.
func (s *Session) CancelDiscard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeConfirmingDiscard {
		s.mode = ModeEditing
	}
}

// Close ends the session, discarding uncommitted edits and stopping the
// auto-save timer so it cannot fire afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.pending = pendingEdit{}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// CanPublish is the readiness gate shared by publish and attach: a
// non-empty title and at least one slide.
func (s *Session) CanPublish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canPublish()
}

func (s *Session) canPublish() bool {
	return s.deck != nil && s.deck.Title != "" && s.deck.SlideCount() > 0
}

// PublishToFeed builds a complete post around the deck snapshot and
// appends it via the feed collaborator. When every slide is blank the
// publish parks in ModeConfirmingPublish and needsConfirm is true; call
// again after ConfirmPublish to proceed.
func (s *Session) PublishToFeed(authorID int64, appendToFeed func(*posts.Post) (string, error)) (post *posts.Post, needsConfirm bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, ErrClosed
	}
	if !s.canPublish() {
		return nil, false, ErrNotReady
	}

	if s.deck.AllSlidesEmpty() && s.mode != ModeConfirmingPublish {
		s.mode = ModeConfirmingPublish
		return nil, true, nil
	}

	s.commitPending()
	snap := s.deck.Snapshot()

	p := &posts.Post{
		AuthorID:     authorID,
		Content:      s.deck.Title,
		PostType:     s.deck.PostType,
		Presentation: snap,
		Created:      time.Now(),
		LikedBy:      make(map[int64]bool),
		BookmarkedBy: make(map[int64]bool),
	}

	id, err := appendToFeed(p)
	if err != nil {
		return nil, false, err
	}
	p.ID = id

	s.mode = ModeEditing
	s.saved = true
	return p, false, nil
}

// CancelPublish abandons a parked publish and returns to editing. A
// PublishToFeed call while the session sits in ModeConfirmingPublish is
// the confirmation and goes through.
func (s *Session) CancelPublish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeConfirmingPublish {
		s.mode = ModeEditing
	}
}

// AttachSnapshot hands the deck back to the composer as a by-value
// snapshot instead of posting it. dirty reports whether the session had
// unsaved changes at the time.
func (s *Session) AttachSnapshot() (snap *decks.Snapshot, dirty bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, ErrClosed
	}
	if !s.canPublish() {
		return nil, false, ErrNotReady
	}

	s.commitPending()
	return s.deck.Snapshot(), !s.saved, nil
}

package studio

// Inline editing stages keystrokes for one field at a time. The staged
// value is committed on blur/Enter and on any navigation away from the
// slide, and discarded on Escape. Navigation never silently drops
// keystrokes: commit-on-navigate is the default.

// StartInlineEdit begins editing a field on the current slide. A pending
// edit on another field is committed first; two fields are never in
// inline-edit mode at once.
func (s *Session) StartInlineEdit(field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	if s.pending.live {
		s.commitPending()
	}

	value, ok := s.deck.Slides[s.current].Field(field)
	if !ok {
		return nil
	}

	s.pending = pendingEdit{slide: s.current, field: field, value: value, live: true}
	return nil
}

// TypeInlineEdit replaces the staged value of the pending edit.
func (s *Session) TypeInlineEdit(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if !s.pending.live {
		return nil
	}

	s.pending.value = value
	return nil
}

// CommitInlineEdit writes the staged value into the slide (blur/Enter).
func (s *Session) CommitInlineEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.commitPending()
	return nil
}

// DiscardInlineEdit drops the staged value (Escape).
func (s *Session) DiscardInlineEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.pending = pendingEdit{}
	return nil
}

// InlineEditing reports the field currently in inline-edit mode, if any.
func (s *Session) InlineEditing() (field string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending.live {
		return "", false
	}
	return s.pending.field, true
}

// commitPending flushes the staged edit into its slide. Caller holds the
// mutex. The edit is addressed by slide index captured at StartInlineEdit
// time, so committing after navigation still lands on the right slide.
func (s *Session) commitPending() {
	if !s.pending.live {
		return
	}

	p := s.pending
	s.pending = pendingEdit{}

	if p.slide >= 0 && p.slide < s.deck.SlideCount() {
		if s.deck.UpdateField(p.slide, p.field, p.value) {
			s.markDirty()
		}
	}
}

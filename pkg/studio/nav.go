package studio

// Next moves to the following slide, committing any pending inline edit
// first. At the last slide it stays put.
func (s *Session) Next() error {
	return s.goTo(+1)
}

// Prev moves to the preceding slide, committing any pending inline edit
// first. At the first slide it stays put.
func (s *Session) Prev() error {
	return s.goTo(-1)
}

func (s *Session) goTo(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.deck == nil {
		return ErrNoDeck
	}
	if s.mode != ModeEditing && s.mode != ModePreviewing && s.mode != ModeFullScreen {
		return ErrWrongMode
	}

	s.commitPending()

	next := s.current + delta
	if next < 0 || next >= s.deck.SlideCount() {
		return nil
	}
	s.current = next
	return nil
}

// Select jumps to the slide at index i (navigator strip click).
func (s *Session) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.deck == nil {
		return ErrNoDeck
	}
	if i < 0 || i >= s.deck.SlideCount() {
		return nil
	}

	s.commitPending()
	s.current = i
	return nil
}

// Preview switches to the read-only large-format display of the current
// slide. Field edits are rejected until ClosePreview.
func (s *Session) Preview() error {
	return s.setMode(ModeEditing, ModePreviewing)
}

func (s *Session) ClosePreview() error {
	return s.setMode(ModePreviewing, ModeEditing)
}

// Present enters the full-viewport viewer with keyboard navigation.
func (s *Session) Present() error {
	return s.setMode(ModeEditing, ModeFullScreen)
}

func (s *Session) StopPresenting() error {
	return s.setMode(ModeFullScreen, ModeEditing)
}

func (s *Session) setMode(from, to Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.deck == nil {
		return ErrNoDeck
	}
	if s.mode != from {
		return ErrWrongMode
	}

	s.commitPending()
	s.mode = to
	return nil
}

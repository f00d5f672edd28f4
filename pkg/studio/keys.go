package studio

// KeyEvent is one keyboard shortcut as the client reports it. Mod is the
// platform modifier (Ctrl or Cmd); shortcuts without it are handled
// client-side and never reach the session.
type KeyEvent struct {
	Key string `json:"key"`
	Mod bool   `json:"mod"`
}

// Action tells the caller what a shortcut did, so the HTTP layer knows
// when to follow up (serving the export file, for example).
type Action string

const (
	ActionNone      Action = ""
	ActionAddSlide  Action = "add-slide"
	ActionDuplicate Action = "duplicate"
	ActionNavigate  Action = "navigate"
	ActionExport    Action = "export"
	ActionThemeAll  Action = "theme-all"
)

// HandleKey dispatches an editor shortcut:
//
//	mod+Enter  add slide     mod+D  duplicate current
//	mod+Left   previous      mod+Right  next
//	mod+S      export        mod+T  apply current theme to all
//
// Shortcuts are live only while the session is open; anything else is
// ignored without error.
func (s *Session) HandleKey(ev KeyEvent) (Action, error) {
	if s.Closed() {
		return ActionNone, ErrClosed
	}
	if !ev.Mod {
		return ActionNone, nil
	}

	switch ev.Key {
	case "Enter":
		return ActionAddSlide, s.AddSlide()
	case "d", "D":
		return ActionDuplicate, s.DuplicateSlide()
	case "ArrowLeft":
		return ActionNavigate, s.Prev()
	case "ArrowRight":
		return ActionNavigate, s.Next()
	case "s", "S":
		return ActionExport, nil
	case "t", "T":
		s.mu.Lock()
		if err := s.editable(); err != nil {
			s.mu.Unlock()
			return ActionNone, err
		}
		theme := string(s.deck.Slides[s.current].Theme)
		s.mu.Unlock()
		return ActionThemeAll, s.ApplyThemeToAll(theme)
	}

	return ActionNone, nil
}

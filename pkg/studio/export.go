package studio

import (
	"encoding/json"
	"time"

	"researchfeed/pkg/common"
	"researchfeed/pkg/slides"
)

// exportFile is the one-way download format. Nothing reads it back.
type exportFile struct {
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Slides    []*slides.Slide `json:"slides"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Export serializes the deck as pretty-printed JSON for a client-side
// download. The file name is the slugified deck title.
func (s *Session) Export() (filename string, data []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", nil, ErrClosed
	}
	if s.deck == nil {
		return "", nil, ErrNoDeck
	}

	s.commitPending()
	snap := s.deck.Snapshot()

	data, err = json.MarshalIndent(exportFile{
		Title:     snap.Title,
		Type:      s.deck.PostType,
		Slides:    snap.Slides,
		CreatedAt: time.Now(),
	}, "", "  ")
	if err != nil {
		return "", nil, err
	}

	return common.Slugify(snap.Title) + ".json", data, nil
}

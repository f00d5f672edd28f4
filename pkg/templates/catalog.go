package templates

import (
	"researchfeed/pkg/decks"
	"researchfeed/pkg/slides"
)

// PostType is a feed post category. Its color seeds the default theme of
// decks created for it.
type PostType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Entry is one catalog row: the pre-authored deck for a post type plus
// the plain markdown string used by the quick-post path. The two are
// separate artifacts; the quick text never feeds the deck.
type Entry struct {
	PostTypeID  string          `json:"postTypeId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Slides      []*slides.Slide `json:"slides"`
	QuickText   string          `json:"-"`
}

var postTypes = []PostType{
	{ID: "research", Label: "Research Update", Color: "#6366f1"},
	{ID: "question", Label: "Open Question", Color: "#f59e0b"},
	{ID: "collaboration", Label: "Collaboration Call", Color: "#10b981"},
	{ID: "dataset", Label: "Dataset Release", Color: "#0ea5e9"},
	{ID: "announcement", Label: "Announcement", Color: "#f43f5e"},
}

func PostTypes() []PostType {
	return postTypes
}

func postTypeByID(id string) (PostType, bool) {
	for _, pt := range postTypes {
		if pt.ID == id {
			return pt, true
		}
	}
	return PostType{}, false
}

// List returns catalog entries in stable display order.
func List() []*Entry {
	entries := make([]*Entry, 0, len(postTypes))
	for _, pt := range postTypes {
		if e, ok := catalog[pt.ID]; ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// Get looks up the entry for a post type. ok is false for unknown ids;
// callers show a "no recommendation" state and fall back to Blank.
func Get(postTypeID string) (*Entry, bool) {
	e, ok := catalog[postTypeID]
	return e, ok
}

// Blank builds a single-slide deck for a post type. The starting theme is
// derived from the type's accent color, or the generic default when the
// type is unknown or empty.
func Blank(postTypeID string) *decks.Deck {
	theme := slides.DefaultTheme
	if pt, ok := postTypeByID(postTypeID); ok {
		theme = slides.ThemeForColor(pt.Color)
	}

	s := slides.New(slides.TitleContent)
	s.Theme = theme
	s.Content.Title = "New Slide"

	return decks.New(postTypeID, s)
}

// FromEntry seeds a new deck from a catalog entry, deep-copying the
// canned slides so edits never touch the catalog.
func FromEntry(e *Entry) *decks.Deck {
	if e == nil || len(e.Slides) == 0 {
		return Blank("")
	}

	d := decks.New(e.PostTypeID, e.Slides[0].Clone())
	for _, s := range e.Slides[1:] {
		d.Slides = append(d.Slides, s.Clone())
	}
	d.Title = e.Title
	return d
}

// QuickText returns the markdown quick-post template for a post type,
// or "" when there is none.
func QuickText(postTypeID string) string {
	if e, ok := catalog[postTypeID]; ok {
		return e.QuickText
	}
	return ""
}

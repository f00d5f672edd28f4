package slides

import (
	"github.com/google/uuid"
)

type Layout string

const (
	TitleContent Layout = "title-content"
	TwoColumn    Layout = "two-column"
	ImageFocus   Layout = "image-focus"
	FullImage    Layout = "full-image"
	Quote        Layout = "quote"
	Chart        Layout = "chart"
	BulletPoints Layout = "bullet-points"
)

var layouts = map[Layout]bool{
	TitleContent: true,
	TwoColumn:    true,
	ImageFocus:   true,
	FullImage:    true,
	Quote:        true,
	Chart:        true,
	BulletPoints: true,
}

// Older composer builds used their own layout names. They map onto the
// canonical set so decks written by either one render the same way.
var layoutSynonyms = map[string]Layout{
	"split-view":      TwoColumn,
	"chart-focus":     Chart,
	"quote-highlight": Quote,
}

// NormalizeLayout resolves a raw layout name, legacy synonyms included,
// into the canonical enumeration. ok is false for unknown names.
func NormalizeLayout(raw string) (Layout, bool) {
	if l, ok := layoutSynonyms[raw]; ok {
		return l, true
	}
	if layouts[Layout(raw)] {
		return Layout(raw), true
	}
	return "", false
}

func KnownLayout(l Layout) bool {
	return layouts[l]
}

func Layouts() []Layout {
	return []Layout{TitleContent, TwoColumn, ImageFocus, FullImage, Quote, Chart, BulletPoints}
}

// Content carries every field any layout can use. Fields that the current
// layout does not show are kept as-is, so switching a slide back and forth
// between layouts never loses what the author typed.
type Content struct {
	Title         string   `json:"title"`
	Text          string   `json:"text"`
	SecondaryText string   `json:"secondaryText"`
	Quote         string   `json:"quote"`
	QuoteAuthor   string   `json:"quoteAuthor"`
	ImageURL      string   `json:"imageUrl"`
	ChartNote     string   `json:"chartNote"`
	Bullets       []string `json:"bullets"`
}

const (
	FieldTitle         = "title"
	FieldText          = "text"
	FieldSecondaryText = "secondaryText"
	FieldQuote         = "quote"
	FieldQuoteAuthor   = "quoteAuthor"
	FieldImageURL      = "imageUrl"
	FieldChartNote     = "chartNote"
)

type Slide struct {
	ID      string  `json:"id"`
	Layout  Layout  `json:"layout"`
	Theme   Theme   `json:"theme"`
	Content Content `json:"content"`
}

func New(layout Layout) *Slide {
	if !layouts[layout] {
		layout = TitleContent
	}

	return &Slide{
		ID:     uuid.NewString(),
		Layout: layout,
		Theme:  DefaultTheme,
	}
}

// Clone returns a deep copy with a freshly generated id.
func (s *Slide) Clone() *Slide {
	c := s.Copy()
	c.ID = uuid.NewString()
	return c
}

// Copy returns a deep copy that keeps the original id. Used for snapshots.
func (s *Slide) Copy() *Slide {
	c := *s
	if s.Content.Bullets != nil {
		c.Content.Bullets = make([]string, len(s.Content.Bullets))
		copy(c.Content.Bullets, s.Content.Bullets)
	}
	return &c
}

// SetLayout switches the slide to another layout. Unknown layouts fail
// closed: the previous layout is kept and false is returned, so the
// renderer never sees a layout it cannot handle.
func (s *Slide) SetLayout(raw string) bool {
	l, ok := NormalizeLayout(raw)
	if !ok {
		return false
	}

	s.Layout = l
	return true
}

// SetTheme applies a palette preset. Unknown themes fail closed.
func (s *Slide) SetTheme(raw string) bool {
	if !KnownTheme(Theme(raw)) {
		return false
	}

	s.Theme = Theme(raw)
	return true
}

// SetField sets one scalar content field by its wire name. Unknown field
// names are reported, not stored.
func (s *Slide) SetField(field, value string) bool {
	switch field {
	case FieldTitle:
		s.Content.Title = value
	case FieldText:
		s.Content.Text = value
	case FieldSecondaryText:
		s.Content.SecondaryText = value
	case FieldQuote:
		s.Content.Quote = value
	case FieldQuoteAuthor:
		s.Content.QuoteAuthor = value
	case FieldImageURL:
		s.Content.ImageURL = value
	case FieldChartNote:
		s.Content.ChartNote = value
	default:
		return false
	}

	return true
}

// Field reads one scalar content field by its wire name.
func (s *Slide) Field(field string) (string, bool) {
	switch field {
	case FieldTitle:
		return s.Content.Title, true
	case FieldText:
		return s.Content.Text, true
	case FieldSecondaryText:
		return s.Content.SecondaryText, true
	case FieldQuote:
		return s.Content.Quote, true
	case FieldQuoteAuthor:
		return s.Content.QuoteAuthor, true
	case FieldImageURL:
		return s.Content.ImageURL, true
	case FieldChartNote:
		return s.Content.ChartNote, true
	}

	return "", false
}

func (s *Slide) SetBullets(bullets []string) {
	s.Content.Bullets = append([]string(nil), bullets...)
}

// Empty reports whether the slide has no visible content for its current
// layout. Used by the publish gate to ask for confirmation before posting
// a deck of blank slides.
func (s *Slide) Empty() bool {
	c := s.Content
	switch s.Layout {
	case Quote:
		return c.Quote == "" && c.QuoteAuthor == "" && c.Title == ""
	case ImageFocus, FullImage:
		return c.ImageURL == "" && c.Title == ""
	case Chart:
		return c.ChartNote == "" && c.Title == ""
	case BulletPoints:
		return len(c.Bullets) == 0 && c.Title == ""
	case TwoColumn:
		return c.Title == "" && c.Text == "" && c.SecondaryText == ""
	default:
		return c.Title == "" && c.Text == ""
	}
}

package decks

import (
	"time"

	"github.com/google/uuid"

	"researchfeed/pkg/slides"
)

// Deck is one presentation being edited: a title plus an ordered list of
// slides. PostType records which post category spawned the deck; it only
// steers template and theme suggestions.
type Deck struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	PostType string          `json:"postType"`
	Slides   []*slides.Slide `json:"slides"`
	Created  time.Time       `json:"created"`
}

// Snapshot is an immutable by-value copy of a deck embedded into a post.
// Later edits to the live deck never reach a snapshot that was already
// attached or published.
type Snapshot struct {
	Title  string          `json:"title"`
	Slides []*slides.Slide `json:"slides"`
}

func New(postType string, first *slides.Slide) *Deck {
	if first == nil {
		first = slides.New(slides.TitleContent)
	}

	return &Deck{
		ID:       uuid.NewString(),
		PostType: postType,
		Slides:   []*slides.Slide{first},
		Created:  time.Now(),
	}
}

func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// AddSlide inserts a blank title-content slide. With after in range the
// new slide lands immediately after it, otherwise at the end. Returns the
// index of the new slide, which becomes the current one.
func (d *Deck) AddSlide(after int) int {
	s := slides.New(slides.TitleContent)
	if len(d.Slides) > 0 {
		// New slides inherit the theme of the slide they follow.
		ref := len(d.Slides) - 1
		if after >= 0 && after < len(d.Slides) {
			ref = after
		}
		s.Theme = d.Slides[ref].Theme
	}

	if after < 0 || after >= len(d.Slides)-1 {
		d.Slides = append(d.Slides, s)
		return len(d.Slides) - 1
	}

	d.Slides = append(d.Slides, nil)
	copy(d.Slides[after+2:], d.Slides[after+1:])
	d.Slides[after+1] = s
	return after + 1
}

// DuplicateSlide inserts a deep copy of the slide at i directly after it.
// The copy gets a fresh id and becomes the current slide.
func (d *Deck) DuplicateSlide(i int) int {
	c := d.Slides[i].Clone()
	d.Slides = append(d.Slides, nil)
	copy(d.Slides[i+2:], d.Slides[i+1:])
	d.Slides[i+1] = c
	return i + 1
}

// RemoveSlide deletes the slide at i and returns the clamped current
// index. Removing the only remaining slide is deliberately a no-op: a
// deck never goes empty once initialized.
func (d *Deck) RemoveSlide(i, current int) int {
	if len(d.Slides) <= 1 {
		return current
	}

	d.Slides = append(d.Slides[:i], d.Slides[i+1:]...)
	if current >= i && current > 0 {
		current--
	}
	if current > len(d.Slides)-1 {
		current = len(d.Slides) - 1
	}
	return current
}

// MoveSlide reorders the slide at from to position to and returns the new
// index of the moved slide, which stays current.
func (d *Deck) MoveSlide(from, to int) int {
	if from == to {
		return to
	}

	s := d.Slides[from]
	d.Slides = append(d.Slides[:from], d.Slides[from+1:]...)
	d.Slides = append(d.Slides, nil)
	copy(d.Slides[to+1:], d.Slides[to:])
	d.Slides[to] = s
	return to
}

func (d *Deck) UpdateField(i int, field, value string) bool {
	return d.Slides[i].SetField(field, value)
}

func (d *Deck) SetLayout(i int, layout string) bool {
	return d.Slides[i].SetLayout(layout)
}

func (d *Deck) SetTheme(i int, theme string) bool {
	return d.Slides[i].SetTheme(theme)
}

func (d *Deck) ApplyThemeToAll(theme string) bool {
	if !slides.KnownTheme(slides.Theme(theme)) {
		return false
	}

	for _, s := range d.Slides {
		s.Theme = slides.Theme(theme)
	}
	return true
}

// InsertStarterContent fills the empty fields of the slide at i with
// placeholder text for its current layout. The legacy composer did this
// silently when switching a slide to title-content; here it is an
// explicit action the author asks for.
func (d *Deck) InsertStarterContent(i int) {
	s := d.Slides[i]
	c := &s.Content

	if c.Title == "" {
		c.Title = "New Slide"
	}

	switch s.Layout {
	case slides.TwoColumn:
		if c.Text == "" {
			c.Text = "Left column content"
		}
		if c.SecondaryText == "" {
			c.SecondaryText = "Right column content"
		}
	case slides.Quote:
		if c.Quote == "" {
			c.Quote = "Add a memorable quote"
		}
	case slides.Chart:
		if c.ChartNote == "" {
			c.ChartNote = "Describe the chart or key finding"
		}
	case slides.BulletPoints:
		if len(c.Bullets) == 0 {
			c.Bullets = []string{"First point", "Second point"}
		}
	default:
		if c.Text == "" {
			c.Text = "Add your content here"
		}
	}
}

// AllSlidesEmpty reports whether no slide has visible content.
func (d *Deck) AllSlidesEmpty() bool {
	for _, s := range d.Slides {
		if !s.Empty() {
			return false
		}
	}
	return true
}

// Snapshot deep-copies the deck's title and slides into a value the
// composer or feed can embed.
func (d *Deck) Snapshot() *Snapshot {
	snap := &Snapshot{Title: d.Title, Slides: make([]*slides.Slide, 0, len(d.Slides))}
	for _, s := range d.Slides {
		snap.Slides = append(snap.Slides, s.Copy())
	}
	return snap
}

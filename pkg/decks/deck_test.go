package decks

import (
	"reflect"
	"testing"

	"researchfeed/pkg/slides"
)

func threeSlideDeck() *Deck {
	d := New("research", nil)
	d.Slides[0].Content.Title = "A"
	d.AddSlide(-1)
	d.Slides[1].Content.Title = "B"
	d.AddSlide(-1)
	d.Slides[2].Content.Title = "C"
	return d
}

func titles(d *Deck) []string {
	res := make([]string, 0, len(d.Slides))
	for _, s := range d.Slides {
		res = append(res, s.Content.Title)
	}
	return res
}

func TestRemoveLastSlideIsNoOp(t *testing.T) {
	d := New("research", nil)

	for i := 0; i < 5; i++ {
		current := d.RemoveSlide(0, 0)
		if current != 0 {
			t.Fatalf("current = %d after remove on single-slide deck", current)
		}
		if d.SlideCount() != 1 {
			t.Fatalf("deck went to %d slides; must never drop below 1", d.SlideCount())
		}
	}
}

func TestRemoveClampsCurrent(t *testing.T) {
	d := threeSlideDeck()

	current := d.RemoveSlide(2, 2)
	if current != 1 {
		t.Errorf("current = %d after removing last slide while on it, want 1", current)
	}
	if got := titles(d); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("slides = %v", got)
	}
}

func TestDuplicateSlide(t *testing.T) {
	d := threeSlideDeck()
	d.Slides[1].SetLayout(string(slides.Quote))
	d.Slides[1].SetTheme(string(slides.ThemeForest))

	before := d.SlideCount()
	current := d.DuplicateSlide(1)

	if current != 2 {
		t.Errorf("duplicate selected index %d, want 2", current)
	}
	if d.SlideCount() != before+1 {
		t.Errorf("slide count %d, want %d", d.SlideCount(), before+1)
	}

	orig, dup := d.Slides[1], d.Slides[2]
	if dup.ID == orig.ID {
		t.Error("duplicate must have a different id")
	}
	if dup.Layout != orig.Layout || dup.Theme != orig.Theme || !reflect.DeepEqual(dup.Content, orig.Content) {
		t.Error("duplicate must copy layout, theme and content")
	}
}

func TestMoveSlide(t *testing.T) {
	d := threeSlideDeck()

	current := d.MoveSlide(0, d.SlideCount()-1)

	if got := titles(d); !reflect.DeepEqual(got, []string{"B", "C", "A"}) {
		t.Errorf("slides after move = %v, want [B C A]", got)
	}
	if current != 2 {
		t.Errorf("current = %d, want the moved slide at 2", current)
	}
}

func TestAddSlideAfterIndex(t *testing.T) {
	d := threeSlideDeck()
	d.ApplyThemeToAll(string(slides.ThemeSlate))

	current := d.AddSlide(0)
	if current != 1 {
		t.Errorf("current = %d, want 1", current)
	}
	if got := titles(d); !reflect.DeepEqual(got, []string{"A", "", "B", "C"}) {
		t.Errorf("slides = %v", got)
	}
	if d.Slides[1].Theme != slides.ThemeSlate {
		t.Errorf("new slide theme = %q, want inherited %q", d.Slides[1].Theme, slides.ThemeSlate)
	}
}

func TestApplyThemeToAll(t *testing.T) {
	d := threeSlideDeck()
	d.Slides[1].Content.Text = "keep me"

	if !d.ApplyThemeToAll(string(slides.ThemeMidnight)) {
		t.Fatal("known theme rejected")
	}

	for i, s := range d.Slides {
		if s.Theme != slides.ThemeMidnight {
			t.Errorf("slide %d theme = %q", i, s.Theme)
		}
	}
	if d.Slides[1].Content.Text != "keep me" {
		t.Error("ApplyThemeToAll changed content")
	}

	if d.ApplyThemeToAll("neon-zebra") {
		t.Error("unknown theme must be rejected")
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	d := threeSlideDeck()
	d.Title = "Before"

	snap := d.Snapshot()

	d.Title = "After"
	d.Slides[0].Content.Title = "mutated"
	d.AddSlide(-1)

	if snap.Title != "Before" {
		t.Errorf("snapshot title = %q, want %q", snap.Title, "Before")
	}
	if len(snap.Slides) != 3 {
		t.Errorf("snapshot has %d slides, want 3", len(snap.Slides))
	}
	if snap.Slides[0].Content.Title != "A" {
		t.Error("snapshot slide changed after deck edit")
	}
}

func TestInsertStarterContent(t *testing.T) {
	d := New("research", nil)
	d.SetLayout(0, string(slides.TwoColumn))
	d.UpdateField(0, slides.FieldTitle, "My Title")

	d.InsertStarterContent(0)

	s := d.Slides[0]
	if s.Content.Title != "My Title" {
		t.Error("starter content must not overwrite existing fields")
	}
	if s.Content.Text == "" || s.Content.SecondaryText == "" {
		t.Error("starter content should fill both columns")
	}
}

package render

import (
	"strings"
	"testing"

	"researchfeed/pkg/slides"
)

func TestFrameNeverRendersBlank(t *testing.T) {
	for _, layout := range slides.Layouts() {
		s := slides.New(layout)
		nodes := Frame(s)

		if len(nodes) == 0 {
			t.Errorf("layout %q renders zero nodes for a blank slide", layout)
			continue
		}
		for _, n := range nodes {
			if n.Text == "" {
				t.Errorf("layout %q has an empty node of kind %q", layout, n.Kind)
			}
			if !n.Placeholder {
				t.Errorf("layout %q: blank slide node %q not marked placeholder", layout, n.Kind)
			}
		}
	}
}

func TestFrameFilledContentIsNotPlaceholder(t *testing.T) {
	s := slides.New(slides.Quote)
	s.SetField(slides.FieldQuote, "Measure twice, cut once.")
	s.SetField(slides.FieldQuoteAuthor, "Anonymous")

	nodes := Frame(s)
	if len(nodes) != 2 {
		t.Fatalf("quote layout rendered %d nodes, want 2", len(nodes))
	}
	if nodes[0].Kind != QuoteText || nodes[0].Placeholder {
		t.Errorf("quote node = %+v", nodes[0])
	}
	if nodes[1].Kind != Attribution || nodes[1].Text != "— Anonymous" {
		t.Errorf("attribution node = %+v", nodes[1])
	}
}

func TestFrameUnknownLayoutFallsBack(t *testing.T) {
	s := slides.New(slides.TitleContent)
	s.Layout = "hologram" // bypasses SetLayout on purpose
	s.Content.Title = "T"
	s.Content.Text = "B"

	nodes := Frame(s)
	if len(nodes) != 2 || nodes[0].Kind != Heading || nodes[1].Kind != Body {
		t.Errorf("unknown layout did not fall back to title-content: %+v", nodes)
	}
}

func TestFrameBullets(t *testing.T) {
	s := slides.New(slides.BulletPoints)
	s.Content.Title = "Points"
	s.SetBullets([]string{"first", "second"})

	nodes := Frame(s)
	if len(nodes) != 3 {
		t.Fatalf("rendered %d nodes, want heading plus 2 bullets", len(nodes))
	}
	if nodes[1].Text != "first" || nodes[2].Text != "second" {
		t.Errorf("bullets out of order: %+v", nodes[1:])
	}
}

func TestFrameIsDeterministic(t *testing.T) {
	s := slides.New(slides.TwoColumn)
	s.Content.Title = "Same"
	s.Content.Text = "Left"

	first := Frame(s)
	second := Frame(s)
	if len(first) != len(second) {
		t.Fatal("node count changed between renders")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("node %d differs between renders: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestThumbnailShowsContentOnly(t *testing.T) {
	s := slides.New(slides.TitleContent)
	s.Content.Title = "Atlas"
	s.Content.Text = "412k cells"

	out := Thumbnail(s)
	if !strings.Contains(out, "Atlas") || !strings.Contains(out, "412k cells") {
		t.Errorf("thumbnail missing slide content:\n%s", out)
	}
}

func TestThumbnailTruncatesLongTitles(t *testing.T) {
	s := slides.New(slides.TitleContent)
	s.Content.Title = strings.Repeat("verylongword", 10)

	out := Thumbnail(s)
	if strings.Contains(out, s.Content.Title) {
		t.Error("thumbnail rendered the full overlong title")
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated title should end in an ellipsis")
	}
}

func TestLargeRendersEveryNode(t *testing.T) {
	s := slides.New(slides.BulletPoints)
	s.Content.Title = "Findings"
	s.SetBullets([]string{"alpha", "beta", "gamma"})

	out := Large(s)
	for _, want := range []string{"Findings", "• alpha", "• beta", "• gamma"} {
		if !strings.Contains(out, want) {
			t.Errorf("large render missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("exactlyten", 10); got != "exactlyten" {
		t.Errorf("truncate at limit = %q", got)
	}
	got := truncate("über-long ünïcode string here", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate(unicode, 10) = %q", got)
	}
}

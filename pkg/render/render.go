// Package render maps slides to visual output. Frame is the pure part:
// one slide plus a palette in, a flat node tree out. Thumbnail and Large
// style the same tree at different scales, so both variants always agree
// on content.
package render

import (
	"fmt"

	"researchfeed/pkg/slides"
)

type NodeKind string

const (
	Heading     NodeKind = "heading"
	Body        NodeKind = "body"
	Secondary   NodeKind = "secondary"
	QuoteText   NodeKind = "quote"
	Attribution NodeKind = "attribution"
	Image       NodeKind = "image"
	ChartNote   NodeKind = "chart"
	Bullet      NodeKind = "bullet"
)

type Node struct {
	Kind        NodeKind `json:"kind"`
	Text        string   `json:"text"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

// Placeholders shown for empty fields so authors always see what still
// needs filling in. A slide never renders as blank silence.
const (
	placeholderTitle  = "Add a title…"
	placeholderBody   = "Add your content…"
	placeholderColumn = "Add column text…"
	placeholderQuote  = "Add a quote…"
	placeholderAuthor = "— Unknown"
	placeholderImage  = "No image selected"
	placeholderChart  = "Describe your chart…"
	placeholderBullet = "Add a point…"
)

func node(kind NodeKind, text, fallback string) Node {
	if text == "" {
		return Node{Kind: kind, Text: fallback, Placeholder: true}
	}
	return Node{Kind: kind, Text: text}
}

// Frame lays out a slide's content for its layout. Unknown layouts fall
// back to the title-content arrangement.
func Frame(s *slides.Slide) []Node {
	c := s.Content

	switch s.Layout {
	case slides.TwoColumn:
		return []Node{
			node(Heading, c.Title, placeholderTitle),
			node(Body, c.Text, placeholderColumn),
			node(Secondary, c.SecondaryText, placeholderColumn),
		}
	case slides.ImageFocus:
		return []Node{
			node(Heading, c.Title, placeholderTitle),
			node(Image, c.ImageURL, placeholderImage),
			node(Body, c.Text, placeholderBody),
		}
	case slides.FullImage:
		return []Node{
			node(Image, c.ImageURL, placeholderImage),
			node(Heading, c.Title, placeholderTitle),
		}
	case slides.Quote:
		return []Node{
			node(QuoteText, c.Quote, placeholderQuote),
			node(Attribution, quoteAuthor(c.QuoteAuthor), placeholderAuthor),
		}
	case slides.Chart:
		return []Node{
			node(Heading, c.Title, placeholderTitle),
			node(ChartNote, c.ChartNote, placeholderChart),
		}
	case slides.BulletPoints:
		nodes := []Node{node(Heading, c.Title, placeholderTitle)}
		if len(c.Bullets) == 0 {
			return append(nodes, Node{Kind: Bullet, Text: placeholderBullet, Placeholder: true})
		}
		for _, b := range c.Bullets {
			nodes = append(nodes, node(Bullet, b, placeholderBullet))
		}
		return nodes
	default:
		return []Node{
			node(Heading, c.Title, placeholderTitle),
			node(Body, c.Text, placeholderBody),
		}
	}
}

func quoteAuthor(author string) string {
	if author == "" {
		return ""
	}
	return fmt.Sprintf("— %s", author)
}

package templates

import "researchfeed/pkg/slides"

func slide(layout slides.Layout, theme slides.Theme, content slides.Content) *slides.Slide {
	s := slides.New(layout)
	s.Theme = theme
	s.Content = content
	return s
}

var catalog = map[string]*Entry{
	"research": {
		PostTypeID:  "research",
		Title:       "Research Update",
		Description: "Share findings, methods and next steps from an ongoing study",
		Slides: []*slides.Slide{
			slide(slides.TitleContent, slides.ThemeIndigo, slides.Content{
				Title: "Research Update",
				Text:  "One-line summary of what changed since the last update",
			}),
			slide(slides.TwoColumn, slides.ThemeIndigo, slides.Content{
				Title:         "Methods & Results",
				Text:          "What we did: study design, sample, instruments",
				SecondaryText: "What we found: headline numbers and effect sizes",
			}),
			slide(slides.Chart, slides.ThemeIndigo, slides.Content{
				Title:     "Key Finding",
				ChartNote: "Describe the central figure or trend",
			}),
			slide(slides.TitleContent, slides.ThemeIndigo, slides.Content{
				Title: "Next Steps",
				Text:  "Open questions, planned experiments, where you need input",
			}),
		},
		QuickText: "## Research Update\n\n**What we studied:** \n\n**Key finding:** \n\n**Why it matters:** \n\n**Next steps:** \n",
	},
	"question": {
		PostTypeID:  "question",
		Title:       "Open Question",
		Description: "Pose a question to the community with enough context to answer",
		Slides: []*slides.Slide{
			slide(slides.TitleContent, slides.ThemeSunset, slides.Content{
				Title: "The Question",
				Text:  "State the question in one sentence",
			}),
			slide(slides.BulletPoints, slides.ThemeSunset, slides.Content{
				Title:   "What I've Tried",
				Bullets: []string{"Approach one and why it fell short", "Approach two and its limits"},
			}),
		},
		QuickText: "## Question\n\n**Context:** \n\n**What I'm asking:** \n\n**What I've already tried:** \n",
	},
	"collaboration": {
		PostTypeID:  "collaboration",
		Title:       "Collaboration Call",
		Description: "Recruit collaborators for a project",
		Slides: []*slides.Slide{
			slide(slides.TitleContent, slides.ThemeForest, slides.Content{
				Title: "Looking for Collaborators",
				Text:  "One-line pitch of the project",
			}),
			slide(slides.TwoColumn, slides.ThemeForest, slides.Content{
				Title:         "The Project",
				Text:          "Goals, timeline, current team",
				SecondaryText: "Skills and roles we are looking for",
			}),
			slide(slides.Quote, slides.ThemeForest, slides.Content{
				Quote:       "Why this project matters, in your own words",
				QuoteAuthor: "Project lead",
			}),
		},
		QuickText: "## Collaboration Call\n\n**Project:** \n\n**We need:** \n\n**Timeline:** \n\n**How to join:** \n",
	},
	"dataset": {
		PostTypeID:  "dataset",
		Title:       "Dataset Release",
		Description: "Announce a dataset with scope, format and access details",
		Slides: []*slides.Slide{
			slide(slides.TitleContent, slides.ThemeOcean, slides.Content{
				Title: "Dataset Release",
				Text:  "Name, version and one-line description",
			}),
			slide(slides.BulletPoints, slides.ThemeOcean, slides.Content{
				Title:   "What's Inside",
				Bullets: []string{"Records and coverage", "Collection period", "File formats", "License"},
			}),
			slide(slides.Chart, slides.ThemeOcean, slides.Content{
				Title:     "At a Glance",
				ChartNote: "Describe the headline distribution or summary statistic",
			}),
		},
		QuickText: "## Dataset Release\n\n**Name:** \n\n**Contents:** \n\n**Access:** \n\n**License:** \n",
	},
	"announcement": {
		PostTypeID:  "announcement",
		Title:       "Announcement",
		Description: "News for your network: talks, papers, milestones",
		Slides: []*slides.Slide{
			slide(slides.FullImage, slides.ThemeMidnight, slides.Content{
				Title:    "Announcement",
				ImageURL: "https://placehold.co/1200x675",
			}),
			slide(slides.TitleContent, slides.ThemeMidnight, slides.Content{
				Title: "The Details",
				Text:  "When, where, and what to expect",
			}),
		},
		QuickText: "## Announcement\n\n**What:** \n\n**When:** \n\n**Where:** \n",
	},
}

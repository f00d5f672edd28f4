package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"researchfeed/pkg/slides"
	"researchfeed/pkg/templates"
)

type TemplateHandler struct {
	Logger *zap.SugaredLogger
}

type TemplateResponse struct {
	PostTypeID  string          `json:"postTypeId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	SlideCount  int             `json:"slideCount"`
	Slides      []*slides.Slide `json:"slides"`
	QuickText   string          `json:"quickText"`
}

func mapTemplate(e *templates.Entry) *TemplateResponse {
	return &TemplateResponse{
		PostTypeID:  e.PostTypeID,
		Title:       e.Title,
		Description: e.Description,
		SlideCount:  len(e.Slides),
		Slides:      e.Slides,
		QuickText:   e.QuickText,
	}
}

// List returns the catalog in stable display order, along with the post
// types and theme palette so the client can build its pickers.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := templates.List()
	resp := struct {
		Templates []*TemplateResponse  `json:"templates"`
		PostTypes []templates.PostType `json:"postTypes"`
		Themes    []slides.Theme       `json:"themes"`
		Layouts   []slides.Layout      `json:"layouts"`
	}{
		Templates: make([]*TemplateResponse, 0, len(entries)),
		PostTypes: templates.PostTypes(),
		Themes:    slides.Themes(),
		Layouts:   slides.Layouts(),
	}
	for _, e := range entries {
		resp.Templates = append(resp.Templates, mapTemplate(e))
	}

	WriteJSON(w, resp, http.StatusOK)
}

// Get returns the recommendation for one post type; 404 means "no
// recommendation", which the client renders as a neutral state.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, ok := templates.Get(mux.Vars(r)["post_type"])
	if !ok {
		WriteResponse(w, "no template for this post type", http.StatusNotFound)
		return
	}

	WriteJSON(w, mapTemplate(e), http.StatusOK)
}

package server

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/josephgoksu/promptfy/internal/clipboard"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"lines": func(s string) int {
			n := strings.Count(s, "\n") + 2
			if n < 4 {
				return 4
			}
			return n
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

type navItem struct {
	Name   string
	Path   string
	Active bool
}

type fieldView struct {
	methodology.Field
	Value string
	Error string
}

type pageData struct {
	PageTitle     string
	Nav           []navItem
	Methodologies []*methodology.Definition
	Def           *methodology.Definition
	Fields        []fieldView
	Prompt        string
	AckMillis     int64
}

func (s *Server) page(title string, active methodology.ID) pageData {
	defs := s.catalog.All()
	nav := make([]navItem, 0, len(defs))
	for _, d := range defs {
		nav = append(nav, navItem{Name: d.Name, Path: d.Path, Active: d.ID == active})
	}
	return pageData{
		PageTitle:     title,
		Nav:           nav,
		Methodologies: defs,
		AckMillis:     clipboard.AckDuration.Milliseconds(),
	}
}

func (s *Server) handleLanding(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.html", s.page("Promptfy", ""))
}

func (s *Server) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", s.page("Not found", ""))
}

// handleFormPage renders a fresh form, pre-populated with example text when
// prefill is on.
func (s *Server) handleFormPage(def *methodology.Definition) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := def.EmptyInput()
		if s.prefill.Load() {
			in = def.ExampleInput()
		}
		data := s.page(def.Title, def.ID)
		data.Def = def
		data.Fields = fieldViews(def, in, nil)
		c.HTML(http.StatusOK, "form.html", data)
	}
}

// handleFormSubmit validates the posted form. Rejected input re-renders the
// form with inline errors and the user's text intact; accepted input renders
// the read-only prompt panel under the form.
func (s *Server) handleFormSubmit(def *methodology.Definition) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := make(methodology.Input, len(def.Fields))
		for _, f := range def.Fields {
			in[f.Name] = c.PostForm(f.Name)
		}

		data := s.page(def.Title, def.ID)
		data.Def = def

		v, err := def.Validate(in)
		if err != nil {
			var fe *methodology.FieldErrors
			if !errors.As(err, &fe) {
				s.log.Error("validate failed", "methodology", def.ID, "error", err)
				c.String(http.StatusInternalServerError, "internal error")
				return
			}
			s.telemetry.Track(telemetry.ValidationFailed(string(def.ID), telemetry.SurfaceWeb, fe.Fields()))
			data.Fields = fieldViews(def, in, fe.Map())
			c.HTML(http.StatusUnprocessableEntity, "form.html", data)
			return
		}

		prompt, err := def.Assemble(v)
		if err != nil {
			s.log.Error("assemble failed", "methodology", def.ID, "error", err)
			c.String(http.StatusInternalServerError, "internal error")
			return
		}

		s.telemetry.Track(telemetry.PromptGenerated(string(def.ID), telemetry.SurfaceWeb, len(def.Sections(v))))
		data.Fields = fieldViews(def, in, nil)
		data.Prompt = prompt
		c.HTML(http.StatusOK, "form.html", data)
	}
}

func fieldViews(def *methodology.Definition, in methodology.Input, errs map[string]string) []fieldView {
	views := make([]fieldView, 0, len(def.Fields))
	for _, f := range def.Fields {
		views = append(views, fieldView{Field: f, Value: in[f.Name], Error: errs[f.Name]})
	}
	return views
}

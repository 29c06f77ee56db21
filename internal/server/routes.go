package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/josephgoksu/promptfy/types"
)

// registerRoutes builds the router: pages at each methodology's path, the
// JSON API under /api, and a liveness probe.
func (s *Server) registerRoutes() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthcheck", s.handleHealth)

	// Pages
	r.GET("/", s.handleLanding)
	for _, def := range s.catalog.All() {
		r.GET(def.Path, s.handleFormPage(def))
		r.POST(def.Path, s.handleFormSubmit(def))
	}

	api := r.Group("/api")
	if len(s.origins) > 0 {
		api.Use(CORS(s.origins))
	}
	{
		api.GET("/methodologies", s.handleListMethodologies)
		api.GET("/methodologies/:id", s.handleGetMethodology)
		api.POST("/methodologies/:id/prompt", s.handleBuildPrompt)

		// Preflight requests are answered by the CORS middleware.
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, types.NewAPIError(types.CodeNotFound, "no such endpoint", nil))
			return
		}
		s.renderNotFound(c)
	})

	return r, nil
}

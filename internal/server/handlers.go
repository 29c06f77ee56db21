package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/telemetry"
	"github.com/josephgoksu/promptfy/types"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Methodologies: len(s.catalog.IDs())})
}

func (s *Server) handleListMethodologies(c *gin.Context) {
	c.JSON(http.StatusOK, methodologyList{Methodologies: s.catalog.All()})
}

func (s *Server) handleGetMethodology(c *gin.Context) {
	def, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, def)
}

func (s *Server) handleBuildPrompt(c *gin.Context) {
	def, ok := s.lookup(c)
	if !ok {
		return
	}

	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewAPIError(types.CodeBadRequest, "body must be {\"fields\": {...}}", nil))
		return
	}

	v, err := def.Validate(methodology.Input(req.Fields))
	if err != nil {
		var fe *methodology.FieldErrors
		if errors.As(err, &fe) {
			s.telemetry.Track(telemetry.ValidationFailed(string(def.ID), telemetry.SurfaceAPI, fe.Fields()))
			c.JSON(http.StatusUnprocessableEntity, types.NewValidationError(string(def.ID), fe.Map()))
			return
		}
		s.internalError(c, err)
		return
	}

	prompt, err := def.Assemble(v)
	if err != nil {
		s.internalError(c, err)
		return
	}
	sections := def.Sections(v)
	s.telemetry.Track(telemetry.PromptGenerated(string(def.ID), telemetry.SurfaceAPI, len(sections)))

	c.JSON(http.StatusOK, promptResponse{
		Methodology: def.ID,
		Prompt:      prompt,
		Sections:    sections,
	})
}

// lookup resolves the :id parameter, writing a 404 when it is unknown.
func (s *Server) lookup(c *gin.Context) (*methodology.Definition, bool) {
	id := methodology.ParseID(c.Param("id"))
	def, err := s.catalog.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, types.NewAPIError(types.CodeUnknownMethodology, err.Error(), map[string]interface{}{
			"available": s.catalog.IDs(),
		}))
		return nil, false
	}
	return def, true
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.log.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, types.NewAPIError(types.CodeInternal, "internal error", nil))
}

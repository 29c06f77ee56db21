package server

import "github.com/josephgoksu/promptfy/internal/methodology"

// promptRequest is the body of POST /api/methodologies/:id/prompt.
type promptRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

type promptResponse struct {
	Methodology methodology.ID `json:"methodology"`
	Prompt      string         `json:"prompt"`
	Sections    []string       `json:"sections"`
}

type methodologyList struct {
	Methodologies []*methodology.Definition `json:"methodologies"`
}

type healthResponse struct {
	Status        string `json:"status"`
	Methodologies int    `json:"methodologies"`
}

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/josephgoksu/promptfy/internal/logger"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/telemetry"
	"github.com/josephgoksu/promptfy/types"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handlers serves prompts and tools over one catalog.
type Handlers struct {
	Catalog   *methodology.Catalog
	Logger    *logger.Logger
	Telemetry telemetry.Client
}

func (h *Handlers) track(event string, props telemetry.Properties) {
	if h.Telemetry != nil {
		h.Telemetry.Track(event, props)
	}
}

func (h *Handlers) logf(msg string, kv ...interface{}) {
	if h.Logger != nil {
		h.Logger.Debug(msg, kv...)
	}
}

// PromptArguments maps a methodology's fields to MCP prompt arguments.
func PromptArguments(d *methodology.Definition) []*mcpsdk.PromptArgument {
	args := make([]*mcpsdk.PromptArgument, 0, len(d.Fields))
	for _, f := range d.Fields {
		desc := f.Label
		if f.Placeholder != "" {
			desc = fmt.Sprintf("%s. %s", f.Label, f.Placeholder)
		}
		args = append(args, &mcpsdk.PromptArgument{
			Name:        f.Name,
			Description: desc,
			Required:    f.Required,
		})
	}
	return args
}

// PromptHandler validates the prompt arguments and returns the assembled
// prompt as a single user message. Validation failures come back as a
// structured APIError.
func (h *Handlers) PromptHandler(d *methodology.Definition) func(context.Context, *mcpsdk.ServerSession, *mcpsdk.GetPromptParams) (*mcpsdk.GetPromptResult, error) {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.GetPromptParams) (*mcpsdk.GetPromptResult, error) {
		h.logf("prompt requested", "methodology", d.ID, "arguments", len(params.Arguments))

		v, err := d.Validate(methodology.Input(params.Arguments))
		if err != nil {
			var fe *methodology.FieldErrors
			if errors.As(err, &fe) {
				h.track(telemetry.ValidationFailed(string(d.ID), telemetry.SurfaceMCP, fe.Fields()))
				return nil, types.NewValidationError(string(d.ID), fe.Map())
			}
			return nil, err
		}
		prompt, err := d.Assemble(v)
		if err != nil {
			return nil, types.NewAPIError(types.CodeInternal, err.Error(), nil)
		}
		h.track(telemetry.PromptGenerated(string(d.ID), telemetry.SurfaceMCP, len(d.Sections(v))))

		return &mcpsdk.GetPromptResult{
			Description: d.Title,
			Messages: []*mcpsdk.PromptMessage{
				{
					Role: "user",
					Content: &mcpsdk.TextContent{
						Text: prompt,
					},
				},
			},
		}, nil
	}
}

// BuildPromptHandler is the build-prompt tool. Errors are returned inside the
// result with IsError so the calling model can correct its input.
func (h *Handlers) BuildPromptHandler() mcpsdk.ToolHandlerFor[types.BuildPromptParams, any] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.BuildPromptParams]) (*mcpsdk.CallToolResultFor[any], error) {
		args := params.Arguments
		h.logf("tool called", "tool", ToolBuildPrompt, "methodology", args.Methodology)

		d, err := h.Catalog.Get(methodology.ParseID(args.Methodology))
		if err != nil {
			return errorResult(FormatError(err.Error())), nil
		}

		v, err := d.Validate(methodology.Input(args.Fields))
		if err != nil {
			var fe *methodology.FieldErrors
			if errors.As(err, &fe) {
				h.track(telemetry.ValidationFailed(string(d.ID), telemetry.SurfaceMCP, fe.Fields()))
				return errorResult(FormatFieldErrors(fe)), nil
			}
			return errorResult(FormatError(err.Error())), nil
		}
		prompt, err := d.Assemble(v)
		if err != nil {
			return errorResult(FormatError(err.Error())), nil
		}
		h.track(telemetry.PromptGenerated(string(d.ID), telemetry.SurfaceMCP, len(d.Sections(v))))

		return textResult(prompt), nil
	}
}

// ListMethodologiesHandler is the list-methodologies tool.
func (h *Handlers) ListMethodologiesHandler() mcpsdk.ToolHandlerFor[types.ListMethodologiesParams, any] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListMethodologiesParams]) (*mcpsdk.CallToolResultFor[any], error) {
		if params.Arguments.Methodology == "" {
			return textResult(FormatCatalog(h.Catalog.All())), nil
		}
		d, err := h.Catalog.Get(methodology.ParseID(params.Arguments.Methodology))
		if err != nil {
			return errorResult(FormatError(err.Error())), nil
		}
		return textResult(FormatDefinition(d)), nil
	}
}

func textResult(text string) *mcpsdk.CallToolResultFor[any] {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcpsdk.CallToolResultFor[any] {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
		IsError: true,
	}
}

package telemetry

// Event names
const (
	EventPromptGenerated  = "prompt_generated"
	EventPromptCopied     = "prompt_copied"
	EventValidationFailed = "validation_failed"
)

// Surfaces a prompt can be built from
const (
	SurfaceWeb = "web"
	SurfaceAPI = "api"
	SurfaceTUI = "tui"
	SurfaceCLI = "cli"
	SurfaceMCP = "mcp"
)

// PromptGenerated describes a successful assembly.
func PromptGenerated(methodology, surface string, sections int) (string, Properties) {
	return EventPromptGenerated, Properties{
		"methodology": methodology,
		"surface":     surface,
		"sections":    sections,
	}
}

// PromptCopied describes a copy attempt.
func PromptCopied(methodology, surface string, success bool) (string, Properties) {
	return EventPromptCopied, Properties{
		"methodology": methodology,
		"surface":     surface,
		"success":     success,
	}
}

// ValidationFailed records which fields were rejected, never their values.
func ValidationFailed(methodology, surface string, fields []string) (string, Properties) {
	return EventValidationFailed, Properties{
		"methodology": methodology,
		"surface":     surface,
		"fields":      fields,
	}
}

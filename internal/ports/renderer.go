package ports

import "context"

// ImageResolver rewrites an image destination found in a note.
// It returns false when the destination should be left untouched.
type ImageResolver interface {
	ResolveImage(dest string) (string, bool)
}

// RenderRequest is the input of a Markdown render
type RenderRequest struct {
	Document string
	Images   ImageResolver // optional
}

// RenderResult is sanitized HTML plus the number of indexed checkboxes
type RenderResult struct {
	HTML  string
	Tasks int
}

// Renderer converts Markdown to sanitized HTML whose checkboxes carry the
// ordinal expected by domain.ToggleCheckbox in a data-task-index attribute.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) (RenderResult, error)
}

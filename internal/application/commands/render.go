package commands

import (
	"context"
	"fmt"

	"tasknote/internal/application"
	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// RenderResult contains a rendered note
type RenderResult struct {
	Note *domain.Note
	HTML string
	// Tasks is the number of checkboxes that carry a data-task-index
	Tasks int
}

// RenderCommand renders a note to sanitized HTML
type RenderCommand struct {
	repo     ports.NoteRepository
	renderer ports.Renderer
	Name     string
	// InlineImages embeds local images as data URIs
	InlineImages bool
}

// NewRenderCommand creates a new RenderCommand
func NewRenderCommand(repo ports.NoteRepository, renderer ports.Renderer, name string, inlineImages bool) *RenderCommand {
	return &RenderCommand{
		repo:         repo,
		renderer:     renderer,
		Name:         name,
		InlineImages: inlineImages,
	}
}

// Validate checks if the render operation is valid
func (c *RenderCommand) Validate() error {
	return application.ValidateNoteName("noteName", c.Name)
}

// Execute runs the render command
func (c *RenderCommand) Execute(ctx context.Context) (*RenderResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := c.repo.ReadNote(c.Name)
	if err != nil {
		return nil, &application.NoteError{Name: c.Name, Reason: "read failed", Err: err}
	}

	req := ports.RenderRequest{Document: note.Content}
	if c.InlineImages {
		req.Images = c.repo.ImageResolver(c.Name)
	}

	res, err := c.renderer.Render(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", c.Name, err)
	}

	return &RenderResult{
		Note:  note,
		HTML:  res.HTML,
		Tasks: res.Tasks,
	}, nil
}

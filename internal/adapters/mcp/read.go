package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tasknote/internal/application/commands"
	"tasknote/internal/domain"
	"tasknote/internal/ports"
)

// RegisterReadTools adds all read-only note tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.NoteRepository, renderer ports.Renderer) {
	s.AddTool(listEntriesTool(), listEntriesHandler(repo))
	s.AddTool(listNotesTool(), listNotesHandler(repo))
	s.AddTool(readNoteTool(), readNoteHandler(repo))
	s.AddTool(renderNoteTool(), renderNoteHandler(repo, renderer))
	s.AddTool(statsTool(), statsHandler(repo))
	s.AddTool(searchTool(), searchHandler(repo))
}

// --- list_entries ---

func listEntriesTool() mcp.Tool {
	return mcp.NewTool("list_entries",
		mcp.WithDescription("List the entries of the notes directory, one name per line. Directories end with a slash."),
	)
}

func listEntriesHandler(repo ports.NoteRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := commands.NewListEntriesCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entries, formatEntry)
	}
}

// --- list_notes ---

func listNotesTool() mcp.Tool {
	return mcp.NewTool("list_notes",
		mcp.WithDescription("List Markdown notes with their checklist progress."),
		mcp.WithBoolean("incomplete_only",
			mcp.Description("Only list notes that still have unchecked tasks"),
		),
	)
}

func listNotesHandler(repo ports.NoteRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		incompleteOnly := req.GetBool("incomplete_only", false)

		notes, err := commands.NewListNotesCommand(repo, incompleteOnly).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(notes, formatNote)
	}
}

// --- read_note ---

func readNoteTool() mcp.Tool {
	return mcp.NewTool("read_note",
		mcp.WithDescription("Read the raw Markdown of a note."),
		mcp.WithString("name",
			mcp.Description("Note file name relative to the notes directory (e.g. groceries.md)"),
			mcp.Required(),
		),
	)
}

func readNoteHandler(repo ports.NoteRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		if name == "" {
			return toolError(fmt.Errorf("name is required"))
		}

		note, err := repo.ReadNote(name)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(note.Content), nil
	}
}

// --- render_note ---

func renderNoteTool() mcp.Tool {
	return mcp.NewTool("render_note",
		mcp.WithDescription("Render a note to sanitized HTML. Each task checkbox carries its toggle index in data-task-index."),
		mcp.WithString("name",
			mcp.Description("Note file name relative to the notes directory"),
			mcp.Required(),
		),
		mcp.WithBoolean("inline_images",
			mcp.Description("Embed local images as data URIs"),
		),
	)
}

func renderNoteHandler(repo ports.NoteRepository, renderer ports.Renderer) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		inline := req.GetBool("inline_images", false)

		result, err := commands.NewRenderCommand(repo, renderer, name, inline).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.HTML), nil
	}
}

// --- checklist_stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("checklist_stats",
		mcp.WithDescription("List the tasks of a note with their indexes and report completion."),
		mcp.WithString("name",
			mcp.Description("Note file name relative to the notes directory"),
			mcp.Required(),
		),
	)
}

func statsHandler(repo ports.NoteRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")

		result, err := commands.NewStatsCommand(repo, name).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %s\n", result.Note.Name, formatStats(result.Stats))
		for _, task := range result.Tasks {
			sb.WriteString(formatTask(task))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search note names, titles and task labels. Results are ranked by fuzzy relevance."),
		mcp.WithString("query",
			mcp.Description("Search query (at least 2 characters)"),
			mcp.Required(),
		),
	)
}

func searchHandler(repo ports.NoteRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(repo, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			if r.Line >= 0 {
				fmt.Fprintf(&sb, "%s:%d  %s\n", r.Name, r.Line+1, r.MatchedText)
			} else {
				fmt.Fprintf(&sb, "%s  %s\n", r.Name, r.Title)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatEntry(e domain.Entry) string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

func formatNote(n domain.Note) string {
	return fmt.Sprintf("%s  %s  %s", n.Name, n.Title, formatStats(n.Stats()))
}

func formatStats(s domain.ChecklistStats) string {
	return fmt.Sprintf("%d/%d done", s.Completed, s.Total)
}

func formatTask(t domain.Task) string {
	box := "[ ]"
	if t.Checked {
		box = "[x]"
	}
	return fmt.Sprintf("%d  %s %s", t.Ordinal, box, t.Label)
}

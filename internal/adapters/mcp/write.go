package mcp

import (
	"context"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tasknote/internal/application/commands"
	"tasknote/internal/ports"
)

// RegisterWriteTools adds the checkbox editing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.NoteRepository) {
	s.AddTool(toggleTool(), toggleHandler(repo))
	s.AddTool(setAllTool(), setAllHandler(repo))
}

// --- toggle_checkbox ---

func toggleTool() mcp.Tool {
	return mcp.NewTool("toggle_checkbox",
		mcp.WithDescription("Flip the checked state of the task at a 0-based index in a note. Indexes match checklist_stats and the data-task-index of render_note. An index past the last task changes nothing."),
		mcp.WithString("name",
			mcp.Description("Note file name relative to the notes directory"),
			mcp.Required(),
		),
		mcp.WithNumber("index",
			mcp.Description("0-based task index"),
			mcp.Required(),
		),
	)
}

func toggleHandler(repo ports.NoteRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		index, err := taskIndex(req.GetArguments()["index"])
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewToggleCommand(repo, name, index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// taskIndex accepts only whole numbers; JSON clients send every number as float64
func taskIndex(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("index is required")
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || math.Trunc(n) != n {
			return 0, fmt.Errorf("index must be a whole number, got %v", n)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("index %v is out of range", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("index must be a number, got %T", v)
	}
}

// --- set_all_checkboxes ---

func setAllTool() mcp.Tool {
	return mcp.NewTool("set_all_checkboxes",
		mcp.WithDescription("Check or uncheck every task in a note."),
		mcp.WithString("name",
			mcp.Description("Note file name relative to the notes directory"),
			mcp.Required(),
		),
		mcp.WithBoolean("checked",
			mcp.Description("true to check every task, false to uncheck"),
			mcp.Required(),
		),
	)
}

func setAllHandler(repo ports.NoteRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		checked := req.GetBool("checked", true)

		result, err := commands.NewSetAllCommand(repo, name, checked).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

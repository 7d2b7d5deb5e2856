package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tasknote/internal/adapters/filesystem"
	"tasknote/internal/adapters/markdown"
	mcpadapter "tasknote/internal/adapters/mcp"
	"tasknote/internal/config"
	"tasknote/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "path to a config file")
	dirFlag := flag.String("dir", "", "path to the notes directory")
	flag.Parse()

	// stdout carries the protocol; logs go to stderr.
	logger := logging.New(os.Stderr, logging.DefaultOptions())

	var (
		cfg *config.Config
		err error
	)
	if *configFlag != "" {
		cfg, err = config.LoadFile(*configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	logger = logging.NewFromConfig(os.Stderr, cfg.Log.Level, cfg.Log.Format, "tasknote-mcp")

	if *dirFlag != "" {
		cfg.Notes.Dir = *dirFlag
	}
	repo := filesystem.NewRepository(cfg.Notes.Dir)

	renderer, err := markdown.NewRenderer(cfg.Render.CacheSize, logger)
	if err != nil {
		logger.Fatal("create renderer", "err", err)
	}

	mcpServer := server.NewMCPServer(
		"tasknote-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, renderer)
	mcpadapter.RegisterWriteTools(mcpServer, repo)

	logger.Info("serving", "notes", repo.Root())
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal("serve", "err", err)
	}
}

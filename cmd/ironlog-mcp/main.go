package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/ironlog/internal/catalog"
	"github.com/claude/ironlog/internal/config"
	"github.com/claude/ironlog/internal/mcp"
	"github.com/claude/ironlog/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local mode: query the database directly)")
	userIDStr := flag.String("user", "", "user id to scope queries to (local mode)")
	serverURL := flag.String("server", "", "IronLog server URL (remote mode: query over the REST API)")
	token := flag.String("token", "", "API bearer token (remote mode)")
	flag.Parse()

	// MCP uses stdout for the protocol; log to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	var userID uuid.UUID

	switch {
	case *serverURL != "":
		if *token == "" {
			fmt.Fprintf(os.Stderr, "Error: -token is required with -server\n")
			os.Exit(1)
		}
		ds = mcp.NewHTTPClient(*serverURL, *token)
		log.Info("remote mode", "server", *serverURL)

	case *configPath != "":
		var err error
		userID, err = uuid.Parse(*userIDStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -user must be a valid UUID in local mode\n")
			os.Exit(1)
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		cat, err := catalog.New(db, log)
		if err != nil {
			log.Error("failed to load catalog", "error", err)
			os.Exit(1)
		}

		ds = mcp.LocalSource{DB: db, Catalog: cat}
		log.Info("local mode", "user", userID)

	default:
		fmt.Fprintf(os.Stderr, "Usage: ironlog-mcp -config config.yaml -user <uuid> | -server <URL> -token <token>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)

	err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, userID)
	}))
	if err != nil {
		log.Error("mcp server exited", "error", err)
		os.Exit(1)
	}
}

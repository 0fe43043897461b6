package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/layer-import-mcp/internal/impex"
	"github.com/ironsheep/layer-import-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("layer-import-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("layer-import-mcp - MCP server that imports images into layered documents")
			fmt.Println()
			fmt.Println("Usage: layer-import-mcp [options]")
			fmt.Println("       layer-import-mcp import <path>")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Commands:")
			fmt.Println("  import <path>    Import one image or GIF and print the resulting layers as JSON")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  LAYER_IMPORT_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("Without a command the server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("LAYER_IMPORT_LOG_LEVEL") == "debug" {
		log.Printf("Layer Import MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		impex.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	server.Version = Version
	srv := server.New()

	if len(os.Args) > 1 && os.Args[1] == "import" {
		if len(os.Args) != 3 {
			log.Fatalf("usage: layer-import-mcp import <path>")
		}
		info, err := srv.ImportFile(os.Args[2])
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			log.Fatalf("Encode failed: %v", err)
		}
		return
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

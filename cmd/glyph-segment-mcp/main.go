package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/glyph-segment-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("GLYPH_MCP_LOG_LEVEL") == "debug"

	// Handle subcommands and --version/--help flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("glyph-segment-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "extract":
			if err := runExtract(os.Args[2:], os.Stdout); err != nil {
				log.Fatalf("extract: %v", err)
			}
			return
		}
	}

	if debug {
		log.Printf("Glyph Segment MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(server.WithVersion(Version), server.WithDebug(debug))
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("glyph-segment-mcp - MCP server for glyph segmentation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  glyph-segment-mcp [options]            Run the MCP server on stdin/stdout")
	fmt.Println("  glyph-segment-mcp extract -in FILE ... Segment one image from the command line")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Run 'glyph-segment-mcp extract -h' for extract flags.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  GLYPH_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("In server mode this program communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

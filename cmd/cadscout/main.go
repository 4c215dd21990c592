// cadscout: Geometric Feature Recognition MCP Server
//
// An MCP server that analyzes CAD parts for manufacturing features
// (holes, fillets, chamfers, pockets, ...) using a pluggable set of
// detectors, and reports confidence-scored findings with fixed
// manufacturing recommendations.
//
// Usage:
//
//	cadscout serve    # Start MCP server (stdio transport)
//	cadscout demo     # Run a headless analysis and print the result
//	cadscout update   # Update to the latest version
package main

import (
	"fmt"
	"os"

	"github.com/cadscout/cadscout/internal/recognition"
	csserver "github.com/cadscout/cadscout/internal/server"
	"github.com/cadscout/cadscout/internal/updater"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "demo":
		runDemo()
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("cadscout v%s\n", csserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := csserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	return server.ServeStdio(s)
}

// runDemo exercises the engine headless: no resolver, stock detectors,
// deterministic sample output. Handy as a smoke test after install.
func runDemo() {
	fmt.Println("cadscout feature recognition demo")
	fmt.Println("=================================")

	engine := recognition.NewDefault(nil)
	result := engine.Analyze("demo_object", true)

	fmt.Printf("Success: %v\n", result.Success)
	fmt.Printf("Detectors: %v\n", engine.Detectors())
	fmt.Printf("Features: %d | Confidence: %.2f\n", len(result.Features), result.Confidence)
	for i, f := range result.Features {
		fmt.Printf("  %d. %s @ (%.1f, %.1f, %.1f) -> %s (c=%.2f)\n",
			i+1, f.Type, f.Location[0], f.Location[1], f.Location[2],
			f.Description, f.Confidence)
	}
	fmt.Println("Recommendations:")
	for _, r := range result.Recommendations {
		fmt.Printf("  - %s\n", r)
	}
	if len(result.Warnings) > 0 {
		fmt.Println("Warnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  * %s\n", w)
		}
	}
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available.
func checkForUpdates() {
	result := updater.CheckVersion(csserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s -> v%s\n"+
				"  Run: cadscout update\n"+
				"  Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "Checking for updates...\n")

	result := updater.CheckVersion(csserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "New version available: v%s -> v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "Downloading...\n")

	if err := updater.SelfUpdate(csserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nYou can download manually from:\n%s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Updated to v%s. Restart cadscout to use the new version.\n", result.LatestVersion)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `cadscout v%s - Geometric Feature Recognition MCP Server

Usage:
  cadscout serve    Start the MCP server (stdio transport)
  cadscout demo     Run a headless sample analysis
  cadscout update   Update to the latest version

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "cadscout": {
        "command": "cadscout",
        "args": ["serve"]
      }
    }
  }
`, csserver.Version)
}

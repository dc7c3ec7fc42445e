package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/carbonforge/cbamcalc/internal/ingest"
)

// Styles for table output. Styling degrades gracefully on non-terminal
// output because lipgloss strips colors when not attached to a TTY.
//
//nolint:gochecknoglobals // Shared immutable styles.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// loadDocument reads and normalizes an activity export.
func loadDocument(path string) (*ingest.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file given, use -f")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading activity file: %w", err)
	}
	return ingest.ParseDocument(data)
}

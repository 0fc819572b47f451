package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snyk-tim/uv/internal/export"
	"github.com/snyk-tim/uv/internal/lock"
)

const toolVersion = "0.1.0"

var (
	flagLock           string
	flagFormat         string
	flagOutput         string
	flagPrune          []string
	flagAnnotate       bool
	flagProject        string
	flagProjectVersion string
)

var rootCmd = &cobra.Command{
	Use:   "uv-export",
	Short: "Resolved-lock export tool",
	Long: `uv-export reads an already-resolved uv.lock file and exports it in one
of the supported formats:

  • requirements.txt   — pinned requirement lines (alias: requirements-txt)
  • pylock.toml        — minimal pylock document (alias: pylock-toml)
  • cyclonedx1.6+json  — CycloneDX 1.6 JSON SBOM (alias: cyclonedx-1.6-json)

It never resolves dependencies itself: the lock file is the single source
of truth for names, versions and edges.`,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resolved lock file",
	Long: `Export a resolved lock file in the selected format.

Examples:
  uv-export export --lock uv.lock --format cyclonedx1.6+json --output sbom.json
  uv-export export --lock uv.lock --format requirements.txt --annotate --output -
  uv-export export --lock uv.lock --format cyclonedx1.6+json --prune setuptools`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagLock, "lock", "l", "uv.lock", "Path to the resolved lock file")
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", string(export.FormatRequirementsTxt), "Output format: requirements.txt, pylock.toml, cyclonedx1.6+json")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "Output file path (use '-' for stdout)")
	exportCmd.Flags().StringArrayVar(&flagPrune, "prune", nil, "Package name to exclude from the export (repeatable)")
	exportCmd.Flags().BoolVar(&flagAnnotate, "annotate", false, "Add '# via' comments to requirements.txt output")
	exportCmd.Flags().StringVar(&flagProject, "project", "", "Override the project name derived from the lock")
	exportCmd.Flags().StringVar(&flagProjectVersion, "project-version", "", "Override the project version derived from the lock")

	rootCmd.AddCommand(exportCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	// Resolve the format before touching the lock so a bad selection
	// fails as a configuration error, not mid-export.
	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	lk, err := lock.ReadFile(flagLock)
	if err != nil {
		return err
	}

	exporter, err := export.New(format, lk, export.Options{
		Prune:          flagPrune,
		Annotate:       flagAnnotate,
		ProjectName:    flagProject,
		ProjectVersion: flagProjectVersion,
		ToolVersion:    toolVersion,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(flagOutput, exporter.Render()); err != nil {
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}

	if flagOutput != "-" {
		fmt.Fprintf(os.Stderr, "Export written to: %s\n", flagOutput)
	}
	return nil
}

// writeOutput writes the rendered text to the given path, or to stdout
// when the path is "-".
func writeOutput(path, text string) error {
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}
	if path == "-" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/schemas"
)

var validateSchemaPath string

var validateResumeCmd = &cobra.Command{
	Use:   "validate-resume <resume.json>...",
	Short: "Check resume JSON files against the resume schema",
	Long: `Validate each resume file against the embedded resume schema without scoring it.
Use --schema to validate against a schema file on disk instead; relative paths are
also looked up in the two parent directories. Exits non-zero when any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateResumes(cmd.OutOrStdout(), validateSchemaPath, args)
	},
}

func init() {
	rootCmd.AddCommand(validateResumeCmd)
	validateResumeCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to a resume JSON schema (default: embedded schema)")
}

// validateResumes reports every file and fails if any is unreadable or invalid.
// An empty schemaPath uses the embedded resume schema.
func validateResumes(out io.Writer, schemaPath string, paths []string) error {
	validateFile := func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return schemas.ValidateResume(data)
	}

	if schemaPath != "" {
		resolved := schemas.ResolveSchemaPath(schemaPath)
		if resolved == "" {
			return fmt.Errorf("schema file not found: %s", schemaPath)
		}
		validateFile = func(path string) error {
			return schemas.ValidateJSON(resolved, path)
		}
	}

	invalid := 0
	for _, path := range paths {
		if err := validateFile(path); err != nil {
			invalid++
			_, _ = fmt.Fprintf(out, "✗ %s\n  %v\n", path, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "✓ %s\n", path)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d resume files are invalid", invalid, len(paths))
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/productor/internal/manifest"
)

var errInvalidManifest = errors.New("manifest is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Validate a registry manifest against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := manifestPath
	if len(args) == 1 {
		path = args[0]
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !result.Valid {
		renderIssues(out, path, result.Issues)
		return errInvalidManifest
	}

	m, err := manifest.Parse(path)
	if err != nil {
		return err
	}
	for _, def := range m.Registries {
		if _, err := lookupContract(def.Contract); err != nil {
			return fmt.Errorf("registry %s: %w", def.Name, err)
		}
	}
	fmt.Fprintln(out, okStyle.Render(printer.Sprintf("✓ %s: %d registry definition(s)", path, len(m.Registries))))
	return nil
}

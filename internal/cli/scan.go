package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a discovery pass and report problems",
	Long: `Walk the registry's search root, load every unit once and report the
diagnostics produced along the way. Problems never fail the command.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	r, def, err := openRegistry()
	if err != nil {
		return err
	}

	diags := r.Scan()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, headerStyle.Render(def.Name)+" "+dimStyle.Render(r.SearchRoot()))
	renderDiagnostics(out, diags)
	fmt.Fprintln(out, okStyle.Render(printer.Sprintf("%d implementation(s) from %d unit(s)", r.Len(), len(r.Loaded()))))
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered implementations",
	Long:  `Scan the registry and list every implementation with the unit it came from.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents an indexed implementation for display.
type listEntry struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Unit string `json:"unit"`
	Path string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	r, _, err := openRegistry()
	if err != nil {
		return err
	}
	r.Scan()

	entries := make([]listEntry, 0, r.Len())
	for _, impl := range r.All() {
		entries = append(entries, listEntry{
			Key:  impl.Key,
			Type: impl.Type.String(),
			Unit: impl.Unit.ID,
			Path: impl.Unit.Path,
		})
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No implementations found.")
		return nil
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tUNIT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, e.Type, e.Unit)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

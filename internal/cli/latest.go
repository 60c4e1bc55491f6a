package cli

import (
	"github.com/spf13/cobra"
)

var latestFeed string

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the implementation with the greatest key",
	Long: `Scan the registry and show the implementation whose key sorts last under
the registry's ordering (natural or semver).`,
	Args: cobra.NoArgs,
	RunE: runLatest,
}

func init() {
	latestCmd.Flags().StringVar(&latestFeed, "feed", "", "Instantiate the implementation and feed it this food")
	rootCmd.AddCommand(latestCmd)
}

func runLatest(cmd *cobra.Command, args []string) error {
	r, _, err := openRegistry()
	if err != nil {
		return err
	}
	impl, err := r.Latest()
	if err != nil {
		return err
	}
	return show(cmd, impl, latestFeed)
}

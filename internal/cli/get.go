package cli

import (
	"github.com/spf13/cobra"
)

var getFeed string

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Look up an implementation by key",
	Long: `Look up the implementation registered under key. A discovery pass runs
only when the key is not indexed yet; the registry default answers when the
key is still missing afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVar(&getFeed, "feed", "", "Instantiate the implementation and feed it this food")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	r, _, err := openRegistry()
	if err != nil {
		return err
	}
	impl, err := r.Get(args[0])
	if err != nil {
		return err
	}
	return show(cmd, impl, getFeed)
}

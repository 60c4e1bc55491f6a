package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/productor/internal/registry"
)

var (
	randomFeed string
	randomSeed uint64
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a randomly chosen implementation",
	Args:  cobra.NoArgs,
	RunE:  runRandom,
}

func init() {
	randomCmd.Flags().StringVar(&randomFeed, "feed", "", "Instantiate the implementation and feed it this food")
	randomCmd.Flags().Uint64Var(&randomSeed, "seed", 0, "Seed for a repeatable choice (0 picks a random seed)")
	rootCmd.AddCommand(randomCmd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	var opts []registry.Option
	if randomSeed != 0 {
		opts = append(opts, registry.WithRand(rand.New(rand.NewPCG(randomSeed, randomSeed))))
	}
	r, _, err := openRegistry(opts...)
	if err != nil {
		return err
	}
	impl, err := r.Random()
	if err != nil {
		return err
	}
	return show(cmd, impl, randomFeed)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/productor/internal/registry"
)

// eater is the behaviour every example animal shares.
type eater interface {
	Eat(food string) string
}

// show prints impl and, when food is set, instantiates it and feeds it.
func show(cmd *cobra.Command, impl registry.Implementation[string, any], food string) error {
	out := cmd.OutOrStdout()
	renderImplementation(out, impl)
	if food == "" {
		return nil
	}

	v, err := impl.New()
	if err != nil {
		return fmt.Errorf("instantiating %s: %w", impl.Type, err)
	}
	e, ok := v.(eater)
	if !ok {
		return fmt.Errorf("%s has no Eat method", impl.Type)
	}
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("eat: "), e.Eat(food))
	return nil
}

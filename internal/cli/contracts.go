package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentx-labs/productor/examples/abc"
	"github.com/agentx-labs/productor/examples/protocol"
	"github.com/agentx-labs/productor/examples/subclass"
	"github.com/agentx-labs/productor/internal/registry"
)

// contracts maps the names a manifest may use to contracts compiled into
// the binary. Importing the example packages also registers their units.
var contracts = map[string]*registry.Contract{
	"subclass": subclass.Contract,
	"abc":      abc.Contract,
	"protocol": protocol.Contract,
}

func lookupContract(name string) (*registry.Contract, error) {
	c, ok := contracts[name]
	if !ok {
		names := make([]string, 0, len(contracts))
		for n := range contracts {
			names = append(names, n)
		}
		slices.Sort(names)
		return nil, fmt.Errorf("unknown contract %q (known: %s)", name, strings.Join(names, ", "))
	}
	return c, nil
}

package probe

import (
	"strings"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

// Reference resizers: rscope's own separable engine, one per named filter.
func init() {
	for _, f := range rscope.NamedFilters() {
		name := strings.ToLower(strings.ReplaceAll(f.Name(), "-", ""))
		register("perfect", name, "exact separable "+f.Name()+" resize", rscope.Resizer(f))
	}
}

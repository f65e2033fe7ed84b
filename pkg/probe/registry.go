// Package probe collects resizers that can be fed to rscope as black boxes.
//
// Every probe is named "<backend>/<filter>", for example "xdraw/catmullrom"
// or "nfnt/lanczos3". Backends register themselves at init time.
package probe

import (
	"fmt"
	"image"
	"sort"
	"strings"
	"sync"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

// Probe is a named resizer under test.
type Probe struct {
	Name        string
	Description string
	Resize      rscope.ResizeFunc
}

var (
	mu     sync.RWMutex
	probes = map[string]Probe{}
)

// Register adds p to the registry, replacing any probe with the same name.
func Register(p Probe) {
	mu.Lock()
	defer mu.Unlock()
	probes[strings.ToLower(p.Name)] = p
}

// All returns every registered probe sorted by name.
func All() []Probe {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Probe, 0, len(probes))
	for _, p := range probes {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered probe names in sorted order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the probe registered under name. Matching ignores case.
func Lookup(name string) (Probe, error) {
	mu.RLock()
	p, ok := probes[strings.ToLower(strings.TrimSpace(name))]
	mu.RUnlock()
	if !ok {
		return Probe{}, fmt.Errorf("unknown probe %q (see 'rscope probes')", name)
	}
	return p, nil
}

// scaler resizes an arbitrary image into a new image of the requested size.
type scaler func(src image.Image, width, height int) image.Image

// gray wraps s into a ResizeFunc that hands back an 8-bit gray image.
func (s scaler) gray() rscope.ResizeFunc {
	return func(src *image.Gray, width, height int) *image.Gray {
		if src == nil || width <= 0 || height <= 0 {
			return image.NewGray(image.Rect(0, 0, max(width, 0), max(height, 0)))
		}
		return toGray(s(src, width, height))
	}
}

func register(backend, filter, desc string, fn rscope.ResizeFunc) {
	Register(Probe{
		Name:        backend + "/" + filter,
		Description: desc,
		Resize:      fn,
	})
}

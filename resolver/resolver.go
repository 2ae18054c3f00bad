// Package resolver computes the transitive installation closure for
// packages in a parsed Updates.xml index. Traversal is depth-first with
// post-order emission, so every dependency precedes its dependents in the
// result and callers can install strictly in output order.
package resolver

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qtkit/repometa/domain"
)

// Result is an ordered, deduplicated sequence of package names forming a
// valid install order. It is produced fresh per call and owned by the caller.
type Result []string

// Cycle records one dependency edge that was dropped to break a cycle.
// Real-world repositories do contain cycles; dropping the back-edge keeps
// traversal finite without failing the whole resolution.
type Cycle struct {
	From string // Package whose edge was dropped
	To   string // Edge target already on the traversal stack
}

// Resolve computes the ordered closure of the targets over Dependencies and
// AutoDependOn edges. Targets are visited in the caller-supplied order and
// each package's edges in their declared order, so output is deterministic.
// A name absent from the index, whether a target or reached transitively,
// fails with UNKNOWN_PACKAGE and no partial result.
func Resolve(index *domain.PackageIndex, targets []string) (Result, error) {
	result, _, err := ResolveReport(index, targets)
	return result, err
}

// ResolveReport is Resolve plus the list of dependency edges that were
// dropped to break cycles, for callers that want to surface them.
func ResolveReport(index *domain.PackageIndex, targets []string) (Result, []Cycle, error) {
	t := &traversal{
		index:    index,
		visited:  make(map[string]bool),
		visiting: make(map[string]bool),
		order:    Result{},
	}
	for _, target := range targets {
		if t.visited[target] {
			continue
		}
		if err := t.visit(target); err != nil {
			return nil, nil, err
		}
	}
	return t.order, t.cycles, nil
}

// traversal holds the per-call state; the index itself is never mutated, so
// concurrent resolutions over one index need no locking.
type traversal struct {
	index    *domain.PackageIndex
	visited  map[string]bool // fully processed and emitted
	visiting map[string]bool // currently on the recursion stack
	order    Result
	cycles   []Cycle
}

func (t *traversal) visit(name string) error {
	t.visiting[name] = true

	pkg, ok := t.index.Get(name)
	if !ok {
		// Unlike a cycle, a missing name means the document is broken
		return domain.NewMetaError(domain.ErrUnknownPackage,
			fmt.Sprintf("package %q is not in the index", name), name)
	}

	// Dependencies before AutoDependOn; both in declared order
	for _, edges := range [][]string{pkg.Dependencies, pkg.AutoDependOn} {
		for _, dep := range edges {
			if t.visiting[dep] {
				// Back-edge closing a cycle (a self-loop is a cycle of
				// length one): drop the edge, keep going
				t.cycles = append(t.cycles, Cycle{From: name, To: dep})
				log.Debug().
					Str("from", name).
					Str("to", dep).
					Msg("dropping dependency edge that closes a cycle")
				continue
			}
			if t.visited[dep] {
				continue
			}
			if err := t.visit(dep); err != nil {
				return err
			}
		}
	}

	delete(t.visiting, name)
	t.visited[name] = true
	t.order = append(t.order, name)
	return nil
}

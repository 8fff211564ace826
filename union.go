package skema

import "github.com/reoring/skema/ast"

// union tries members in canonical order. The first member without warnings
// wins. Otherwise the best warned result is kept, ranked by fewest warnings,
// then most members retained in the output, then member weight, then member
// order. With no candidate every member failure is reported as a branch.
func (t *traversal) union(n *ast.Union, v any) outcome {
	var (
		best       outcome
		bestWeight int
		found      bool
		failures   []*DecodeError
	)
	for _, m := range n.Types {
		o := t.run(m, v)
		if o.failed() {
			failures = append(failures, memberError(o.errors))
			continue
		}
		if len(o.warnings) == 0 {
			return o
		}
		w := ast.Weight(m)
		if !found || preferred(o, w, best, bestWeight) {
			best, bestWeight, found = o, w, true
		}
	}
	if found {
		return best
	}
	return fail(failures...)
}

func preferred(o outcome, w int, best outcome, bestWeight int) bool {
	if len(o.warnings) != len(best.warnings) {
		return len(o.warnings) < len(best.warnings)
	}
	if a, b := size(o.value), size(best.value); a != b {
		return a > b
	}
	return w > bestWeight
}

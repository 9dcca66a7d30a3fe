package langdef

import (
	"github.com/hadrian-reppas/zparse/grammar"
	"github.com/hadrian-reppas/zparse/internal/ints"
	"github.com/hadrian-reppas/zparse/internal/queue"
)

// orderFragments computes a valid evaluation order for fragment
// definitions: every fragment a definition depends on appears before
// it. Returns a *zparse.Error naming the offending fragment(s) if the
// dependency graph is cyclic, or if a fragment references a name that
// is never defined.
func orderFragments(defs []*grammar.FragmentDefinition) ([]*grammar.FragmentDefinition, error) {
	n := len(defs)
	index := make(map[string]int, n)
	for i, d := range defs {
		index[d.Name.Name] = i
	}

	dependsOn := make([]*ints.Set, n)
	dependents := make([]*ints.Set, n)
	for i := range defs {
		dependsOn[i] = ints.NewSet()
		dependents[i] = ints.NewSet()
	}

	for i, d := range defs {
		for name := range d.Value.Identifiers() {
			j, ok := index[name]
			if !ok {
				return nil, fragmentNotDefinedError(d.Name.Token, name)
			}
			dependsOn[i].Add(j)
			dependents[j].Add(i)
		}
	}

	inDegree := make([]int, n)
	q := queue.New[int]()
	for i := range defs {
		inDegree[i] = dependsOn[i].Len()
		if inDegree[i] == 0 {
			q.Append(i)
		}
	}

	order := make([]*grammar.FragmentDefinition, 0, n)
	seen := make([]bool, n)
	for {
		i, ok := q.First()
		if !ok {
			break
		}
		seen[i] = true
		order = append(order, defs[i])
		for _, d := range dependents[i].ToSlice() {
			inDegree[d]--
			if inDegree[d] == 0 {
				q.Append(d)
			}
		}
	}

	if len(order) < n {
		var remaining []int
		for i := range defs {
			if !seen[i] {
				remaining = append(remaining, i)
			}
		}
		cycle := findCycle(remaining, dependsOn)
		names := make([]string, len(cycle))
		for i, idx := range cycle {
			names[i] = defs[idx].Name.Name
		}
		return nil, fragmentCycleError(names)
	}

	return order, nil
}

// findCycle locates one cycle among the remaining (unordered) nodes,
// restricted to edges whose endpoints are both in remaining.
func findCycle(remaining []int, dependsOn []*ints.Set) []int {
	inRemaining := make(map[int]bool, len(remaining))
	for _, i := range remaining {
		inRemaining[i] = true
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[int]int)
	var stack []int

	var visit func(i int) []int
	visit = func(i int) []int {
		state[i] = visiting
		stack = append(stack, i)
		for _, j := range dependsOn[i].ToSlice() {
			if !inRemaining[j] {
				continue
			}
			switch state[j] {
			case unvisited:
				if cyc := visit(j); cyc != nil {
					return cyc
				}
			case visiting:
				start := 0
				for k, v := range stack {
					if v == j {
						start = k
						break
					}
				}
				cyc := make([]int, len(stack)-start)
				copy(cyc, stack[start:])
				return cyc
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		return nil
	}

	for _, i := range remaining {
		if state[i] == unvisited {
			if cyc := visit(i); cyc != nil {
				return cyc
			}
		}
	}
	return remaining
}

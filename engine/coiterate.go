package engine

import "github.com/mkavanagh/revapi/api"

// Pair is one yielded step of a co-iteration: at least one of Old, New
// is non-nil, and if both are set they compared equal under the tree's
// comparator.
type Pair struct {
	Old api.Element
	New api.Element
}

// CoIterate walks oldSiblings and newSiblings - two sequences already in
// the tree's total order - and yields the matched/unmatched pairing
// described by the co-iteration rule: equal elements are paired and
// both cursors advance; an unmatched or lesser element on one side is
// yielded alone and only that cursor advances. The result preserves
// order and covers every element of the union of both sequences exactly
// once.
//
// Duplicate siblings - CompareTo returning zero for two distinct
// elements on the same side - are forbidden by the data model; CoIterate
// asserts against them rather than silently misbehaving.
func CoIterate(oldSiblings, newSiblings []api.Element) []Pair {
	assertStrictOrder(oldSiblings)
	assertStrictOrder(newSiblings)

	pairs := make([]Pair, 0, len(oldSiblings)+len(newSiblings))
	i, j := 0, 0
	for i < len(oldSiblings) && j < len(newSiblings) {
		cmp := oldSiblings[i].CompareTo(newSiblings[j])
		switch {
		case cmp == 0:
			pairs = append(pairs, Pair{Old: oldSiblings[i], New: newSiblings[j]})
			i++
			j++
		case cmp < 0:
			pairs = append(pairs, Pair{Old: oldSiblings[i]})
			i++
		default:
			pairs = append(pairs, Pair{New: newSiblings[j]})
			j++
		}
	}
	for ; i < len(oldSiblings); i++ {
		pairs = append(pairs, Pair{Old: oldSiblings[i]})
	}
	for ; j < len(newSiblings); j++ {
		pairs = append(pairs, Pair{New: newSiblings[j]})
	}
	return pairs
}

func assertStrictOrder(siblings []api.Element) {
	for i := 1; i < len(siblings); i++ {
		if siblings[i-1].CompareTo(siblings[i]) == 0 {
			panic("engine: sibling comparator returned zero for two distinct elements: " +
				siblings[i-1].FullName() + " and " + siblings[i].FullName())
		}
	}
}

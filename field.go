// FILE: shelldeck/settings/field.go
package settings

// Field holds an optionally-set value on an inheritable entity. Presence
// is tracked separately from the value: a Field only participates in
// serialization and duplication when it was set on the entity itself, not
// when the effective value came from an ancestor.
type Field[T any] struct {
	value T
	set   bool
}

// Set stores v and marks the field as locally present.
func (f *Field[T]) Set(v T) {
	f.value = v
	f.set = true
}

// Clear removes the local value.
func (f *Field[T]) Clear() {
	var zero T
	f.value = zero
	f.set = false
}

// IsSet reports local presence only; inherited values do not count.
func (f *Field[T]) IsSet() bool {
	return f.set
}

// Value returns the local value, or the zero value if unset.
func (f *Field[T]) Value() T {
	return f.value
}

// resolveField walks the parent graph of node depth-first in parent
// insertion order and returns the first locally-set value found, together
// with the entity that supplied it. The parent graph is assumed to be
// acyclic; a visited set turns an accidental cycle into a plain "unset"
// result instead of unbounded recursion.
//
// Precedence follows from the traversal: the node's own value wins, then
// parent 0 and its entire ancestry, then parent 1, and so on.
func resolveField[N comparable, T any](node N, parents func(N) []N, field func(N) *Field[T]) (T, N, bool) {
	visited := make(map[N]struct{}, 4)

	var walk func(N) (T, N, bool)
	walk = func(cur N) (T, N, bool) {
		if _, seen := visited[cur]; seen {
			var zeroT T
			var zeroN N
			return zeroT, zeroN, false
		}
		visited[cur] = struct{}{}

		if f := field(cur); f.IsSet() {
			return f.Value(), cur, true
		}
		for _, p := range parents(cur) {
			if v, src, ok := walk(p); ok {
				return v, src, true
			}
		}
		var zeroT T
		var zeroN N
		return zeroT, zeroN, false
	}

	return walk(node)
}

// resolveOr is resolveField with a fallback for fields unset anywhere in
// the ancestry.
func resolveOr[N comparable, T any](node N, parents func(N) []N, field func(N) *Field[T], fallback T) T {
	if v, _, ok := resolveField(node, parents, field); ok {
		return v
	}
	return fallback
}

// insertAt inserts v into s at index i, clamping i into range.
func insertAt[T any](s []T, i int, v T) []T {
	if i < 0 {
		i = 0
	}
	if i > len(s) {
		i = len(s)
	}
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

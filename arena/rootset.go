// ABOUTME: Ordered set of live roots owned by an arena
// ABOUTME: Entries are pushed and popped by guards in stack order

package arena

// RootSet holds every root currently installed on an arena. The mark phase
// visits each entry. Only guards change it.
type RootSet struct {
	roots []Trace
}

// Len returns the number of installed roots.
func (r *RootSet) Len() int {
	return len(r.roots)
}

// push appends t and returns the resulting depth.
func (r *RootSet) push(t Trace) int {
	r.roots = append(r.roots, t)
	return len(r.roots)
}

func (r *RootSet) pop() {
	n := len(r.roots)
	if n == 0 {
		fatal(ErrEmptyRootSet, "")
	}
	r.roots[n-1] = nil
	r.roots = r.roots[:n-1]
}

// each visits the roots from the oldest to the newest.
func (r *RootSet) each(fn func(depth int, t Trace)) {
	for i, t := range r.roots {
		fn(i+1, t)
	}
}

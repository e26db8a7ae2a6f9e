// ABOUTME: Rooted containers: sequences, tuples, optionals and maps
// ABOUTME: Projections return pointers into the container's own storage

package arena

// RootVec is a growable rooted sequence. Elements are themselves rooted
// values, so anything appended has already crossed IntoRoot. Each element is
// boxed so a view returned by Index stays valid while the vector grows.
type RootVec[T Trace] struct {
	items []*T
}

func (v RootVec[T]) Mark(stack *WorkList) {
	for _, item := range v.items {
		(*item).Mark(stack)
	}
}

func (v RootVec[T]) Len() int { return len(v.items) }

// Index returns the rooted view of element i.
func (v *RootVec[T]) Index(i int) *T {
	return v.items[i]
}

// Slice returns the rooted view of elements [lo, hi). The window shares
// element storage with v and cannot grow into it.
func (v *RootVec[T]) Slice(lo, hi int) RootSlice[T] {
	return RootSlice[T]{items: v.items[lo:hi:hi]}
}

func (v *RootVec[T]) AsSlice() RootSlice[T] {
	return v.Slice(0, len(v.items))
}

func (v *RootVec[T]) Push(item T) {
	v.items = append(v.items, &item)
}

func (v *RootVec[T]) Pop() (T, bool) {
	var zero T
	n := len(v.items)
	if n == 0 {
		return zero, false
	}
	item := *v.items[n-1]
	v.items[n-1] = nil
	v.items = v.items[:n-1]
	return item, true
}

// Truncate drops every element from index n on. Views of dropped elements
// are no longer traced.
func (v *RootVec[T]) Truncate(n int) {
	if n >= len(v.items) {
		return
	}
	clear(v.items[n:])
	v.items = v.items[:n]
}

// Append moves every element of other onto v, leaving other empty. Views
// of other's elements now refer to elements of v.
func (v *RootVec[T]) Append(other *RootVec[T]) {
	if v == other {
		fatal(ErrAliasedBorrow, "append of a vector to itself")
	}
	v.items = append(v.items, other.items...)
	other.Clear()
}

func (v *RootVec[T]) Clear() {
	v.Truncate(0)
}

// RootSlice is a fixed window onto a RootVec.
type RootSlice[T Trace] struct {
	items []*T
}

func (s RootSlice[T]) Mark(stack *WorkList) {
	for _, item := range s.items {
		(*item).Mark(stack)
	}
}

func (s RootSlice[T]) Len() int { return len(s.items) }

func (s RootSlice[T]) Index(i int) *T {
	return s.items[i]
}

func (s RootSlice[T]) Slice(lo, hi int) RootSlice[T] {
	return RootSlice[T]{items: s.items[lo:hi:hi]}
}

// RootPair is a rooted two-tuple; each half is its own rooted view.
type RootPair[A, B Trace] struct {
	first  A
	second B
}

func MakeRootPair[A, B Trace](first A, second B) RootPair[A, B] {
	return RootPair[A, B]{first: first, second: second}
}

func (p RootPair[A, B]) Mark(stack *WorkList) {
	p.first.Mark(stack)
	p.second.Mark(stack)
}

func (p *RootPair[A, B]) Parts() (*A, *B) {
	return &p.first, &p.second
}

func (p *RootPair[A, B]) First() *A { return &p.first }

func (p *RootPair[A, B]) Second() *B { return &p.second }

// RootOption is a rooted value that may be absent.
type RootOption[T Trace] struct {
	val T
	ok  bool
}

func SomeRoot[T Trace](v T) RootOption[T] {
	return RootOption[T]{val: v, ok: true}
}

func (o RootOption[T]) Mark(stack *WorkList) {
	if o.ok {
		o.val.Mark(stack)
	}
}

// Get returns the rooted view of the value, or false when absent.
func (o *RootOption[T]) Get() (*T, bool) {
	if !o.ok {
		return nil, false
	}
	return &o.val, true
}

func (o *RootOption[T]) Set(v T) {
	o.val = v
	o.ok = true
}

func (o *RootOption[T]) Clear() {
	var zero T
	o.val = zero
	o.ok = false
}

func (o RootOption[T]) IsSome() bool { return o.ok }

// RootMap maps unrooted keys to rooted values. Values are boxed so a view
// returned by Get stays valid while the map grows.
type RootMap[K comparable, V Trace] struct {
	m map[K]*V
}

func (m RootMap[K, V]) Mark(stack *WorkList) {
	for _, v := range m.m {
		(*v).Mark(stack)
	}
}

func (m RootMap[K, V]) Len() int { return len(m.m) }

// Get returns the rooted view stored under k. Writes through the view update
// the map in place.
func (m *RootMap[K, V]) Get(k K) (*V, bool) {
	v, ok := m.m[k]
	return v, ok
}

func (m *RootMap[K, V]) Insert(k K, v V) {
	if m.m == nil {
		m.m = make(map[K]*V)
	}
	if cur, ok := m.m[k]; ok {
		*cur = v
		return
	}
	m.m[k] = &v
}

func (m *RootMap[K, V]) Delete(k K) {
	delete(m.m, k)
}

// Range calls fn for each entry in unspecified order until fn returns false.
func (m *RootMap[K, V]) Range(fn func(k K, v *V) bool) {
	for k, v := range m.m {
		if !fn(k, v) {
			return
		}
	}
}

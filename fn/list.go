package fn

// Node is a single element of a List. Its zero value is not meaningful on
// its own; nodes are only produced by a List's insertion methods.
type Node[A any] struct {
	Value A

	next, prev *Node[A]
	list       *List[A]
}

// Next returns the node following this one, or nil if this is the back of
// the list.
func (n *Node[A]) Next() *Node[A] {
	if n == nil || n.list == nil {
		return nil
	}

	next := n.next
	if next == &n.list.root {
		return nil
	}

	return next
}

// Prev returns the node preceding this one, or nil if this is the front of
// the list.
func (n *Node[A]) Prev() *Node[A] {
	if n == nil || n.list == nil {
		return nil
	}

	prev := n.prev
	if prev == &n.list.root {
		return nil
	}

	return prev
}

// List is a generic doubly linked list, generalizing container/list to
// avoid the interface{} boxing that package requires. Used as the MPP
// splitter's explicit work stack so that shard recursion never grows the Go
// call stack.
type List[A any] struct {
	root Node[A]
	len  int
}

// NewList returns an empty list ready for use.
func NewList[A any]() *List[A] {
	l := &List[A]{}
	l.root.next = &l.root
	l.root.prev = &l.root
	l.root.list = l

	return l
}

// Len returns the number of elements currently in the list.
func (l *List[A]) Len() int {
	return l.len
}

// Front returns the first node of the list, or nil if the list is empty.
func (l *List[A]) Front() *Node[A] {
	if l.len == 0 {
		return nil
	}

	return l.root.next
}

// Back returns the last node of the list, or nil if the list is empty.
func (l *List[A]) Back() *Node[A] {
	if l.len == 0 {
		return nil
	}

	return l.root.prev
}

// insertAfter inserts a new node holding value v immediately after at, and
// returns the new node.
func (l *List[A]) insertAfter(v A, at *Node[A]) *Node[A] {
	n := &Node[A]{
		Value: v,
		prev:  at,
		next:  at.next,
		list:  l,
	}
	at.next.prev = n
	at.next = n
	l.len++

	return n
}

// PushFront inserts v at the front of the list and returns its node.
func (l *List[A]) PushFront(v A) *Node[A] {
	return l.insertAfter(v, &l.root)
}

// PushBack inserts v at the back of the list and returns its node.
func (l *List[A]) PushBack(v A) *Node[A] {
	return l.insertAfter(v, l.root.prev)
}

// InsertBefore inserts v immediately before mark and returns its node.
// mark must be a node of this list.
func (l *List[A]) InsertBefore(v A, mark *Node[A]) *Node[A] {
	return l.insertAfter(v, mark.prev)
}

// InsertAfter inserts v immediately after mark and returns its node. mark
// must be a node of this list.
func (l *List[A]) InsertAfter(v A, mark *Node[A]) *Node[A] {
	return l.insertAfter(v, mark)
}

// unlink splices n out of the list without freeing it.
func (l *List[A]) unlink(n *Node[A]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
	n.list = nil
	l.len--
}

// Remove deletes n from the list. No-op if n is nil or already removed.
func (l *List[A]) Remove(n *Node[A]) {
	if n == nil || n.list != l {
		return
	}

	l.unlink(n)
}

// move splices n out and reinserts it immediately after at.
func (l *List[A]) move(n, at *Node[A]) {
	if n == at {
		return
	}

	n.prev.next = n.next
	n.next.prev = n.prev

	n.prev = at
	n.next = at.next
	n.prev.next = n
	n.next.prev = n
}

// MoveToFront moves n to the front of the list.
func (l *List[A]) MoveToFront(n *Node[A]) {
	if n == nil || n.list != l || l.root.next == n {
		return
	}

	l.move(n, &l.root)
}

// MoveToBack moves n to the back of the list.
func (l *List[A]) MoveToBack(n *Node[A]) {
	if n == nil || n.list != l || l.root.prev == n {
		return
	}

	l.move(n, l.root.prev)
}

// MoveBefore moves n so that it immediately precedes mark.
func (l *List[A]) MoveBefore(n, mark *Node[A]) {
	if n == nil || mark == nil || n.list != l || mark.list != l || n == mark {
		return
	}

	l.move(n, mark.prev)
}

// MoveAfter moves n so that it immediately follows mark.
func (l *List[A]) MoveAfter(n, mark *Node[A]) {
	if n == nil || mark == nil || n.list != l || mark.list != l || n == mark {
		return
	}

	l.move(n, mark)
}

// PushBackList appends a copy of other's elements to the back of l. other
// is left unmodified.
func (l *List[A]) PushBackList(other *List[A]) {
	for n := other.Front(); n != nil; n = n.Next() {
		l.PushBack(n.Value)
	}
}

// PushFrontList inserts a copy of other's elements at the front of l, in
// other's order. other is left unmodified.
func (l *List[A]) PushFrontList(other *List[A]) {
	for n := other.Back(); n != nil; n = n.Prev() {
		l.PushFront(n.Value)
	}
}

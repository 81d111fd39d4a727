package assoc

import (
	"cmp"

	"github.com/npillmayer/assoc/rbtree"
)

// entry is a key/value pair stored in a HashMap.
//
// Entries keep their identity across bin conversions and table resizes;
// only the bin structure around them is rebuilt.
type entry[K comparable, V any] struct {
	hash  uint64 // spread hash
	key   K
	value V
	seq   uint64      // arrival number, tiebreak inside tree bins
	next  *entry[K, V] // chain link, kept up to date in tree bins as well
	prev  *entry[K, V] // tree bins only
}

// bin is the content of one table slot. It is either a *chainBin or a
// *treeBin; an empty slot is nil.
type bin[K comparable, V any] interface {
	len() int
	first() *entry[K, V]
}

// chainBin is a singly linked list of entries in arrival order.
type chainBin[K comparable, V any] struct {
	head *entry[K, V]
	n    int
}

func (b *chainBin[K, V]) len() int            { return b.n }
func (b *chainBin[K, V]) first() *entry[K, V] { return b.head }

// binTree is the red-black tree of a tree bin. Tree keys are the entries
// themselves, the tree carries no values.
type binTree[K comparable, V any] = rbtree.Tree[*entry[K, V], struct{}]

type binNode[K comparable, V any] = rbtree.Node[*entry[K, V], struct{}]

// treeBin holds its entries in a red-black tree and, in parallel, in a doubly
// linked list in arrival order. The list makes untreeify and bin splitting
// linear.
type treeBin[K comparable, V any] struct {
	tree *binTree[K, V]
	head *entry[K, V]
	tail *entry[K, V]
}

func (b *treeBin[K, V]) len() int            { return b.tree.Len() }
func (b *treeBin[K, V]) first() *entry[K, V] { return b.head }

// add inserts a new entry, which must not be present yet.
func (b *treeBin[K, V]) add(e *entry[K, V]) {
	_, replaced, err := b.tree.Insert(e, struct{}{})
	assert(err == nil, "tree bin order must not fail")
	assert(!replaced, "tree bin add of present entry")
	e.next = nil
	e.prev = b.tail
	if b.tail == nil {
		b.head = e
	} else {
		b.tail.next = e
	}
	b.tail = e
}

// remove unlinks the entry at node n from tree and list.
func (b *treeBin[K, V]) remove(n *binNode[K, V]) *entry[K, V] {
	e := n.Key()
	b.tree.DeleteNode(n)
	if e.prev == nil {
		b.head = e.next
	} else {
		e.prev.next = e.next
	}
	if e.next == nil {
		b.tail = e.prev
	} else {
		e.next.prev = e.prev
	}
	e.next, e.prev = nil, nil
	return e
}

// binCompare orders the entries of a tree bin: by hash, then by the keys'
// natural order if K has a static one (and equality is ==), then by arrival.
func (m *HashMap[K, V]) binCompare(a, b *entry[K, V]) (int, error) {
	if a.hash != b.hash {
		return cmp.Compare(a.hash, b.hash), nil
	}
	if m.keyOrder != nil {
		if c := m.keyOrder(a.key, b.key); c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(a.seq, b.seq), nil
}

// findTreeNode searches the tree below n for key with spread hash h.
//
// Descent is by hash. Among equal hashes it is by key order, if there is one;
// where that does not decide (no order, or an order inconsistent with
// equality), both subtrees are searched.
func (m *HashMap[K, V]) findTreeNode(n *binNode[K, V], h uint64, key K) *binNode[K, V] {
	for n != nil {
		e := n.Key()
		switch {
		case h < e.hash:
			n = n.Left()
		case h > e.hash:
			n = n.Right()
		case m.equal(e.key, key):
			return n
		default:
			if m.keyOrder != nil {
				if c := m.keyOrder(key, e.key); c < 0 {
					n = n.Left()
					continue
				} else if c > 0 {
					n = n.Right()
					continue
				}
			}
			if found := m.findTreeNode(n.Right(), h, key); found != nil {
				return found
			}
			n = n.Left()
		}
	}
	return nil
}

// treeify builds a tree bin from a chain, inserting entries in chain order.
func (m *HashMap[K, V]) treeify(head *entry[K, V]) *treeBin[K, V] {
	tree, err := rbtree.New[*entry[K, V], struct{}](m.binCompare)
	assert(err == nil, "cannot create bin tree")
	b := &treeBin[K, V]{tree: tree}
	for e := head; e != nil; {
		next := e.next
		b.add(e)
		e = next
	}
	m.mods.Touch()
	return b
}

// untreeify turns a tree bin back into a chain, keeping list order.
func (m *HashMap[K, V]) untreeify(b *treeBin[K, V]) *chainBin[K, V] {
	c := &chainBin[K, V]{head: b.head}
	for e := b.head; e != nil; e = e.next {
		e.prev = nil
		c.n++
	}
	m.mods.Touch()
	return c
}

// entryList collects entries while a bin is split.
type entryList[K comparable, V any] struct {
	head, tail *entry[K, V]
	n          int
}

func (l *entryList[K, V]) push(e *entry[K, V]) {
	e.next = nil
	e.prev = l.tail
	if l.tail == nil {
		l.head = e
	} else {
		l.tail.next = e
	}
	l.tail = e
	l.n++
}

// splitEntries distributes the entries starting at head into a low and a high
// list by hash bit bit, preserving relative order.
func splitEntries[K comparable, V any](head *entry[K, V], bit uint64) (lo, hi entryList[K, V]) {
	for e := head; e != nil; {
		next := e.next
		if e.hash&bit == 0 {
			lo.push(e)
		} else {
			hi.push(e)
		}
		e = next
	}
	return
}

// asChain turns a list into a chain bin, or nil for an empty list.
func (l entryList[K, V]) asChain() bin[K, V] {
	if l.n == 0 {
		return nil
	}
	for e := l.head; e != nil; e = e.next {
		e.prev = nil
	}
	return &chainBin[K, V]{head: l.head, n: l.n}
}

// rebin turns one half of a split tree bin into a new bin. If the half holds
// all entries of the old bin, the old tree is reused as it is.
func (m *HashMap[K, V]) rebin(l entryList[K, V], old *treeBin[K, V]) bin[K, V] {
	switch {
	case l.n == 0:
		return nil
	case l.n <= UntreeifyThreshold:
		m.mods.Touch()
		return l.asChain()
	case l.n == old.len():
		old.head, old.tail = l.head, l.tail
		return old
	}
	return m.treeify(l.head)
}

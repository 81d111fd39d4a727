package assoc

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/btree"
)

func newEvenTreeMap(t *testing.T, n int) *TreeMap[int, string] {
	t.Helper()
	m := NewOrderedTreeMap[int, string]()
	for k := 0; k < 2*n; k += 2 {
		if _, _, err := m.Put(k, "v"); err != nil {
			t.Fatalf("Put(%d): %v", k, err)
		}
	}
	return m
}

func keysOf[V any](t *testing.T, m *TreeMap[int, V]) []int {
	t.Helper()
	keys, err := m.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	return keys
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func expectKey(t *testing.T, what string, e Entry[int, string], ok bool, err error, key int) {
	t.Helper()
	if err != nil || !ok || e.Key != key {
		t.Fatalf("%s: expected %d, got %v, %v, %v", what, key, e, ok, err)
	}
}

func expectNone(t *testing.T, what string, e Entry[int, string], ok bool, err error) {
	t.Helper()
	if err != nil || ok {
		t.Fatalf("%s: expected no entry, got %v, %v, %v", what, e, ok, err)
	}
}

func TestTreeMapNavigation(t *testing.T) {
	m := NewOrderedTreeMap[int, string]()
	for _, k := range []int{5, 3, 8} {
		m.Put(k, "")
	}
	e, ok, err := m.First()
	expectKey(t, "First", e, ok, err, 3)
	e, ok, err = m.Last()
	expectKey(t, "Last", e, ok, err, 8)
	e, ok, err = m.Ceiling(4)
	expectKey(t, "Ceiling(4)", e, ok, err, 5)
	e, ok, err = m.Floor(4)
	expectKey(t, "Floor(4)", e, ok, err, 3)
	e, ok, err = m.Higher(5)
	expectKey(t, "Higher(5)", e, ok, err, 8)
	e, ok, err = m.Lower(5)
	expectKey(t, "Lower(5)", e, ok, err, 3)
	e, ok, err = m.Higher(8)
	expectNone(t, "Higher(8)", e, ok, err)
	e, ok, err = m.Lower(3)
	expectNone(t, "Lower(3)", e, ok, err)
	mustCheck(t, m)
}

func TestTreeMapZeroValue(t *testing.T) {
	var m TreeMap[string, int]
	if !m.IsEmpty() || m.Size() != 0 {
		t.Fatalf("zero map must be empty")
	}
	for i, k := range []string{"b", "c", "a"} {
		if _, _, err := m.Put(k, i); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	e, ok, _ := m.First()
	if !ok || e.Key != "a" || e.Value != 2 {
		t.Fatalf("expected a=2, got %v", e)
	}
}

type version struct {
	major, minor int
}

func (v version) Compare(other version) int {
	if v.major != other.major {
		return v.major - other.major
	}
	return v.minor - other.minor
}

func TestTreeMapKeyOrders(t *testing.T) {
	var vm TreeMap[version, string]
	vm.Put(version{1, 10}, "b")
	vm.Put(version{1, 2}, "a")
	vm.Put(version{2, 0}, "c")
	if vals, _ := vm.Values(); strings.Join(vals, "") != "abc" {
		t.Fatalf("expected Comparable order abc, got %v", vals)
	}
	//
	type point struct{ x, y int }
	var pm TreeMap[point, int]
	if _, _, err := pm.Put(point{1, 2}, 0); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch for unordered keys, got %v", err)
	}
	if pm.Size() != 0 {
		t.Fatalf("failed Put must not insert")
	}
	if _, _, err := pm.Get(point{1, 2}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch from Get on empty map, got %v", err)
	}
	if _, err := pm.ContainsKey(point{1, 2}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch from ContainsKey on empty map, got %v", err)
	}
	if _, _, err := pm.Remove(point{1, 2}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch from Remove on empty map, got %v", err)
	}
	//
	var am TreeMap[any, int]
	if _, _, err := am.Put(1, 1); err != nil {
		t.Fatal(err)
	}
	am.Put(2, 2)
	if _, _, err := am.Put("x", 3); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch for mixed keys, got %v", err)
	}
	if _, _, err := am.Get("x"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch on lookup, got %v", err)
	}
	if am.Size() != 2 {
		t.Fatalf("expected size 2, got %d", am.Size())
	}
	mustCheck(t, &am)
}

func TestTreeMapComparatorPanic(t *testing.T) {
	m := NewTreeMap[int, int](Config[int]{
		Comparator: func(a, b int) int {
			if a == 13 || b == 13 {
				panic("unlucky")
			}
			return b - a // descending
		},
	})
	for k := range 10 {
		if _, _, err := m.Put(k, k); err != nil {
			t.Fatal(err)
		}
	}
	if _, _, err := m.Put(13, 13); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if m.Size() != 10 {
		t.Fatalf("failed Put changed the map")
	}
	mustCheck(t, m)
	if keys := keysOf(t, m); keys[0] != 9 || keys[9] != 0 {
		t.Fatalf("comparator order not honored: %v", keys)
	}
}

func TestTreeMapPoll(t *testing.T) {
	m := newEvenTreeMap(t, 5)
	e, ok, err := m.PollFirst()
	expectKey(t, "PollFirst", e, ok, err, 0)
	e, ok, err = m.PollLast()
	expectKey(t, "PollLast", e, ok, err, 8)
	if !sameInts(keysOf(t, m), []int{2, 4, 6}) {
		t.Fatalf("unexpected keys %v", keysOf(t, m))
	}
	m.Clear()
	e, ok, err = m.PollFirst()
	expectNone(t, "PollFirst of empty map", e, ok, err)
}

func TestTreeMapIteratorRemove(t *testing.T) {
	for _, descending := range []bool{false, true} {
		m := newEvenTreeMap(t, 32)
		it := m.Iterator()
		if descending {
			it = m.DescendingIterator()
		}
		n := 0
		for it.Next() {
			n++
			if it.Key()%4 == 0 {
				if err := it.Remove(); err != nil {
					t.Fatal(err)
				}
			}
		}
		if it.Err() != nil || n != 32 || m.Size() != 16 {
			t.Fatalf("descending=%v: visited %d, size %d, err=%v", descending, n, m.Size(), it.Err())
		}
		mustCheck(t, m)
	}
}

func TestTreeMapSubMap(t *testing.T) {
	m := newEvenTreeMap(t, 20) // 0, 2, …, 38
	sub, err := m.SubMap(10, true, 20, false)
	if err != nil {
		t.Fatal(err)
	}
	if !sameInts(keysOf(t, sub), []int{10, 12, 14, 16, 18}) || sub.Size() != 5 {
		t.Fatalf("unexpected sub map %v", keysOf(t, sub))
	}
	if _, _, err := sub.Put(20, "x"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for out of range put, got %v", err)
	}
	if _, _, err := sub.Put(11, "x"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := m.ContainsKey(11); !ok {
		t.Fatalf("put through view must be visible in map")
	}
	m.Remove(12)
	if ok, _ := sub.ContainsKey(12); ok {
		t.Fatalf("removal from map must be visible in view")
	}
	if ok, _ := sub.ContainsKey(30); ok {
		t.Fatalf("view must hide keys out of range")
	}
	e, ok, err := sub.First()
	expectKey(t, "sub.First", e, ok, err, 10)
	e, ok, err = sub.Last()
	expectKey(t, "sub.Last", e, ok, err, 18)
	e, ok, err = sub.Ceiling(0)
	expectKey(t, "sub.Ceiling(0)", e, ok, err, 10)
	e, ok, err = sub.Floor(100)
	expectKey(t, "sub.Floor(100)", e, ok, err, 18)
	e, ok, err = sub.Higher(18)
	expectNone(t, "sub.Higher(18)", e, ok, err)
	if _, err := m.SubMap(20, true, 10, true); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for inverted bounds, got %v", err)
	}
	if _, err := sub.HeadMap(30, true); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bound out of view, got %v", err)
	}
	if _, err := sub.HeadMap(20, false); err != nil {
		t.Fatalf("exclusive bound on exclusive view edge must be accepted, got %v", err)
	}
	sub.Clear()
	if m.Size() != 15 || !sameInts(keysOf(t, m)[4:7], []int{8, 20, 22}) {
		t.Fatalf("Clear of view must remove exactly the range, got %v", keysOf(t, m))
	}
	mustCheck(t, m)
}

func TestTreeMapHeadTailMap(t *testing.T) {
	m := newEvenTreeMap(t, 10) // 0, 2, …, 18
	head, _ := m.HeadMap(6, false)
	if !sameInts(keysOf(t, head), []int{0, 2, 4}) {
		t.Fatalf("unexpected head map %v", keysOf(t, head))
	}
	tail, _ := m.TailMap(13, true)
	if !sameInts(keysOf(t, tail), []int{14, 16, 18}) {
		t.Fatalf("unexpected tail map %v", keysOf(t, tail))
	}
	e, ok, err := tail.PollFirst()
	expectKey(t, "tail.PollFirst", e, ok, err, 14)
	inner, err := tail.HeadMap(18, false)
	if err != nil || !sameInts(keysOf(t, inner), []int{16}) {
		t.Fatalf("unexpected nested view %v, %v", keysOf(t, inner), err)
	}
}

func TestTreeMapDescending(t *testing.T) {
	m := newEvenTreeMap(t, 10) // 0, 2, …, 18
	desc := m.Descending()
	if !sameInts(keysOf(t, desc), []int{18, 16, 14, 12, 10, 8, 6, 4, 2, 0}) {
		t.Fatalf("unexpected descending order %v", keysOf(t, desc))
	}
	e, ok, err := desc.First()
	expectKey(t, "desc.First", e, ok, err, 18)
	e, ok, err = desc.Ceiling(7)
	expectKey(t, "desc.Ceiling(7)", e, ok, err, 6)
	e, ok, err = desc.Higher(6)
	expectKey(t, "desc.Higher(6)", e, ok, err, 4)
	sub, err := desc.SubMap(12, true, 6, false)
	if err != nil {
		t.Fatal(err)
	}
	if !sameInts(keysOf(t, sub), []int{12, 10, 8}) {
		t.Fatalf("unexpected descending sub map %v", keysOf(t, sub))
	}
	head, _ := desc.HeadMap(14, true)
	if !sameInts(keysOf(t, head), []int{18, 16, 14}) {
		t.Fatalf("unexpected descending head map %v", keysOf(t, head))
	}
	if !sameInts(keysOf(t, head.Descending()), []int{14, 16, 18}) {
		t.Fatalf("double reversal must restore ascending order")
	}
	if _, err := desc.SubMap(6, true, 12, true); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for ascending bounds on descending view, got %v", err)
	}
}

func TestTreeMapViewFailFast(t *testing.T) {
	m := newEvenTreeMap(t, 10)
	sub, _ := m.SubMap(4, true, 12, true)
	it := sub.Iterator()
	if !it.Next() {
		t.Fatalf("expected first entry")
	}
	m.Put(100, "x")
	if it.Next() || !errors.Is(it.Err(), ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", it.Err())
	}
}

func TestTreeMap2DotAndDump(t *testing.T) {
	m := newEvenTreeMap(t, 3)
	var buf bytes.Buffer
	TreeMap2Dot(m, &buf)
	if strings.Count(buf.String(), "shape=circle") != 3 {
		t.Fatalf("expected 3 nodes:\n%s", buf.String())
	}
	buf.Reset()
	m.Dump(&buf, false)
	if buf.String() != "  4 (red)\n2 (black)\n  0 (red)\n" {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

// --- Randomized comparison against google/btree -----------------------------

type intItem int

func (a intItem) Less(b btree.Item) bool {
	return a < b.(intItem)
}

func firstItem(walk func(btree.ItemIterator)) (int, bool) {
	var found btree.Item
	walk(func(i btree.Item) bool {
		found = i
		return false
	})
	if found == nil {
		return 0, false
	}
	return int(found.(intItem)), true
}

func runTreeMapSequence(t *testing.T, seed int64, steps int) {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	m := NewOrderedTreeMap[int, int]()
	oracle := btree.New(4)
	for i := range steps {
		k := rnd.Intn(200)
		switch rnd.Intn(3) {
		case 0, 1:
			m.Put(k, k)
			oracle.ReplaceOrInsert(intItem(k))
		case 2:
			_, ok, _ := m.Remove(k)
			if (oracle.Delete(intItem(k)) != nil) != ok {
				t.Fatalf("seed %d step %d: Remove(%d) reported %v", seed, i, k, ok)
			}
		}
		if m.Size() != oracle.Len() {
			t.Fatalf("seed %d step %d: size %d, expected %d", seed, i, m.Size(), oracle.Len())
		}
		if err := m.Check(); err != nil {
			t.Fatalf("seed %d step %d: %v", seed, i, err)
		}
		q := rnd.Intn(210) - 5
		ceil, okC := firstItem(func(it btree.ItemIterator) { oracle.AscendGreaterOrEqual(intItem(q), it) })
		if e, ok, _ := m.Ceiling(q); ok != okC || (ok && e.Key != ceil) {
			t.Fatalf("seed %d step %d: Ceiling(%d) = %v, expected %d", seed, i, q, e.Key, ceil)
		}
		floor, okF := firstItem(func(it btree.ItemIterator) { oracle.DescendLessOrEqual(intItem(q), it) })
		if e, ok, _ := m.Floor(q); ok != okF || (ok && e.Key != floor) {
			t.Fatalf("seed %d step %d: Floor(%d) = %v, expected %d", seed, i, q, e.Key, floor)
		}
		higher, okH := firstItem(func(it btree.ItemIterator) { oracle.AscendGreaterOrEqual(intItem(q+1), it) })
		if e, ok, _ := m.Higher(q); ok != okH || (ok && e.Key != higher) {
			t.Fatalf("seed %d step %d: Higher(%d) = %v, expected %d", seed, i, q, e.Key, higher)
		}
	}
	lo := rnd.Intn(100)
	hi := lo + rnd.Intn(100)
	var want []int
	oracle.AscendRange(intItem(lo), intItem(hi), func(i btree.Item) bool {
		want = append(want, int(i.(intItem)))
		return true
	})
	sub, err := m.SubMap(lo, true, hi, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := keysOf(t, sub); !sameInts(got, want) {
		t.Fatalf("seed %d: SubMap(%d, %d) = %v, expected %v", seed, lo, hi, got, want)
	}
}

func TestTreeMapRandomizedProperty(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 7, 42, 99, 31337, 123456789} {
		runTreeMapSequence(t, seed, 800)
	}
}

func FuzzTreeMapRandomizedProperty(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(815))
	f.Fuzz(func(t *testing.T, seed int64) {
		runTreeMapSequence(t, seed, 200)
	})
}

package btree

// list is the ordered sequence holding a node's entries. Positions are
// indices; every operation keeps the relative order of untouched items.
type list[T any] []T

func newList[T any](capacity int) list[T] {
	return make(list[T], 0, capacity)
}

// splice moves the run m[j:k] into l before position i. The run leaves m.
func (l *list[T]) splice(i int, m *list[T], j, k int) {
	l.insertTo(i, m.removeFrom(j, k)...)
}

func (l *list[T]) insertTo(i int, items ...T) {
	var (
		insertedList list[T] = items
		newLen               = len(insertedList) + len(*l)
		j                    = len(insertedList) + i
	)
	if newLen > cap(*l) {
		grown := make(list[T], len(*l), newLen+cap(*l))
		copy(grown, *l)
		*l = grown
	}
	*l = (*l)[:newLen]

	if newLen > j {
		copy((*l)[j:], (*l)[i:])
	}
	copy((*l)[i:], insertedList)
}

func (l *list[T]) insert(i int, item T) {
	l.insertTo(i, item)
}

func (l *list[T]) removeFrom(i, j int) list[T] {
	var (
		removedListLen = j - i
		removedList    = make(list[T], removedListLen)
		newLen         = len(*l) - removedListLen
	)
	copy(removedList, (*l)[i:j])
	copy((*l)[i:], (*l)[j:])

	// clear the vacated tail so moved items are not kept reachable
	var zero T
	for k := newLen; k < len(*l); k++ {
		(*l)[k] = zero
	}
	*l = (*l)[:newLen]
	return removedList
}

func (l *list[T]) remove(i int) T {
	return l.removeFrom(i, i+1)[0]
}

func (l list[T]) last() T {
	return l[len(l)-1]
}

// find binary searches l, which must be sorted with respect to compare.
// compare reports the order of the probe relative to an item: negative if
// the probe sorts before it, zero on a match and positive after. find
// returns the index of the match, or the index of the first item the probe
// sorts before.
func find[T any](l list[T], compare func(T) int) (int, bool) {
	var (
		low  = 0
		high = len(l)
	)
	for low < high {
		var (
			between  = (low + high) / 2
			compared = compare(l[between])
		)
		if compared < 0 {
			high = between
			continue
		}
		if compared > 0 {
			low = between + 1
			continue
		}
		return between, true
	}
	return low, false
}

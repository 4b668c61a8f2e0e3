package store

import "bytes"

// cursor marks which side of the merge holds the current item
type cursor int

const (
	fromNone cursor = iota
	fromOverlay
	fromParent
	fromBoth
)

// mergeIter combines a snapshot of overlay entries with the iterator
// of the backing store. On equal keys the overlay wins, deleted
// entries shadow the parent.
type mergeIter struct {
	entries []*treeEntry
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIter)(nil)

func mergeIterators(entries []*treeEntry, parent Iterator, reverse bool) (Iterator, error) {
	m := &mergeIter{
		entries: entries,
		parent:  parent,
		reverse: reverse,
	}
	if err := m.settle(); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// Valid implements Iterator and returns true iff it can be read
func (m *mergeIter) Valid() bool {
	return m.at() != fromNone
}

// Next moves the iterator to the next sequential key in the database,
// as defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (m *mergeIter) Next() error {
	switch m.at() {
	case fromOverlay:
		m.entries = m.entries[1:]
	case fromBoth:
		m.entries = m.entries[1:]
		fallthrough
	case fromParent:
		if err := m.parent.Next(); err != nil {
			return err
		}
	default:
		panic("advanced past the end")
	}
	return m.settle()
}

// Key returns the key of the cursor.
func (m *mergeIter) Key() []byte {
	switch m.at() {
	case fromOverlay, fromBoth:
		return m.entries[0].key
	case fromParent:
		return m.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (m *mergeIter) Value() []byte {
	switch m.at() {
	case fromOverlay, fromBoth:
		return m.entries[0].value
	case fromParent:
		return m.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (m *mergeIter) Close() {
	if m.parent != nil {
		m.parent.Close()
	}
	m.entries = nil
}

// settle advances over overlay deletions, together with the parent
// entries they shadow, until the merge points at a live pair or the
// end.
func (m *mergeIter) settle() error {
	for {
		src := m.at()
		if src != fromOverlay && src != fromBoth {
			return nil
		}
		if !m.entries[0].deleted {
			return nil
		}
		if src == fromBoth {
			if err := m.parent.Next(); err != nil {
				return err
			}
		}
		m.entries = m.entries[1:]
	}
}

// at selects the side holding the first key in iteration order
func (m *mergeIter) at() cursor {
	if !m.parentValid() {
		if len(m.entries) == 0 {
			return fromNone
		}
		return fromOverlay
	}
	if len(m.entries) == 0 {
		return fromParent
	}

	cmp := bytes.Compare(m.entries[0].key, m.parent.Key())
	if m.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return fromOverlay
	case cmp > 0:
		return fromParent
	default:
		return fromBoth
	}
}

// makes sure the parent is non-nil before checking if it is valid
func (m *mergeIter) parentValid() bool {
	return m.parent != nil && m.parent.Valid()
}

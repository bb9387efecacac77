package model

import (
	"iter"
)

// PendingSet is a deduplicated collection of identities awaiting processing.
// Insertion of an already-present identity is a silent no-op, so the public
// Add methods stay idempotent. Every identity held by the set has a
// recognized kind; unsupported and ignored paths are rejected before
// insertion.
type PendingSet struct {
	files map[Identity]struct{}
}

func NewPendingSet() *PendingSet {
	return &PendingSet{files: make(map[Identity]struct{})}
}

// Add inserts path if it exists and its kind is recognized.
// Returns a wrapped fs.ErrNotExist when the path is missing and
// ErrUnsupportedType when the extension is outside the recognized set.
func (s *PendingSet) Add(path string) error {
	id, err := NewIdentity(path)
	if err != nil {
		return err
	}
	if !id.Supported() {
		return ErrUnsupportedType
	}
	s.files[id] = struct{}{}
	return nil
}

// AddAllowed is Add with a user-supplied ignore filter: when the classified
// kind maps to true in ignored, the path is rejected with ErrIgnoredByUser
// instead of being inserted. The ignore check runs after the supported-type
// check, so an unsupported extension still reports ErrUnsupportedType.
func (s *PendingSet) AddAllowed(path string, ignored map[Kind]bool) error {
	id, err := NewIdentity(path)
	if err != nil {
		return err
	}
	if !id.Supported() {
		return ErrUnsupportedType
	}
	if ignored[id.Kind] {
		return ErrIgnoredByUser
	}
	s.files[id] = struct{}{}
	return nil
}

// Len returns the number of distinct identities currently held.
func (s *PendingSet) Len() int {
	return len(s.files)
}

// CountByKind counts held identities of the given kind. Linear scan; batch
// sizes are small.
func (s *PendingSet) CountByKind(k Kind) int {
	var n int
	for id := range s.files {
		if id.Kind == k {
			n++
		}
	}
	return n
}

// Drain yields every held identity exactly once, in unspecified order,
// removing each from the set as it is yielded. After a full iteration the
// set is empty; each yielded identity is exclusively owned by the consumer.
func (s *PendingSet) Drain() iter.Seq[Identity] {
	return func(yield func(Identity) bool) {
		for id := range s.files {
			delete(s.files, id)
			if !yield(id) {
				return
			}
		}
	}
}

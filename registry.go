package logcore

import "fmt"

// Registry is an append-addressed table mapping a numeric format id to its
// FormatDescriptor. Ids are allocated monotonically: a successful
// registration either appends (id == size) or replaces an existing slot
// in place.
//
// Registry mutation (Register) is only safe from the caller's single ingest
// thread and must never happen concurrently with a format pass reading
// descriptors — the same discipline the host observes for Environment's
// configuration operations. Registry itself holds no lock.
type Registry struct {
	descriptors []*FormatDescriptor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register parses and installs a format descriptor at id. kinds, selectors,
// and trailing must have equal length or the registration fails with
// ErrBadArguments and the existing slot (if any) is left unchanged.
//
// id must be in [0, len) to replace an existing descriptor, or exactly len
// to append a new one; any other id fails with ErrBadArguments.
func (r *Registry) Register(id int, kinds []EntryKind, selectors []FormatSelector, initial string, trailing []string, original string) error {
	if len(kinds) != len(selectors) || len(kinds) != len(trailing) {
		return fmt.Errorf("%w: kinds/selectors/trailing length mismatch (%d/%d/%d)",
			ErrBadArguments, len(kinds), len(selectors), len(trailing))
	}
	if id < 0 || id > len(r.descriptors) {
		return fmt.Errorf("%w: format id %d out of range (size %d)", ErrBadArguments, id, len(r.descriptors))
	}

	entries := make([]FormatEntry, len(kinds))
	for i := range kinds {
		entries[i] = FormatEntry{Kind: kinds[i], Selector: selectors[i], Trailing: trailing[i]}
	}
	desc := &FormatDescriptor{
		ID:       id,
		Initial:  initial,
		Entries:  entries,
		Original: original,
	}

	if id == len(r.descriptors) {
		r.descriptors = append(r.descriptors, desc)
	} else {
		r.descriptors[id] = desc
	}
	return nil
}

// Get returns the descriptor installed at id, if any.
func (r *Registry) Get(id int) (*FormatDescriptor, bool) {
	if id < 0 || id >= len(r.descriptors) {
		return nil, false
	}
	d := r.descriptors[id]
	return d, d != nil
}

// Size returns the number of slots allocated so far (the next id a caller
// may append at).
func (r *Registry) Size() int {
	return len(r.descriptors)
}

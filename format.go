package logcore

// FormatEntry is one placeholder within a FormatDescriptor: an entry kind, a
// selector drawn from the closed FormatSelector set, and the literal text
// that follows the entry's emitted value.
type FormatEntry struct {
	Kind     EntryKind
	Selector FormatSelector
	Trailing string
}

// FormatDescriptor is a parsed, immutable format definition identified by a
// numeric id that is also its index in the owning Registry.
//
// A FormatDescriptor is shared read-only by every subsequent emit once
// installed; callers must not mutate the slices after Registry.Register
// returns.
type FormatDescriptor struct {
	ID       int
	Initial  string
	Entries  []FormatEntry
	Original string
}

package logcore

// initLogBlockSize is the baseline capacity hint used when a saved block is
// first allocated, matching the original engine's INIT_LOG_BLOCK_SIZE
// constant (see SPEC_FULL.md's supplemented-from-original-source section).
const initLogBlockSize = 64

// SavedBlock is an owned, append-only columnar record of retained events: a
// parallel tag-byte column and numeric-data column, plus an integer-keyed
// side table of owned strings for StringIdx/PropertyRecord slots.
//
// A SavedBlock is created on demand by ingest the first time triage decides
// to retain an event, appended to while ingest continues, and consumed
// exactly once by EmitAll.
type SavedBlock struct {
	Tags    []byte
	Data    []float64
	Strings map[int]string
}

// NewSavedBlock allocates a SavedBlock with the given capacity hint.
func NewSavedBlock(sizeHint int) *SavedBlock {
	if sizeHint < initLogBlockSize {
		sizeHint = initLogBlockSize
	}
	return &SavedBlock{
		Tags: make([]byte, 0, sizeHint),
		Data: make([]float64, 0, sizeHint),
	}
}

// Append adds one slot to the block's columns.
func (b *SavedBlock) Append(tag SlotTag, data float64) {
	b.Tags = append(b.Tags, byte(tag))
	b.Data = append(b.Data, data)
}

// AppendString copies s into the block's string table at idx if not already
// present. Ingest calls this before Append for StringIdx/PropertyRecord
// slots so the block owns its strings independent of the host's transient
// string table.
func (b *SavedBlock) AppendString(idx int, s string) {
	if b.Strings == nil {
		b.Strings = make(map[int]string)
	}
	if _, ok := b.Strings[idx]; !ok {
		b.Strings[idx] = s
	}
}

// String returns the owned string at idx, if any.
func (b *SavedBlock) String(idx int) (string, bool) {
	s, ok := b.Strings[idx]
	return s, ok
}

// Empty reports whether the block has had no events appended to it.
func (b *SavedBlock) Empty() bool {
	return len(b.Tags) == 0
}

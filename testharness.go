package logcore

// RawBlockBuilder assembles a RawBlock one slot at a time for tests,
// taking care of the out-of-band string table indexing that StringIdx and
// PropertyRecord slots require. It plays the role the teacher's
// testing.go plays for zlog: a non-_test.go helper exported for consumers
// (here, this package's own test files) to build fixtures against the
// real wire shape rather than hand-rolling parallel slices inline.
type RawBlockBuilder struct {
	tags    []byte
	data    []float64
	strings []string
}

// NewRawBlockBuilder returns an empty builder.
func NewRawBlockBuilder() *RawBlockBuilder {
	return &RawBlockBuilder{}
}

// Slot appends one (tag, data) pair.
func (b *RawBlockBuilder) Slot(tag SlotTag, data float64) *RawBlockBuilder {
	b.tags = append(b.tags, byte(tag))
	b.data = append(b.data, data)
	return b
}

// StringSlot appends a slot of tag (StringIdx or PropertyRecord) whose data
// double is the index of s in the block's string table, adding s to that
// table.
func (b *RawBlockBuilder) StringSlot(tag SlotTag, s string) *RawBlockBuilder {
	idx := len(b.strings)
	b.strings = append(b.strings, s)
	return b.Slot(tag, float64(idx))
}

// Header appends the four positional header slots every event begins
// with: MsgFormat, MsgLevel, MsgCategory, MsgWallTime.
func (b *RawBlockBuilder) Header(formatID int, level Level, category int, wallTimeMs int64) *RawBlockBuilder {
	return b.Slot(TagNumber, float64(formatID)).
		Slot(TagNumber, float64(level)).
		Slot(TagNumber, float64(category)).
		Slot(TagNumber, float64(wallTimeMs))
}

// End appends the terminating End slot for one event.
func (b *RawBlockBuilder) End() *RawBlockBuilder {
	return b.Slot(TagEnd, 0)
}

// Build returns a RawBlock spanning the builder's entire contents.
func (b *RawBlockBuilder) Build() *RawBlock {
	return &RawBlock{
		Tags:       b.tags,
		Data:       b.data,
		StringData: b.strings,
		SPos:       0,
		EPos:       len(b.tags),
	}
}

// processAllSync drives raw through env.ProcessMsgs to completion with
// forceAll set (ignoring backpressure) and fullDetail as given, then
// synchronously formats whatever was retained. It is the table-test
// workhorse: one call from a fixture's raw block to its expected emitted
// text, replacing the teacher's replay-to-t.Log sink (testing.go's
// logsink.Replay) with a direct return value suited to this package's
// synchronous API.
func processAllSync(env *Environment, raw *RawBlock, fullDetail, emitStdPrefix bool) (string, error) {
	for {
		complete, err := env.ProcessMsgs(raw, 0, 0, true, fullDetail)
		if err != nil {
			return "", err
		}
		if complete {
			break
		}
	}
	env.ProcessComplete()
	return env.FormatSync(emitStdPrefix)
}

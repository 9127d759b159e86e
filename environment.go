package logcore

import (
	"fmt"
	"sync"
)

// Reserved category ids, restored from the original engine's naming (see
// SPEC_FULL.md's "supplemented from original_source" section): category 0
// is never enabled, category 1 ("$default") is always present and enabled.
const (
	CategoryInvalid = 0
	CategoryDefault = 1
)

const (
	defaultMsgTimeLimitMs = 500
	defaultMsgSlotLimit   = 4096
)

// ingestMode is the per-message state the ingest loop carries on the
// Environment across possibly-resumed ProcessMsgs calls.
type ingestMode uint8

const (
	modeNormal ingestMode = iota
	modeDiscarding
	modeSaving
)

// Environment is the process-wide configuration holder and coordination
// point described in spec §4.2: enabled level, category table, host/app
// name, time/slot thresholds, the FIFO of pending saved blocks, and the
// handle to an in-flight async formatter.
//
// It is meant to exist as a single instance, set up once at startup (see
// noCopy, grounded on quay/zlog's handler.noCopy) and then driven by the
// caller-facing operations on this type, from the host's single ingest
// thread, per the discipline in spec §5. A mutex guards only the FIFO and
// worker handle, the two fields the async worker's completion goroutine
// also touches; the level mask, limits, and category table are assumed
// single-writer per §5 and are not separately locked.
type Environment struct {
	noCopy noCopy

	Registry *Registry

	level       Level
	host, app   string
	categories  map[int]string
	timeLimitMs int64
	slotLimit   int

	mode   ingestMode
	active *SavedBlock

	mu     sync.Mutex
	fifo   []*SavedBlock
	worker *AsyncFormatWorker
}

// NewEnvironment returns an Environment with the spec's documented
// defaults: level INFO, a 500ms time threshold, a 4096 slot threshold, and
// category 1 ("$default") pre-registered and enabled.
func NewEnvironment() *Environment {
	return &Environment{
		Registry:    NewRegistry(),
		level:       LevelInfo,
		timeLimitMs: defaultMsgTimeLimitMs,
		slotLimit:   defaultMsgSlotLimit,
		categories: map[int]string{
			CategoryInvalid: "_invalid_",
			CategoryDefault: "$default",
		},
	}
}

// Initialize sets the enabled level and the host/app names reported by the
// %host/%app expando selectors. It corresponds to the "initialize" op of
// spec §6.
func (e *Environment) Initialize(level Level, host, app string) {
	e.level = level
	e.host = host
	e.app = app
}

// EmitLevel returns the currently enabled level mask.
func (e *Environment) EmitLevel() Level { return e.level }

// SetEmitLevel replaces the enabled level mask.
func (e *Environment) SetEmitLevel(level Level) { e.level = level }

// LevelName returns the conventional name for level, for the emitter's
// standard "{LEVELNAME}#{CATEGORY}" prefix.
func (e *Environment) LevelName(level Level) string { return level.String() }

// MsgTimeLimit returns the current time-pressure threshold in milliseconds.
func (e *Environment) MsgTimeLimit() int64 { return e.timeLimitMs }

// SetMsgTimeLimit sets the time-pressure threshold. Negative values fail
// with ErrBadArguments and leave the threshold unchanged.
func (e *Environment) SetMsgTimeLimit(ms int64) error {
	if ms < 0 {
		return fmt.Errorf("%w: negative msg time limit %d", ErrBadArguments, ms)
	}
	e.timeLimitMs = ms
	return nil
}

// MsgSlotLimit returns the current volume-pressure threshold.
func (e *Environment) MsgSlotLimit() int { return e.slotLimit }

// SetMsgSlotLimit sets the volume-pressure threshold. Negative values fail
// with ErrBadArguments and leave the threshold unchanged.
func (e *Environment) SetMsgSlotLimit(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative msg slot limit %d", ErrBadArguments, n)
	}
	e.slotLimit = n
	return nil
}

// HostName returns the name reported by the %host expando selector.
func (e *Environment) HostName() string { return e.host }

// AppName returns the name reported by the %app expando selector.
func (e *Environment) AppName() string { return e.app }

// AddCategory registers name at id. Negative ids fail with
// ErrBadArguments. Re-adding an existing id replaces its name; a category's
// mere presence in the table is what the triage loop treats as "enabled",
// except for the always-disabled CategoryInvalid.
func (e *Environment) AddCategory(id int, name string) error {
	if id < 0 {
		return fmt.Errorf("%w: negative category id %d", ErrBadArguments, id)
	}
	e.categories[id] = name
	return nil
}

// CategoryName returns the registered name for id, or a synthetic
// "CATEGORY(n)" placeholder if id was never added.
func (e *Environment) CategoryName(id int) string {
	if name, ok := e.categories[id]; ok {
		return name
	}
	return fmt.Sprintf("CATEGORY(%d)", id)
}

// CategoryEnabled reports whether id is enabled: present in the category
// table and not the reserved CategoryInvalid id.
func (e *Environment) CategoryEnabled(id int) bool {
	if id == CategoryInvalid || id < 0 {
		return false
	}
	_, ok := e.categories[id]
	return ok
}

// ProcessReserveBlock is advisory sizing only: it validates spos/epos and
// otherwise does nothing, per SPEC_FULL.md's resolution of how this op
// interacts with the lazily-allocated active block (§4.3 allocates on first
// save, sized from the ingest call's own spos/epos, not this hint).
func (e *Environment) ProcessReserveBlock(spos, epos int) error {
	if spos < 0 || epos < spos {
		return fmt.Errorf("%w: reserve bounds spos=%d epos=%d", ErrBadBlockBounds, spos, epos)
	}
	return nil
}

// ProcessComplete drops the active saved block if ingest produced no saved
// events since the last flush, and otherwise enqueues it onto the FIFO.
// Corresponds to the "process_complete" op of spec §6.
func (e *Environment) ProcessComplete() {
	if e.active == nil {
		return
	}
	b := e.active
	e.active = nil
	if b.Empty() {
		return
	}
	e.pushBack(b)
}

// HasWorkPending reports whether any saved block is queued for emission.
func (e *Environment) HasWorkPending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.fifo) > 0
}

func (e *Environment) pushBack(b *SavedBlock) {
	e.mu.Lock()
	e.fifo = append(e.fifo, b)
	e.mu.Unlock()
}

func (e *Environment) pushFront(b *SavedBlock) {
	e.mu.Lock()
	e.fifo = append([]*SavedBlock{b}, e.fifo...)
	e.mu.Unlock()
}

func (e *Environment) popFront() (*SavedBlock, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.fifo) == 0 {
		return nil, false
	}
	b := e.fifo[0]
	e.fifo = e.fifo[1:]
	return b, true
}

// PeekSavedBlock returns the block at the head of the FIFO without
// dequeuing it.
func (e *Environment) PeekSavedBlock() (*SavedBlock, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.fifo) == 0 {
		return nil, false
	}
	return e.fifo[0], true
}

// RegisterFormat delegates to the Environment's Registry, per spec §6's
// register_format op.
func (e *Environment) RegisterFormat(id int, kinds []EntryKind, selectors []FormatSelector, initial string, trailing []string, original string) error {
	return e.Registry.Register(id, kinds, selectors, initial, trailing, original)
}

// GetFormat delegates to the Environment's Registry.
func (e *Environment) GetFormat(id int) (*FormatDescriptor, bool) {
	return e.Registry.Get(id)
}

// FormatSync drains every pending saved block in FIFO order and returns
// their concatenated emitted text. Per §5, it first aborts any in-flight
// async worker (re-enqueuing its block at the FIFO head) before proceeding,
// so sync and async emission are never interleaved over the same blocks.
func (e *Environment) FormatSync(emitStdPrefix bool) (string, error) {
	e.AbortAsync()

	f := NewFormatter()
	defer f.Release()
	for {
		b, ok := e.popFront()
		if !ok {
			break
		}
		if err := EmitAll(f, b, e, emitStdPrefix); err != nil {
			return f.String(), err
		}
	}
	return f.String(), nil
}

// StartAsync dequeues one saved block and formats it on a background
// goroutine, invoking cb(nil, text) on success or cb(err, "") if the
// format pass fails (in which case the block is re-enqueued at the FIFO
// head and remains retryable). At most one worker may be active; a second
// call fails with ErrBadArguments until the first clears. If the FIFO is
// empty, cb is invoked synchronously as cb(nil, "") and no worker starts.
func (e *Environment) StartAsync(cb func(err error, text string), emitStdPrefix bool) error {
	e.mu.Lock()
	if e.worker != nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: async format worker already active", ErrBadArguments)
	}
	e.mu.Unlock()

	b, ok := e.popFront()
	if !ok {
		cb(nil, "")
		return nil
	}

	w := newAsyncFormatWorker(b, e, emitStdPrefix, cb)
	e.mu.Lock()
	e.worker = w
	e.mu.Unlock()
	w.start()
	return nil
}

// AbortAsync cancels any in-flight async worker, restoring its block to the
// FIFO head and discarding any partial output. A no-op if no worker is
// active.
func (e *Environment) AbortAsync() {
	e.mu.Lock()
	w := e.worker
	e.mu.Unlock()
	if w == nil {
		return
	}
	w.abort()
}

// clearWorkerIfSelf clears the worker handle only if it still points at w,
// so a worker that lost a race with AbortAsync doesn't clobber a newer
// worker's handle.
func (e *Environment) clearWorkerIfSelf(w *AsyncFormatWorker) {
	e.mu.Lock()
	if e.worker == w {
		e.worker = nil
	}
	e.mu.Unlock()
}

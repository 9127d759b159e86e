package logcore

import "errors"

// Error kinds returned across the package boundary. See §7 of the design
// spec this package implements: boundary errors (BadArguments,
// BadBlockBounds) are surfaced synchronously and leave state unchanged;
// value-level malformation (a bad format slot) is never propagated as an
// error — it is rendered as the "<BadFormat>" sentinel so ingest is never
// aborted by it.
var (
	// ErrBadArguments is returned when a caller-facing operation receives
	// arguments that are malformed at the boundary (arity, type, or length
	// mismatch).
	ErrBadArguments = errors.New("logcore: bad arguments")

	// ErrBadBlockBounds is returned when a raw block's spos/epos are out of
	// range for its tags/data columns.
	ErrBadBlockBounds = errors.New("logcore: bad block bounds")

	// ErrWorkerError is returned (wrapped) via the async completion
	// callback when a background format pass fails. The block that failed
	// to format is re-enqueued at the front of the FIFO and remains
	// retryable.
	ErrWorkerError = errors.New("logcore: async format worker error")

	// ErrBadFormatSlot names the error kind for a value slot whose tag is
	// incompatible with its entry's selector. No operation returns it: the
	// emitter renders a slot tagged TagBadFormat as the "<BadFormat>"
	// sentinel and goes on with the rest of the event stream. The emitter
	// does not itself compare a slot's tag with its entry's selector.
	ErrBadFormatSlot = errors.New("logcore: bad format slot")
)

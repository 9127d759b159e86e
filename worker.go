package logcore

import (
	"context"
	"fmt"
	"sync"
)

// AsyncFormatWorker runs exactly one saved block's emission off the
// caller's goroutine and reports the result once, per spec §4.5.
//
// Its goroutine/lifecycle shape is grounded on
// ClusterCockpit-cc-backend/internal/memorystore/memorystore.go's
// Retention/Checkpointing background-goroutine pattern (context.CancelFunc
// for shutdown, a completion channel in place of that package's
// sync.WaitGroup since this worker runs exactly one job rather than
// forever), adapted from "loop on a ticker until ctx.Done" to "run one
// format pass, then stop."
//
// Cancellation here is cooperative-at-completion, per spec §5: there is no
// midpoint in EmitAll to interrupt, so the context is a signal only the
// finishOne race below actually arbitrates — whichever of run's natural
// completion or an explicit Abort claims finishOne first decides whether
// the block is delivered via the callback or simply returned to the FIFO
// with its output discarded.
type AsyncFormatWorker struct {
	env           *Environment
	block         *SavedBlock
	emitStdPrefix bool
	cb            func(err error, text string)

	cancel    context.CancelFunc
	done      chan struct{}
	finishOne sync.Once
}

func newAsyncFormatWorker(block *SavedBlock, env *Environment, emitStdPrefix bool, cb func(error, string)) *AsyncFormatWorker {
	return &AsyncFormatWorker{
		env:           env,
		block:         block,
		emitStdPrefix: emitStdPrefix,
		cb:            cb,
		done:          make(chan struct{}),
	}
}

// start launches the background format pass.
func (w *AsyncFormatWorker) start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.run(ctx)
}

func (w *AsyncFormatWorker) run(ctx context.Context) {
	defer close(w.done)

	f := NewFormatter()
	err := EmitAll(f, w.block, w.env, w.emitStdPrefix)
	text := f.String()
	defer f.Release()

	w.finishOne.Do(func() {
		// If Abort won the race to finishOne, this closure never runs at
		// all (sync.Once guarantees mutual exclusion), so ctx is never
		// consulted here: abort has already restored the block to the
		// FIFO head by the time this goroutine could observe it.
		if err != nil {
			w.env.pushFront(w.block)
			w.env.clearWorkerIfSelf(w)
			w.cb(fmt.Errorf("%w: %v", ErrWorkerError, err), "")
			return
		}
		w.env.clearWorkerIfSelf(w)
		w.cb(nil, text)
	})
	// f.Release() above runs unconditionally via defer, whether or not
	// finishOne's closure fired here — so an Abort win never leaks it.
}

// abort restores the block to the FIFO head and clears the worker handle,
// discarding any in-flight or completed-but-unclaimed output. Safe to call
// even if run has already delivered its result: finishOne ensures only one
// of the two outcomes is ever acted on.
func (w *AsyncFormatWorker) abort() {
	w.finishOne.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		w.env.pushFront(w.block)
		w.env.clearWorkerIfSelf(w)
	})
}

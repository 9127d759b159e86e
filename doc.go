// Package logcore is the ingest/format engine for a structured-logging
// pipeline whose host runtime captures log call sites as pre-parsed format
// descriptors and writes each log event as a sequence of tagged slots: a
// parallel tag-byte array and a double-precision data array, with an
// out-of-band string table.
//
// Three subsystems live here:
//
//   - a [Registry] of [FormatDescriptor] values, addressed by a numeric id
//     the host assigns at log-call-site registration time;
//   - an ingest/triage state machine ([Environment.ProcessMsgs]) that walks
//     the raw slot stream deciding, per event, whether to discard it or copy
//     it into an owned [SavedBlock], honoring level/category enablement and
//     time/volume backpressure;
//   - a formatter ([EmitAll]) that walks a saved block against its
//     descriptor and produces human-readable text, including recursive
//     object/array emission with cycle and depth/length bounds.
//
// The package does not itself collect slots from a running program, persist
// output, or deliver the formatted text anywhere; it is linked into a host
// that owns those concerns and calls into the [Environment] operations
// documented on that type.
//
// # Concurrency
//
// [Environment] is meant to be a single process-wide instance. Ingest and
// synchronous emit are expected to run on the host's single producer thread;
// [Environment.StartAsync] may run one formatting pass on a background
// goroutine at a time. See the method docs on [Environment] for the exact
// discipline.
package logcore

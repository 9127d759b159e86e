package logcore

// EntryKind discriminates how a FormatEntry's slot(s) should be consumed and
// rendered.
type EntryKind uint8

const (
	// KindLiteral emits a bare '#' or '%' and consumes no slot.
	KindLiteral EntryKind = iota
	// KindExpando emits environment- or event-header-derived data; some
	// selectors consume a slot, others (HOST, APP) do not.
	KindExpando
	// KindBasic emits a single scalar value slot (or a structured region).
	KindBasic
	// KindCompound is rendered identically to KindBasic; the host
	// distinguishes the two for its own bookkeeping, not for emission.
	KindCompound
)

// FormatSelector is the closed set of placeholder selectors a FormatEntry
// may carry, per the format-descriptor grammar.
type FormatSelector uint8

const (
	// Expando selectors.
	SelectorHASH FormatSelector = iota
	SelectorHOST
	SelectorAPP
	SelectorSOURCE
	SelectorWALLCLOCK
	SelectorTIMESTAMP
	SelectorCALLBACK
	SelectorREQUEST

	// Placeholder selectors.
	SelectorPERCENT
	SelectorBOOL
	SelectorNUMBER
	SelectorSTRING
	SelectorDATEISO
	SelectorDATEUTC
	SelectorDATELOCAL
	SelectorGENERAL
	SelectorOBJECT
	SelectorARRAY
)

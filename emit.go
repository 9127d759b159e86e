package logcore

// EmitAll walks block against the format descriptors registered on env and
// appends the formatted text of every event to f, per spec §4.4. It is the
// entry point used by both FormatSync (one formatter, many blocks) and the
// async worker (one formatter, one block).
func EmitAll(f *Formatter, block *SavedBlock, env *Environment, emitStdPrefix bool) error {
	tags := block.Tags
	data := block.Data
	cursor := 0

	for cursor < len(tags) {
		fmtID := int(data[cursor])
		level := Level(data[cursor+1])
		category := int(data[cursor+2])
		wallTime := int64(data[cursor+3])
		cursor += 4

		desc, ok := env.GetFormat(fmtID)
		if !ok {
			f.Sentinel(sentinelBadFormat)
			f.RawByte('\n')
			cursor = skipToEndSlot(tags, cursor)
			continue
		}

		if emitStdPrefix {
			f.Raw(env.LevelName(level))
			f.RawByte('#')
			f.Raw(env.CategoryName(category))
			f.Raw(" @ ")
			f.Date(wallTime, DateISO, false)
			f.Raw(" -- ")
		}

		f.Raw(desc.Initial)
		for _, entry := range desc.Entries {
			switch entry.Kind {
			case KindLiteral:
				if entry.Selector == SelectorHASH {
					f.RawByte('#')
				} else {
					f.RawByte('%')
				}
			case KindExpando:
				cursor = emitExpando(f, block, env, entry.Selector, cursor)
			default: // KindBasic, KindCompound
				cursor = emitEntryValue(f, block, entry.Selector, cursor)
			}
			f.Raw(entry.Trailing)
		}

		f.RawByte('\n')
		cursor = skipToEndSlot(tags, cursor)
	}
	return nil
}

// skipToEndSlot advances cursor past the next End tag (inclusive), or to
// the end of the block if none is found. Used both for the normal
// end-of-event advance and to resynchronize after an unrecognized format id.
func skipToEndSlot(tags []byte, cursor int) int {
	for cursor < len(tags) {
		if SlotTag(tags[cursor]) == TagEnd {
			return cursor + 1
		}
		cursor++
	}
	return cursor
}

// emitExpando renders one Expando-kind entry and returns the advanced
// cursor. HOST and APP read from the environment and consume no slot;
// every other expando selector consumes exactly one slot.
func emitExpando(f *Formatter, block *SavedBlock, env *Environment, sel FormatSelector, cursor int) int {
	switch sel {
	case SelectorHOST:
		f.EscapedString(env.HostName())
		return cursor
	case SelectorAPP:
		f.EscapedString(env.AppName())
		return cursor
	case SelectorSOURCE:
		s, _ := stringSlotAt(block, cursor)
		f.EscapedString(s)
		return cursor + 1
	case SelectorWALLCLOCK:
		f.Date(int64(block.Data[cursor]), DateISO, true)
		return cursor + 1
	case SelectorTIMESTAMP, SelectorCALLBACK, SelectorREQUEST:
		f.Number(block.Data[cursor])
		return cursor + 1
	default:
		f.Sentinel(sentinelBadFormat)
		return cursor + 1
	}
}

// emitEntryValue renders one Basic/Compound-kind entry's value slot(s) and
// returns the advanced cursor.
func emitEntryValue(f *Formatter, block *SavedBlock, sel FormatSelector, cursor int) int {
	tag := SlotTag(block.Tags[cursor])
	switch tag {
	case TagBadFormat:
		f.Sentinel(sentinelBadFormat)
		return cursor + 1
	case TagLParen, TagLBrack:
		return emitStructured(f, block, cursor)
	}

	switch sel {
	case SelectorBOOL:
		f.Bool(block.Data[cursor] != 0)
		return cursor + 1
	case SelectorNUMBER:
		f.Number(block.Data[cursor])
		return cursor + 1
	case SelectorSTRING:
		s, _ := stringSlotAt(block, cursor)
		f.EscapedString(s)
		return cursor + 1
	case SelectorDATEISO:
		f.Date(int64(block.Data[cursor]), DateISO, true)
		return cursor + 1
	case SelectorDATEUTC:
		f.Date(int64(block.Data[cursor]), DateUTC, true)
		return cursor + 1
	case SelectorDATELOCAL:
		f.Date(int64(block.Data[cursor]), DateLocal, true)
		return cursor + 1
	default:
		return emitByTag(f, block, tag, cursor)
	}
}

// stringSlotAt reads the string-table entry referenced by the slot at
// cursor (whose data double is the side-table index).
func stringSlotAt(block *SavedBlock, cursor int) (string, bool) {
	return block.String(int(block.Data[cursor]))
}

const (
	sentinelBadFormat = `"<BadFormat>"`
	sentinelCycle     = `"<Cycle>"`
	sentinelOpaque    = `"<OpaqueValue>"`
	sentinelDepthObj  = `"{...}"`
	sentinelDepthArr  = `"[...]"`
	sentinelLengthArr = `"..."`
	sentinelLengthObj = `"$rest$": "..."`
)

// emitByTag renders a value by its wire tag alone (the variant-tag
// fallback rule of spec §4.4, shared by the top-level "any other selector"
// case and the structured walker's scalar path), and returns cursor+1.
func emitByTag(f *Formatter, block *SavedBlock, tag SlotTag, cursor int) int {
	switch tag {
	case TagUndefined:
		f.Sentinel("undefined")
	case TagNull:
		f.Sentinel("null")
	case TagBool:
		f.Bool(block.Data[cursor] != 0)
	case TagNumber:
		f.Number(block.Data[cursor])
	case TagStringIdx:
		s, _ := stringSlotAt(block, cursor)
		f.EscapedString(s)
	case TagDate:
		f.Date(int64(block.Data[cursor]), DateISO, true)
	case TagBadFormat:
		f.Sentinel(sentinelBadFormat)
	case TagCycle:
		f.Sentinel(sentinelCycle)
	case TagDepthBoundObject:
		f.Sentinel(sentinelDepthObj)
	case TagDepthBoundArray:
		f.Sentinel(sentinelDepthArr)
	case TagLengthBoundArray:
		f.Sentinel(sentinelLengthArr)
	case TagLengthBoundObject:
		f.Sentinel(sentinelLengthObj)
	default:
		f.Sentinel(sentinelOpaque)
	}
	return cursor + 1
}

// structFrame is one level of the explicit stack the structured walker
// uses in place of recursion-on-the-Go-call-stack, per spec §4.4/§9: each
// frame remembers its closing character and whether it has emitted its
// first child yet, so the PropertyRecord "no separator before my value"
// gate can be replicated exactly.
type structFrame struct {
	closer byte
	first  bool
}

// emitStructured renders the {...} or [...] region starting at cursor
// (which must point at an LParen/LBrack slot) and returns the cursor just
// past the matching RParen/RBrack.
func emitStructured(f *Formatter, block *SavedBlock, cursor int) int {
	tags := block.Tags

	open, closec := byte('{'), byte('}')
	if SlotTag(tags[cursor]) == TagLBrack {
		open, closec = '[', ']'
	}
	f.RawByte(open)
	cursor++

	stack := []structFrame{{closer: closec, first: true}}
	afterKey := false

	for len(stack) > 0 {
		top := len(stack) - 1
		curTag := SlotTag(tags[cursor])

		if curTag == TagRParen || curTag == TagRBrack {
			f.RawByte(stack[top].closer)
			cursor++
			stack = stack[:top]
			afterKey = false
			if len(stack) > 0 {
				stack[len(stack)-1].first = false
			}
			continue
		}

		if !stack[top].first && !afterKey {
			f.Raw(", ")
		}
		afterKey = false

		switch curTag {
		case TagPropertyRecord:
			if key, ok := stringSlotAt(block, cursor); ok {
				f.EscapedString(key)
			} else {
				f.Sentinel(`""`)
			}
			f.Raw(": ")
			cursor++
			stack[top].first = false
			afterKey = true

		case TagLParen, TagLBrack:
			o, c := byte('{'), byte('}')
			if curTag == TagLBrack {
				o, c = '[', ']'
			}
			f.RawByte(o)
			cursor++
			stack = append(stack, structFrame{closer: c, first: true})

		default:
			cursor = emitByTag(f, block, curTag, cursor)
			stack[top].first = false
		}
	}

	return cursor
}

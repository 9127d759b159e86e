package logcore

import "fmt"

// RawBlock is the raw slot stream handed in by the host, as described in
// spec §6: parallel tag/data columns plus an out-of-band string table, with
// a caller-maintained cursor [SPos, EPos) bounding the range available to
// this call.
type RawBlock struct {
	Tags       []byte
	Data       []float64
	StringData []string
	SPos, EPos int
}

// ProcessMsgs is the ingest/triage state machine of spec §4.3. It walks
// raw.Tags/raw.Data from raw.SPos up to raw.EPos, deciding per message
// whether to discard it or copy it into env's active SavedBlock, honoring
// the time/slot backpressure gate at message boundaries, and writes the
// resulting cursor back to raw.SPos.
//
// It returns true if the producer's entire [SPos, EPos) range was
// consumed, or false if it returned early — either because of backpressure
// (forceAll is false and the thresholds haven't been crossed) or because
// the range ended mid-message. In both false cases the call is resumable:
// the next call with an extended EPos picks up exactly where this one left
// off, since env.mode and env.active persist across calls.
func (e *Environment) ProcessMsgs(raw *RawBlock, msgCount int, now int64, forceAll, fullDetail bool) (bool, error) {
	if raw.SPos < 0 || raw.EPos < raw.SPos || raw.EPos > len(raw.Tags) || raw.EPos > len(raw.Data) {
		return false, fmt.Errorf("%w: spos=%d epos=%d len(tags)=%d len(data)=%d",
			ErrBadBlockBounds, raw.SPos, raw.EPos, len(raw.Tags), len(raw.Data))
	}

	cpos := raw.SPos
	for cpos < raw.EPos {
		if e.mode == modeNormal {
			if !forceAll {
				t := int64(raw.Data[cpos+3])
				if t+e.timeLimitMs >= now && msgCount <= e.slotLimit {
					raw.SPos = cpos
					return false, nil
				}
			}

			level := Level(raw.Data[cpos+1])
			category := int(raw.Data[cpos+2])
			if !fullDetail && (!Enabled(level, e.level) || !e.CategoryEnabled(category)) {
				e.mode = modeDiscarding
			} else {
				e.mode = modeSaving
				if e.active == nil {
					hint := raw.EPos - raw.SPos + 16
					if hint < initLogBlockSize {
						hint = initLogBlockSize
					}
					e.active = NewSavedBlock(hint)
				}
			}
		}

		var done bool
		start := cpos
		cpos, done = e.advanceMessage(raw, cpos)
		if !done {
			raw.SPos = cpos
			return false, nil
		}
		e.mode = modeNormal
		// msgCount tracks slots, not messages: subtract what this message used.
		msgCount -= cpos - start
	}

	raw.SPos = cpos
	return true, nil
}

// advanceMessage advances cpos through the remainder of one message in the
// current mode (Discarding or Saving), returning the new cursor and whether
// the message's End slot was reached within raw.EPos.
func (e *Environment) advanceMessage(raw *RawBlock, cpos int) (int, bool) {
	switch e.mode {
	case modeDiscarding:
		for cpos < raw.EPos {
			if SlotTag(raw.Tags[cpos]) == TagEnd {
				return cpos + 1, true
			}
			cpos++
		}
		return cpos, false

	case modeSaving:
		for cpos < raw.EPos {
			tag := SlotTag(raw.Tags[cpos])
			if tag == TagEnd {
				e.active.Append(TagEnd, 0)
				return cpos + 1, true
			}
			if tag == TagStringIdx || tag == TagPropertyRecord {
				idx := int(raw.Data[cpos])
				if idx >= 0 && idx < len(raw.StringData) {
					e.active.AppendString(idx, raw.StringData[idx])
				}
			}
			e.active.Append(tag, raw.Data[cpos])
			cpos++
		}
		return cpos, false

	default:
		return cpos, true
	}
}

package logcore

import "testing"

func TestEmitStructuredObjectAndArray(t *testing.T) {
	env := NewEnvironment()
	env.Initialize(LevelInfo, "host", "app")
	if err := env.RegisterFormat(0,
		[]EntryKind{KindBasic},
		[]FormatSelector{SelectorGENERAL},
		"", []string{""}, "%o"); err != nil {
		t.Fatal(err)
	}

	raw := NewRawBlockBuilder().
		Header(0, LevelInfo, CategoryDefault, 0).
		Slot(TagLParen, 0).
		StringSlot(TagPropertyRecord, "a").
		Slot(TagNumber, 1).
		StringSlot(TagPropertyRecord, "b").
		Slot(TagLBrack, 0).
		Slot(TagNumber, 2).
		Slot(TagNumber, 3).
		Slot(TagRBrack, 0).
		Slot(TagRParen, 0).
		End().
		Build()

	got, err := processAllSync(env, raw, false, false)
	if err != nil {
		t.Fatalf("processAllSync: %v", err)
	}
	want := "{\"a\": 1, \"b\": [2, 3]}\n"
	if got != want {
		t.Errorf("emitted = %q, want %q", got, want)
	}
}

func TestEmitStdPrefixDate(t *testing.T) {
	env := NewEnvironment()
	env.Initialize(LevelInfo, "host", "app")
	if err := env.RegisterFormat(0, nil, nil, "hi", nil, "hi"); err != nil {
		t.Fatal(err)
	}

	raw := NewRawBlockBuilder().
		Header(0, LevelInfo, CategoryDefault, 0).
		End().
		Build()

	got, err := processAllSync(env, raw, false, true)
	if err != nil {
		t.Fatalf("processAllSync: %v", err)
	}
	const wantSub = " @ 1970-01-01T00:00:00.000Z -- "
	if !contains(got, wantSub) {
		t.Errorf("emitted %q does not contain %q", got, wantSub)
	}
}

func TestEmitExpandoHostApp(t *testing.T) {
	env := NewEnvironment()
	env.Initialize(LevelInfo, "myhost", "myapp")
	if err := env.RegisterFormat(0,
		[]EntryKind{KindExpando, KindExpando},
		[]FormatSelector{SelectorHOST, SelectorAPP},
		"", []string{" ", ""}, "%h %a"); err != nil {
		t.Fatal(err)
	}

	raw := NewRawBlockBuilder().
		Header(0, LevelInfo, CategoryDefault, 0).
		End().
		Build()

	got, err := processAllSync(env, raw, false, false)
	if err != nil {
		t.Fatalf("processAllSync: %v", err)
	}
	want := "\"myhost\" \"myapp\"\n"
	if got != want {
		t.Errorf("emitted = %q, want %q", got, want)
	}
}

func TestEmitBadFormatUnknownID(t *testing.T) {
	env := NewEnvironment()
	env.Initialize(LevelInfo, "host", "app")

	raw := NewRawBlockBuilder().
		Header(99, LevelInfo, CategoryDefault, 0).
		End().
		Build()

	got, err := processAllSync(env, raw, false, false)
	if err != nil {
		t.Fatalf("processAllSync: %v", err)
	}
	want := "\"<BadFormat>\"\n"
	if got != want {
		t.Errorf("emitted = %q, want %q", got, want)
	}
}

func TestEmitBadFormatSlotSentinel(t *testing.T) {
	env := NewEnvironment()
	env.Initialize(LevelInfo, "host", "app")
	if err := env.RegisterFormat(0,
		[]EntryKind{KindBasic},
		[]FormatSelector{SelectorNUMBER},
		"", []string{""}, "%d"); err != nil {
		t.Fatal(err)
	}

	raw := NewRawBlockBuilder().
		Header(0, LevelInfo, CategoryDefault, 0).
		Slot(TagBadFormat, 0).
		End().
		Build()

	got, err := processAllSync(env, raw, false, false)
	if err != nil {
		t.Fatalf("processAllSync: %v", err)
	}
	want := "\"<BadFormat>\"\n"
	if got != want {
		t.Errorf("emitted = %q, want %q", got, want)
	}
}

func TestEmitCycleAndBoundSentinels(t *testing.T) {
	env := NewEnvironment()
	env.Initialize(LevelInfo, "host", "app")
	if err := env.RegisterFormat(0,
		[]EntryKind{KindBasic, KindBasic, KindBasic, KindBasic},
		[]FormatSelector{SelectorGENERAL, SelectorGENERAL, SelectorGENERAL, SelectorGENERAL},
		"", []string{" ", " ", " ", ""}, "%o %o %o %o"); err != nil {
		t.Fatal(err)
	}

	raw := NewRawBlockBuilder().
		Header(0, LevelInfo, CategoryDefault, 0).
		Slot(TagCycle, 0).
		Slot(TagDepthBoundObject, 0).
		Slot(TagLengthBoundArray, 0).
		Slot(TagOpaque, 0).
		End().
		Build()

	got, err := processAllSync(env, raw, false, false)
	if err != nil {
		t.Fatalf("processAllSync: %v", err)
	}
	want := "\"<Cycle>\" \"{...}\" \"...\" \"<OpaqueValue>\"\n"
	if got != want {
		t.Errorf("emitted = %q, want %q", got, want)
	}
}

func TestFormatSyncIsEmptyWithoutNewIngest(t *testing.T) {
	env := NewEnvironment()
	env.Initialize(LevelInfo, "host", "app")
	if err := env.RegisterFormat(0, nil, nil, "hi", nil, "hi"); err != nil {
		t.Fatal(err)
	}

	raw := NewRawBlockBuilder().
		Header(0, LevelInfo, CategoryDefault, 0).
		End().
		Build()

	first, err := processAllSync(env, raw, false, false)
	if err != nil {
		t.Fatalf("first processAllSync: %v", err)
	}
	if first == "" {
		t.Fatalf("expected non-empty first emit")
	}

	second, err := env.FormatSync(false)
	if err != nil {
		t.Fatalf("second FormatSync: %v", err)
	}
	if second != "" {
		t.Errorf("second FormatSync (no new ingest) = %q, want empty", second)
	}
}

func TestEmitAllIsDeterministic(t *testing.T) {
	env := NewEnvironment()
	env.Initialize(LevelInfo, "host", "app")
	if err := env.RegisterFormat(0,
		[]EntryKind{KindBasic},
		[]FormatSelector{SelectorNUMBER},
		"n=", []string{""}, "n=%d"); err != nil {
		t.Fatal(err)
	}

	block := NewSavedBlock(0)
	block.Append(TagNumber, 0)  // MsgFormat
	block.Append(TagNumber, 15) // MsgLevel (INFO)
	block.Append(TagNumber, 1)  // MsgCategory
	block.Append(TagNumber, 0)  // MsgWallTime
	block.Append(TagNumber, 42)
	block.Append(TagEnd, 0)

	f1 := NewFormatter()
	if err := EmitAll(f1, block, env, false); err != nil {
		t.Fatalf("EmitAll (first): %v", err)
	}
	first := f1.String()
	f1.Release()

	f2 := NewFormatter()
	if err := EmitAll(f2, block, env, false); err != nil {
		t.Fatalf("EmitAll (second): %v", err)
	}
	second := f2.String()
	f2.Release()

	if first != second {
		t.Errorf("EmitAll not deterministic: %q != %q", first, second)
	}
	if first != "n=42\n" {
		t.Errorf("EmitAll = %q, want %q", first, "n=42\n")
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

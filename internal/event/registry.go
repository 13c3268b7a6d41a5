package event

import (
	"fmt"
	"slices"
)

// Factory builds an empty command for a record whose raw numeric fields are nums
// (nums[0] is the code). Families keyed on a sub-code inspect nums and report
// false when the sub-code has no model.
type Factory func(nums []int32) (Command, bool)

// Entry binds an opcode to the factory of its command family.
type Entry struct {
	Code Code
	Name string
	New  Factory
}

// Registry maps opcodes to command factories.
type Registry struct {
	entries map[Code]Entry
}

// NewRegistry creates a Registry populated with entries.
//
// Precondition: No two entries may share a Code; every entry has a non-nil New.
// Postcondition: Returns a Registry or an error on duplicate codes.
func NewRegistry(entries []Entry) (*Registry, error) {
	r := &Registry{entries: make(map[Code]Entry, len(entries))}
	for _, e := range entries {
		if e.New == nil {
			return nil, fmt.Errorf("command %s has no factory", e.Code)
		}
		if existing, exists := r.entries[e.Code]; exists {
			return nil, fmt.Errorf("duplicate command code %d: used by %q and %q", int32(e.Code), existing.Name, e.Name)
		}
		r.entries[e.Code] = e
	}
	return r, nil
}

// DefaultRegistry creates a Registry with all built-in command families.
//
// Postcondition: Returns a Registry with all built-in families registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinEntries())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Lookup returns an empty command for the record described by nums.
//
// Postcondition: Returns (command, true) when the code and any sub-code are
// registered, or (nil, false).
func (r *Registry) Lookup(nums []int32) (Command, bool) {
	if len(nums) == 0 {
		return nil, false
	}
	e, ok := r.entries[Code(nums[0])]
	if !ok {
		return nil, false
	}
	return e.New(nums)
}

// Entries returns all registered entries ordered by code.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int { return int(a.Code - b.Code) })
	return out
}

func fixed(f func() Command) Factory {
	return func([]int32) (Command, bool) { return f(), true }
}

// BuiltinEntries returns the entries for every modelled command family.
func BuiltinEntries() []Entry {
	entries := make([]Entry, 0, len(markerCodes)+len(opaqueCodes)+24)
	for _, code := range markerCodes {
		entries = append(entries, Entry{Code: code, Name: code.String(), New: fixed(func() Command { return &Marker{code: code} })})
	}
	entries = append(entries,
		Entry{CodeMessage, "Message", fixed(func() Command { return NewMessage("") })},
		Entry{CodeComment, "Comment", fixed(func() Command { return NewComment("") })},
		Entry{CodeDebugText, "DebugText", fixed(func() Command { return NewDebugText("") })},
		Entry{CodeChoiceStart, "ChoiceStart", fixed(func() Command { return newChoiceStart() })},
		Entry{CodeConditionNumberStart, "ConditionNumberStart", fixed(func() Command {
			return &ConditionNumberStart{conditions: newConditions[ConditionNumber]()}
		})},
		Entry{CodeConditionStringStart, "ConditionStringStart", fixed(func() Command {
			return &ConditionStringStart{conditions: newConditions[ConditionString]()}
		})},
		Entry{CodeSetVariable, "SetVariable", fixed(func() Command { return &SetVariable{} })},
		Entry{CodeSetString, "SetString", fixed(func() Command { return &SetString{} })},
		Entry{CodeKeyInput, "KeyInput", fixed(func() Command { return &KeyInput{} })},
		Entry{CodeSetVariablePlus, "SetVariablePlus", newSetVariablePlus},
		Entry{CodePictureShow, "PictureShow", newPicture},
		Entry{CodeTimesLoopStart, "TimesLoopStart", fixed(func() Command { return &TimesLoop{} })},
		Entry{CodeWait, "Wait", fixed(func() Command { return &Wait{} })},
		Entry{CodeMoveRoute, "MoveRoute", fixed(func() Command { return NewMoveRoute(MoveTargetThisEvent) })},
		Entry{CodeCallCommonEventByID, "CallCommonEventByID", fixed(func() Command { return &CallCommonEventByID{} })},
		Entry{CodeCallCommonEventByName, "CallCommonEventByName", fixed(func() Command { return &CallCommonEventByName{} })},
		Entry{CodeLabel, "Label", fixed(func() Command { return &Label{code: CodeLabel} })},
		Entry{CodeGotoLabel, "GotoLabel", fixed(func() Command { return &Label{code: CodeGotoLabel} })},
		Entry{CodeDBManagement, "DBManagement", newDBManagement},
		Entry{CodePartyGraphic, "PartyGraphic", newPartyGraphic},
		Entry{CodeSyntheticVoice, "SyntheticVoice", fixed(func() Command { return &SyntheticVoice{} })},
		Entry{CodeForkStart, "ForkStart", fixed(func() Command { return &ForkStart{caseNumber: 1} })},
	)
	for _, code := range opaqueCodes {
		entries = append(entries, Entry{Code: code, Name: code.String(), New: opaque})
	}
	return entries
}

// newSetVariablePlus selects the variant from the exec code in nums[4].
func newSetVariablePlus(nums []int32) (Command, bool) {
	if len(nums) <= 4 {
		return &SetVariablePlusPosition{}, true
	}
	switch exec := PlusExec(byte(nums[4]) & 0x0F); exec {
	case PlusPosition:
		return &SetVariablePlusPosition{}, true
	case PlusCharacter, PlusPicture, PlusOther:
		return &SetVariablePlusInfo{Exec: exec}, true
	}
	return nil, false
}

// newPicture selects PictureShow when the option slot describes a show
// operation and keeps any other picture operation verbatim.
func newPicture(nums []int32) (Command, bool) {
	if len(nums) > 1 && checkReserved("PictureShow option", nums[1], pictureShowMask) != nil {
		return positional(nums), true
	}
	return &PictureShow{}, true
}

package common

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/collection"
	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/werr"
)

// ArgsPerKind is the number of numeric and of string argument slots.
const ArgsPerKind = 5

// ArgType is how the editor offers values for an argument.
type ArgType byte

const (
	// ArgNormal accepts any value.
	ArgNormal ArgType = iota
	// ArgReferDatabase lists the items of a database type plus AdditionalCases.
	ArgReferDatabase
	// ArgManual lists the hand-written Cases.
	ArgManual
)

var argTypeNames = []string{"Normal", "ReferDatabase", "Manual"}

func (t ArgType) String() string {
	if int(t) < len(argTypeNames) {
		return argTypeNames[t]
	}
	return fmt.Sprintf("ArgType(%d)", byte(t))
}

// ParseArgType converts a stored argument type code.
func ParseArgType(b byte) (ArgType, error) {
	if int(b) >= len(argTypeNames) {
		return 0, werr.Range("ArgType", 0, len(argTypeNames)-1, int(b))
	}
	return ArgType(b), nil
}

// ArgCase is one selectable value of an argument.
type ArgCase struct {
	Number      int32
	Description vo.ArgCaseDescription
}

// DBReference is the database an ArgReferDatabase argument draws its choices from.
type DBReference struct {
	Kind               event.DBKind
	TypeID             int32
	UseAdditionalItems bool
}

// ArgDesc describes one argument slot.
type ArgDesc struct {
	name     vo.ArgName
	argType  ArgType
	cases    []ArgCase
	database DBReference
}

func (a *ArgDesc) Name() vo.ArgName { return a.name }

// SetName replaces the argument name.
func (a *ArgDesc) SetName(s string) error {
	n, err := vo.NewArgName(s)
	if err != nil {
		return err
	}
	a.name = n
	return nil
}

func (a *ArgDesc) Type() ArgType { return a.argType }

// SetType switches the argument type. The cases are kept.
func (a *ArgDesc) SetType(t ArgType) error {
	if _, err := ParseArgType(byte(t)); err != nil {
		return err
	}
	a.argType = t
	return nil
}

// Cases returns a copy of the manual cases, or of the additional cases of a
// database reference.
func (a *ArgDesc) Cases() []ArgCase { return append([]ArgCase(nil), a.cases...) }

// SetCases replaces the cases.
func (a *ArgDesc) SetCases(cases []ArgCase) error {
	if cases == nil {
		return werr.Null("cases")
	}
	a.cases = append([]ArgCase(nil), cases...)
	return nil
}

func (a *ArgDesc) Database() DBReference { return a.database }

// SetDatabase replaces the database reference and selects ArgReferDatabase.
func (a *ArgDesc) SetDatabase(db DBReference) error {
	if _, err := event.ParseDBKind(byte(db.Kind)); err != nil {
		return err
	}
	a.database = db
	a.argType = ArgReferDatabase
	return nil
}

// caseNumbers returns the numeric list stored for the argument. A database
// reference prefixes the additional cases with kind, type id and the additional flag.
func (a *ArgDesc) caseNumbers() []int32 {
	var out []int32
	if a.argType == ArgReferDatabase {
		use := int32(0)
		if a.database.UseAdditionalItems {
			use = 1
		}
		out = append(out, int32(a.database.Kind), a.database.TypeID, use)
	}
	for _, c := range a.cases {
		out = append(out, c.Number)
	}
	return out
}

func (a *ArgDesc) caseDescriptions() []string {
	out := make([]string, len(a.cases))
	for i, c := range a.cases {
		out[i] = c.Description.String()
	}
	return out
}

// setCaseLists rebuilds the cases from the stored lists. The argument type must
// already be set.
func (a *ArgDesc) setCaseLists(numbers []int32, descriptions []string) error {
	if a.argType == ArgReferDatabase {
		if len(numbers) < 3 {
			return fmt.Errorf("database reference needs 3 leading numbers, got %d", len(numbers))
		}
		if numbers[0] < 0 || numbers[0] > int32(event.DBUser) {
			return werr.Range("DBKind", 0, int(event.DBUser), int(numbers[0]))
		}
		kind := event.DBKind(numbers[0])
		if numbers[2] != 0 && numbers[2] != 1 {
			return werr.Range("UseAdditionalItems", 0, 1, int(numbers[2]))
		}
		a.database = DBReference{Kind: kind, TypeID: numbers[1], UseAdditionalItems: numbers[2] == 1}
		numbers = numbers[3:]
	}
	if len(numbers) != len(descriptions) {
		return fmt.Errorf("%d case numbers but %d case descriptions", len(numbers), len(descriptions))
	}
	cases := make([]ArgCase, len(numbers))
	for i := range numbers {
		d, err := vo.NewArgCaseDescription(descriptions[i])
		if err != nil {
			return err
		}
		cases[i] = ArgCase{Number: numbers[i], Description: d}
	}
	a.cases = cases
	return nil
}

// NumberArgDesc describes a numeric argument and the value it starts with.
type NumberArgDesc struct {
	ArgDesc
	InitValue int32
}

// StringArgDesc describes a string argument.
type StringArgDesc struct {
	ArgDesc
}

// SpecialArgDesc holds the descriptors of all five numeric and five string
// argument slots. Both collections have a fixed size.
type SpecialArgDesc struct {
	numbers *collection.Collection[*NumberArgDesc]
	strings *collection.Collection[*StringArgDesc]
}

// NewSpecialArgDesc returns descriptors for unnamed normal arguments.
func NewSpecialArgDesc() *SpecialArgDesc {
	n, err := collection.New(collection.Bounds[*NumberArgDesc]{
		Min:         ArgsPerKind,
		Max:         ArgsPerKind,
		MakeDefault: func() *NumberArgDesc { return &NumberArgDesc{} },
	})
	if err != nil {
		panic(fmt.Sprintf("common: number arg bounds: %v", err))
	}
	s, err := collection.New(collection.Bounds[*StringArgDesc]{
		Min:         ArgsPerKind,
		Max:         ArgsPerKind,
		MakeDefault: func() *StringArgDesc { return &StringArgDesc{} },
	})
	if err != nil {
		panic(fmt.Sprintf("common: string arg bounds: %v", err))
	}
	return &SpecialArgDesc{numbers: n, strings: s}
}

// NumberArg returns the descriptor of numeric argument i.
func (s *SpecialArgDesc) NumberArg(i int) (*NumberArgDesc, error) {
	idx, err := vo.NewNumberArgIndex(i)
	if err != nil {
		return nil, err
	}
	return s.numbers.Get(idx.Int())
}

// SetNumberArg replaces the descriptor of numeric argument i.
func (s *SpecialArgDesc) SetNumberArg(i int, d *NumberArgDesc) error {
	idx, err := vo.NewNumberArgIndex(i)
	if err != nil {
		return err
	}
	return s.numbers.Set(idx.Int(), d)
}

// StringArg returns the descriptor of string argument i.
func (s *SpecialArgDesc) StringArg(i int) (*StringArgDesc, error) {
	idx, err := vo.NewStringArgIndex(i)
	if err != nil {
		return nil, err
	}
	return s.strings.Get(idx.Int())
}

// SetStringArg replaces the descriptor of string argument i.
func (s *SpecialArgDesc) SetStringArg(i int, d *StringArgDesc) error {
	idx, err := vo.NewStringArgIndex(i)
	if err != nil {
		return err
	}
	return s.strings.Set(idx.Int(), d)
}

// all returns the ten descriptors in file order: numeric slots, then string slots.
func (s *SpecialArgDesc) all() []*ArgDesc {
	out := make([]*ArgDesc, 0, 2*ArgsPerKind)
	for _, d := range s.numbers.All() {
		out = append(out, &d.ArgDesc)
	}
	for _, d := range s.strings.All() {
		out = append(out, &d.ArgDesc)
	}
	return out
}

// SelfVariableCount is the number of self variables of a common event.
const SelfVariableCount = 100

// SelfVariableNames holds the editor names of the 100 self variables.
type SelfVariableNames struct {
	*collection.Collection[vo.SelfVariableName]
}

// NewSelfVariableNames returns 100 empty names.
func NewSelfVariableNames() *SelfVariableNames {
	c, err := collection.New(collection.Bounds[vo.SelfVariableName]{
		Min:         SelfVariableCount,
		Max:         SelfVariableCount,
		MakeDefault: func() vo.SelfVariableName { return vo.SelfVariableName{} },
	})
	if err != nil {
		panic(fmt.Sprintf("common: self variable bounds: %v", err))
	}
	return &SelfVariableNames{Collection: c}
}

// SetName replaces the name of self variable i.
func (n *SelfVariableNames) SetName(i int, s string) error {
	idx, err := vo.NewCommonEventVariableIndex(i)
	if err != nil {
		return err
	}
	name, err := vo.NewSelfVariableName(s)
	if err != nil {
		return err
	}
	return n.Set(idx.Int(), name)
}

// ReturnValue binds one self variable as the value a call returns.
type ReturnValue struct {
	Description vo.ReturnValueDescription
	index       vo.CommonEventReturnVariableIndex
}

// NoReturn is the ReturnValue of a common event that returns nothing.
func NoReturn() ReturnValue {
	return ReturnValue{index: vo.Must(vo.NewCommonEventReturnVariableIndex(-1))}
}

// NewReturnValue returns a binding of self variable index, or NoReturn for -1.
func NewReturnValue(index int, description string) (ReturnValue, error) {
	i, err := vo.NewCommonEventReturnVariableIndex(index)
	if err != nil {
		return ReturnValue{}, err
	}
	d, err := vo.NewReturnValueDescription(description)
	if err != nil {
		return ReturnValue{}, err
	}
	return ReturnValue{Description: d, index: i}, nil
}

// IsReturn reports whether a self variable is returned.
func (r ReturnValue) IsReturn() bool { return r.index.Int() >= 0 }

// Index returns the returned self variable, or -1.
func (r ReturnValue) Index() int { return r.index.Int() }

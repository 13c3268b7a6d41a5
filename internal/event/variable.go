package event

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// AssignOperator is the compound assignment of a SetVariable command.
type AssignOperator byte

const (
	AssignSet AssignOperator = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignUpperBound
	AssignLowerBound
	AssignAbs
)

var assignOperatorNames = []string{"=", "+=", "-=", "*=", "/=", "%=", "max=", "min=", "abs="}

func (o AssignOperator) String() string {
	if int(o) < len(assignOperatorNames) {
		return assignOperatorNames[o]
	}
	return fmt.Sprintf("AssignOperator(%d)", byte(o))
}

// CalcOperator combines the two right-hand operands of a SetVariable command.
type CalcOperator byte

const (
	CalcAdd CalcOperator = iota
	CalcSub
	CalcMul
	CalcDiv
	CalcMod
	CalcBitAnd
	CalcRandom
)

var calcOperatorNames = []string{"+", "-", "*", "/", "%", "&", "~"}

func (o CalcOperator) String() string {
	if int(o) < len(calcOperatorNames) {
		return calcOperatorNames[o]
	}
	return fmt.Sprintf("CalcOperator(%d)", byte(o))
}

const (
	flagRight1Literal = 0x10
	flagRight2Literal = 0x20
	flagRangeMode     = 0x01
)

// SetVariable computes Right1 CalcOp Right2 and assigns it to Left. In range mode
// the assignment covers every variable from Left through RangeEnd.
type SetVariable struct {
	base
	Left           int32
	Right1         int32
	Right2         int32
	AssignOp       AssignOperator
	CalcOp         CalcOperator
	Right1IsNumber bool
	Right2IsNumber bool
	IsRange        bool
	RangeEnd       int32
}

func (c *SetVariable) Code() Code { return CodeSetVariable }

func (c *SetVariable) option() int32 {
	return wire.PackBytes([4]byte{
		byte(c.AssignOp),
		byte(c.CalcOp) | boolByte(c.Right1IsNumber, flagRight1Literal) | boolByte(c.Right2IsNumber, flagRight2Literal),
		boolByte(c.IsRange, flagRangeMode),
	})
}

func (c *SetVariable) setOption(v int32) error {
	if err := checkReserved("SetVariable option", v, 0x01_3F_0F); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	if int(b[0]) >= len(assignOperatorNames) {
		return werr.Range("AssignOperator", 0, len(assignOperatorNames)-1, int(b[0]))
	}
	calc := b[1] & 0x0F
	if int(calc) >= len(calcOperatorNames) {
		return werr.Range("CalcOperator", 0, len(calcOperatorNames)-1, int(calc))
	}
	c.AssignOp = AssignOperator(b[0])
	c.CalcOp = CalcOperator(calc)
	c.Right1IsNumber = b[1]&flagRight1Literal != 0
	c.Right2IsNumber = b[1]&flagRight2Literal != 0
	c.IsRange = b[2]&flagRangeMode != 0
	return nil
}

func (c *SetVariable) numberFields() []numberField {
	fields := []numberField{
		intField("Left", &c.Left),
		intField("Right1", &c.Right1),
		intField("Right2", &c.Right2),
		{name: "Option", get: c.option, set: c.setOption},
	}
	if c.IsRange {
		fields = append(fields, intField("RangeEnd", &c.RangeEnd))
	}
	return fields
}

// StringSource selects where a SetString command takes its right-hand side from.
type StringSource byte

const (
	SourceText StringSource = iota
	SourceVariable
	SourceFile
)

var stringSourceNames = []string{"Text", "Variable", "File"}

func (s StringSource) String() string {
	if int(s) < len(stringSourceNames) {
		return stringSourceNames[s]
	}
	return fmt.Sprintf("StringSource(%d)", byte(s))
}

// StringAssignOperator is the assignment applied by a SetString command.
type StringAssignOperator byte

const (
	StringAssign StringAssignOperator = iota
	StringAppend
	StringReplace
)

var stringAssignNames = []string{"=", "+=", "replace"}

func (o StringAssignOperator) String() string {
	if int(o) < len(stringAssignNames) {
		return stringAssignNames[o]
	}
	return fmt.Sprintf("StringAssignOperator(%d)", byte(o))
}

const flagIndicateNumberVariable = 0x10

// SetString assigns to the string variable at Left. A Variable source reads
// RightVariable and carries no strings; a Replace of literal text carries the
// search text and its replacement. SpecialSettings is the editor's right-side
// special settings code (0-15), packed above Operator.
type SetString struct {
	base
	Left                     int32
	Source                   StringSource
	Operator                 StringAssignOperator
	IsIndicateNumberVariable bool
	SpecialSettings          byte
	RightVariable            int32
	Right                    string
	Replacement              string
}

func (c *SetString) Code() Code { return CodeSetString }

func (c *SetString) option() int32 {
	return wire.PackBytes([4]byte{
		byte(c.Source) | boolByte(c.IsIndicateNumberVariable, flagIndicateNumberVariable),
		c.SpecialSettings<<4 | byte(c.Operator),
	})
}

func (c *SetString) setOption(v int32) error {
	if err := checkReserved("SetString option", v, 0xFF_1F); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	src := b[0] & 0x0F
	if int(src) >= len(stringSourceNames) {
		return werr.Range("StringSource", 0, len(stringSourceNames)-1, int(src))
	}
	op := b[1] & 0x0F
	if int(op) >= len(stringAssignNames) {
		return werr.Range("StringAssignOperator", 0, len(stringAssignNames)-1, int(op))
	}
	c.Source = StringSource(src)
	c.IsIndicateNumberVariable = b[0]&flagIndicateNumberVariable != 0
	c.Operator = StringAssignOperator(op)
	c.SpecialSettings = b[1] >> 4
	return nil
}

func (c *SetString) numberFields() []numberField {
	fields := []numberField{
		intField("Left", &c.Left),
		{name: "Option", get: c.option, set: c.setOption},
	}
	if c.Source == SourceVariable {
		fields = append(fields, intField("RightVariable", &c.RightVariable))
	}
	return fields
}

func (c *SetString) stringFields() []stringField {
	if c.Source == SourceVariable {
		return nil
	}
	fields := []stringField{textField("Right", &c.Right)}
	if c.Source == SourceText && c.Operator == StringReplace {
		fields = append(fields, textField("Replacement", &c.Replacement))
	}
	return fields
}

// KeyKind selects the device a KeyInput command polls.
type KeyKind byte

const (
	KeyBasic KeyKind = iota
	KeyKeyboard
	KeyPad
)

// KeyInput stores the pressed key code into Result.
type KeyInput struct {
	base
	Result       int32
	Kind         KeyKind
	WaitForInput bool
}

func (c *KeyInput) Code() Code { return CodeKeyInput }

func (c *KeyInput) option() int32 {
	return wire.PackBytes([4]byte{byte(c.Kind), boolByte(c.WaitForInput, 0x01)})
}

func (c *KeyInput) setOption(v int32) error {
	if err := checkReserved("KeyInput option", v, 0x01_03); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	if b[0] > byte(KeyPad) {
		return werr.Range("KeyKind", 0, int(KeyPad), int(b[0]))
	}
	c.Kind = KeyKind(b[0])
	c.WaitForInput = b[1] != 0
	return nil
}

func (c *KeyInput) numberFields() []numberField {
	return []numberField{
		intField("Result", &c.Result),
		{name: "Option", get: c.option, set: c.setOption},
	}
}

// PlusExec is the exec code in the low nibble of a SetVariablePlus option slot.
type PlusExec byte

const (
	PlusCharacter PlusExec = iota
	PlusPosition
	PlusPicture
	PlusOther
)

var plusExecNames = []string{"Character", "Position", "Picture", "Other"}

func (e PlusExec) String() string {
	if int(e) < len(plusExecNames) {
		return plusExecNames[e]
	}
	return fmt.Sprintf("PlusExec(%d)", byte(e))
}

const flagPrecise = 0x20

// PositionInfo is the map information read by SetVariablePlusPosition.
type PositionInfo byte

const (
	PositionEventID PositionInfo = iota
	PositionTileLayer1
	PositionTileLayer2
	PositionTileLayer3
	PositionTileTag
	PositionPassability
)

var positionInfoNames = []string{"EventID", "TileLayer1", "TileLayer2", "TileLayer3", "TileTag", "Passability"}

func (p PositionInfo) String() string {
	if int(p) < len(positionInfoNames) {
		return positionInfoNames[p]
	}
	return fmt.Sprintf("PositionInfo(%d)", byte(p))
}

// SetVariablePlusPosition stores information about the map tile at (PositionX,
// PositionY) into Result. IsPrecise reads the coordinates in sub-tile units.
type SetVariablePlusPosition struct {
	base
	Result    int32
	PositionX int32
	PositionY int32
	InfoType  PositionInfo
	IsPrecise bool
}

func (c *SetVariablePlusPosition) Code() Code { return CodeSetVariablePlus }

func (c *SetVariablePlusPosition) option() int32 {
	return wire.PackBytes([4]byte{byte(PlusPosition) | boolByte(c.IsPrecise, flagPrecise), byte(c.InfoType)})
}

func (c *SetVariablePlusPosition) setOption(v int32) error {
	if err := checkReserved("SetVariablePlus option", v, 0xFF_2F); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	if PlusExec(b[0]&0x0F) != PlusPosition {
		return werr.Range("SetVariablePlus exec code", int(PlusPosition), int(PlusPosition), int(b[0]&0x0F))
	}
	if int(b[1]) >= len(positionInfoNames) {
		return werr.Range("PositionInfo", 0, len(positionInfoNames)-1, int(b[1]))
	}
	c.IsPrecise = b[0]&flagPrecise != 0
	c.InfoType = PositionInfo(b[1])
	return nil
}

func (c *SetVariablePlusPosition) numberFields() []numberField {
	return []numberField{
		intField("Result", &c.Result),
		intField("PositionX", &c.PositionX),
		intField("PositionY", &c.PositionY),
		{name: "Option", get: c.option, set: c.setOption},
	}
}

// SetVariablePlusInfo stores a character, picture or other game value into
// Result. Target and Detail select the source, such as a character or picture
// number and its sub-item; InfoType names the value read. Flags keeps the
// option bits above the exec code.
type SetVariablePlusInfo struct {
	base
	Result   int32
	Target   int32
	Detail   int32
	Exec     PlusExec
	InfoType byte
	Flags    byte
}

func (c *SetVariablePlusInfo) Code() Code { return CodeSetVariablePlus }

func (c *SetVariablePlusInfo) option() int32 {
	return wire.PackBytes([4]byte{c.Flags<<4 | byte(c.Exec), c.InfoType})
}

func (c *SetVariablePlusInfo) setOption(v int32) error {
	if err := checkReserved("SetVariablePlus option", v, 0xFF_FF); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	exec := PlusExec(b[0] & 0x0F)
	if exec == PlusPosition || int(exec) >= len(plusExecNames) {
		return fmt.Errorf("SetVariablePlusInfo: exec code %s is not a character, picture or other read", exec)
	}
	c.Exec = exec
	c.Flags = b[0] >> 4
	c.InfoType = b[1]
	return nil
}

func (c *SetVariablePlusInfo) numberFields() []numberField {
	return []numberField{
		intField("Result", &c.Result),
		intField("Target", &c.Target),
		intField("Detail", &c.Detail),
		{name: "Option", get: c.option, set: c.setOption},
	}
}

// Package charamove models the character movement script embedded in a
// "move route" event command.
package charamove

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/werr"
)

// Code identifies a move command.
type Code byte

const (
	CodeMoveDown            Code = 0x01
	CodeMoveLeft            Code = 0x02
	CodeMoveRight           Code = 0x03
	CodeMoveUp              Code = 0x04
	CodeMoveLeftDown        Code = 0x05
	CodeMoveRightDown       Code = 0x06
	CodeMoveLeftUp          Code = 0x07
	CodeMoveRightUp         Code = 0x08
	CodeFaceDown            Code = 0x09
	CodeFaceLeft            Code = 0x0A
	CodeFaceRight           Code = 0x0B
	CodeFaceUp              Code = 0x0C
	CodeFaceLeftDown        Code = 0x0D
	CodeFaceRightDown       Code = 0x0E
	CodeFaceLeftUp          Code = 0x0F
	CodeFaceRightUp         Code = 0x10
	CodeMoveRandom          Code = 0x11
	CodeMoveTowardHero      Code = 0x12
	CodeMoveAwayFromHero    Code = 0x13
	CodeMoveForward         Code = 0x14
	CodeMoveBackward        Code = 0x15
	CodeJump                Code = 0x16
	CodeMoveToPosition      Code = 0x17
	CodeTurnRight90         Code = 0x18
	CodeTurnLeft90          Code = 0x19
	CodeTurn180             Code = 0x1A
	CodeTurnRandom          Code = 0x1B
	CodeAssignValue         Code = 0x1C
	CodeAddValue            Code = 0x1D
	CodeSetMoveSpeed        Code = 0x1E
	CodeSetMoveFrequency    Code = 0x1F
	CodeSetAnimationSpeed   Code = 0x20
	CodeWait                Code = 0x21
	CodePlaySound           Code = 0x22
	CodeChangeGraphic       Code = 0x23
	CodeChangeOpacity       Code = 0x24
	CodeChangeHeight        Code = 0x25
	CodePassThroughOn       Code = 0x26
	CodePassThroughOff      Code = 0x27
	CodeAnimationOn         Code = 0x28
	CodeAnimationOff        Code = 0x29
	CodeSetPatternNumber    Code = 0x2A
	CodeFixDirectionOn      Code = 0x2B
	CodeFixDirectionOff     Code = 0x2C
	CodeReturnToDefaultMove Code = 0x2D
)

type shape int

const (
	shapeStep shape = iota
	shapeParam
	shapeJump
	shapeValueChange
)

type codeSpec struct {
	name     string
	shape    shape
	min, max int
}

var codeSpecs = map[Code]codeSpec{
	CodeMoveDown:            {"MoveDown", shapeStep, 0, 0},
	CodeMoveLeft:            {"MoveLeft", shapeStep, 0, 0},
	CodeMoveRight:           {"MoveRight", shapeStep, 0, 0},
	CodeMoveUp:              {"MoveUp", shapeStep, 0, 0},
	CodeMoveLeftDown:        {"MoveLeftDown", shapeStep, 0, 0},
	CodeMoveRightDown:       {"MoveRightDown", shapeStep, 0, 0},
	CodeMoveLeftUp:          {"MoveLeftUp", shapeStep, 0, 0},
	CodeMoveRightUp:         {"MoveRightUp", shapeStep, 0, 0},
	CodeFaceDown:            {"FaceDown", shapeStep, 0, 0},
	CodeFaceLeft:            {"FaceLeft", shapeStep, 0, 0},
	CodeFaceRight:           {"FaceRight", shapeStep, 0, 0},
	CodeFaceUp:              {"FaceUp", shapeStep, 0, 0},
	CodeFaceLeftDown:        {"FaceLeftDown", shapeStep, 0, 0},
	CodeFaceRightDown:       {"FaceRightDown", shapeStep, 0, 0},
	CodeFaceLeftUp:          {"FaceLeftUp", shapeStep, 0, 0},
	CodeFaceRightUp:         {"FaceRightUp", shapeStep, 0, 0},
	CodeMoveRandom:          {"MoveRandom", shapeStep, 0, 0},
	CodeMoveTowardHero:      {"MoveTowardHero", shapeStep, 0, 0},
	CodeMoveAwayFromHero:    {"MoveAwayFromHero", shapeStep, 0, 0},
	CodeMoveForward:         {"MoveForward", shapeStep, 0, 0},
	CodeMoveBackward:        {"MoveBackward", shapeStep, 0, 0},
	CodeJump:                {"Jump", shapeJump, -100, 100},
	CodeMoveToPosition:      {"MoveToPosition", shapeJump, -1, 999999},
	CodeTurnRight90:         {"TurnRight90", shapeStep, 0, 0},
	CodeTurnLeft90:          {"TurnLeft90", shapeStep, 0, 0},
	CodeTurn180:             {"Turn180", shapeStep, 0, 0},
	CodeTurnRandom:          {"TurnRandom", shapeStep, 0, 0},
	CodeAssignValue:         {"AssignValue", shapeValueChange, 0, 0},
	CodeAddValue:            {"AddValue", shapeValueChange, 0, 0},
	CodeSetMoveSpeed:        {"SetMoveSpeed", shapeParam, 0, 6},
	CodeSetMoveFrequency:    {"SetMoveFrequency", shapeParam, 0, 5},
	CodeSetAnimationSpeed:   {"SetAnimationSpeed", shapeParam, 0, 5},
	CodeWait:                {"Wait", shapeParam, 0, 999999},
	CodePlaySound:           {"PlaySound", shapeParam, 0, 999999},
	CodeChangeGraphic:       {"ChangeGraphic", shapeParam, 0, 999999},
	CodeChangeOpacity:       {"ChangeOpacity", shapeParam, 0, 255},
	CodeChangeHeight:        {"ChangeHeight", shapeParam, -999, 999},
	CodePassThroughOn:       {"PassThroughOn", shapeStep, 0, 0},
	CodePassThroughOff:      {"PassThroughOff", shapeStep, 0, 0},
	CodeAnimationOn:         {"AnimationOn", shapeStep, 0, 0},
	CodeAnimationOff:        {"AnimationOff", shapeStep, 0, 0},
	CodeSetPatternNumber:    {"SetPatternNumber", shapeParam, 0, 4},
	CodeFixDirectionOn:      {"FixDirectionOn", shapeStep, 0, 0},
	CodeFixDirectionOff:     {"FixDirectionOff", shapeStep, 0, 0},
	CodeReturnToDefaultMove: {"ReturnToDefaultMove", shapeStep, 0, 0},
}

func (c Code) String() string {
	if s, ok := codeSpecs[c]; ok {
		return s.name
	}
	return fmt.Sprintf("MoveCode(0x%02X)", byte(c))
}

// Command is one step of a movement script.
type Command interface {
	Code() Code
	// ValueCount returns the number of int32 arguments carried on the wire.
	ValueCount() int
	Value(i int) (int32, error)
	SetValue(i int, v int32) error
	Owner() address.Owner
	attach(o address.Owner)
}

// New returns the zero-argument form of code with every argument at its default.
//
// Postcondition: Returns a Command or a *werr.FormatError for unknown codes.
func New(code Code) (Command, error) {
	s, ok := codeSpecs[code]
	if !ok {
		return nil, werr.Format(0, "unknown move command code "+code.String(), nil)
	}
	switch s.shape {
	case shapeStep:
		return &Step{code: code}, nil
	case shapeParam:
		return &Param{code: code, value: int32(s.min)}, nil
	case shapeJump:
		return &Jump{code: code}, nil
	default:
		return &ValueChange{code: code, target: int32(address.KindNormalNumberVariable.Range().Min)}, nil
	}
}

type ownerTag struct {
	owner address.Owner
}

// Owner returns the aggregate kind this command is attached to.
func (o *ownerTag) Owner() address.Owner { return o.owner }

func (o *ownerTag) attach(owner address.Owner) { o.owner = owner }

// Step is a move command without arguments, such as a single tile move or a turn.
type Step struct {
	ownerTag
	code Code
}

// NewStep returns a Step for code.
func NewStep(code Code) (*Step, error) {
	if s, ok := codeSpecs[code]; !ok || s.shape != shapeStep {
		return nil, werr.Range("MoveCode", 0, 0xFF, int(code))
	}
	return &Step{code: code}, nil
}

func (c *Step) Code() Code      { return c.code }
func (c *Step) ValueCount() int { return 0 }

func (c *Step) Value(i int) (int32, error) {
	return 0, werr.CheckIndex("value index", i, 0)
}

func (c *Step) SetValue(i int, _ int32) error {
	return werr.CheckIndex("value index", i, 0)
}

// Param is a move command with one range-checked argument such as a wait or a speed change.
type Param struct {
	ownerTag
	code  Code
	value int32
}

// NewParam returns a Param for code holding value.
func NewParam(code Code, value int32) (*Param, error) {
	if s, ok := codeSpecs[code]; !ok || s.shape != shapeParam {
		return nil, werr.Range("MoveCode", 0, 0xFF, int(code))
	}
	p := &Param{code: code}
	if err := p.SetValue(0, value); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Param) Code() Code      { return c.code }
func (c *Param) ValueCount() int { return 1 }

func (c *Param) Value(i int) (int32, error) {
	if err := werr.CheckIndex("value index", i, 1); err != nil {
		return 0, err
	}
	return c.value, nil
}

func (c *Param) SetValue(i int, v int32) error {
	if err := werr.CheckIndex("value index", i, 1); err != nil {
		return err
	}
	s := codeSpecs[c.code]
	if err := werr.CheckRange(s.name, s.min, s.max, int(v)); err != nil {
		return err
	}
	c.value = v
	return nil
}

// Jump carries an X/Y pair: a relative jump or an absolute destination.
type Jump struct {
	ownerTag
	code Code
	x, y int32
}

// NewJump returns a relative jump by (x, y).
func NewJump(x, y int32) (*Jump, error) {
	j := &Jump{code: CodeJump}
	if err := j.SetValue(0, x); err != nil {
		return nil, err
	}
	if err := j.SetValue(1, y); err != nil {
		return nil, err
	}
	return j, nil
}

func (c *Jump) Code() Code      { return c.code }
func (c *Jump) ValueCount() int { return 2 }
func (c *Jump) X() int32        { return c.x }
func (c *Jump) Y() int32        { return c.y }

func (c *Jump) Value(i int) (int32, error) {
	if err := werr.CheckIndex("value index", i, 2); err != nil {
		return 0, err
	}
	if i == 0 {
		return c.x, nil
	}
	return c.y, nil
}

func (c *Jump) SetValue(i int, v int32) error {
	if err := werr.CheckIndex("value index", i, 2); err != nil {
		return err
	}
	s := codeSpecs[c.code]
	if err := werr.CheckRange(s.name, s.min, s.max, int(v)); err != nil {
		return err
	}
	if i == 0 {
		c.x = v
	} else {
		c.y = v
	}
	return nil
}

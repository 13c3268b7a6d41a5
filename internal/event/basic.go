package event

import (
	"slices"

	"github.com/cory-johannsen/wodi/internal/werr"
)

// Marker is a command made of its code alone: blank lines, branch and loop
// terminators, and flow statements such as EndGame.
type Marker struct {
	base
	code Code
}

// NewMarker returns the marker command for code.
func NewMarker(code Code) (*Marker, error) {
	if !slices.Contains(markerCodes, code) {
		return nil, werr.Range("marker code", 0, int(CodeForkEnd), int(code))
	}
	return &Marker{code: code}, nil
}

// NewBlank returns an empty line, the default element of an event command list.
func NewBlank() *Marker { return &Marker{code: CodeBlank} }

func (c *Marker) Code() Code { return c.code }

// Text is a command carrying one free-form text: Message, Comment or DebugText.
// Line breaks are allowed.
type Text struct {
	base
	code Code
	text string
}

// NewMessage returns a Message command showing text.
func NewMessage(text string) *Text { return &Text{code: CodeMessage, text: text} }

// NewComment returns an editor comment.
func NewComment(text string) *Text { return &Text{code: CodeComment, text: text} }

// NewDebugText returns a DebugText command.
func NewDebugText(text string) *Text { return &Text{code: CodeDebugText, text: text} }

func (c *Text) Code() Code       { return c.code }
func (c *Text) Text() string     { return c.text }
func (c *Text) SetText(s string) { c.text = s }

func (c *Text) stringFields() []stringField {
	return []stringField{textField("Text", &c.text)}
}

// Label is a jump target (Label) or a jump to one (GotoLabel).
type Label struct {
	base
	code Code
	name string
}

// NewLabel returns a Label command named name.
func NewLabel(name string) (*Label, error) { return newLabel(CodeLabel, name) }

// NewGotoLabel returns a GotoLabel command targeting name.
func NewGotoLabel(name string) (*Label, error) { return newLabel(CodeGotoLabel, name) }

func newLabel(code Code, name string) (*Label, error) {
	l := &Label{code: code}
	if err := l.SetName(name); err != nil {
		return nil, err
	}
	return l, nil
}

func (c *Label) Code() Code   { return c.code }
func (c *Label) Name() string { return c.name }

// SetName replaces the label name.
//
// Precondition: name holds no line break.
func (c *Label) SetName(name string) error {
	return lineField("LabelName", &c.name).set(name)
}

func (c *Label) stringFields() []stringField {
	return []stringField{lineField("LabelName", &c.name)}
}

// Wait pauses the event for Frames frames. Frames may also be a variable address.
type Wait struct {
	base
	Frames int32
}

func (c *Wait) Code() Code { return CodeWait }

func (c *Wait) numberFields() []numberField {
	return []numberField{intField("Frames", &c.Frames)}
}

// TimesLoop repeats its block Count times. Count may also be a variable address.
type TimesLoop struct {
	base
	Count int32
}

func (c *TimesLoop) Code() Code { return CodeTimesLoopStart }

func (c *TimesLoop) numberFields() []numberField {
	return []numberField{intField("Count", &c.Count)}
}

// ForkStart opens the branch for one choice of the enclosing ChoiceStart.
type ForkStart struct {
	base
	caseNumber int32
}

// NewForkStart returns the branch for choice number n (1-10).
func NewForkStart(n int32) (*ForkStart, error) {
	f := &ForkStart{}
	if err := f.SetCase(n); err != nil {
		return nil, err
	}
	return f, nil
}

func (c *ForkStart) Code() Code  { return CodeForkStart }
func (c *ForkStart) Case() int32 { return c.caseNumber }

// SetCase replaces the choice number.
func (c *ForkStart) SetCase(n int32) error {
	return c.numberFields()[0].set(n)
}

func (c *ForkStart) numberFields() []numberField {
	return []numberField{rangedField("Case", &c.caseNumber, 1, MaxChoices)}
}

// SyntheticVoice speaks PlaybackText with the system speech synthesizer.
type SyntheticVoice struct {
	base
	PlaybackSpeed int32
	Volume        int32
	VoiceTone     int32
	Delay         int32
	PlaybackText  string
}

func (c *SyntheticVoice) Code() Code { return CodeSyntheticVoice }

func (c *SyntheticVoice) numberFields() []numberField {
	return []numberField{
		intField("PlaybackSpeed", &c.PlaybackSpeed),
		intField("Volume", &c.Volume),
		intField("VoiceTone", &c.VoiceTone),
		intField("Delay", &c.Delay),
	}
}

func (c *SyntheticVoice) stringFields() []stringField {
	return []stringField{textField("PlaybackText", &c.PlaybackText)}
}

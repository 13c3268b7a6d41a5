package event

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// PictureDisplay selects what a PictureShow command draws.
type PictureDisplay byte

const (
	DisplayFile PictureDisplay = iota
	DisplayString
	DisplaySimpleWindowFile
	DisplaySimpleWindowVariable
)

var pictureDisplayNames = []string{"File", "String", "SimpleWindowFile", "SimpleWindowVariable"}

func (d PictureDisplay) String() string {
	if int(d) < len(pictureDisplayNames) {
		return pictureDisplayNames[d]
	}
	return fmt.Sprintf("PictureDisplay(%d)", byte(d))
}

// loadsFromVariable reports whether the content comes from a string variable slot
// rather than a string field.
func (d PictureDisplay) loadsFromVariable() bool { return d == DisplaySimpleWindowVariable }

// PictureAnchor is the point of the picture placed at (X, Y).
type PictureAnchor byte

const (
	AnchorTopLeft PictureAnchor = iota
	AnchorCenter
	AnchorBottomLeft
	AnchorTopRight
	AnchorBottomRight
)

// PictureBlend is the blend mode used to draw a picture.
type PictureBlend byte

const (
	BlendNormal PictureBlend = iota
	BlendAdd
	BlendSubtract
	BlendMultiply
)

// PictureShow draws a picture, a text string, or a simple window. The string
// field carries the file name or the drawn text; DisplaySimpleWindowVariable
// instead reads its file name from the string variable at LoadStringVariable.
type PictureShow struct {
	base
	Display            PictureDisplay
	Anchor             PictureAnchor
	Blend              PictureBlend
	Number             int32
	X                  int32
	Y                  int32
	opacity            int32
	Zoom               int32
	ProcessTime        int32
	DivisionWidth      int32
	DivisionHeight     int32
	LoadStringVariable int32
	Source             string
}

// NewPictureShow returns a fully opaque picture at 100% zoom.
func NewPictureShow(display PictureDisplay, number int32, source string) *PictureShow {
	return &PictureShow{Display: display, Number: number, opacity: 255, Zoom: 100, Source: source}
}

func (c *PictureShow) Code() Code     { return CodePictureShow }
func (c *PictureShow) Opacity() int32 { return c.opacity }

// SetOpacity replaces the opacity.
//
// Precondition: 0 <= v <= 255.
func (c *PictureShow) SetOpacity(v int32) error {
	return rangedField("Opacity", &c.opacity, 0, 255).set(v)
}

func (c *PictureShow) option() int32 {
	return wire.PackBytes([4]byte{byte(c.Display), byte(c.Anchor), byte(c.Blend)})
}

// pictureShowMask covers the option bits a show operation may set; any other
// bit marks a different picture operation.
const pictureShowMask = 0x03_07_03

func (c *PictureShow) setOption(v int32) error {
	if err := checkReserved("PictureShow option", v, pictureShowMask); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	if b[1] > byte(AnchorBottomRight) {
		return werr.Range("PictureAnchor", 0, int(AnchorBottomRight), int(b[1]))
	}
	c.Display = PictureDisplay(b[0])
	c.Anchor = PictureAnchor(b[1])
	c.Blend = PictureBlend(b[2])
	return nil
}

func (c *PictureShow) numberFields() []numberField {
	fields := []numberField{
		{name: "Option", get: c.option, set: c.setOption},
		intField("Number", &c.Number),
		intField("X", &c.X),
		intField("Y", &c.Y),
		rangedField("Opacity", &c.opacity, 0, 255),
		intField("Zoom", &c.Zoom),
		intField("ProcessTime", &c.ProcessTime),
		intField("DivisionWidth", &c.DivisionWidth),
		intField("DivisionHeight", &c.DivisionHeight),
	}
	if c.Display.loadsFromVariable() {
		fields = append(fields, intField("LoadStringVariable", &c.LoadStringVariable))
	}
	return fields
}

func (c *PictureShow) stringFields() []stringField {
	if c.Display.loadsFromVariable() {
		return nil
	}
	return []stringField{textField("Source", &c.Source)}
}

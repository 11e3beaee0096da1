package faderport

import "strings"

// Button describes a physical FaderPort button. Press is the MIDI note
// the device sends when the button is pressed or released; Light is the
// note we send back to control its LED. The two are different numbers
// for every button.
type Button struct {
	Name  string
	Press uint8
	Light uint8
}

// ButtonID indexes the buttons table.
type ButtonID int

// Button identifiers, ordered to "snake" down the face of the unit from
// top to bottom. The order matters: the glyph patterns and the snake
// animation index into the table by position.
const (
	ButtonMute ButtonID = iota
	ButtonSolo
	ButtonRec
	ButtonOutput
	ButtonChanUp
	ButtonBank
	ButtonChanDown
	ButtonRead
	ButtonWrite
	ButtonTouch
	ButtonOff
	ButtonUndo
	ButtonTrns
	ButtonProj
	ButtonMix
	ButtonShift
	ButtonPunch
	ButtonUser
	ButtonLoop
	ButtonRecord
	ButtonPlay
	ButtonStop
	ButtonFastFwd
	ButtonRewind

	numButtons
)

var buttons = [numButtons]Button{
	ButtonMute:     {Name: "Mute", Press: 18, Light: 21},
	ButtonSolo:     {Name: "Solo", Press: 17, Light: 22},
	ButtonRec:      {Name: "Rec", Press: 16, Light: 23},
	ButtonOutput:   {Name: "Output", Press: 22, Light: 17},
	ButtonChanUp:   {Name: "Chan Up", Press: 21, Light: 18},
	ButtonBank:     {Name: "Bank", Press: 20, Light: 19},
	ButtonChanDown: {Name: "Chan Down", Press: 19, Light: 20},
	ButtonRead:     {Name: "Read", Press: 10, Light: 13},
	ButtonWrite:    {Name: "Write", Press: 9, Light: 14},
	ButtonTouch:    {Name: "Touch", Press: 8, Light: 15},
	ButtonOff:      {Name: "Off", Press: 23, Light: 16},
	ButtonUndo:     {Name: "Undo", Press: 14, Light: 9},
	ButtonTrns:     {Name: "Trns", Press: 13, Light: 10},
	ButtonProj:     {Name: "Proj", Press: 12, Light: 11},
	ButtonMix:      {Name: "Mix", Press: 11, Light: 12},
	ButtonShift:    {Name: "Shift", Press: 2, Light: 5},
	ButtonPunch:    {Name: "Punch", Press: 1, Light: 6},
	ButtonUser:     {Name: "User", Press: 0, Light: 7},
	ButtonLoop:     {Name: "Loop", Press: 15, Light: 8},
	ButtonRecord:   {Name: "Record", Press: 7, Light: 0},
	ButtonPlay:     {Name: "Play", Press: 6, Light: 1},
	ButtonStop:     {Name: "Stop", Press: 5, Light: 2},
	ButtonFastFwd:  {Name: "Fast Fwd", Press: 4, Light: 3},
	ButtonRewind:   {Name: "Rewind", Press: 3, Light: 4},
}

var (
	buttonByPress map[uint8]ButtonID
	buttonByName  map[string]ButtonID
)

func init() {
	buttonByPress = make(map[uint8]ButtonID, numButtons)
	buttonByName = make(map[string]ButtonID, numButtons+1)
	for id := ButtonID(0); id < numButtons; id++ {
		buttonByPress[buttons[id].Press] = id
		buttonByName[strings.ToLower(buttons[id].Name)] = id
	}
	// The manual calls Rec "Rec Arm" in a few places.
	buttonByName["rec arm"] = ButtonRec
}

// Valid reports whether id names a real button.
func (id ButtonID) Valid() bool {
	return id >= 0 && id < numButtons
}

// Info returns the button's name and note numbers.
func (id ButtonID) Info() Button {
	if !id.Valid() {
		return Button{}
	}
	return buttons[id]
}

func (id ButtonID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return buttons[id].Name
}

// ButtonFromName looks a button up by the label printed on it,
// case-insensitively. The second return is false for unknown names.
func ButtonFromName(name string) (ButtonID, bool) {
	id, ok := buttonByName[strings.ToLower(name)]
	return id, ok
}

// buttonFromPress maps an inbound press note to its button.
func buttonFromPress(note uint8) (ButtonID, bool) {
	id, ok := buttonByPress[note]
	return id, ok
}

// Buttons returns every ButtonID in table order.
func Buttons() []ButtonID {
	ids := make([]ButtonID, numButtons)
	for i := range ids {
		ids[i] = ButtonID(i)
	}
	return ids
}

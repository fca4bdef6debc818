package codec

import (
	"github.com/ssargent/ghostwriter/pkg/ghost"
)

// Channels holds the per-frame projections of a recording. All three slices
// have the same length and order as the frames they came from.
type Channels struct {
	Buttons   []ghost.FaceButtons
	Direction []ghost.Direction
	Trick     []ghost.Trick
}

// SplitChannels projects frames onto the three input channels.
func SplitChannels(frames []ghost.Frame) (*Channels, error) {
	if len(frames) == 0 {
		return nil, ghost.ErrEmptyRecording
	}

	c := &Channels{
		Buttons:   make([]ghost.FaceButtons, len(frames)),
		Direction: make([]ghost.Direction, len(frames)),
		Trick:     make([]ghost.Trick, len(frames)),
	}
	for i, f := range frames {
		c.Buttons[i] = f.Buttons
		c.Direction[i] = f.Direction
		c.Trick[i] = f.Trick
	}

	return c, nil
}

// PackButtons packs the face buttons into bit 0 (A), bit 1 (B) and bit 2 (Item).
func PackButtons(b ghost.FaceButtons) byte {
	var v byte
	if b.A {
		v |= 1 << 0
	}
	if b.B {
		v |= 1 << 1
	}
	if b.Item {
		v |= 1 << 2
	}
	return v
}

// PackDirection packs the biased stick axes as Y in the high nibble and X in
// the low nibble.
func PackDirection(d ghost.Direction) byte {
	return (d.Y&0x0F)<<4 | d.X&0x0F
}

// PackTrick returns the value and count bytes of a trick run. The trick code
// sits in the high nibble. Runs longer than MaxRunLength store
// (length-255)>>8 in the low nibble and clamp the count byte to 255.
func PackTrick(code ghost.Trick, length int) (value, count byte) {
	value = byte(code&0x0F) << 4
	if length > MaxRunLength {
		value |= byte((length-MaxRunLength)>>8) & 0x0F
		length = MaxRunLength
	}
	return value, byte(length)
}

package codec

import (
	"encoding/binary"

	"github.com/ssargent/ghostwriter/pkg/ghost"
)

// CompressedInputs is the run-length form of a recording, one run slice per
// channel.
type CompressedInputs struct {
	Buttons   []Run[ghost.FaceButtons]
	Direction []Run[ghost.Direction]
	Trick     []Run[ghost.Trick]
}

// Size returns the number of input section bytes the runs serialize to.
func (c *CompressedInputs) Size() int {
	return runEntrySize * (len(c.Buttons) + len(c.Direction) + len(c.Trick))
}

// AssembleSection serializes the runs into the input section header (three
// big-endian uint16 run counts) and the fixed-capacity input section.
// Channels are written in button, direction, trick order as (value, count)
// byte pairs and the remainder of the section is zero. Runs that do not fit
// return *ghost.InputSectionOverflowError.
func AssembleSection(in *CompressedInputs) ([InputHeaderSize]byte, []byte, error) {
	var header [InputHeaderSize]byte

	size := in.Size()
	if size > InputSectionCapacity {
		return header, nil, &ghost.InputSectionOverflowError{Size: size, Capacity: InputSectionCapacity}
	}

	binary.BigEndian.PutUint16(header[0:], uint16(len(in.Buttons)))
	binary.BigEndian.PutUint16(header[2:], uint16(len(in.Direction)))
	binary.BigEndian.PutUint16(header[4:], uint16(len(in.Trick)))

	section := make([]byte, InputSectionCapacity)
	off := 0
	for _, r := range in.Buttons {
		section[off] = PackButtons(r.Value)
		section[off+1] = byte(r.Length)
		off += runEntrySize
	}
	for _, r := range in.Direction {
		section[off] = PackDirection(r.Value)
		section[off+1] = byte(r.Length)
		off += runEntrySize
	}
	for _, r := range in.Trick {
		section[off], section[off+1] = PackTrick(r.Value, r.Length)
		off += runEntrySize
	}

	return header, section, nil
}

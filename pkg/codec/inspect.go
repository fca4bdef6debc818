package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ssargent/ghostwriter/pkg/ghost"
)

// ErrInvalidGhost is returned by Inspect for buffers that are not ghost files.
var ErrInvalidGhost = errors.New("invalid ghost file")

// Summary describes an encoded ghost without decoding its frames.
type Summary struct {
	Size             int
	Metadata         ghost.RaceMetadata
	ButtonRuns       int
	DirectionRuns    int
	TrickRuns        int
	Checksum         uint32
	ComputedChecksum uint32
}

// ChecksumValid reports whether the stored checksum matches the input section.
func (s *Summary) ChecksumValid() bool {
	return s.Checksum == s.ComputedChecksum
}

// Inspect reads the header fields, run counts and checksum of an encoded
// ghost. The input section is everything between the run counts and the
// trailing checksum.
func Inspect(data []byte) (*Summary, error) {
	if len(data) < MinFileSize {
		return nil, fmt.Errorf("%w: %d bytes is too small (minimum %d)", ErrInvalidGhost, len(data), MinFileSize)
	}
	if len(data) > FileSize {
		return nil, fmt.Errorf("%w: %d bytes is too big (maximum %d)", ErrInvalidGhost, len(data), FileSize)
	}
	if string(data[offsetMagic:offsetMagic+len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidGhost, data[offsetMagic:offsetMagic+len(Magic)])
	}

	vehicleByte := data[offsetVehicle]
	s := &Summary{
		Size: len(data),
		Metadata: ghost.RaceMetadata{
			TrackID:     int(data[offsetTrack] >> 2),
			VehicleID:   int(vehicleByte >> 2),
			CharacterID: int(vehicleByte&0x03)<<4 | int(data[offsetCharacter]>>4),
			ManualDrift: (data[offsetDrift]>>driftBit)&1 == 0,
		},
		ButtonRuns:    int(binary.BigEndian.Uint16(data[HeaderSize:])),
		DirectionRuns: int(binary.BigEndian.Uint16(data[HeaderSize+2:])),
		TrickRuns:     int(binary.BigEndian.Uint16(data[HeaderSize+4:])),
	}

	end := len(data) - ChecksumSize
	s.Checksum = binary.BigEndian.Uint32(data[end:])
	s.ComputedChecksum = Checksum(data[InputSectionOffset:end])

	if used := runEntrySize * (s.ButtonRuns + s.DirectionRuns + s.TrickRuns); used > end-InputSectionOffset {
		return s, fmt.Errorf("%w: run counts describe %d bytes but input section holds %d", ErrInvalidGhost, used, end-InputSectionOffset)
	}

	return s, nil
}

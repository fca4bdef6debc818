package codec

import (
	"github.com/ssargent/ghostwriter/pkg/ghost"
)

// PackHeader builds the fixed header block for meta. Bytes not listed below
// stay zero:
//
//	0x00-0x03  magic "RKGD"
//	0x07       track id << 2
//	0x08       vehicle id << 2 | character id bits 4-5
//	0x09       character id << 4 (bits 0-3)
//	0x0D       drift type at bit 2 (0 manual, 1 automatic)
//
// The vehicle and character fields share byte 0x08; this is the external
// format's layout and must not change. meta must satisfy Validate; wider ids
// lose their high bits.
func PackHeader(meta ghost.RaceMetadata) [HeaderSize]byte {
	var h [HeaderSize]byte

	copy(h[offsetMagic:], Magic)
	h[offsetTrack] = byte(meta.TrackID << 2)
	h[offsetVehicle] = byte(meta.VehicleID<<2) | byte(meta.CharacterID>>4)&0x03
	h[offsetCharacter] = byte(meta.CharacterID << 4)
	h[offsetDrift] = meta.DriftType() << driftBit

	return h
}

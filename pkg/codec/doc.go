// Package codec encodes recorded controller inputs into ghost files.
//
// A ghost is a fixed-size binary replay consumed by the game. The codec turns
// an ordered recording of frames into that file in one pass: the frames are
// split into three channels, each channel is run-length encoded, the runs are
// packed into a fixed-capacity input section, and a CRC32 trailer is added.
//
// # File Format
//
// Every ghost is exactly FileSize (0x2800) bytes:
//
//	[Header(0x88)][RunCounts(6)][InputSection(0x276E)][CRC32(4)]
//
// All multi-byte integers are big-endian.
//
// Header (zero except for):
//   - 0x00: magic "RKGD"
//   - 0x07: track id << 2
//   - 0x08: vehicle id << 2, low two bits hold bits 4-5 of the character id
//   - 0x09: character id << 4
//   - 0x0D: drift type at bit 2 (0 manual, 1 automatic)
//
// RunCounts: the number of button, direction and trick runs as three uint16.
//
// InputSection: the button runs, then the direction runs, then the trick runs,
// each as a (value, count) byte pair, zero-padded to capacity:
//   - Buttons: A at bit 0, B at bit 1, Item at bit 2.
//   - Direction: biased stick Y in the high nibble, biased X in the low nibble.
//   - Trick: trick code in the high nibble. The low nibble is an overflow
//     field, (count-255)>>8, only non-zero for runs longer than 255.
//
// Runs are sealed after 255 identical samples on every channel, so a count
// byte always holds the true run length and the trick overflow nibble is zero
// in files written by this package.
//
// # CRC32 Calculation
//
// The checksum is the IEEE CRC32 of the full input section, padding included.
// Header and run counts are not covered.
//
// # Usage
//
//	c := codec.NewGhostCodec()
//
//	data, err := c.Encode(frames, ghost.RaceMetadata{TrackID: 8, ManualDrift: true})
//	if err != nil {
//	    return err
//	}
//
//	if err := codec.WriteFile("run.rkg", data); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Encode validates the metadata and fails with ghost.ErrEmptyRecording for an
// empty recording. Recordings whose runs do not fit the input section fail
// with *ghost.InputSectionOverflowError; they are never truncated. WriteFile
// failures are *ghost.WriteError.
//
// # Thread Safety
//
// GhostCodec holds no state and is safe for concurrent use.
package codec

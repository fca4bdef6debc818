package codec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/ghostwriter/pkg/ghost"
)

var neutralFrame = ghost.Frame{Direction: ghost.Neutral}

func TestGhostCodec_Encode300NeutralFrames(t *testing.T) {
	codec := NewGhostCodec()

	g, err := codec.EncodeGhost(repeat(neutralFrame, 300), ghost.RaceMetadata{ManualDrift: true})
	require.NoError(t, err)

	assert.Equal(t, []Run[ghost.FaceButtons]{{ghost.FaceButtons{}, 255}, {ghost.FaceButtons{}, 45}}, g.Inputs.Buttons)
	assert.Equal(t, []Run[ghost.Direction]{{ghost.Neutral, 255}, {ghost.Neutral, 45}}, g.Inputs.Direction)
	assert.Equal(t, []Run[ghost.Trick]{{ghost.TrickNone, 255}, {ghost.TrickNone, 45}}, g.Inputs.Trick)

	data := g.Data
	require.Len(t, data, FileSize)
	assert.Equal(t, 0x2800, len(data))

	// Run counts at 0x88.
	assert.Equal(t, []byte{0x00, 0x02, 0x00, 0x02, 0x00, 0x02}, data[0x88:0x8E])

	// Input section at 0x8E.
	wantRuns := []byte{0x00, 0xFF, 0x00, 0x2D, 0x77, 0xFF, 0x77, 0x2D, 0x00, 0xFF, 0x00, 0x2D}
	assert.Equal(t, wantRuns, data[0x8E:0x8E+len(wantRuns)])
	assert.True(t, bytes.Equal(make([]byte, InputSectionCapacity-len(wantRuns)), data[0x8E+len(wantRuns):FileSize-4]),
		"input section padding must be zero")

	// CRC32 of the padded section, computed independently.
	assert.Equal(t, uint32(0x77D58717), binary.BigEndian.Uint32(data[FileSize-4:]))
	assert.Equal(t, uint32(0x77D58717), g.Checksum)
}

func TestGhostCodec_EncodeSingleFrame(t *testing.T) {
	g, err := NewGhostCodec().EncodeGhost([]ghost.Frame{neutralFrame}, ghost.RaceMetadata{ManualDrift: true})
	require.NoError(t, err)

	assert.Len(t, g.Inputs.Buttons, 1)
	assert.Len(t, g.Inputs.Direction, 1)
	assert.Len(t, g.Inputs.Trick, 1)
	assert.Equal(t, 1, g.Inputs.Buttons[0].Length)
	assert.Equal(t, 1, g.Inputs.Direction[0].Length)
	assert.Equal(t, 1, g.Inputs.Trick[0].Length)

	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x01, 0x00, 0x01}, g.Data[0x88:0x8E])
	assert.Equal(t, []byte{0x00, 0x01, 0x77, 0x01, 0x00, 0x01}, g.Data[0x8E:0x94])
	assert.Equal(t, uint32(0xE7636420), binary.BigEndian.Uint32(g.Data[FileSize-4:]))
}

func TestGhostCodec_HeaderInOutput(t *testing.T) {
	meta := ghost.RaceMetadata{TrackID: 8, CharacterID: 0x12, VehicleID: 0x0A}

	data, err := NewGhostCodec().Encode([]ghost.Frame{neutralFrame}, meta)
	require.NoError(t, err)

	header := PackHeader(meta)
	assert.Equal(t, header[:], data[:HeaderSize])
	assert.Equal(t, "RKGD", string(data[:4]))
}

func TestGhostCodec_Deterministic(t *testing.T) {
	frames := []ghost.Frame{
		{Buttons: ghost.FaceButtons{A: true}, Direction: ghost.Neutral},
		{Buttons: ghost.FaceButtons{A: true, Item: true}, Direction: ghost.Direction{X: 3, Y: 9}, Trick: ghost.TrickUp},
		{Direction: ghost.Neutral, Trick: ghost.TrickDown},
	}
	meta := ghost.RaceMetadata{TrackID: 3, CharacterID: 20, VehicleID: 5}
	codec := NewGhostCodec()

	first, err := codec.Encode(frames, meta)
	require.NoError(t, err)
	second, err := codec.Encode(frames, meta)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGhostCodec_Errors(t *testing.T) {
	codec := NewGhostCodec()

	t.Run("empty recording", func(t *testing.T) {
		_, err := codec.Encode(nil, ghost.RaceMetadata{})
		assert.ErrorIs(t, err, ghost.ErrEmptyRecording)
	})

	t.Run("invalid metadata", func(t *testing.T) {
		_, err := codec.Encode([]ghost.Frame{neutralFrame}, ghost.RaceMetadata{VehicleID: 99})
		assert.ErrorIs(t, err, ghost.ErrInvalidMetadata)
	})

	t.Run("input section overflow", func(t *testing.T) {
		// Every frame starts a new run on all three channels: 6 bytes per frame.
		frames := make([]ghost.Frame, 2000)
		for i := range frames {
			if i%2 == 1 {
				frames[i] = ghost.Frame{Buttons: ghost.FaceButtons{A: true}, Direction: ghost.Neutral, Trick: ghost.TrickUp}
			}
		}

		_, err := codec.Encode(frames, ghost.RaceMetadata{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ghost.ErrInputSectionOverflow)

		var overflow *ghost.InputSectionOverflowError
		require.ErrorAs(t, err, &overflow)
		assert.Equal(t, 12000, overflow.Size)
		assert.Equal(t, InputSectionCapacity, overflow.Capacity)
	})
}

func TestGhostCodec_CapacityBoundary(t *testing.T) {
	// n alternating button frames give n button runs, and ceil(n/255) runs
	// each on the constant direction and trick channels. 5007 frames fill the
	// section exactly: 2*(5007+20+20) bytes.
	alternating := func(n int) []ghost.Frame {
		frames := make([]ghost.Frame, n)
		for i := range frames {
			frames[i] = ghost.Frame{Buttons: ghost.FaceButtons{B: i%2 == 1}, Direction: ghost.Neutral}
		}
		return frames
	}

	g, err := NewGhostCodec().EncodeGhost(alternating(5007), ghost.RaceMetadata{})
	require.NoError(t, err)
	assert.Equal(t, InputSectionCapacity, g.Inputs.Size())
	assert.Len(t, g.Data, FileSize)

	_, err = NewGhostCodec().Encode(alternating(5008), ghost.RaceMetadata{})
	assert.ErrorIs(t, err, ghost.ErrInputSectionOverflow)
}

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/ghostwriter/pkg/ghost"
)

func TestInspect(t *testing.T) {
	meta := ghost.RaceMetadata{TrackID: 31, CharacterID: 0x2B, VehicleID: 17, ManualDrift: false}
	data, err := NewGhostCodec().Encode(repeat(neutralFrame, 300), meta)
	require.NoError(t, err)

	s, err := Inspect(data)
	require.NoError(t, err)

	assert.Equal(t, FileSize, s.Size)
	assert.Equal(t, meta, s.Metadata)
	assert.Equal(t, 2, s.ButtonRuns)
	assert.Equal(t, 2, s.DirectionRuns)
	assert.Equal(t, 2, s.TrickRuns)
	assert.True(t, s.ChecksumValid())
}

func TestInspect_DetectsCorruption(t *testing.T) {
	data, err := NewGhostCodec().Encode(repeat(neutralFrame, 10), ghost.RaceMetadata{ManualDrift: true})
	require.NoError(t, err)

	data[InputSectionOffset+100] ^= 0xFF

	s, err := Inspect(data)
	require.NoError(t, err)
	assert.False(t, s.ChecksumValid())
}

func TestInspect_Rejects(t *testing.T) {
	valid, err := NewGhostCodec().Encode([]ghost.Frame{neutralFrame}, ghost.RaceMetadata{})
	require.NoError(t, err)

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "XXXX")

	badCounts := append([]byte(nil), valid...)
	badCounts[HeaderSize] = 0xFF

	testCases := []struct {
		name string
		data []byte
	}{
		{"too small", make([]byte, MinFileSize-1)},
		{"too big", make([]byte, FileSize+1)},
		{"bad magic", badMagic},
		{"run counts exceed section", badCounts},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Inspect(tc.data)
			assert.ErrorIs(t, err, ErrInvalidGhost)
		})
	}
}

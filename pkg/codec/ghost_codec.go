package codec

import (
	"github.com/ssargent/ghostwriter/pkg/ghost"
)

// Ghost is an encoded ghost file together with what went into it.
type Ghost struct {
	Data     []byte
	Frames   int
	Inputs   *CompressedInputs
	Checksum uint32
}

// GhostCodec turns recordings into ghost files.
type GhostCodec struct{}

// NewGhostCodec creates a new ghost codec instance
func NewGhostCodec() *GhostCodec {
	return &GhostCodec{}
}

// Compress splits frames into channels and run-length encodes each one.
func (c *GhostCodec) Compress(frames []ghost.Frame) (*CompressedInputs, error) {
	channels, err := SplitChannels(frames)
	if err != nil {
		return nil, err
	}

	return &CompressedInputs{
		Buttons:   RunLength(channels.Buttons, MaxRunLength),
		Direction: RunLength(channels.Direction, MaxRunLength),
		Trick:     RunLength(channels.Trick, MaxRunLength),
	}, nil
}

// Encode serializes frames and meta into a ghost file.
// Format: [Header(0x88)][RunCounts(6)][InputSection(0x276E)][CRC32(4)]
func (c *GhostCodec) Encode(frames []ghost.Frame, meta ghost.RaceMetadata) ([]byte, error) {
	g, err := c.EncodeGhost(frames, meta)
	if err != nil {
		return nil, err
	}
	return g.Data, nil
}

// EncodeGhost is Encode, also returning the runs and checksum.
func (c *GhostCodec) EncodeGhost(frames []ghost.Frame, meta ghost.RaceMetadata) (*Ghost, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	inputs, err := c.Compress(frames)
	if err != nil {
		return nil, err
	}

	inputHeader, section, err := AssembleSection(inputs)
	if err != nil {
		return nil, err
	}

	header := PackHeader(meta)

	buf := make([]byte, 0, FileSize)
	buf = append(buf, header[:]...)
	buf = append(buf, inputHeader[:]...)
	buf = append(buf, section...)
	buf = appendChecksum(buf, section)

	return &Ghost{
		Data:     buf,
		Frames:   len(frames),
		Inputs:   inputs,
		Checksum: Checksum(section),
	}, nil
}

// EncodeToFile encodes frames and meta and writes the result to path. Nothing
// is written unless encoding succeeds.
func (c *GhostCodec) EncodeToFile(path string, frames []ghost.Frame, meta ghost.RaceMetadata) (*Ghost, error) {
	g, err := c.EncodeGhost(frames, meta)
	if err != nil {
		return nil, err
	}
	if err := WriteFile(path, g.Data); err != nil {
		return nil, err
	}
	return g, nil
}

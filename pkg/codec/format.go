package codec

// Ghost file layout. Every encoded ghost is exactly FileSize bytes.
const (
	Magic = "RKGD"

	HeaderSize           = 0x88
	InputHeaderSize      = 6
	InputSectionOffset   = HeaderSize + InputHeaderSize
	InputSectionCapacity = 0x276E
	ChecksumSize         = 4
	FileSize             = InputSectionOffset + InputSectionCapacity + ChecksumSize

	// MinFileSize is the smallest buffer Inspect accepts: header, input
	// header and checksum with an empty input section.
	MinFileSize = InputSectionOffset + ChecksumSize
)

// Header byte offsets.
const (
	offsetMagic     = 0x00
	offsetTrack     = 0x07
	offsetVehicle   = 0x08
	offsetCharacter = 0x09
	offsetDrift     = 0x0D

	driftBit = 2
)

// Run length limits. Every channel seals a run at MaxRunLength samples; the
// trick channel's overflow nibble can describe runs up to
// TrickOverflowLimit, which this encoder never produces.
const (
	MaxRunLength       = 255
	TrickOverflowLimit = 4096

	runEntrySize = 2
)

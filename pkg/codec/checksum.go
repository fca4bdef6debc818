package codec

import (
	"encoding/binary"
	"hash/crc32"
)

// Checksum returns the IEEE CRC32 of the input section.
func Checksum(section []byte) uint32 {
	return crc32.ChecksumIEEE(section)
}

func appendChecksum(buf []byte, section []byte) []byte {
	return binary.BigEndian.AppendUint32(buf, Checksum(section))
}

// Package audiotest provides helpers for tests that need audio payloads.
package audiotest

import (
	"bytes"
	"encoding/binary"
)

// WAV returns a silent 16-bit mono PCM WAV with the given number of frames.
func WAV(sampleRate, frames int) []byte {
	dataSize := frames * 2

	var b bytes.Buffer

	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataSize))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint16(16))

	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(dataSize))
	b.Write(make([]byte, dataSize))

	return b.Bytes()
}

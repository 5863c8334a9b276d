// ABOUTME: Fixed-layout WAV header parsing and serialization
// ABOUTME: Explicit little-endian codec for the canonical 44-byte header
package wave

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the fixed byte length of the canonical container header.
// Sample data starts immediately after it.
const HeaderSize = 44

const pcmFormat = 1

// Header is the parsed fixed-layout container header. Field offsets in
// the serialized form: channels at 22, sample rate at 24, bit depth at
// 34, data size at 40. Everything on the wire is little-endian.
type Header struct {
	SampleRate int
	Channels   int
	BitDepth   int
	DataSize   uint32
}

// Frames returns the number of per-channel sample frames described by
// the header.
func (h Header) Frames() uint32 {
	bytesPerFrame := uint32(h.Channels) * uint32(h.BitDepth/8)
	if bytesPerFrame == 0 {
		return 0
	}
	return h.DataSize / bytesPerFrame
}

// Canonical reports whether the header describes the on-device playback
// format: mono, 16-bit.
func (h Header) Canonical() bool {
	return h.Channels == 1 && h.BitDepth == 16
}

// Parse reads and validates a 44-byte header from r. A malformed or
// missing signature returns ErrBadSignature; a non-PCM encoding returns
// ErrNotPCM. Short reads and transport failures are wrapped as-is.
func Parse(r io.Reader) (Header, error) {
	raw := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return Header{}, fmt.Errorf("read header: %w", err)
	}

	if !bytes.Equal(raw[0:4], []byte("RIFF")) || !bytes.Equal(raw[8:12], []byte("WAVE")) {
		return Header{}, ErrBadSignature
	}
	if !bytes.Equal(raw[12:16], []byte("fmt ")) || !bytes.Equal(raw[36:40], []byte("data")) {
		return Header{}, ErrBadSignature
	}
	if binary.LittleEndian.Uint16(raw[20:22]) != pcmFormat {
		return Header{}, ErrNotPCM
	}

	return Header{
		Channels:   int(binary.LittleEndian.Uint16(raw[22:24])),
		SampleRate: int(binary.LittleEndian.Uint32(raw[24:28])),
		BitDepth:   int(binary.LittleEndian.Uint16(raw[34:36])),
		DataSize:   binary.LittleEndian.Uint32(raw[40:44]),
	}, nil
}

// Write serializes h as a 44-byte header to w. Derived fields (RIFF
// size, byte rate, block align) are recomputed from the struct; the
// caller never supplies them.
func Write(w io.Writer, h Header) error {
	raw := make([]byte, HeaderSize)

	copy(raw[0:4], "RIFF")
	binary.LittleEndian.PutUint32(raw[4:8], 36+h.DataSize)
	copy(raw[8:12], "WAVE")

	copy(raw[12:16], "fmt ")
	binary.LittleEndian.PutUint32(raw[16:20], 16)
	binary.LittleEndian.PutUint16(raw[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(raw[22:24], uint16(h.Channels))
	binary.LittleEndian.PutUint32(raw[24:28], uint32(h.SampleRate))
	byteRate := uint32(h.SampleRate) * uint32(h.Channels) * uint32(h.BitDepth/8)
	binary.LittleEndian.PutUint32(raw[28:32], byteRate)
	blockAlign := uint16(h.Channels) * uint16(h.BitDepth/8)
	binary.LittleEndian.PutUint16(raw[32:34], blockAlign)
	binary.LittleEndian.PutUint16(raw[34:36], uint16(h.BitDepth))

	copy(raw[36:40], "data")
	binary.LittleEndian.PutUint32(raw[40:44], h.DataSize)

	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// ABOUTME: MP3 ingestion path
// ABOUTME: Decodes MP3 sources to the canonical form via go-mp3
package convert

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/padbank/padbank-go/pkg/audio"
)

// FromMP3 ingests an MP3 source into the canonical mono 16-bit form.
// go-mp3 always emits 16-bit stereo at the stream's native rate, so
// every decoded frame goes through the stereo downmix rule. The same
// size cap as WAV ingestion applies.
func FromMP3(src io.Reader, dst io.Writer, opts Options) (AssetInfo, error) {
	dec, err := mp3.NewDecoder(src)
	if err != nil {
		return AssetInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	max := opts.maxFrames()
	samples := make([]int16, 0, 8192)
	truncated := false

	// Decoder reads are not frame aligned; assemble 4-byte LRLR frames
	// byte by byte.
	var frame [4]byte
	idx := 0
	buf := make([]byte, 8192)
	for {
		n, err := dec.Read(buf)
		for _, b := range buf[:n] {
			frame[idx] = b
			idx++
			if idx < len(frame) {
				continue
			}
			idx = 0
			if uint32(len(samples)) >= max {
				truncated = true
				continue
			}
			l := int16(uint16(frame[0]) | uint16(frame[1])<<8)
			r := int16(uint16(frame[2]) | uint16(frame[3])<<8)
			samples = append(samples, audio.Downmix(l, r))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return AssetInfo{}, fmt.Errorf("mp3 decode: %w", err)
		}
	}

	return writeCanonical(dst, dec.SampleRate(), samples, truncated)
}

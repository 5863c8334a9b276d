// ABOUTME: FLAC ingestion path
// ABOUTME: Decodes FLAC sources to the canonical form via mewkiz/flac
package convert

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/padbank/padbank-go/pkg/audio"
)

// FromFLAC ingests a FLAC source into the canonical mono 16-bit form.
// The same bit depth and channel constraints as WAV ingestion apply:
// 16- or 24-bit, mono or stereo; anything else is ErrUnsupportedFormat.
func FromFLAC(src io.Reader, dst io.Writer, opts Options) (AssetInfo, error) {
	stream, err := flac.New(src)
	if err != nil {
		return AssetInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer stream.Close()

	bits := int(stream.Info.BitsPerSample)
	channels := int(stream.Info.NChannels)
	if bits != 16 && bits != 24 {
		return AssetInfo{}, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, bits)
	}
	if channels != 1 && channels != 2 {
		return AssetInfo{}, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	max := opts.maxFrames()
	samples := make([]int16, 0, 8192)
	truncated := false

	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return AssetInfo{}, fmt.Errorf("flac decode: %w", err)
		}

		n := len(f.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			if uint32(len(samples)) >= max {
				truncated = true
				break
			}
			var s int16
			if channels == 1 {
				s = narrowFLAC(f.Subframes[0].Samples[i], bits)
			} else {
				l := narrowFLAC(f.Subframes[0].Samples[i], bits)
				r := narrowFLAC(f.Subframes[1].Samples[i], bits)
				s = audio.Downmix(l, r)
			}
			samples = append(samples, s)
		}
	}

	return writeCanonical(dst, int(stream.Info.SampleRate), samples, truncated)
}

// narrowFLAC brings one decoded FLAC sample, delivered at its source
// bit depth, to canonical 16-bit.
func narrowFLAC(v int32, bits int) int16 {
	if bits == 24 {
		return audio.Narrow24(v)
	}
	return int16(v)
}

// ABOUTME: Format converter producing canonical mono 16-bit assets
// ABOUTME: WAV ingestion with downmix, bit-depth narrowing, and size capping
package convert

import (
	"errors"
	"fmt"
	"io"

	"github.com/padbank/padbank-go/pkg/audio"
	"github.com/padbank/padbank-go/pkg/audio/wave"
)

// DefaultMaxDataBytes caps canonical sample data at 512KB, about 5.5
// seconds of mono 16-bit audio at 48kHz.
const DefaultMaxDataBytes = 524288

// Options configures a conversion.
type Options struct {
	// MaxDataBytes caps the canonical sample data size. Zero means
	// DefaultMaxDataBytes. Sources over the cap are truncated, not
	// rejected.
	MaxDataBytes uint32
}

func (o Options) maxFrames() uint32 {
	cap := o.MaxDataBytes
	if cap == 0 {
		cap = DefaultMaxDataBytes
	}
	return cap / 2
}

// AssetInfo describes the canonical asset a conversion produced.
type AssetInfo struct {
	SampleRate   int
	TotalSamples uint32
	DataSize     uint32
	Truncated    bool
}

const convertChunkFrames = 2048

// Convert ingests a WAV source and writes the canonical mono 16-bit
// form: corrected header first (channels forced to 1, bit depth to 16,
// data size recomputed), then the converted sample stream. Accepted
// sources are 16- or 24-bit, mono or stereo PCM; everything else fails
// with ErrUnsupportedFormat. Mono 16-bit data passes through
// byte-identical. A source over the cap is truncated and reported via
// AssetInfo.Truncated. Writing is not atomic; a mid-stream failure
// leaves a partial destination behind (the store layer stages and
// renames to cover this).
func Convert(src io.Reader, dst io.Writer, opts Options) (AssetInfo, error) {
	hdr, err := wave.Parse(src)
	if err != nil {
		if errors.Is(err, wave.ErrBadSignature) || errors.Is(err, wave.ErrNotPCM) {
			return AssetInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return AssetInfo{}, fmt.Errorf("source header: %w", err)
	}

	if hdr.BitDepth != 16 && hdr.BitDepth != 24 {
		return AssetInfo{}, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, hdr.BitDepth)
	}
	if hdr.Channels != 1 && hdr.Channels != 2 {
		return AssetInfo{}, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, hdr.Channels)
	}

	srcFrames := hdr.Frames()
	outFrames := srcFrames
	truncated := false
	if max := opts.maxFrames(); outFrames > max {
		outFrames = max
		truncated = true
	}

	info := AssetInfo{
		SampleRate:   hdr.SampleRate,
		TotalSamples: outFrames,
		DataSize:     outFrames * 2,
		Truncated:    truncated,
	}

	out := wave.Header{
		SampleRate: hdr.SampleRate,
		Channels:   1,
		BitDepth:   16,
		DataSize:   info.DataSize,
	}
	if err := wave.Write(dst, out); err != nil {
		return AssetInfo{}, err
	}

	if err := convertStream(src, dst, hdr, outFrames); err != nil {
		return AssetInfo{}, err
	}

	// Consume whatever source data the cap cut off so a caller
	// streaming from a shared reader is left at end of asset.
	if truncated {
		if _, err := io.Copy(io.Discard, src); err != nil {
			return AssetInfo{}, fmt.Errorf("drain source: %w", err)
		}
	}

	return info, nil
}

// convertStream pumps outFrames frames from src to dst, one fixed-size
// chunk at a time, applying the downmix and narrowing rules.
func convertStream(src io.Reader, dst io.Writer, hdr wave.Header, outFrames uint32) error {
	frameBytes := hdr.Channels * hdr.BitDepth / 8
	in := make([]byte, convertChunkFrames*frameBytes)
	outBuf := make([]byte, convertChunkFrames*2)

	remaining := outFrames
	for remaining > 0 {
		frames := uint32(convertChunkFrames)
		if frames > remaining {
			frames = remaining
		}

		chunk := in[:frames*uint32(frameBytes)]
		if _, err := io.ReadFull(src, chunk); err != nil {
			return fmt.Errorf("read samples: %w", err)
		}

		out := outBuf[:frames*2]
		for f := uint32(0); f < frames; f++ {
			s := convertFrame(chunk[f*uint32(frameBytes):], hdr)
			out[f*2] = byte(s)
			out[f*2+1] = byte(uint16(s) >> 8)
		}

		if _, err := dst.Write(out); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
		remaining -= frames
	}
	return nil
}

// convertFrame reduces one source frame to a canonical sample. 24-bit
// samples are narrowed before the stereo downmix so both rules apply in
// their documented 16-bit form.
func convertFrame(b []byte, hdr wave.Header) int16 {
	switch {
	case hdr.Channels == 1 && hdr.BitDepth == 16:
		return int16(uint16(b[0]) | uint16(b[1])<<8)
	case hdr.Channels == 2 && hdr.BitDepth == 16:
		l := int16(uint16(b[0]) | uint16(b[1])<<8)
		r := int16(uint16(b[2]) | uint16(b[3])<<8)
		return audio.Downmix(l, r)
	case hdr.Channels == 1 && hdr.BitDepth == 24:
		return audio.Narrow24(audio.SampleFrom24Bit([3]byte{b[0], b[1], b[2]}))
	default: // stereo 24-bit
		l := audio.Narrow24(audio.SampleFrom24Bit([3]byte{b[0], b[1], b[2]}))
		r := audio.Narrow24(audio.SampleFrom24Bit([3]byte{b[3], b[4], b[5]}))
		return audio.Downmix(l, r)
	}
}

// writeCanonical emits a complete canonical asset from in-memory
// samples. The decoder-based ingestion paths share it.
func writeCanonical(dst io.Writer, sampleRate int, samples []int16, truncated bool) (AssetInfo, error) {
	info := AssetInfo{
		SampleRate:   sampleRate,
		TotalSamples: uint32(len(samples)),
		DataSize:     uint32(len(samples)) * 2,
		Truncated:    truncated,
	}

	hdr := wave.Header{
		SampleRate: sampleRate,
		Channels:   1,
		BitDepth:   16,
		DataSize:   info.DataSize,
	}
	if err := wave.Write(dst, hdr); err != nil {
		return AssetInfo{}, err
	}

	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(uint16(s) >> 8)
	}
	if _, err := dst.Write(buf); err != nil {
		return AssetInfo{}, fmt.Errorf("write samples: %w", err)
	}

	return info, nil
}

// ABOUTME: Sentinel errors for the wave header codec
// ABOUTME: Distinguishes signature failures from unsupported encodings
package wave

import "errors"

var (
	// ErrBadSignature means the 44-byte header is missing one of the
	// RIFF/WAVE/fmt /data markers.
	ErrBadSignature = errors.New("wave: bad container signature")

	// ErrNotPCM means the format tag is something other than plain PCM.
	ErrNotPCM = errors.New("wave: not PCM encoded")
)

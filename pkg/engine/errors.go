// ABOUTME: Sentinel errors for the playback engine
// ABOUTME: Control-surface results for load and trigger calls
package engine

import "errors"

var (
	// ErrNotLoaded means trigger was called on a voice with no bound
	// asset. The call is a no-op.
	ErrNotLoaded = errors.New("engine: no asset loaded")

	// ErrInvalidVoice means the voice index is outside the configured
	// slot range.
	ErrInvalidVoice = errors.New("engine: invalid voice index")

	// ErrNotCanonical means load was given an asset that is not mono
	// 16-bit and cannot be streamed.
	ErrNotCanonical = errors.New("engine: asset is not canonical mono 16-bit")
)

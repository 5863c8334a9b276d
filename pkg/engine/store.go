// ABOUTME: Storage interface consumed by the engine
// ABOUTME: Voices open read handles on canonical assets through it
package engine

import "io"

// Store opens canonical assets for streaming. The engine never
// enumerates storage itself; asset references come from a catalog.
type Store interface {
	Open(ref string) (io.ReadSeekCloser, error)
}

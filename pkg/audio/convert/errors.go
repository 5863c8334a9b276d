// ABOUTME: Sentinel errors for ingestion conversion
// ABOUTME: Separates unsupported-source rejection from transport failures
package convert

import "errors"

// ErrUnsupportedFormat rejects a source at ingestion: bad container
// signature, or a bit depth / channel count combination outside
// {16,24} x {1,2}. IO failures are not sentinels; they arrive wrapped
// from the underlying reader or writer.
var ErrUnsupportedFormat = errors.New("convert: unsupported source format")

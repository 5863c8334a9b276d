// ABOUTME: Audio output interface for the machine
// ABOUTME: Sinks accept interleaved stereo int16 frames and pace the control loop
package output

// Sink is a blocking audio output. WriteFrames paces the caller; it
// returns only once the device has accepted the batch.
type Sink interface {
	Open(sampleRate int) error
	WriteFrames(samples []int16) error
	Close() error
	SetVolume(volume int)
	Volume() int
}

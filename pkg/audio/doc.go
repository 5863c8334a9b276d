// ABOUTME: Package documentation for audio
// ABOUTME: Sample-level math shared by the converter and the engine
// Package audio provides the sample arithmetic used across Padbank:
// clamping mixed accumulators to the output range, downmixing stereo
// frames, and narrowing 24-bit samples to the canonical 16-bit form.
//
// All of it is integer math. The engine never touches floating point.
package audio

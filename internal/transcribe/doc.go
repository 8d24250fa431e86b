// Package transcribe generates transcripts from downloaded audio, the
// fallback source when no platform captions exist.
//
// The only real implementation wraps a whisper-compatible CLI. Out of the
// box no binary is configured and the fallback reports ErrUnavailable for
// every video; the pipeline surfaces that as a "no fallback available"
// condition rather than an error.
package transcribe

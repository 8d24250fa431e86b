// Package pipeline coordinates a channel download end to end: resolve the
// channel, enumerate its videos, acquire one transcript per video, and
// persist the flat-file archive plus its aggregate metadata.
//
// The run is a linear state machine. Per-video failures are counted and
// logged but never abort the run; only channel resolution, enumeration, and
// metadata persistence are fatal. An interrupt stops cleanly before the next
// video: files already written stay on disk and no metadata is written.
package pipeline

// Package output owns the on-disk layout of a run: the per-channel
// directory tree, individual transcript files, and the aggregate
// metadata.json record.
//
// Layout under the output root:
//
//	<sanitized channel>/transcripts/<uploadDate>_<sanitized title ≤50 runes>_<videoID>.txt
//	<sanitized channel>/metadata.json
//
// Sanitization removes illegal path characters and does not disambiguate
// collisions: two titles that sanitize identically share a filename and the
// later write wins. That matches the historical layout and keeps reruns
// overwriting their own files.
package output

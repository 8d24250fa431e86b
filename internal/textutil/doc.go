// Package textutil provides filename sanitization helpers shared by the
// output writer and the export commands.
//
// Sanitization removes the characters Windows and POSIX filesystems reject in
// path segments rather than replacing them, so sanitized names match the
// layout produced by earlier runs byte for byte. Titles are normalized to NFC
// first so visually identical names from different sources collapse to the
// same file.
package textutil

// Package export implements the archive utility commands: concatenating a
// channel's transcript files into one document and dumping a directory tree
// with file contents into a single reviewable text file.
package export

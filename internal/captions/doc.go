// Package captions fetches platform caption tracks, the primary transcript
// source.
//
// The watch page embeds a caption track list in its player JSON; the list
// points at timed-text XML documents. Track selection prefers manually
// created tracks in the configured languages, then auto-generated ones, then
// anything available. Every failure mode (no tracks, captcha wall, private
// video, transport error) is surfaced through sentinel errors the acquisition
// layer treats uniformly as "primary unavailable".
package captions

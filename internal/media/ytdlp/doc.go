// Package ytdlp wraps the yt-dlp command-line tool behind the media
// capability interfaces.
//
// Channel metadata comes from a single flat-playlist probe
// (--dump-single-json with zero playlist items), enumeration from
// line-delimited JSON (--dump-json --flat-playlist) against the channel's
// uploads page, and audio download from -x with an mp3 postprocessor. All
// invocations run under a context deadline; tests swap the command runner.
package ytdlp

// Command tubescribe downloads every available transcript for a YouTube
// channel into a flat-file archive, preferring platform captions and falling
// back to local audio transcription when configured.
package main

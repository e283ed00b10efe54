package audio

import (
	"path/filepath"
	"strings"
)

// directFormats are the containers the transcription API accepts as-is.
var directFormats = map[string]bool{
	".flac": true,
	".m4a":  true,
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
	".oga":  true,
	".ogg":  true,
	".wav":  true,
	".webm": true,
}

// listableFormats extends directFormats with containers that are accepted
// for upload but have to be transcoded first.
var listableFormats = map[string]bool{
	".aac": true,
}

// Ext returns the lower-cased extension of filename including the dot.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// Format returns the lower-cased extension of filename without the dot,
// e.g. "aac" for "Clip.AAC".
func Format(filename string) string {
	return strings.TrimPrefix(Ext(filename), ".")
}

// IsDirectlySupported reports whether filename can be sent to the
// transcription API without transcoding.
func IsDirectlySupported(filename string) bool {
	return directFormats[Ext(filename)]
}

// IsListable reports whether filename is offered for transcription at all.
func IsListable(filename string) bool {
	ext := Ext(filename)
	return directFormats[ext] || listableFormats[ext]
}

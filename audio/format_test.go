package audio_test

import (
	"testing"

	"github.com/kbukum/audioscribe/audio"
)

func TestIsDirectlySupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"talk.mp3", true},
		{"TALK.MP3", true},
		{"lecture.wav", true},
		{"voice.Flac", true},
		{"memo.m4a", true},
		{"movie.mp4", true},
		{"a.mpeg", true},
		{"a.mpga", true},
		{"a.oga", true},
		{"a.ogg", true},
		{"a.webm", true},
		{"clip.aac", false},
		{"notes.txt", false},
		{"noext", false},
		{"archive.mp3.zip", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := audio.IsDirectlySupported(tt.name); got != tt.want {
				t.Errorf("IsDirectlySupported(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsListable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"clip.aac", true},
		{"CLIP.AAC", true},
		{"talk.mp3", true},
		{"lecture.wav", true},
		{"cover.jpg", false},
		{".hidden", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := audio.IsListable(tt.name); got != tt.want {
				t.Errorf("IsListable(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDirectSetIsSubsetOfListable(t *testing.T) {
	for _, ext := range []string{".flac", ".m4a", ".mp3", ".mp4", ".mpeg", ".mpga", ".oga", ".ogg", ".wav", ".webm"} {
		name := "x" + ext
		if !audio.IsDirectlySupported(name) || !audio.IsListable(name) {
			t.Errorf("%s should be both directly supported and listable", ext)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := audio.Format("/tmp/Clip.AAC"); got != "aac" {
		t.Fatalf("expected aac, got %q", got)
	}
	if got := audio.Format("noext"); got != "" {
		t.Fatalf("expected empty format, got %q", got)
	}
}

// Package audio holds the media side of a transcription run: classifying
// source formats, planning chunk durations, partitioning a recording into
// time windows, and driving ffmpeg/ffprobe to transcode, measure and cut
// audio files.
//
// Planning is a fixed heuristic. A minute of MP3 at 128 kbps is assumed to
// weigh about one megabyte, and only 80% of the configured maximum chunk
// size is budgeted:
//
//	d := audio.PlanChunkDuration(size, 20<<20) // 16m0s
//	windows, err := audio.Windows(total, d)
//
// The media tools are reached through process.Runner so tests can record
// the command lines instead of executing ffmpeg.
package audio

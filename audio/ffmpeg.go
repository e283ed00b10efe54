package audio

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/process"
)

// stderrTailLines is how much ffmpeg output is kept on a failed command.
const stderrTailLines = 5

// demuxers maps extensions to the ffmpeg input format used as a decoding
// hint. Extensions without an entry are left to ffmpeg's detection.
var demuxers = map[string]string{
	"aac":  "aac",
	"flac": "flac",
	"m4a":  "mov",
	"mp3":  "mp3",
	"mp4":  "mov",
	"mpga": "mp3",
	"oga":  "ogg",
	"ogg":  "ogg",
	"wav":  "wav",
	"webm": "matroska",
}

// progressTime matches the time= field of ffmpeg's progress lines.
var progressTime = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// TempFiles hands out fresh paths for intermediate artifacts.
// workspace.Workspace implements it.
type TempFiles interface {
	NewFile(pattern string) (string, error)
}

// Transcoder re-encodes a source file into the normalized MP3 container.
type Transcoder interface {
	// Transcode writes a normalized copy of src into tmp and returns its
	// path. src itself is never modified.
	Transcode(ctx context.Context, tmp TempFiles, src string) (string, error)
}

// Prober measures the playing time of an audio file.
type Prober interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// Splitter exports each window of src as its own artifact.
type Splitter interface {
	// Split returns one chunk per window in window order. progress, when
	// not nil, is called after each chunk is written.
	Split(ctx context.Context, tmp TempFiles, src string, windows []Window, progress ProgressFunc) ([]Chunk, error)
}

// ProgressFunc reports that done of total items are complete.
type ProgressFunc func(done, total int)

// Chunk is an exported window of the normalized recording.
type Chunk struct {
	Window
	Path string
}

// Compile-time interface implementation checks.
var (
	_ Transcoder = (*FFmpeg)(nil)
	_ Prober     = (*FFmpeg)(nil)
	_ Splitter   = (*FFmpeg)(nil)
)

// FFmpeg implements Transcoder, Splitter and Prober with the ffmpeg and
// ffprobe command-line tools.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	bitrate     string
	runner      process.Runner
	log         *logger.Logger
}

// FFmpegOption configures an FFmpeg.
type FFmpegOption func(*FFmpeg)

// WithBinaries overrides the ffmpeg and ffprobe executables.
func WithBinaries(ffmpegPath, ffprobePath string) FFmpegOption {
	return func(f *FFmpeg) {
		if ffmpegPath != "" {
			f.ffmpegPath = ffmpegPath
		}
		if ffprobePath != "" {
			f.ffprobePath = ffprobePath
		}
	}
}

// WithBitrate sets the MP3 bitrate used for transcoding and chunk export.
func WithBitrate(bitrate string) FFmpegOption {
	return func(f *FFmpeg) {
		if bitrate != "" {
			f.bitrate = bitrate
		}
	}
}

// WithRunner replaces the subprocess runner.
func WithRunner(r process.Runner) FFmpegOption {
	return func(f *FFmpeg) {
		if r != nil {
			f.runner = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) FFmpegOption {
	return func(f *FFmpeg) {
		if l != nil {
			f.log = l
		}
	}
}

// NewFFmpeg creates an FFmpeg that encodes MP3 at 128k by default.
func NewFFmpeg(opts ...FFmpegOption) *FFmpeg {
	f := &FFmpeg{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		bitrate:     "128k",
		runner:      process.Exec,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Transcode re-encodes src to MP3. The extension selects the input format
// when ffmpeg has a demuxer for it.
func (f *FFmpeg) Transcode(ctx context.Context, tmp TempFiles, src string) (string, error) {
	log := f.log.WithComponent("transcoder").WithFields(logger.Fields(
		logger.FieldFile, src,
		"format", Format(src),
	))

	dst, err := tmp.NewFile("converted-*.mp3")
	if err != nil {
		log.Error("failed to allocate output file", logger.ErrorFields("transcode", err))
		return "", errors.TranscodeFailed(src, err)
	}

	start := time.Now()
	res, err := f.runner.Run(ctx, process.Command{
		Binary: f.ffmpegPath,
		Args:   f.encodeArgs(src, dst, nil, demuxers[Format(src)]),
	})
	if err != nil {
		log.Error("transcoding failed", logger.Fields(
			logger.FieldError, err.Error(),
			"stderr", res.StderrTail(stderrTailLines),
		))
		return "", errors.TranscodeFailed(src, err).WithDetail("stderr", res.StderrTail(stderrTailLines))
	}

	log.Debug("transcoded", logger.Fields(
		logger.FieldPath, dst,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return dst, nil
}

// Duration asks ffprobe for the container duration of path and returns it
// truncated to milliseconds. Containers that carry no duration, common for
// streamed webm and ogg recordings, are decoded in full to measure it.
func (f *FFmpeg) Duration(ctx context.Context, path string) (time.Duration, error) {
	res, err := f.runner.Run(ctx, process.Command{
		Binary: f.ffprobePath,
		Args: []string{
			"-v", "error",
			"-show_entries", "format=duration",
			"-of", "default=noprint_wrappers=1:nokey=1",
			path,
		},
	})
	if err != nil {
		return 0, errors.ProbeFailed(path, err).WithDetail("stderr", res.StderrTail(stderrTailLines))
	}

	raw := strings.TrimSpace(string(res.Stdout))
	if raw == "" || raw == "N/A" {
		f.log.WithComponent("prober").Debug("container has no duration, decoding", logger.Fields(
			logger.FieldPath, path,
		))
		return f.decodedDuration(ctx, path)
	}
	return parseSeconds(path, raw)
}

// decodedDuration decodes path to the null muxer and reads the last
// position ffmpeg reports.
func (f *FFmpeg) decodedDuration(ctx context.Context, path string) (time.Duration, error) {
	res, err := f.runner.Run(ctx, process.Command{
		Binary: f.ffmpegPath,
		Args: []string{
			"-hide_banner", "-nostdin", "-v", "info", "-stats",
			"-i", path,
			"-vn",
			"-f", "null", "-",
		},
	})
	if err != nil {
		return 0, errors.ProbeFailed(path, err).WithDetail("stderr", res.StderrTail(stderrTailLines))
	}

	matches := progressTime.FindAllStringSubmatch(string(res.Stderr), -1)
	if len(matches) == 0 {
		return 0, errors.ProbeFailed(path, fmt.Errorf("no position in decoder output")).
			WithDetail("stderr", res.StderrTail(stderrTailLines))
	}
	last := matches[len(matches)-1]
	hours, _ := strconv.Atoi(last[1])
	minutes, _ := strconv.Atoi(last[2])
	secs, _ := strconv.ParseFloat(last[3], 64)
	return toDuration(path, last[0], float64(hours*3600+minutes*60)+secs)
}

// parseSeconds converts ffprobe's decimal seconds into a duration.
func parseSeconds(path, raw string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.ProbeFailed(path, err).WithDetail("output", raw)
	}
	return toDuration(path, raw, seconds)
}

// toDuration truncates seconds to milliseconds. Negative and non-finite
// values are rejected.
func toDuration(path, raw string, seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, errors.ProbeFailed(path, fmt.Errorf("invalid duration %q", raw)).WithDetail("output", raw)
	}
	return time.Duration(seconds*1000) * time.Millisecond, nil
}

// Split cuts src along windows, exporting each as an MP3 at the configured
// bitrate.
func (f *FFmpeg) Split(ctx context.Context, tmp TempFiles, src string, windows []Window, progress ProgressFunc) ([]Chunk, error) {
	log := f.log.WithComponent("splitter").WithFields(logger.Fields(
		logger.FieldFile, src,
		logger.FieldChunks, len(windows),
	))

	chunks := make([]Chunk, 0, len(windows))
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return chunks, errors.SplitFailed(w.Index, err)
		}

		dst, err := tmp.NewFile("chunk-" + strconv.Itoa(w.Index+1) + "-*.mp3")
		if err != nil {
			return chunks, errors.SplitFailed(w.Index, err)
		}

		res, err := f.runner.Run(ctx, process.Command{
			Binary: f.ffmpegPath,
			Args:   f.encodeArgs(src, dst, &w, ""),
		})
		if err != nil {
			log.Error("chunk export failed", logger.Fields(
				logger.FieldChunk, w.Index+1,
				logger.FieldError, err.Error(),
				"stderr", res.StderrTail(stderrTailLines),
			))
			return chunks, errors.SplitFailed(w.Index, err).WithDetail("stderr", res.StderrTail(stderrTailLines))
		}

		chunks = append(chunks, Chunk{Window: w, Path: dst})
		log.Debug("chunk exported", logger.Fields(
			logger.FieldChunk, w.Index+1,
			logger.FieldPath, dst,
			"window", w.String(),
		))
		if progress != nil {
			progress(len(chunks), len(windows))
		}
	}
	return chunks, nil
}

// encodeArgs builds an ffmpeg command line that writes src (or the window
// of it) to dst as MP3. inputFormat, when set, forces the demuxer. The
// output file already exists, hence -y.
func (f *FFmpeg) encodeArgs(src, dst string, w *Window, inputFormat string) []string {
	args := []string{"-hide_banner", "-nostdin", "-v", "error", "-y"}
	if w != nil {
		args = append(args,
			"-ss", formatSeconds(w.Start),
			"-t", formatSeconds(w.Duration()),
		)
	}
	if inputFormat != "" {
		args = append(args, "-f", inputFormat)
	}
	return append(args,
		"-i", src,
		"-vn",
		"-codec:a", "libmp3lame",
		"-b:a", f.bitrate,
		"-f", "mp3",
		dst,
	)
}

// formatSeconds renders d as seconds with millisecond precision, the form
// ffmpeg accepts for -ss and -t.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

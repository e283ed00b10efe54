// Package transcriber drives one transcription run end to end:
//
//	validate input -> ensure format -> plan & split -> transcribe all
//	-> assemble & write -> cleanup
//
// Stages never go back. Setup failures abort the run; a failed chunk is
// skipped and the run continues with the rest. Every temporary artifact
// lives in a per-run workspace that is removed on every exit path,
// panics included.
package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/audioscribe/audio"
	"github.com/kbukum/audioscribe/config"
	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/i18n"
	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/observability"
	"github.com/kbukum/audioscribe/output"
	"github.com/kbukum/audioscribe/workspace"
)

// Stage names, as logged and recorded in metrics.
const (
	StageValidateInput = "validate_input"
	StageEnsureFormat  = "ensure_format"
	StagePlanSplit     = "plan_split"
	StageTranscribeAll = "transcribe_all"
	StageAssembleWrite = "assemble_write"
	StageCleanup       = "cleanup"
)

// ChunkTranscriber turns one chunk into text. ok is false when the chunk
// could not be transcribed; the reason has already been logged.
// *transcription.Client implements it.
type ChunkTranscriber interface {
	Transcribe(ctx context.Context, path string) (text string, ok bool)
}

// Deps are the collaborators of a Transcriber.
type Deps struct {
	Transcoder audio.Transcoder
	Prober     audio.Prober
	Splitter   audio.Splitter
	Client     ChunkTranscriber
	Printer    *i18n.Printer
	Logger     *logger.Logger
	// Metrics may be nil.
	Metrics *observability.Metrics
}

// Result describes a finished run.
type Result struct {
	RunID string
	// Source is the path of the audio file that was transcribed.
	Source string
	// OutputPath is the result file that was written.
	OutputPath string
	// Converted reports whether the source had to be transcoded.
	Converted bool
	// AudioDuration is the measured length of the normalized recording.
	AudioDuration time.Duration
	// ChunkDuration is the planned length of each chunk.
	ChunkDuration time.Duration
	// Chunks is the number of chunks the recording was cut into.
	Chunks int
	// Skipped lists the 1-based numbers of chunks that produced no text.
	Skipped []int
	// Text is what was written to OutputPath.
	Text string
	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Transcriber runs the pipeline for files in the configured audio directory.
type Transcriber struct {
	cfg     config.Config
	deps    Deps
	log     *logger.Logger
	printer *i18n.Printer
}

// New creates a Transcriber. cfg is expected to have defaults applied.
func New(cfg config.Config, deps Deps) *Transcriber {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	printer := deps.Printer
	if printer == nil {
		printer = i18n.NewPrinter(os.Stdout, cfg.Locale)
	}
	return &Transcriber{
		cfg:     cfg,
		deps:    deps,
		log:     log.WithComponent("transcriber"),
		printer: printer,
	}
}

// Run transcribes filename, a name inside the audio directory. The source
// file is never modified or removed.
func (t *Transcriber) Run(ctx context.Context, filename string) (res *Result, err error) {
	run := &Result{RunID: uuid.NewString()}
	log := t.log.WithFields(logger.Fields(
		logger.FieldRunID, run.RunID,
		logger.FieldFile, filename,
	))
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, observability.SpanRun)
	observability.SetSpanAttribute(ctx, observability.AttrRunID, run.RunID)
	observability.SetSpanAttribute(ctx, observability.AttrFile, filename)

	defer func() {
		if r := recover(); r != nil {
			err = errors.Internal(fmt.Errorf("panic: %v", r))
		}
		run.Elapsed = time.Since(start)

		status := observability.StatusOK
		if err != nil {
			status = observability.StatusFailed
			res = nil
			t.report(filename, err)
			appErr := errors.Wrap(err)
			log.WithContext(ctx).Error("transcription run failed", logger.Fields(
				logger.FieldError, err.Error(),
				"code", string(appErr.Code),
			))
			observability.SetSpanError(ctx, err)
			t.deps.Metrics.RecordError(ctx, string(appErr.Code), "transcriber")
		} else {
			res = run
			log.WithContext(ctx).Info("transcription run finished", logger.Fields(
				logger.FieldPath, run.OutputPath,
				logger.FieldChunks, run.Chunks,
				"skipped", len(run.Skipped),
				logger.FieldDuration, run.Elapsed.Milliseconds(),
			))
		}
		t.deps.Metrics.RecordRun(ctx, status, run.Elapsed)
		span.End()
	}()

	// ValidateInput
	src, err := t.validateInput(ctx, log, filename)
	if err != nil {
		return nil, err
	}
	run.Source = src

	// Every artifact from here on lives in the workspace.
	ws, err := workspace.New(t.cfg.Paths.TempDir, log)
	if err != nil {
		return nil, err
	}
	defer t.cleanup(ctx, log, ws)

	// EnsureFormat
	normalized, err := t.ensureFormat(ctx, log, ws, src, run)
	if err != nil {
		return nil, err
	}

	// Plan&Split
	chunks, err := t.planAndSplit(ctx, log, ws, normalized, run)
	if err != nil {
		return nil, err
	}

	// TranscribeAll
	fragments, err := t.transcribeAll(ctx, log, chunks, run)
	if err != nil {
		return nil, err
	}

	// Assemble&Write
	if err := t.assembleAndWrite(ctx, log, filename, fragments, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (t *Transcriber) validateInput(ctx context.Context, log *logger.Logger, filename string) (string, error) {
	defer t.timeStage(ctx, log, StageValidateInput)()

	for _, dir := range []string{t.cfg.Paths.AudioPath(), t.cfg.Paths.ResultsPath()} {
		created, err := output.EnsureDir(dir)
		if err != nil {
			return "", err
		}
		if created {
			t.printer.Println(i18n.MsgCreatedDirectory, dir)
		}
	}

	if filename == "" || filepath.Base(filename) != filename {
		return "", errors.InvalidInput("filename", fmt.Sprintf("%q is not a file name", filename))
	}
	src := filepath.Join(t.cfg.Paths.AudioPath(), filename)
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFound("audio file", src)
		}
		return "", errors.IOError("stat", src, err)
	}
	if info.IsDir() {
		return "", errors.NotFound("audio file", src)
	}
	if !audio.IsListable(filename) {
		return "", errors.UnsupportedFormat(filename)
	}
	return src, nil
}

func (t *Transcriber) ensureFormat(ctx context.Context, log *logger.Logger, ws *workspace.Workspace, src string, run *Result) (string, error) {
	if audio.IsDirectlySupported(src) {
		log.Debug("format accepted as-is", logger.Fields(logger.FieldStage, StageEnsureFormat))
		return src, nil
	}
	defer t.timeStage(ctx, log, StageEnsureFormat)()

	ctx, span := observability.StartSpan(ctx, observability.SpanTranscode)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrFormat, audio.Format(src))

	t.printer.Println(i18n.MsgConversionRequired)
	t.printer.Println(i18n.MsgConverting, audio.Format(src))

	normalized, err := t.deps.Transcoder.Transcode(ctx, ws, src)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return "", err
	}
	if normalized == "" {
		return "", errors.TranscodeFailed(src, fmt.Errorf("no artifact produced"))
	}

	t.printer.Println(i18n.MsgConversionDone)
	run.Converted = true
	return normalized, nil
}

func (t *Transcriber) planAndSplit(ctx context.Context, log *logger.Logger, ws *workspace.Workspace, normalized string, run *Result) ([]audio.Chunk, error) {
	defer t.timeStage(ctx, log, StagePlanSplit)()

	t.printer.Println(i18n.MsgSplitting)

	probeCtx, probeSpan := observability.StartSpan(ctx, observability.SpanProbe)
	total, err := t.deps.Prober.Duration(probeCtx, normalized)
	if err != nil {
		observability.SetSpanError(probeCtx, err)
	}
	probeSpan.End()
	if err != nil {
		return nil, err
	}

	var size int64
	if info, statErr := os.Stat(normalized); statErr == nil {
		size = info.Size()
	}
	chunkDuration := audio.PlanChunkDuration(size, t.cfg.Chunking.MaxChunkSize)
	windows, err := audio.Windows(total, chunkDuration)
	if err != nil {
		return nil, errors.InvalidConfig(err.Error()).WithDetail("max_chunk_size", t.cfg.Chunking.MaxChunkSize)
	}
	run.AudioDuration = total
	run.ChunkDuration = chunkDuration

	log.Info("chunks planned", logger.Fields(
		logger.FieldStage, StagePlanSplit,
		logger.FieldBytes, size,
		"audio_duration", total.String(),
		"chunk_duration", chunkDuration.String(),
		logger.FieldChunks, len(windows),
	))

	splitCtx, splitSpan := observability.StartSpan(ctx, observability.SpanSplit)
	defer splitSpan.End()
	observability.SetSpanAttribute(splitCtx, observability.AttrChunkCount, len(windows))

	chunks, err := t.deps.Splitter.Split(splitCtx, ws, normalized, windows, func(done, total int) {
		t.printer.Println(i18n.MsgChunkCreated, done, total)
	})
	if err != nil {
		observability.SetSpanError(splitCtx, err)
		return nil, err
	}
	run.Chunks = len(chunks)
	return chunks, nil
}

// transcribeAll submits chunks in order. A canceled ctx abandons the run
// before the next chunk; individual chunk failures only skip that chunk.
func (t *Transcriber) transcribeAll(ctx context.Context, log *logger.Logger, chunks []audio.Chunk, run *Result) ([]string, error) {
	defer t.timeStage(ctx, log, StageTranscribeAll)()

	t.printer.Println(i18n.MsgTranscriptionStarted)

	fragments := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, errors.Canceled(err)
		}
		n := i + 1
		t.printer.Println(i18n.MsgTranscribingPart, n, len(chunks))

		text, ok := t.deps.Client.Transcribe(ctx, chunk.Path)
		if !ok {
			t.printer.Println(i18n.MsgSkippingPart, n)
			log.Warn("chunk skipped", logger.Fields(
				logger.FieldChunk, n,
				"window", chunk.Window.String(),
			))
			run.Skipped = append(run.Skipped, n)
			continue
		}
		if text == "" {
			continue
		}
		fragments = append(fragments, text)
	}
	return fragments, nil
}

func (t *Transcriber) assembleAndWrite(ctx context.Context, log *logger.Logger, filename string, fragments []string, run *Result) error {
	defer t.timeStage(ctx, log, StageAssembleWrite)()

	ctx, span := observability.StartSpan(ctx, observability.SpanWrite)
	defer span.End()

	run.Text = strings.Join(fragments, " ")
	if len(fragments) == 0 {
		log.Warn("no chunk produced text, writing an empty result")
	}

	path, err := output.Write(t.cfg.Paths.ResultsPath(), filename, run.Text)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	run.OutputPath = path
	t.printer.Println(i18n.MsgSaved, path)
	return nil
}

func (t *Transcriber) cleanup(ctx context.Context, log *logger.Logger, ws *workspace.Workspace) {
	defer t.timeStage(ctx, log, StageCleanup)()

	if err := ws.Close(); err != nil {
		t.printer.Println(i18n.MsgCleanupFailed, ws.Dir(), userMessage(err))
	}
}

// timeStage logs the start of a stage and returns a func recording its
// duration.
func (t *Transcriber) timeStage(ctx context.Context, log *logger.Logger, stage string) func() {
	start := time.Now()
	log.Debug("stage started", logger.Fields(logger.FieldStage, stage))
	return func() {
		t.deps.Metrics.RecordStage(ctx, stage, time.Since(start))
	}
}

// report prints the user-facing line for a failed run.
func (t *Transcriber) report(filename string, err error) {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		t.printer.Println(i18n.MsgFileNotFound, filename, t.cfg.Paths.AudioPath())
	case errors.Is(err, errors.ErrCodeTranscodeFailed):
		t.printer.Println(i18n.MsgConversionFailed, userMessage(err))
	default:
		t.printer.Println(i18n.MsgRunFailed, userMessage(err))
	}
}

// userMessage returns the most specific human-readable text for err.
func userMessage(err error) string {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Cause != nil {
		return appErr.Message + " " + appErr.Cause.Error()
	}
	return appErr.Message
}

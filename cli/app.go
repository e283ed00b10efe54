// Package cli is the interactive front end: it checks for the media tools,
// lists the audio directory, asks for one file and hands it to the
// transcriber.
package cli

import (
	"context"
	"io"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/i18n"
	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/output"
	"github.com/kbukum/audioscribe/process"
	"github.com/kbukum/audioscribe/transcriber"
)

// Runner transcribes one file from the audio directory.
type Runner interface {
	Run(ctx context.Context, filename string) (*transcriber.Result, error)
}

// App wires the menu to a Runner.
type App struct {
	audioDir  string
	binaries  []string
	printer   *i18n.Printer
	menu      *Menu
	runner    Runner
	available func(binary string) bool
	log       *logger.Logger
}

// Option configures an App.
type Option func(*App)

// WithBinaries sets the executables that must be on PATH.
func WithBinaries(binaries ...string) Option {
	return func(a *App) { a.binaries = binaries }
}

// WithLookup replaces the PATH check.
func WithLookup(available func(binary string) bool) Option {
	return func(a *App) { a.available = available }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// NewApp creates an App listing audioDir, reading choices from in and
// printing through printer.
func NewApp(audioDir string, in io.Reader, printer *i18n.Printer, runner Runner, opts ...Option) *App {
	a := &App{
		audioDir:  audioDir,
		binaries:  []string{"ffmpeg", "ffprobe"},
		printer:   printer,
		menu:      NewMenu(in, printer),
		runner:    runner,
		available: process.Available,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithComponent("cli")
	return a
}

// Run performs one interactive session. Every outcome has already been
// printed when Run returns; the error is for logging only.
func (a *App) Run(ctx context.Context) error {
	if !a.CheckDependencies() {
		return nil
	}

	files, err := ListAudioFiles(a.audioDir)
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		a.printer.Println(i18n.MsgAudioDirNotFound)
		created, mkErr := output.EnsureDir(a.audioDir)
		if mkErr != nil {
			return mkErr
		}
		if created {
			a.printer.Println(i18n.MsgCreatedDirectory, a.audioDir)
		}
	case err != nil:
		a.printer.Println(i18n.MsgRunFailed, err.Error())
		return err
	}

	if len(files) == 0 {
		a.printer.Println(i18n.MsgNoFiles)
		a.printer.Println(i18n.MsgPlaceFiles)
		return nil
	}

	file, ok, err := a.menu.Choose(ctx, files)
	if err != nil || !ok {
		return err
	}

	a.log.Debug("file selected", logger.Fields(
		logger.FieldFile, file.Name,
		logger.FieldBytes, file.Size,
	))
	_, err = a.runner.Run(ctx, file.Name)
	return err
}

// CheckDependencies reports whether every required binary is on PATH and
// prints installation hints when one is missing.
func (a *App) CheckDependencies() bool {
	var missing []string
	for _, bin := range a.binaries {
		if !a.available(bin) {
			missing = append(missing, bin)
		}
	}
	if len(missing) == 0 {
		return true
	}

	a.log.Warn("media tools missing", logger.Fields("missing", missing))
	a.printer.Println(i18n.MsgFFmpegMissing)
	a.printer.Println(i18n.MsgFFmpegWindows)
	a.printer.Println(i18n.MsgFFmpegMacOS)
	a.printer.Println(i18n.MsgFFmpegLinux)
	return false
}

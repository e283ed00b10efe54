// Command audioscribe transcribes a recording picked from the audio
// directory next to the executable and writes the text to the results
// directory.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/kbukum/audioscribe/audio"
	"github.com/kbukum/audioscribe/bootstrap"
	"github.com/kbukum/audioscribe/cli"
	"github.com/kbukum/audioscribe/config"
	"github.com/kbukum/audioscribe/i18n"
	"github.com/kbukum/audioscribe/observability"
	"github.com/kbukum/audioscribe/transcriber"
	"github.com/kbukum/audioscribe/transcription"
	"github.com/kbukum/audioscribe/transcription/openai"
	"github.com/kbukum/audioscribe/version"
)

const serviceName = "audioscribe"

func main() {
	var (
		configFile  string
		envFile     string
		showVersion bool
	)
	pflag.StringVarP(&configFile, "config", "c", "", "path to config.yml")
	pflag.StringVar(&envFile, "env-file", "", "path to a .env file")
	pflag.BoolVarP(&showVersion, "version", "v", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Println(version.Full())
		return
	}

	// Every outcome is reported on stdout; the exit status is always 0.
	run(configFile, envFile)
}

func run(configFile, envFile string) {
	opts := []config.LoaderOption{config.WithBaseDir(executableDir())}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	cfg, err := config.Load(serviceName, opts...)
	if err != nil {
		i18n.NewPrinter(os.Stdout, "").Println(i18n.MsgConfigError, err.Error())
		return
	}
	if cfg.Version == "" {
		cfg.Version = version.Short()
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		i18n.NewPrinter(os.Stdout, cfg.Locale).Println(i18n.MsgConfigError, err.Error())
		return
	}
	log := app.Logger

	shutdown, err := observability.Setup(context.Background(), observability.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
	})
	if err != nil {
		log.Warn("Telemetry disabled", map[string]interface{}{"error": err.Error()})
	} else {
		app.OnStop(bootstrap.Hook(shutdown))
	}

	// Without an installed provider the global meter is a no-op.
	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		log.Warn("Metrics unavailable", map[string]interface{}{"error": err.Error()})
		metrics = nil
	}

	provider := transcription.Chain(
		transcription.WithTracing(),
		transcription.WithMetrics(metrics),
		transcription.WithLogging(log),
	)(openai.NewProvider(openai.Config{
		APIKey:   cfg.OpenAI.APIKey,
		Model:    cfg.OpenAI.Model,
		BaseURL:  cfg.OpenAI.BaseURL,
		Language: cfg.OpenAI.Language,
		Timeout:  cfg.OpenAI.Timeout,
	}))
	client := transcription.NewClient(provider,
		transcription.WithClientLogger(log),
		transcription.WithLanguage(cfg.OpenAI.Language),
	)

	media := audio.NewFFmpeg(
		audio.WithBinaries(cfg.Media.FFmpeg, cfg.Media.FFprobe),
		audio.WithBitrate(cfg.Chunking.Bitrate),
		audio.WithLogger(log),
	)
	printer := i18n.NewPrinter(os.Stdout, cfg.Locale)

	tr := transcriber.New(*cfg, transcriber.Deps{
		Transcoder: media,
		Prober:     media,
		Splitter:   media,
		Client:     client,
		Printer:    printer,
		Logger:     log,
		Metrics:    metrics,
	})

	cliApp := cli.NewApp(cfg.Paths.AudioPath(), os.Stdin, printer, tr,
		cli.WithBinaries(cfg.Media.FFmpeg, cfg.Media.FFprobe),
		cli.WithLogger(log),
	)

	if err := app.RunTask(context.Background(), cliApp.Run); err != nil {
		log.Debug("Session ended with error", map[string]interface{}{"error": err.Error()})
	}
}

// executableDir is the directory holding the binary, with symlinks
// resolved. It falls back to the working directory.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

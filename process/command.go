// Package process runs external tools such as ffmpeg and ffprobe and
// captures their output.
package process

import (
	"context"
	"io"
	"time"
)

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// WaitDelay bounds how long Run waits for output pipes after the process
	// is killed. Defaults to 5 seconds if zero.
	WaitDelay time.Duration
}

// Runner executes commands. Exec is the real implementation; tests inject
// recorders.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd Command) (*Result, error)

// Run calls f(ctx, cmd).
func (f RunnerFunc) Run(ctx context.Context, cmd Command) (*Result, error) {
	return f(ctx, cmd)
}

// Exec is the Runner backed by os/exec.
var Exec Runner = RunnerFunc(Run)

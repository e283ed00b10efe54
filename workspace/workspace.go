// Package workspace scopes the temporary artifacts of one transcription
// run to a private directory that is removed as a whole when the run ends.
//
//	ws, err := workspace.New("", log)
//	if err != nil {
//		return err
//	}
//	defer ws.Close()
package workspace

import (
	"os"
	"sync"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
)

const dirPattern = "audioscribe-*"

// Workspace owns a temporary directory and every file created in it.
type Workspace struct {
	dir string
	log *logger.Logger

	mu     sync.Mutex
	files  int
	closed bool
}

// New creates a fresh directory under parent. An empty parent means the
// system temp directory.
func New(parent string, log *logger.Logger) (*Workspace, error) {
	if log == nil {
		log = logger.Nop()
	}
	dir, err := os.MkdirTemp(parent, dirPattern)
	if err != nil {
		return nil, errors.IOError("create workspace", parent, err)
	}
	log = log.WithComponent("workspace").WithFields(logger.Fields(logger.FieldPath, dir))
	log.Debug("workspace created")
	return &Workspace{dir: dir, log: log}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// NewFile creates an empty file whose name follows pattern (see
// os.CreateTemp) and returns its path. The file is closed so external
// tools can overwrite it.
func (w *Workspace) NewFile(pattern string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return "", errors.IOError("create temp file", w.dir, os.ErrClosed)
	}

	f, err := os.CreateTemp(w.dir, pattern)
	if err != nil {
		return "", errors.IOError("create temp file", w.dir, err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", errors.IOError("close temp file", name, err)
	}
	w.files++
	return name, nil
}

// Close removes the directory with everything in it. It is safe to call
// more than once; only the first call does any work.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	if err := os.RemoveAll(w.dir); err != nil {
		w.log.Warn("failed to remove workspace", logger.ErrorFields("cleanup", err))
		return errors.IOError("remove workspace", w.dir, err)
	}
	w.log.Debug("workspace removed", logger.Fields("files", w.files))
	return nil
}

// Package output names and writes transcript files without overwriting
// earlier results: "talk.txt", then "talk_v1.txt", "talk_v2.txt", ...
package output

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kbukum/audioscribe/errors"
)

const ext = ".txt"

// BaseName returns sourceFilename without directory and extension.
func BaseName(sourceFilename string) string {
	base := filepath.Base(sourceFilename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NextName returns the first free result path for sourceFilename in dir.
func NextName(dir, sourceFilename string) (string, error) {
	base := BaseName(sourceFilename)
	for n := 0; ; n++ {
		name := base + ext
		if n > 0 {
			name = base + "_v" + strconv.Itoa(n) + ext
		}
		candidate := filepath.Join(dir, name)

		_, err := os.Stat(candidate)
		switch {
		case os.IsNotExist(err):
			return candidate, nil
		case err != nil:
			return "", errors.IOError("stat", candidate, err)
		}
	}
}

// Write stores text under the next free name for sourceFilename and returns
// the path. The file is created exclusively, so a name taken between
// probing and writing moves on to the next candidate.
func Write(dir, sourceFilename, text string) (string, error) {
	for {
		path, err := NextName(dir, sourceFilename)
		if err != nil {
			return "", err
		}

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", errors.IOError("create", path, err)
		}

		if _, err := f.WriteString(text); err != nil {
			f.Close()
			return "", errors.IOError("write", path, err)
		}
		if err := f.Close(); err != nil {
			return "", errors.IOError("close", path, err)
		}
		return path, nil
	}
}

// EnsureDir creates dir (and parents) if it is missing and reports whether
// it had to be created.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, errors.IOError("mkdir", dir, &os.PathError{Op: "mkdir", Path: dir, Err: os.ErrExist})
	case !os.IsNotExist(err):
		return false, errors.IOError("stat", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, errors.IOError("mkdir", dir, err)
	}
	return true, nil
}

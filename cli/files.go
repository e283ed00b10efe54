package cli

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/kbukum/audioscribe/audio"
	"github.com/kbukum/audioscribe/errors"
)

// AudioFile is a candidate input in the audio directory.
type AudioFile struct {
	Name string
	Path string
	Size int64
}

// ListAudioFiles returns the listable audio files directly inside dir,
// sorted by name so menu numbers are stable between runs. A missing dir is
// reported as NOT_FOUND.
func ListAudioFiles(dir string) ([]AudioFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("audio directory", dir)
		}
		return nil, errors.IOError("read dir", dir, err)
	}

	var files []AudioFile
	for _, e := range entries {
		if e.IsDir() || !audio.IsListable(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between listing and stat.
			continue
		}
		files = append(files, AudioFile{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

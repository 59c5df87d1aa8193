// Package scan lists the files of a directory that are candidates for
// organizing.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/spf13/afero"

	"mover/internal/config"
	"mover/internal/errors"
	"mover/internal/log"
	"mover/internal/report"
	"mover/pkg/types"
)

// Scan returns the regular files directly inside dir, sorted by name.
// Directories, symlinks and other special files are skipped, as are the rule
// file and names that are not valid UTF-8. An entry that cannot be inspected
// is reported to sink and skipped. Failing to list dir itself returns a
// DirectoryUnreadable error.
func Scan(fs afero.Fs, dir string, sink report.Sink) ([]types.Candidate, error) {
	if sink == nil {
		sink = report.Discard
	}

	names, err := readNames(fs, dir)
	if err != nil {
		return nil, errors.NewFileError("failed to read directory", dir, errors.DirectoryUnreadable, err)
	}

	candidates := make([]types.Candidate, 0, len(names))
	for _, name := range names {
		if name == config.FileName || !utf8.ValidString(name) {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := lstat(fs, path)
		if err != nil {
			entryErr := errors.NewFileError("failed to read directory entry", path, errors.EntryAccessError, err)
			log.LogWithError(entryErr).Info("skipping entry")
			sink.Emit(report.ErrorEvent(entryErr))
			continue
		}
		if !info.Mode().IsRegular() {
			log.LogWithFields(log.F("path", path), log.F("mode", info.Mode().String())).Debug("not a regular file")
			continue
		}

		candidates = append(candidates, types.Candidate{Path: path, Name: name})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	log.LogWithFields(log.F("dir", dir), log.F("candidates", len(candidates))).Debug("scan complete")
	return candidates, nil
}

func readNames(fs afero.Fs, dir string) ([]string, error) {
	f, err := fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}

// lstat inspects path without following a final symlink when fs supports it
func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}

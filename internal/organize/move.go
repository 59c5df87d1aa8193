package organize

import (
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"mover/internal/errors"
	"mover/internal/log"
)

func isCrossDevice(err error) bool {
	return errors.Is(err, errCrossDevice)
}

// MoveFile renames src to dest. When the rename crosses filesystems the file
// is copied with its permissions and the original removed afterwards. The
// original is never removed before the copy is complete; if removing it
// fails both copies remain and a RemoveFailed error is returned.
func (e *Engine) MoveFile(src, dest string) error {
	cleanSrc := filepath.Clean(src)
	cleanDest := filepath.Clean(dest)
	if cleanSrc == cleanDest {
		log.Debugf("source and destination are the same, skipping: %s", src)
		return nil
	}

	err := e.fs.Rename(cleanSrc, cleanDest)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return errors.NewFileError("failed to move file", cleanSrc, errors.MoveFailed, err)
	}

	log.LogWithFields(log.F("src", cleanSrc), log.F("dest", cleanDest)).Debug("rename crosses devices, copying instead")
	n, err := copyFile(e.fs, cleanSrc, cleanDest)
	if err != nil {
		return errors.NewFileError("failed to copy file", cleanSrc, errors.CopyFailed, err)
	}
	log.Infof("copied %s across devices from %s to %s", humanize.Bytes(uint64(n)), cleanSrc, cleanDest)
	if err := e.fs.Remove(cleanSrc); err != nil {
		return errors.NewFileError("failed to delete original file after copying", cleanSrc, errors.RemoveFailed, err)
	}
	return nil
}

// copyFile copies src into a temporary file next to dest and renames it over
// dest once it is complete, so a failed copy never truncates or removes an
// existing dest. The copy gets the mode of src.
func copyFile(fs afero.Fs, src, dest string) (int64, error) {
	in, err := fs.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	mode := info.Mode().Perm()

	tmp, err := afero.TempFile(fs, filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	discard := func() {
		if err := fs.Remove(tmpName); err != nil {
			log.LogWithError(err).Warnf("cannot remove temporary file %s", tmpName)
		}
	}

	n, err := io.Copy(tmp, in)
	if err != nil {
		tmp.Close()
		discard()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		discard()
		return n, err
	}

	// Temporary files are created 0600
	if err := fs.Chmod(tmpName, mode); err != nil {
		log.LogWithError(err).Debugf("cannot preserve mode of %s", dest)
	}
	if err := fs.Rename(tmpName, dest); err != nil {
		discard()
		return n, err
	}
	return n, nil
}

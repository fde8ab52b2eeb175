package downloadsvc

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// FileSystemSaver writes downloads into a local directory; the saver used on
// filesystem-capable targets. Browser-like targets plug their own
// core.FileSaver that triggers a save dialog instead.
type FileSystemSaver struct {
	dir string
}

var _ core.FileSaver = (*FileSystemSaver)(nil)

func NewFileSystemSaver(conf *core.Config) *FileSystemSaver {
	return &FileSystemSaver{dir: conf.DownloadDir}
}

// Save streams r into dir/fileName and returns the local path. A duplicate
// name gets " (n)" suffixes rather than clobbering an earlier download.
func (svc *FileSystemSaver) Save(fileName string, r io.Reader) (string, error) {
	if err := os.MkdirAll(svc.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating download dir %s", svc.dir)
	}

	path := svc.dedupe(filepath.Join(svc.dir, filepath.Base(fileName)))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	if _, err = io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

func (svc *FileSystemSaver) dedupe(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := path[:len(path)-len(ext)]
	for n := 1; ; n++ {
		candidate := stem + " (" + strconv.Itoa(n) + ")" + ext
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

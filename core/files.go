package core

import "io"

// FileSaver is any service that can persist a downloaded binary stream and
// hand back a local path (or pseudo-path on targets that only trigger a
// save dialog).
type FileSaver interface {
	Save(fileName string, r io.Reader) (string, error)
}

// DownloadError is a failed binary retrieval or local save.
type DownloadError struct {
	FileName string
	Err      error
}

func (err DownloadError) Error() string {
	return "downloading " + err.FileName + ": " + err.Err.Error()
}

func (err DownloadError) Unwrap() error { return err.Err }

package submission

import (
	"io"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

type File struct {
	ID       int    `json:"id"`
	FileName string `json:"fileName"`
}

type Submission struct {
	ID           int         `json:"id"`
	StudentID    int         `json:"studentId"`
	AssignmentID int         `json:"assignmentId"`
	Description  null.String `json:"description,omitempty"`
	SubmittedAt  time.Time   `json:"submittedAt"` // UTC
	Files        []File      `json:"files"`
}

// Upload is one file part of a multipart submission upload.
type Upload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// NewSubmission is a student's submission payload: any number of files plus
// an optional note. An empty description with no files is nothing to submit.
type NewSubmission struct {
	Description string
	Files       []Upload
}

func (ns *NewSubmission) Validate() error {
	ns.Description = core.CleanString(ns.Description)
	if ns.Description == "" && len(ns.Files) == 0 {
		return core.NewValidationError(
			errNothingToSubmit,
			core.FieldError{Field: "description", Error: errNothingToSubmit.Error()},
			core.FieldError{Field: "files", Error: errNothingToSubmit.Error()},
		)
	}
	for _, f := range ns.Files {
		if f.Name == "" || f.Content == nil {
			return core.NewValidationError(errBadFile, core.FieldError{Field: "files", Error: errBadFile.Error()})
		}
	}
	return nil
}

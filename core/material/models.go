package material

import (
	"io"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

type Material struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Description  null.String `json:"description,omitempty"`
	FileURL      string      `json:"fileUrl"`
	UploadedByID int         `json:"uploadedById"`
	ClassroomID  int         `json:"classroomId"`
	CreatedAt    time.Time   `json:"createdAt,omitempty"` // UTC
}

// Upload is one file part of a multipart upload.
type Upload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// NewMaterial contains information needed to upload a learning material.
type NewMaterial struct {
	Title        string `validate:"required"`
	Description  string
	UploadedByID int `validate:"required"`
	ClassroomID  int `validate:"required"`
	File         Upload
}

func (nm *NewMaterial) Validate() error {
	nm.Title = core.CleanString(nm.Title)
	nm.Description = core.CleanString(nm.Description)
	if err := core.CheckStruct(nm); err != nil {
		return err
	}
	if nm.File.Content == nil || nm.File.Name == "" {
		return core.NewValidationError(errFileRequired, core.FieldError{Field: "file", Error: errFileRequired.Error()})
	}
	return nil
}

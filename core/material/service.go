package material

import (
	"context"
	"errors"
	"io"
	"path"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound     = errors.New("learning material not found")
	errFileRequired = errors.New("a file is required")
)

type (
	API interface {
		ListMaterials(ctx context.Context) ([]Material, error)
		ListClassroomMaterials(ctx context.Context, classroomID int) ([]Material, error)
		UploadMaterial(ctx context.Context, nm NewMaterial) (Material, error)
		DeleteMaterial(ctx context.Context, id int) error
		// DownloadMaterial streams a material's file by its name (the last
		// segment of fileUrl). The caller owns the ReadCloser.
		DownloadMaterial(ctx context.Context, fileName string) (io.ReadCloser, error)
	}

	Service struct {
		api   API
		feed  core.FeedInvalidator
		saver core.FileSaver
		log   core.Logger
	}
)

func NewService(api API, feed core.FeedInvalidator, saver core.FileSaver, log core.Logger) *Service {
	return &Service{api: api, feed: feed, saver: saver, log: log}
}

func (svc *Service) All(ctx context.Context) ([]Material, error) {
	return svc.api.ListMaterials(ctx)
}

func (svc *Service) ByClassroom(ctx context.Context, classroomID int) ([]Material, error) {
	return svc.api.ListClassroomMaterials(ctx, classroomID)
}

func (svc *Service) Upload(ctx context.Context, nm NewMaterial) (Material, error) {
	if err := nm.Validate(); err != nil {
		return Material{}, err
	}
	m, err := svc.api.UploadMaterial(ctx, nm)
	if err != nil {
		return Material{}, err
	}
	svc.feed.Invalidate(m.ClassroomID)
	return m, nil
}

func (svc *Service) Delete(ctx context.Context, id, classroomID int) error {
	if err := svc.api.DeleteMaterial(ctx, id); err != nil {
		return err
	}
	svc.feed.Invalidate(classroomID)
	return nil
}

// Download retrieves a material's file, identified by the file name carried
// in its fileUrl, and hands it to the saver, returning the local path.
// Failures come back as *core.DownloadError; logged and surfaced, never
// fatal.
func (svc *Service) Download(ctx context.Context, m Material) (string, error) {
	fileName := path.Base(m.FileURL)
	body, err := svc.api.DownloadMaterial(ctx, fileName)
	if err != nil {
		return "", svc.downloadErr(fileName, err)
	}
	defer body.Close()

	localPath, err := svc.saver.Save(fileName, body)
	if err != nil {
		return "", svc.downloadErr(fileName, err)
	}
	return localPath, nil
}

func (svc *Service) downloadErr(fileName string, err error) error {
	dErr := &core.DownloadError{FileName: fileName, Err: err}
	svc.log.Error("material download failed", pkgerrors.WithStack(dErr))
	return dErr
}

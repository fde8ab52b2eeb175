package restapi

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/submission"
)

type submissionAPI struct {
	client *Client
}

var _ submission.API = (*submissionAPI)(nil) // interface compliance check

func NewSubmissionAPI(client *Client) submission.API {
	return &submissionAPI{client: client}
}

func (api *submissionAPI) ListSubmissions(ctx context.Context, assignmentID int) ([]submission.Submission, error) {
	var out []submission.Submission
	if err := api.client.get(ctx, fmt.Sprintf("/submissions/assignment/%d", assignmentID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadSubmission posts every file as a repeated "file" part plus an
// optional "description" field, with the student carried in the query.
func (api *submissionAPI) UploadSubmission(ctx context.Context, assignmentID, studentID int, ns submission.NewSubmission) (submission.Submission, error) {
	q := make(url.Values)
	q.Set("studentId", strconv.Itoa(studentID))

	parts := func(w *multipart.Writer) error {
		if ns.Description != "" {
			if err := w.WriteField("description", ns.Description); err != nil {
				return errors.Wrap(err, "writing description field")
			}
		}
		for _, f := range ns.Files {
			pw, err := w.CreatePart(fileHeader("file", f.Name, f.ContentType))
			if err != nil {
				return errors.Wrapf(err, "creating part for %s", f.Name)
			}
			if _, err = io.Copy(pw, f.Content); err != nil {
				return errors.Wrapf(err, "copying %s", f.Name)
			}
		}
		return nil
	}

	var out submission.Submission
	if err := api.client.postMultipart(ctx, fmt.Sprintf("/submissions/%d/upload", assignmentID), q, parts, &out); err != nil {
		return submission.Submission{}, err
	}
	return out, nil
}

func (api *submissionAPI) DeleteSubmission(ctx context.Context, id int) error {
	if err := api.client.delete(ctx, fmt.Sprintf("/submissions/%d", id), nil); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return submission.ErrNotFound
		}
		return err
	}
	return nil
}

func (api *submissionAPI) DownloadSubmissionFile(ctx context.Context, submissionID, fileID int) (io.ReadCloser, error) {
	body, err := api.client.stream(ctx, fmt.Sprintf("/submissions/%d/download/%d", submissionID, fileID))
	if err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return nil, submission.ErrNotFound
		}
		return nil, err
	}
	return body, nil
}

func fileHeader(field, fileName, contentType string) textproto.MIMEHeader {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, escapeQuotes(fileName)))
	h.Set("Content-Type", contentType)
	return h
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

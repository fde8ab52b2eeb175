package dummyapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/submission"
)

type submissionAPI struct {
	db *DB
}

var _ submission.API = (*submissionAPI)(nil) // interface compliance check

func NewSubmissionAPI(db *DB) submission.API {
	return &submissionAPI{db: db}
}

func (api *submissionAPI) ListSubmissions(_ context.Context, assignmentID int) ([]submission.Submission, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	out := make([]submission.Submission, 0)
	for _, sub := range api.db.submissions {
		if sub.AssignmentID == assignmentID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (api *submissionAPI) UploadSubmission(_ context.Context, assignmentID, studentID int, ns submission.NewSubmission) (submission.Submission, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	// the backend is the actual authority on the one-submission invariant
	for _, sub := range api.db.submissions {
		if sub.AssignmentID == assignmentID && sub.StudentID == studentID {
			return submission.Submission{}, core.NewAPIError(http.StatusConflict, "a submission already exists for this assignment")
		}
	}

	sub := submission.Submission{
		ID:           api.db.nextPK(),
		StudentID:    studentID,
		AssignmentID: assignmentID,
		SubmittedAt:  time.Now().UTC(),
	}
	if ns.Description != "" {
		sub.Description = null.StringFrom(ns.Description)
	}
	for _, f := range ns.Files {
		content, err := io.ReadAll(f.Content)
		if err != nil {
			return submission.Submission{}, err
		}
		fileID := api.db.nextPK()
		api.db.fileBlobs[fileID] = content
		sub.Files = append(sub.Files, submission.File{ID: fileID, FileName: f.Name})
	}
	api.db.submissions[sub.ID] = &sub
	return sub, nil
}

func (api *submissionAPI) DeleteSubmission(_ context.Context, id int) error {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	sub, ok := api.db.submissions[id]
	if !ok {
		return submission.ErrNotFound
	}
	for _, f := range sub.Files {
		delete(api.db.fileBlobs, f.ID)
	}
	delete(api.db.submissions, id)
	return nil
}

func (api *submissionAPI) DownloadSubmissionFile(_ context.Context, submissionID, fileID int) (io.ReadCloser, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	sub, ok := api.db.submissions[submissionID]
	if !ok {
		return nil, submission.ErrNotFound
	}
	for _, f := range sub.Files {
		if f.ID == fileID {
			return io.NopCloser(bytes.NewReader(api.db.fileBlobs[fileID])), nil
		}
	}
	return nil, submission.ErrNotFound
}

package submission

import (
	"context"
	"errors"
	"io"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

var (
	// errors
	ErrNotFound         = errors.New("submission not found")
	ErrAlreadySubmitted = errors.New("a submission already exists for this assignment; revoke it first")
	errNothingToSubmit  = errors.New("nothing to submit: add a file or a description")
	errBadFile          = errors.New("file is missing a name or content")
)

type (
	API interface {
		ListSubmissions(ctx context.Context, assignmentID int) ([]Submission, error)
		UploadSubmission(ctx context.Context, assignmentID, studentID int, ns NewSubmission) (Submission, error)
		DeleteSubmission(ctx context.Context, id int) error
		// DownloadSubmissionFile streams one file of a submission. The caller
		// owns the ReadCloser.
		DownloadSubmissionFile(ctx context.Context, submissionID, fileID int) (io.ReadCloser, error)
	}

	// Service mediates the student-submission relationship for assignments:
	// at most one live submission per (student, assignment), enforced by
	// read-before-write; edits go through revoke-then-resubmit.
	Service struct {
		api   API
		saver core.FileSaver
		log   core.Logger

		mu    sync.Mutex
		cache map[int][]Submission // assignmentID -> submissions
	}
)

func NewService(api API, saver core.FileSaver, log core.Logger) *Service {
	return &Service{
		api:   api,
		saver: saver,
		log:   log,
		cache: make(map[int][]Submission),
	}
}

// ForAssignment lists an assignment's submissions the way the acting user is
// allowed to see them: teachers see all of them, students only their own.
func (svc *Service) ForAssignment(ctx context.Context, sess user.Session, assignmentID int) ([]Submission, error) {
	subs, err := svc.list(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if sess.IsStudent() {
		own := make([]Submission, 0, 1)
		for _, sub := range subs {
			if sub.StudentID == sess.User.ID {
				own = append(own, sub)
			}
		}
		return own, nil
	}
	return subs, nil
}

// Status reports the student's submission for an assignment; nil means the
// student has not submitted, which is a valid empty state and not an error.
func (svc *Service) Status(ctx context.Context, assignmentID, studentID int) (*Submission, error) {
	subs, err := svc.list(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].StudentID == studentID {
			sub := subs[i]
			return &sub, nil
		}
	}
	return nil, nil
}

// Submit uploads a new submission for the acting student. An existing one
// must be revoked first; due dates are not checked.
func (svc *Service) Submit(ctx context.Context, sess user.Session, assignmentID int, ns NewSubmission) (Submission, error) {
	if err := ns.Validate(); err != nil {
		return Submission{}, err
	}

	// read-before-write; the backend remains the actual authority
	existing, err := svc.Status(ctx, assignmentID, sess.User.ID)
	if err != nil {
		return Submission{}, err
	}
	if existing != nil {
		return Submission{}, ErrAlreadySubmitted
	}

	sub, err := svc.api.UploadSubmission(ctx, assignmentID, sess.User.ID, ns)
	if err != nil {
		return Submission{}, err
	}
	svc.Invalidate(assignmentID)
	return sub, nil
}

// Revoke deletes a submission unconditionally, reverting the student to the
// unsubmitted state and re-enabling Submit.
func (svc *Service) Revoke(ctx context.Context, submissionID int) error {
	if err := svc.api.DeleteSubmission(ctx, submissionID); err != nil {
		return err
	}

	// drop whichever cached listing held it
	svc.mu.Lock()
	for assignmentID, subs := range svc.cache {
		for _, sub := range subs {
			if sub.ID == submissionID {
				delete(svc.cache, assignmentID)
				break
			}
		}
	}
	svc.mu.Unlock()
	return nil
}

// DownloadFile retrieves one file of a submission and hands it to the saver,
// returning the local path. Failures come back as *core.DownloadError; they
// are logged here and surfaced to the caller, never fatal.
func (svc *Service) DownloadFile(ctx context.Context, submissionID, fileID int, fileName string) (string, error) {
	body, err := svc.api.DownloadSubmissionFile(ctx, submissionID, fileID)
	if err != nil {
		return "", svc.downloadErr(fileName, err)
	}
	defer body.Close()

	path, err := svc.saver.Save(fileName, body)
	if err != nil {
		return "", svc.downloadErr(fileName, err)
	}
	return path, nil
}

// Invalidate drops the cached submission listing for an assignment so the
// next read re-fetches; the containing assignment view calls this after any
// submission mutation it observes.
func (svc *Service) Invalidate(assignmentID int) {
	svc.mu.Lock()
	delete(svc.cache, assignmentID)
	svc.mu.Unlock()
}

// list serves the cached listing, fetching on a miss. Callers get their own
// copy so the cache cannot be corrupted through the returned slice.
func (svc *Service) list(ctx context.Context, assignmentID int) ([]Submission, error) {
	svc.mu.Lock()
	subs, ok := svc.cache[assignmentID]
	svc.mu.Unlock()

	if !ok {
		var err error
		subs, err = svc.api.ListSubmissions(ctx, assignmentID)
		if err != nil {
			return nil, err
		}
		svc.mu.Lock()
		svc.cache[assignmentID] = subs
		svc.mu.Unlock()
	}

	out := make([]Submission, len(subs))
	copy(out, subs)
	return out, nil
}

func (svc *Service) downloadErr(fileName string, err error) error {
	dErr := &core.DownloadError{FileName: fileName, Err: err}
	svc.log.Error("submission file download failed", pkgerrors.WithStack(dErr))
	return dErr
}

package submission_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/submission"
	"github.com/trezcool/shule/core/user"
	dummyapi "github.com/trezcool/shule/storage/dummy"
	testutil "github.com/trezcool/shule/tests"
)

// memSaver keeps saved files in memory.
type memSaver struct {
	files map[string][]byte
	err   error
}

func (s *memSaver) Save(fileName string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[fileName] = content
	return "tmp/" + fileName, nil
}

func setup(t *testing.T) (*dummyapi.DB, *submission.Service, *memSaver, *testutil.LogRecorder) {
	db := testutil.OpenDB(t)
	saver := &memSaver{}
	logRec := &testutil.LogRecorder{}
	svc := submission.NewService(dummyapi.NewSubmissionAPI(db), saver, logRec)
	return db, svc, saver, logRec
}

func TestService_Submit(t *testing.T) {
	db, svc, _, _ := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	student := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Algebra homework", 1, teacher, time.Now())
	sess := testutil.Session(student)

	t.Run("nothing to submit", func(t *testing.T) {
		_, err := svc.Submit(ctx, sess, hw.ID, submission.NewSubmission{})
		var vErr *core.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Submit() error = %v, want validation error", err)
		}
	})

	t.Run("description only is enough", func(t *testing.T) {
		sub, err := svc.Submit(ctx, sess, hw.ID, submission.NewSubmission{Description: "solved on paper"})
		if err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
		assert.Equal(t, student.ID, sub.StudentID)
		assert.Equal(t, hw.ID, sub.AssignmentID)
		assert.Equal(t, "solved on paper", sub.Description.String)
		assert.False(t, sub.SubmittedAt.IsZero())
	})

	t.Run("second submit is rejected", func(t *testing.T) {
		_, err := svc.Submit(ctx, sess, hw.ID, submission.NewSubmission{Description: "take two"})
		if err != submission.ErrAlreadySubmitted {
			t.Errorf("Submit() error = %v, want %v", err, submission.ErrAlreadySubmitted)
		}
	})

	t.Run("status reflects the live submission", func(t *testing.T) {
		sub, err := svc.Status(ctx, hw.ID, student.ID)
		if err != nil {
			t.Fatalf("Status() failed: %v", err)
		}
		if sub == nil {
			t.Fatal("Status() = nil, want the live submission")
		}
		assert.Equal(t, "solved on paper", sub.Description.String)
	})

	t.Run("revoke then resubmit", func(t *testing.T) {
		sub, _ := svc.Status(ctx, hw.ID, student.ID)
		if err := svc.Revoke(ctx, sub.ID); err != nil {
			t.Fatalf("Revoke() failed: %v", err)
		}

		sub, err := svc.Status(ctx, hw.ID, student.ID)
		if err != nil {
			t.Fatalf("Status() failed: %v", err)
		}
		if sub != nil {
			t.Fatalf("Status() = %+v after revoke, want nil", sub)
		}

		if _, err = svc.Submit(ctx, sess, hw.ID, submission.NewSubmission{Description: "corrected version"}); err != nil {
			t.Errorf("Submit() after revoke failed: %v", err)
		}
	})
}

func TestService_Submit_backendWins(t *testing.T) {
	// when another client submitted since our last fetch, the backend's 409
	// comes through instead of a silent duplicate
	db, svc, _, _ := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	student := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Essay", 1, teacher, time.Now())
	sess := testutil.Session(student)

	// warm the cache while the assignment has no submissions
	if sub, err := svc.Status(ctx, hw.ID, student.ID); err != nil || sub != nil {
		t.Fatalf("Status() = %v, %v; want nil, nil", sub, err)
	}

	// another client sneaks a submission in
	other := submission.NewService(dummyapi.NewSubmissionAPI(db), &memSaver{}, &testutil.LogRecorder{})
	if _, err := other.Submit(ctx, sess, hw.ID, submission.NewSubmission{Description: "from my phone"}); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	_, err := svc.Submit(ctx, sess, hw.ID, submission.NewSubmission{Description: "from my laptop"})
	if !core.IsAPIError(err, 409) {
		t.Errorf("Submit() error = %v, want a 409 conflict", err)
	}
}

func TestService_ForAssignment(t *testing.T) {
	db, svc, _, _ := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	juma := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	neema := testutil.CreateAccount(t, db, "Neema", "Baraka", "neema", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Map reading", 1, teacher, time.Now())

	for _, s := range []user.User{juma, neema} {
		if _, err := svc.Submit(ctx, testutil.Session(s), hw.ID, submission.NewSubmission{Description: s.Username}); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	t.Run("teacher sees all", func(t *testing.T) {
		subs, err := svc.ForAssignment(ctx, testutil.Session(teacher), hw.ID)
		if err != nil {
			t.Fatalf("ForAssignment() failed: %v", err)
		}
		assert.Len(t, subs, 2)
	})

	t.Run("student sees own only", func(t *testing.T) {
		subs, err := svc.ForAssignment(ctx, testutil.Session(juma), hw.ID)
		if err != nil {
			t.Fatalf("ForAssignment() failed: %v", err)
		}
		if assert.Len(t, subs, 1) {
			assert.Equal(t, juma.ID, subs[0].StudentID)
		}
	})
}

func TestService_ForAssignment_cacheIsolation(t *testing.T) {
	db, svc, _, _ := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	student := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Map reading", 1, teacher, time.Now())

	if _, err := svc.Submit(ctx, testutil.Session(student), hw.ID, submission.NewSubmission{Description: "first pass"}); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	sess := testutil.Session(teacher)

	subs, err := svc.ForAssignment(ctx, sess, hw.ID)
	if err != nil {
		t.Fatalf("ForAssignment() failed: %v", err)
	}
	if !assert.Len(t, subs, 1) {
		t.FailNow()
	}

	// scribbling on the returned slice must not reach the cache
	subs[0].Description.SetValid("vandalized")
	subs[0].StudentID = 424242

	again, err := svc.ForAssignment(ctx, sess, hw.ID)
	if err != nil {
		t.Fatalf("ForAssignment() failed: %v", err)
	}
	if assert.Len(t, again, 1) {
		assert.Equal(t, student.ID, again[0].StudentID)
		assert.Equal(t, "first pass", again[0].Description.String)
	}
}

func TestService_DownloadFile(t *testing.T) {
	db, svc, saver, logRec := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	student := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Lab report", 1, teacher, time.Now())

	sub, err := svc.Submit(ctx, testutil.Session(student), hw.ID, submission.NewSubmission{
		Files: []submission.Upload{{
			Name:        "report.txt",
			ContentType: "text/plain",
			Content:     strings.NewReader("the results"),
		}},
	})
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	t.Run("ok", func(t *testing.T) {
		path, err := svc.DownloadFile(ctx, sub.ID, sub.Files[0].ID, sub.Files[0].FileName)
		if err != nil {
			t.Fatalf("DownloadFile() failed: %v", err)
		}
		assert.Equal(t, "tmp/report.txt", path)
		assert.True(t, bytes.Equal([]byte("the results"), saver.files["report.txt"]))
	})

	t.Run("missing file is reported, not fatal", func(t *testing.T) {
		_, err := svc.DownloadFile(ctx, sub.ID, 999999, "ghost.txt")
		var dErr *core.DownloadError
		if !errors.As(err, &dErr) {
			t.Fatalf("DownloadFile() error = %v, want *core.DownloadError", err)
		}
		assert.Equal(t, "ghost.txt", dErr.FileName)
		assert.NotEmpty(t, logRec.Errors)
	})

	t.Run("saver failure is reported", func(t *testing.T) {
		saver.err = errors.New("disk full")
		defer func() { saver.err = nil }()

		_, err := svc.DownloadFile(ctx, sub.ID, sub.Files[0].ID, sub.Files[0].FileName)
		var dErr *core.DownloadError
		if !errors.As(err, &dErr) {
			t.Fatalf("DownloadFile() error = %v, want *core.DownloadError", err)
		}
	})
}

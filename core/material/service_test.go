package material_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/material"
	"github.com/trezcool/shule/core/user"
	dummyapi "github.com/trezcool/shule/storage/dummy"
	testutil "github.com/trezcool/shule/tests"
)

// memSaver keeps saved files in memory.
type memSaver struct {
	files map[string][]byte
}

func (s *memSaver) Save(fileName string, r io.Reader) (string, error) {
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

// invalidationRecorder remembers which classrooms were invalidated.
type invalidationRecorder struct {
	mu  sync.Mutex
	ids []int
}

func (r *invalidationRecorder) Invalidate(classroomID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, classroomID)
}

func setup(t *testing.T) (*dummyapi.DB, *material.Service, *memSaver, *invalidationRecorder, *testutil.LogRecorder) {
	db := testutil.OpenDB(t)
	saver := &memSaver{}
	feedRec := &invalidationRecorder{}
	logRec := &testutil.LogRecorder{}
	svc := material.NewService(dummyapi.NewMaterialAPI(db), feedRec, saver, logRec)
	return db, svc, saver, feedRec, logRec
}

func TestService_Upload(t *testing.T) {
	db, svc, _, feedRec, _ := setup(t)
	ctx := context.Background()
	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)

	t.Run("file is required", func(t *testing.T) {
		_, err := svc.Upload(ctx, material.NewMaterial{
			Title:        "Chapter 4 notes",
			UploadedByID: teacher.ID,
			ClassroomID:  10,
		})
		var vErr *core.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Upload() error = %v, want validation error", err)
		}
	})

	t.Run("ok", func(t *testing.T) {
		m, err := svc.Upload(ctx, material.NewMaterial{
			Title:        "Chapter 4 notes",
			UploadedByID: teacher.ID,
			ClassroomID:  10,
			File: material.Upload{
				Name:        "chapter4.pdf",
				ContentType: "application/pdf",
				Content:     strings.NewReader("all about fractions"),
			},
		})
		if err != nil {
			t.Fatalf("Upload() failed: %v", err)
		}
		assert.Contains(t, m.FileURL, "chapter4.pdf")
		assert.Equal(t, []int{10}, feedRec.ids, "upload must invalidate the classroom feed")
	})
}

func TestService_Download(t *testing.T) {
	db, svc, saver, _, logRec := setup(t)
	ctx := context.Background()
	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)

	m, err := svc.Upload(ctx, material.NewMaterial{
		Title:        "Lab safety",
		UploadedByID: teacher.ID,
		ClassroomID:  10,
		File: material.Upload{
			Name:        "safety.txt",
			ContentType: "text/plain",
			Content:     strings.NewReader("wear goggles"),
		},
	})
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	t.Run("round-trips the file named by fileUrl", func(t *testing.T) {
		path, err := svc.Download(ctx, m)
		if err != nil {
			t.Fatalf("Download() failed: %v", err)
		}
		assert.Equal(t, "tmp/safety.txt", path)
		assert.Equal(t, "wear goggles", string(saver.files["safety.txt"]))
	})

	t.Run("missing file is reported, not fatal", func(t *testing.T) {
		_, err := svc.Download(ctx, material.Material{FileURL: "/files/materials/99/ghost.pdf"})
		var dErr *core.DownloadError
		if !errors.As(err, &dErr) {
			t.Fatalf("Download() error = %v, want *core.DownloadError", err)
		}
		assert.Equal(t, "ghost.pdf", dErr.FileName)
		assert.NotEmpty(t, logRec.Errors)
	})
}

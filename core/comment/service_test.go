package comment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/comment"
	"github.com/trezcool/shule/core/user"
	dummyapi "github.com/trezcool/shule/storage/dummy"
	testutil "github.com/trezcool/shule/tests"
)

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

func setup(t *testing.T) (*dummyapi.DB, *comment.Service, *invalidationRecorder, *testutil.LogRecorder) {
	db := testutil.OpenDB(t)
	feedRec := &invalidationRecorder{}
	logRec := &testutil.LogRecorder{}
	svc := comment.NewService(dummyapi.NewCommentAPI(db), feedRec, logRec)
	return db, svc, feedRec, logRec
}

func TestService_AssignmentThread(t *testing.T) {
	db, svc, _, _ := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	juma := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	neema := testutil.CreateAccount(t, db, "Neema", "Baraka", "neema", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Algebra homework", 1, teacher, time.Now())

	base := time.Date(2021, 3, 2, 9, 0, 0, 0, time.UTC)
	testutil.CreateComment(t, db, "is question 3 graded?", hw.ID, juma, 0, base.Add(2*time.Minute))
	testutil.CreateComment(t, db, "yes it is", hw.ID, teacher, juma.ID, base.Add(3*time.Minute))
	testutil.CreateComment(t, db, "I am stuck on 5", hw.ID, neema, 0, base.Add(1*time.Minute))

	t.Run("teacher sees every thread, oldest first", func(t *testing.T) {
		comments, err := svc.AssignmentThread(ctx, testutil.Session(teacher), hw.ID)
		if err != nil {
			t.Fatalf("AssignmentThread() failed: %v", err)
		}
		if len(comments) != 3 {
			t.Fatalf("AssignmentThread() returned %d comments, want 3", len(comments))
		}
		for i := 1; i < len(comments); i++ {
			if comments[i].CreatedAt.Before(comments[i-1].CreatedAt) {
				t.Errorf("comments[%d] is older than comments[%d]; thread must read top-to-bottom", i, i-1)
			}
		}
		assert.Equal(t, "I am stuck on 5", comments[0].Content)
	})

	t.Run("student sees own thread only", func(t *testing.T) {
		comments, err := svc.AssignmentThread(ctx, testutil.Session(juma), hw.ID)
		if err != nil {
			t.Fatalf("AssignmentThread() failed: %v", err)
		}
		if assert.Len(t, comments, 2) {
			assert.Equal(t, "is question 3 graded?", comments[0].Content)
			assert.Equal(t, "yes it is", comments[1].Content)
		}
	})
}

func TestService_PostAndReply(t *testing.T) {
	db, svc, _, _ := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	juma := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Essay", 1, teacher, time.Now())

	t.Run("empty content is rejected", func(t *testing.T) {
		_, err := svc.Post(ctx, testutil.Session(juma), hw.ID, "   ")
		var vErr *core.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Post() error = %v, want validation error", err)
		}
	})

	t.Run("student post is scoped to themselves", func(t *testing.T) {
		c, err := svc.Post(ctx, testutil.Session(juma), hw.ID, "done, please check")
		if err != nil {
			t.Fatalf("Post() failed: %v", err)
		}
		assert.Equal(t, juma.ID, c.CreatedByID)
		assert.False(t, c.RecipientStudentID.Valid)
	})

	t.Run("reply without a recipient is rejected", func(t *testing.T) {
		_, err := svc.Reply(ctx, testutil.Session(teacher), hw.ID, 0, "well done")
		var vErr *core.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Reply() error = %v, want validation error", err)
		}
	})

	t.Run("reply lands in the recipient's thread", func(t *testing.T) {
		c, err := svc.Reply(ctx, testutil.Session(teacher), hw.ID, juma.ID, "well done")
		if err != nil {
			t.Fatalf("Reply() failed: %v", err)
		}
		assert.Equal(t, juma.ID, c.RecipientStudentID.Int)

		comments, err := svc.AssignmentThread(ctx, testutil.Session(juma), hw.ID)
		if err != nil {
			t.Fatalf("AssignmentThread() failed: %v", err)
		}
		assert.Len(t, comments, 2)
	})
}

func TestService_classMessages(t *testing.T) {
	db, svc, feedRec, _ := setup(t)
	ctx := context.Background()
	const classroomID = 42

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	other := testutil.CreateAccount(t, db, "Baraka", "Juma", "baraka", user.RoleTeacher, 1)
	sess := testutil.Session(teacher)

	msg, err := svc.PostClassMessage(ctx, sess, classroomID, "Quiz moved to Friday")
	if err != nil {
		t.Fatalf("PostClassMessage() failed: %v", err)
	}
	assert.True(t, msg.IsClassMessage())
	assert.Equal(t, "Quiz moved to Friday", msg.Body())
	assert.Equal(t, []int{classroomID}, feedRec.ids, "posting must invalidate the classroom feed")

	t.Run("edit keeps the message tag", func(t *testing.T) {
		updated, err := svc.UpdateClassMessage(ctx, sess, msg.ID, classroomID, "Quiz moved to Monday")
		if err != nil {
			t.Fatalf("UpdateClassMessage() failed: %v", err)
		}
		assert.True(t, updated.IsClassMessage())
		assert.Equal(t, "Quiz moved to Monday", updated.Body())
	})

	t.Run("only the author can edit", func(t *testing.T) {
		_, err := svc.UpdateClassMessage(ctx, testutil.Session(other), msg.ID, classroomID, "hijacked")
		if err != comment.ErrNotFound {
			t.Errorf("UpdateClassMessage() error = %v, want %v", err, comment.ErrNotFound)
		}
	})

	t.Run("delete invalidates the feed", func(t *testing.T) {
		before := len(feedRec.ids)
		if err := svc.DeleteClassMessage(ctx, sess, msg.ID, classroomID); err != nil {
			t.Fatalf("DeleteClassMessage() failed: %v", err)
		}
		assert.Len(t, feedRec.ids, before+1)

		comments, err := svc.ClassroomComments(ctx, classroomID)
		if err != nil {
			t.Fatalf("ClassroomComments() failed: %v", err)
		}
		assert.Empty(t, comments)
	})
}

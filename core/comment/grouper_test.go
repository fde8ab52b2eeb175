package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core/user"
	testutil "github.com/trezcool/shule/tests"
)

func TestService_GroupByStudent(t *testing.T) {
	db, svc, _, _ := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	juma := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	neema := testutil.CreateAccount(t, db, "Neema", "Baraka", "neema", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Algebra homework", 1, teacher, time.Now())

	base := time.Date(2021, 3, 2, 9, 0, 0, 0, time.UTC)
	testutil.CreateComment(t, db, "is question 3 graded?", hw.ID, juma, 0, base.Add(1*time.Minute))
	testutil.CreateComment(t, db, "yes it is", hw.ID, teacher, juma.ID, base.Add(2*time.Minute))
	testutil.CreateComment(t, db, "thanks!", hw.ID, juma, 0, base.Add(3*time.Minute))
	testutil.CreateComment(t, db, "I am stuck on 5", hw.ID, neema, 0, base.Add(4*time.Minute))

	comments, err := svc.AssignmentThread(ctx, testutil.Session(teacher), hw.ID)
	if err != nil {
		t.Fatalf("AssignmentThread() failed: %v", err)
	}

	threads := svc.GroupByStudent(comments)
	if len(threads) != 2 {
		t.Fatalf("GroupByStudent() produced %d threads, want 2", len(threads))
	}

	t.Run("teacher replies land in the recipient's thread", func(t *testing.T) {
		th := threads[juma.ID]
		if th == nil {
			t.Fatal("no thread for juma")
		}
		assert.Equal(t, "Juma Hassan", th.StudentName)
		if assert.Len(t, th.Comments, 3) {
			// interleaved conversation stays chronological
			assert.Equal(t, "is question 3 graded?", th.Comments[0].Content)
			assert.Equal(t, "yes it is", th.Comments[1].Content)
			assert.Equal(t, "thanks!", th.Comments[2].Content)
		}
	})

	t.Run("students never share a thread", func(t *testing.T) {
		th := threads[neema.ID]
		if th == nil {
			t.Fatal("no thread for neema")
		}
		if assert.Len(t, th.Comments, 1) {
			assert.Equal(t, "I am stuck on 5", th.Comments[0].Content)
		}
	})
}

func TestService_GroupByStudent_silentStudent(t *testing.T) {
	db, svc, _, _ := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	neema := testutil.CreateAccount(t, db, "Neema", "Baraka", "neema", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Essay", 1, teacher, time.Now())

	base := time.Date(2021, 3, 2, 9, 0, 0, 0, time.UTC)
	// the teacher opens the conversation; neema has not posted yet
	testutil.CreateComment(t, db, "please resubmit page 2", hw.ID, teacher, neema.ID, base)
	testutil.CreateComment(t, db, "and fix the title", hw.ID, teacher, neema.ID, base.Add(1*time.Minute))

	comments, err := svc.AssignmentThread(ctx, testutil.Session(teacher), hw.ID)
	if err != nil {
		t.Fatalf("AssignmentThread() failed: %v", err)
	}

	threads := svc.GroupByStudent(comments)
	th := threads[neema.ID]
	if th == nil {
		t.Fatal("no thread for neema")
	}
	assert.Len(t, th.Comments, 2, "replies are kept even before the student answers")
	assert.Empty(t, th.StudentName, "replies only carry the recipient's id, not their name")
	assert.Equal(t, neema.ID, th.StudentID)
}

func TestService_GroupByStudent_malformed(t *testing.T) {
	db, svc, _, logRec := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateAccount(t, db, "Asha", "Mwalimu", "asha", user.RoleTeacher, 1)
	juma := testutil.CreateAccount(t, db, "Juma", "Hassan", "juma", user.RoleStudent, 1)
	hw := testutil.CreateAssignment(t, db, "Essay", 1, teacher, time.Now())

	base := time.Date(2021, 3, 2, 9, 0, 0, 0, time.UTC)
	testutil.CreateComment(t, db, "my draft is attached", hw.ID, juma, 0, base)
	// a teacher reply that lost its recipient points at malformed server data
	testutil.CreateComment(t, db, "who was this for?", hw.ID, teacher, 0, base.Add(1*time.Minute))

	comments, err := svc.AssignmentThread(ctx, testutil.Session(teacher), hw.ID)
	if err != nil {
		t.Fatalf("AssignmentThread() failed: %v", err)
	}

	threads := svc.GroupByStudent(comments)
	assert.Len(t, threads, 1, "the orphaned reply must be dropped, not grouped")
	assert.Len(t, threads[juma.ID].Comments, 1)
	assert.NotEmpty(t, logRec.Warnings, "dropping a comment must be logged")
}

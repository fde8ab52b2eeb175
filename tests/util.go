package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/comment"
	"github.com/trezcool/shule/core/material"
	"github.com/trezcool/shule/core/user"
	dummyapi "github.com/trezcool/shule/storage/dummy"
)

func OpenDB(t *testing.T) *dummyapi.DB {
	db, err := dummyapi.Open()
	if err != nil {
		t.Fatalf("openDB() failed: %v", err)
	}
	return db
}

func CreateAccount(
	t *testing.T,
	db *dummyapi.DB,
	firstName, lastName, uname, role string,
	schoolID int,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	return db.AddAccount(user.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  uname,
		Email:     uname + "@test.test",
		Role:      role,
		SchoolID:  schoolID,
		CreatedAt: tstamp,
	}, "LePassword")
}

func Session(usr user.User) user.Session {
	return user.Session{User: usr}
}

func CreateAssignment(
	t *testing.T,
	db *dummyapi.DB,
	title string,
	classroomID int,
	createdBy user.User,
	createdAt time.Time,
) assignment.Assignment {
	return db.AddAssignment(assignment.Assignment{
		Title:       title,
		Description: title + " description",
		DueDate:     createdAt.Add(7 * 24 * time.Hour).UTC(),
		CreatedByID: createdBy.ID,
		ClassroomID: classroomID,
		CreatedAt:   createdAt.UTC(),
	})
}

func CreateMaterial(
	t *testing.T,
	db *dummyapi.DB,
	title string,
	classroomID int,
	uploadedBy user.User,
	createdAt time.Time,
) material.Material {
	return db.AddMaterial(material.Material{
		Title:        title,
		Description:  null.StringFrom(title + " notes"),
		FileURL:      "/files/" + title,
		UploadedByID: uploadedBy.ID,
		ClassroomID:  classroomID,
		CreatedAt:    createdAt.UTC(),
	})
}

func CreateComment(
	t *testing.T,
	db *dummyapi.DB,
	content string,
	assignmentID int,
	author user.User,
	recipientStudentID int,
	createdAt time.Time,
) comment.Comment {
	c := comment.Comment{
		Content:            content,
		CreatedByID:        author.ID,
		CreatedByFirstName: author.FirstName,
		CreatedByLastName:  author.LastName,
		CreatedByRole:      author.Role,
		AssignmentID:       null.IntFrom(assignmentID),
		CreatedAt:          createdAt.UTC(),
	}
	if recipientStudentID != 0 {
		c.RecipientStudentID = null.IntFrom(recipientStudentID)
	}
	return db.AddComment(c)
}

func CreateClassMessage(
	t *testing.T,
	db *dummyapi.DB,
	content string,
	classroomID int,
	author user.User,
	createdAt time.Time,
) comment.Comment {
	return db.AddComment(comment.Comment{
		Content:            comment.TagMessage(content),
		CreatedByID:        author.ID,
		CreatedByFirstName: author.FirstName,
		CreatedByLastName:  author.LastName,
		CreatedByRole:      author.Role,
		ClassroomID:        null.IntFrom(classroomID),
		CreatedAt:          createdAt.UTC(),
	})
}

// Diff renders a unified diff of two payloads for failure messages.
func Diff(want, got interface{}) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(fmt.Sprintf("%+v", want)),
		B:        difflib.SplitLines(fmt.Sprintf("%+v", got)),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	return diff
}

// LogRecorder is a core.Logger that remembers what was logged.
type LogRecorder struct {
	mu       sync.Mutex
	Warnings []string
	Errors   []string
}

func (l *LogRecorder) Enable(bool) {}

func (l *LogRecorder) Debug(msg string, args ...interface{}) {}
func (l *LogRecorder) Info(msg string, args ...interface{})  {}

func (l *LogRecorder) Warn(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warnings = append(l.Warnings, msg)
}

func (l *LogRecorder) Error(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *LogRecorder) Fatal(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

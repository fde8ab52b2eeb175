package dummyapi

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/comment"
	"github.com/trezcool/shule/core/user"
)

type commentAPI struct {
	db *DB
}

var _ comment.API = (*commentAPI)(nil) // interface compliance check

func NewCommentAPI(db *DB) comment.API {
	return &commentAPI{db: db}
}

func (api *commentAPI) ListClassroomComments(_ context.Context, classroomID int) ([]comment.Comment, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	out := make([]comment.Comment, 0)
	for _, c := range api.db.comments {
		if c.ClassroomID.Valid && c.ClassroomID.Int == classroomID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// ListAssignmentComments returns an assignment's discussion as the backend
// filters it: a student only sees their own thread, a teacher sees all.
func (api *commentAPI) ListAssignmentComments(_ context.Context, assignmentID, userID int) ([]comment.Comment, error) {
	api.db.mu.RLock()
	defer api.db.mu.RUnlock()

	var viewer *account
	if acc, ok := api.db.users[userID]; ok {
		viewer = acc
	}

	out := make([]comment.Comment, 0)
	for _, c := range api.db.comments {
		if !c.AssignmentID.Valid || c.AssignmentID.Int != assignmentID {
			continue
		}
		if viewer != nil && viewer.IsStudent() {
			if c.CreatedByID != userID && c.RecipientStudentID.Int != userID {
				continue
			}
		}
		out = append(out, *c)
	}
	return out, nil
}

func (api *commentAPI) CreateClassroomComment(_ context.Context, classroomID, createdByID int, content string) (comment.Comment, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	c := api.newComment(createdByID, content)
	c.ClassroomID = null.IntFrom(classroomID)
	api.db.comments[c.ID] = &c
	return c, nil
}

func (api *commentAPI) CreateAssignmentComment(_ context.Context, assignmentID, createdByID int, recipientStudentID null.Int, content string) (comment.Comment, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	c := api.newComment(createdByID, content)
	c.AssignmentID = null.IntFrom(assignmentID)
	c.RecipientStudentID = recipientStudentID
	api.db.comments[c.ID] = &c
	return c, nil
}

func (api *commentAPI) UpdateComment(_ context.Context, id, userID int, content string) (comment.Comment, error) {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	c, ok := api.db.comments[id]
	if !ok || c.CreatedByID != userID {
		return comment.Comment{}, comment.ErrNotFound
	}
	c.Content = content
	return *c, nil
}

func (api *commentAPI) DeleteComment(_ context.Context, id, userID int) error {
	api.db.mu.Lock()
	defer api.db.mu.Unlock()

	c, ok := api.db.comments[id]
	if !ok || c.CreatedByID != userID {
		return comment.ErrNotFound
	}
	delete(api.db.comments, id)
	return nil
}

// newComment must be called with db.mu held.
func (api *commentAPI) newComment(createdByID int, content string) comment.Comment {
	c := comment.Comment{
		ID:          api.db.nextPK(),
		Content:     content,
		CreatedByID: createdByID,
		CreatedAt:   time.Now().UTC(),
	}
	if acc, ok := api.db.users[createdByID]; ok {
		c.CreatedByFirstName = acc.FirstName
		c.CreatedByLastName = acc.LastName
		c.CreatedByRole = acc.Role
	} else {
		c.CreatedByRole = user.RoleStudent
	}
	return c
}

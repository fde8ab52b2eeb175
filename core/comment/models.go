package comment

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

// MessagePrefix tags a classroom-level comment as a class message; the feed
// renders such comments as type "message".
const MessagePrefix = "[Message]"

type Comment struct {
	ID                 int       `json:"id"`
	Content            string    `json:"content"`
	CreatedByID        int       `json:"createdById"`
	CreatedByFirstName string    `json:"createdByFirstName"`
	CreatedByLastName  string    `json:"createdByLastName"`
	CreatedByRole      string    `json:"createdByRole"`
	AssignmentID       null.Int  `json:"assignmentId,omitempty"`
	ClassroomID        null.Int  `json:"classroomId,omitempty"`
	RecipientStudentID null.Int  `json:"recipientStudentId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"` // UTC
}

func (c Comment) AuthorName() string {
	name := strings.TrimSpace(c.CreatedByFirstName + " " + c.CreatedByLastName)
	return name
}

// IsClassMessage reports whether this is a classroom-level class message
// rather than an assignment discussion comment.
func (c Comment) IsClassMessage() bool {
	return !c.AssignmentID.Valid && strings.HasPrefix(c.Content, MessagePrefix)
}

// Body strips the class-message tag for display.
func (c Comment) Body() string {
	return core.CleanString(strings.TrimPrefix(c.Content, MessagePrefix))
}

// TagMessage prefixes content so the backend folds it into the classroom feed
// as a message item.
func TagMessage(content string) string {
	return MessagePrefix + " " + core.CleanString(content)
}

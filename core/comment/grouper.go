package comment

import (
	"github.com/trezcool/shule/core/user"
)

// Thread is one student's slice of an assignment discussion: their own
// comments plus the teacher replies addressed to them, oldest first.
//
// StudentName is taken from the student's own comments since teacher replies
// only carry the recipient's id. It stays empty until the student has posted.
type Thread struct {
	StudentID   int
	StudentName string
	Comments    []Comment
}

// GroupByStudent buckets an assignment's comments per student for the teacher
// view. A student comment belongs to its author; a teacher reply belongs to
// its recipient. A comment with no resolvable student (e.g. a teacher reply
// missing its recipient) is dropped with a warning since it points at
// malformed server data.
func (svc *Service) GroupByStudent(comments []Comment) map[int]*Thread {
	threads := make(map[int]*Thread)
	for _, c := range comments {
		studentID := resolveStudentID(c)
		if studentID == 0 {
			svc.log.Warn("dropping comment with no resolvable student", map[string]interface{}{
				"commentId":   c.ID,
				"createdById": c.CreatedByID,
				"role":        c.CreatedByRole,
			})
			continue
		}

		th, ok := threads[studentID]
		if !ok {
			th = &Thread{StudentID: studentID}
			threads[studentID] = th
		}
		if c.CreatedByRole == user.RoleStudent {
			th.StudentName = c.AuthorName()
		}
		th.Comments = append(th.Comments, c)
	}

	for _, th := range threads {
		sortChronological(th.Comments)
	}
	return threads
}

func resolveStudentID(c Comment) int {
	if c.CreatedByRole == user.RoleStudent {
		return c.CreatedByID
	}
	return c.RecipientStudentID.Int
}

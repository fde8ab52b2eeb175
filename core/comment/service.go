package comment

import (
	"context"
	"errors"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

var (
	// errors
	ErrNotFound          = errors.New("comment not found")
	ErrRecipientRequired = errors.New("a teacher reply must name its recipient student")
	errContentRequired   = errors.New("content is required")
)

type (
	API interface {
		ListClassroomComments(ctx context.Context, classroomID int) ([]Comment, error)
		ListAssignmentComments(ctx context.Context, assignmentID, userID int) ([]Comment, error)
		CreateClassroomComment(ctx context.Context, classroomID, createdByID int, content string) (Comment, error)
		CreateAssignmentComment(ctx context.Context, assignmentID, createdByID int, recipientStudentID null.Int, content string) (Comment, error)
		UpdateComment(ctx context.Context, id, userID int, content string) (Comment, error)
		DeleteComment(ctx context.Context, id, userID int) error
	}

	Service struct {
		api  API
		feed core.FeedInvalidator
		log  core.Logger
	}
)

func NewService(api API, feed core.FeedInvalidator, log core.Logger) *Service {
	return &Service{api: api, feed: feed, log: log}
}

// AssignmentThread returns an assignment's comments visible to the acting
// user, oldest first (a thread reads top-to-bottom, unlike the feed).
func (svc *Service) AssignmentThread(ctx context.Context, sess user.Session, assignmentID int) ([]Comment, error) {
	comments, err := svc.api.ListAssignmentComments(ctx, assignmentID, sess.User.ID)
	if err != nil {
		return nil, err
	}
	sortChronological(comments)
	return comments, nil
}

func (svc *Service) ClassroomComments(ctx context.Context, classroomID int) ([]Comment, error) {
	comments, err := svc.api.ListClassroomComments(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	sortChronological(comments)
	return comments, nil
}

// Post adds a top-level comment on an assignment; a student's comment is
// implicitly scoped to themselves.
func (svc *Service) Post(ctx context.Context, sess user.Session, assignmentID int, content string) (Comment, error) {
	content, err := checkContent(content)
	if err != nil {
		return Comment{}, err
	}
	return svc.api.CreateAssignmentComment(ctx, assignmentID, sess.User.ID, null.Int{}, content)
}

// Reply adds a teacher's reply on an assignment, addressed to one student's
// thread via the recipient id.
func (svc *Service) Reply(ctx context.Context, sess user.Session, assignmentID, recipientStudentID int, content string) (Comment, error) {
	content, err := checkContent(content)
	if err != nil {
		return Comment{}, err
	}
	if recipientStudentID == 0 {
		return Comment{}, core.NewValidationError(ErrRecipientRequired,
			core.FieldError{Field: "recipientStudentId", Error: ErrRecipientRequired.Error()})
	}
	return svc.api.CreateAssignmentComment(ctx, assignmentID, sess.User.ID, null.IntFrom(recipientStudentID), content)
}

// PostClassMessage publishes a class message to the classroom feed.
func (svc *Service) PostClassMessage(ctx context.Context, sess user.Session, classroomID int, content string) (Comment, error) {
	content, err := checkContent(content)
	if err != nil {
		return Comment{}, err
	}
	c, err := svc.api.CreateClassroomComment(ctx, classroomID, sess.User.ID, TagMessage(content))
	if err != nil {
		return Comment{}, err
	}
	svc.feed.Invalidate(classroomID)
	return c, nil
}

// UpdateClassMessage edits one's own class message in place.
func (svc *Service) UpdateClassMessage(ctx context.Context, sess user.Session, id, classroomID int, content string) (Comment, error) {
	content, err := checkContent(content)
	if err != nil {
		return Comment{}, err
	}
	c, err := svc.api.UpdateComment(ctx, id, sess.User.ID, TagMessage(content))
	if err != nil {
		return Comment{}, err
	}
	svc.feed.Invalidate(classroomID)
	return c, nil
}

func (svc *Service) Update(ctx context.Context, sess user.Session, id int, content string) (Comment, error) {
	content, err := checkContent(content)
	if err != nil {
		return Comment{}, err
	}
	return svc.api.UpdateComment(ctx, id, sess.User.ID, content)
}

func (svc *Service) Delete(ctx context.Context, sess user.Session, id int) error {
	return svc.api.DeleteComment(ctx, id, sess.User.ID)
}

// DeleteClassMessage removes one's own class message from the feed.
func (svc *Service) DeleteClassMessage(ctx context.Context, sess user.Session, id, classroomID int) error {
	if err := svc.api.DeleteComment(ctx, id, sess.User.ID); err != nil {
		return err
	}
	svc.feed.Invalidate(classroomID)
	return nil
}

func checkContent(content string) (string, error) {
	content = core.CleanString(content)
	if content == "" {
		return "", core.NewValidationError(errContentRequired,
			core.FieldError{Field: "content", Error: errContentRequired.Error()})
	}
	return content, nil
}

func sortChronological(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}

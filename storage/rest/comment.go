package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/comment"
)

type commentAPI struct {
	client *Client
}

var _ comment.API = (*commentAPI)(nil) // interface compliance check

func NewCommentAPI(client *Client) comment.API {
	return &commentAPI{client: client}
}

func (api *commentAPI) ListClassroomComments(ctx context.Context, classroomID int) ([]comment.Comment, error) {
	var out []comment.Comment
	if err := api.client.get(ctx, fmt.Sprintf("/comments/classroom/%d", classroomID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *commentAPI) ListAssignmentComments(ctx context.Context, assignmentID, userID int) ([]comment.Comment, error) {
	q := make(url.Values)
	q.Set("userId", strconv.Itoa(userID))

	var out []comment.Comment
	if err := api.client.get(ctx, fmt.Sprintf("/comments/assignment/%d", assignmentID), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *commentAPI) CreateClassroomComment(ctx context.Context, classroomID, createdByID int, content string) (comment.Comment, error) {
	in := struct {
		CreatedByID int    `json:"createdById"`
		Content     string `json:"content"`
	}{createdByID, content}

	var out comment.Comment
	if err := api.client.post(ctx, fmt.Sprintf("/comments/classroom/%d", classroomID), nil, in, &out); err != nil {
		return comment.Comment{}, err
	}
	return out, nil
}

func (api *commentAPI) CreateAssignmentComment(ctx context.Context, assignmentID, createdByID int, recipientStudentID null.Int, content string) (comment.Comment, error) {
	in := struct {
		CreatedByID        int      `json:"createdById"`
		RecipientStudentID null.Int `json:"recipientStudentId,omitempty"`
		Content            string   `json:"content"`
	}{createdByID, recipientStudentID, content}

	var out comment.Comment
	if err := api.client.post(ctx, fmt.Sprintf("/comments/assignment/%d", assignmentID), nil, in, &out); err != nil {
		return comment.Comment{}, err
	}
	return out, nil
}

func (api *commentAPI) UpdateComment(ctx context.Context, id, userID int, content string) (comment.Comment, error) {
	in := struct {
		ID          int    `json:"id"`
		Content     string `json:"content"`
		CreatedByID int    `json:"createdById"`
	}{id, content, userID}

	var out comment.Comment
	if err := api.client.put(ctx, fmt.Sprintf("/comments/%d", id), in, &out); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return comment.Comment{}, comment.ErrNotFound
		}
		return comment.Comment{}, err
	}
	return out, nil
}

func (api *commentAPI) DeleteComment(ctx context.Context, id, userID int) error {
	q := make(url.Values)
	q.Set("userId", strconv.Itoa(userID))

	if err := api.client.delete(ctx, fmt.Sprintf("/comments/%d", id), q); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return comment.ErrNotFound
		}
		return err
	}
	return nil
}

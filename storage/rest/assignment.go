package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
)

type assignmentAPI struct {
	client *Client
}

var _ assignment.API = (*assignmentAPI)(nil) // interface compliance check

func NewAssignmentAPI(client *Client) assignment.API {
	return &assignmentAPI{client: client}
}

func (api *assignmentAPI) ListAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	var out []assignment.Assignment
	if err := api.client.get(ctx, "/assignments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *assignmentAPI) GetAssignment(ctx context.Context, id int) (assignment.Assignment, error) {
	var out assignment.Assignment
	if err := api.client.get(ctx, fmt.Sprintf("/assignments/%d", id), nil, &out); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, err
	}
	return out, nil
}

func (api *assignmentAPI) CreateAssignment(ctx context.Context, na assignment.NewAssignment) (assignment.Assignment, error) {
	var out assignment.Assignment
	if err := api.client.post(ctx, "/assignments", nil, na, &out); err != nil {
		return assignment.Assignment{}, err
	}
	return out, nil
}

func (api *assignmentAPI) UpdateAssignment(ctx context.Context, id int, na assignment.NewAssignment) (assignment.Assignment, error) {
	var out assignment.Assignment
	if err := api.client.put(ctx, fmt.Sprintf("/assignments/%d", id), na, &out); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, err
	}
	return out, nil
}

func (api *assignmentAPI) DeleteAssignment(ctx context.Context, id int) error {
	if err := api.client.delete(ctx, fmt.Sprintf("/assignments/%d", id), nil); err != nil {
		if core.IsAPIError(err, http.StatusNotFound) {
			return assignment.ErrNotFound
		}
		return err
	}
	return nil
}
